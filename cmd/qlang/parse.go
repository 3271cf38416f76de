package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"qlang/pkg/driver"
	"qlang/pkg/source"
)

func newParseCmd(a *app) *cobra.Command {
	var format string

	cmd := &cobra.Command{
		Use:   "parse [file|-]",
		Short: "Parse a source file and print its syntax tree",
		Long: `Parse a qlang source file, or standard input when the file is "-" or
omitted, and print the syntax tree. Diagnostics are written to stderr and
the command exits with status 1.`,
		Args: args(cobra.MaximumNArgs(1)),
		RunE: func(cmd *cobra.Command, args []string) error {
			if format == "" {
				format = a.cfg.Output.Format
			}
			if !validFormat(format) {
				return usageError{fmt.Errorf("invalid format %q (want tree, json, yaml or source)", format)}
			}

			sf, err := loadSource(cmd, args)
			if err != nil {
				return err
			}

			res := a.session.Parse(sf)
			if !a.session.DisplayResult(cmd.ErrOrStderr(), res) {
				return errDiagnostics
			}
			return driver.WriteProgram(cmd.OutOrStdout(), res.Program, format)
		},
	}
	cmd.Flags().StringVarP(&format, "format", "f", "", "Output format: tree, json, yaml, source (default from config)")
	return cmd
}

func newTokensCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "tokens [file|-]",
		Short: "Print the token stream of a source file",
		Args:  args(cobra.MaximumNArgs(1)),
		RunE: func(cmd *cobra.Command, args []string) error {
			sf, err := loadSource(cmd, args)
			if err != nil {
				return err
			}
			return driver.WriteTokens(cmd.OutOrStdout(), a.session.Tokenize(sf))
		},
	}
}

// loadSource reads the file named by args, or stdin for "-" or no argument.
func loadSource(cmd *cobra.Command, args []string) (*source.SourceFile, error) {
	if len(args) == 0 || args[0] == "-" {
		return source.LoadStdin(cmd.InOrStdin())
	}
	sf, err := source.Load(args[0])
	if err != nil {
		return nil, usageError{err}
	}
	return sf, nil
}

func validFormat(format string) bool {
	for _, f := range driver.Formats {
		if f == format {
			return true
		}
	}
	return false
}
