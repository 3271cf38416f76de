package main

import (
	"github.com/spf13/cobra"
)

func newCheckCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "check [path]...",
		Short: "Parse every source file under the given paths",
		Long: `Discover source files under each path (the current directory when none
is given), parse them concurrently and report diagnostics followed by a
summary. Extensions, exclusions, worker count and timeout come from the
[check] section of the configuration.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 0 {
				args = []string{"."}
			}

			reg, stats, err := a.session.Check(cmd.Context(), args...)
			if err != nil {
				if reg == nil || reg.Size() == 0 {
					return usageError{err}
				}
				a.logger.Error(err, "check incomplete")
			}

			if !a.session.DisplayCheck(cmd.OutOrStdout(), reg, stats) || err != nil {
				return errDiagnostics
			}
			return nil
		},
	}
}
