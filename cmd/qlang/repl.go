package main

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"qlang/pkg/driver"
	"qlang/pkg/source"
)

const replHelp = `Enter qlang declarations; each line is parsed on its own.
  .h    show this help
  .q    quit
`

func newReplCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "repl",
		Short: "Parse lines interactively",
		Args:  args(cobra.NoArgs),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runRepl(a, cmd.InOrStdin(), cmd.OutOrStdout())
		},
	}
}

// runRepl starts the Read-Parse-Print Loop.
func runRepl(a *app, in io.Reader, out io.Writer) error {
	scanner := bufio.NewScanner(in)

	fmt.Fprintln(out, "qlang (.h for help, .q to quit)")
	for {
		fmt.Fprint(out, "> ")
		if !scanner.Scan() {
			if err := scanner.Err(); err != nil {
				return fmt.Errorf("error reading input: %w", err)
			}
			fmt.Fprintln(out, "\nGoodbye!")
			return nil
		}

		line := strings.TrimSpace(scanner.Text())
		switch line {
		case "":
			continue
		case ".q":
			return nil
		case ".h":
			fmt.Fprint(out, replHelp)
			continue
		}

		res := a.session.Parse(source.NewReplSource(line))
		if !a.session.DisplayResult(out, res) {
			continue
		}
		if err := driver.WriteProgram(out, res.Program, a.cfg.Output.Format); err != nil {
			return err
		}
	}
}
