package main

import (
	"fmt"

	"github.com/go-logr/logr"
	"github.com/spf13/cobra"

	"qlang/pkg/config"
	"qlang/pkg/driver"
	"qlang/pkg/logging"
)

// app holds the state shared by every subcommand of one invocation.
type app struct {
	// Persistent flags
	configPath string
	color      string
	dialect    string
	verbose    bool

	cfg     *config.Config
	session *driver.Session
	logger  logr.Logger
	sync    func()
}

func newRootCmd() *cobra.Command {
	a := &app{sync: func() {}}

	rootCmd := &cobra.Command{
		Use:   "qlang",
		Short: "qlang - tokenizer, parser and diagnostics for the qlang language",
		Long: `qlang parses qlang source files and reports syntax errors with
source excerpts, hints and stable error codes.

Configuration is read from --config, $QLANG_CONFIG, ./qlang.toml or
~/.config/qlang/config.toml, in that order.`,
		SilenceErrors: true,
		SilenceUsage:  true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.setup(cmd)
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			a.sync()
		},
	}

	rootCmd.PersistentFlags().StringVar(&a.configPath, "config", "", "Path to a qlang.toml configuration file")
	rootCmd.PersistentFlags().StringVar(&a.color, "color", "", "Color diagnostics: auto, always, never (default from config)")
	rootCmd.PersistentFlags().StringVar(&a.dialect, "dialect", "", "Grammar dialect: minimal, extended (default from config)")
	rootCmd.PersistentFlags().BoolVarP(&a.verbose, "verbose", "v", false, "Debug logging to stderr")

	rootCmd.SetFlagErrorFunc(func(cmd *cobra.Command, err error) error {
		return usageError{err}
	})

	rootCmd.AddCommand(newParseCmd(a))
	rootCmd.AddCommand(newTokensCmd(a))
	rootCmd.AddCommand(newCheckCmd(a))
	rootCmd.AddCommand(newReplCmd(a))
	rootCmd.AddCommand(newVersionCmd())
	return rootCmd
}

// setup loads configuration, applies flag overrides and builds the logger
// and session.
func (a *app) setup(cmd *cobra.Command) error {
	var err error
	if a.configPath != "" {
		a.cfg, err = config.Load(a.configPath)
	} else {
		a.cfg, err = config.LoadDefault()
	}
	if err != nil {
		return usageError{err}
	}

	if a.color != "" {
		a.cfg.Output.Color = a.color
	}
	if a.dialect != "" {
		a.cfg.Parser.Dialect = a.dialect
	}
	if a.verbose {
		a.cfg.Log.Level = "debug"
	}
	if err := a.cfg.Validate(); err != nil {
		return usageError{err}
	}

	logger, sync, err := logging.New(logging.Options{Level: a.cfg.Log.Level, Output: cmd.ErrOrStderr()})
	if err != nil {
		return fmt.Errorf("failed to build logger: %w", err)
	}
	a.logger, a.sync = logger.WithName("qlang"), sync

	a.session = driver.NewSession(driver.Options{
		Config: a.cfg,
		Color:  driver.ColorEnabled(a.cfg.Output.Color, cmd.ErrOrStderr()),
		Logger: a.logger,
	})
	a.logger.V(1).Info("session started", "command", cmd.Name(), "dialect", a.cfg.Parser.Dialect)
	return nil
}

// args wraps a cobra argument validator so its failures exit as usage errors.
func args(validate cobra.PositionalArgs) cobra.PositionalArgs {
	return func(cmd *cobra.Command, args []string) error {
		if err := validate(cmd, args); err != nil {
			return usageError{err}
		}
		return nil
	}
}
