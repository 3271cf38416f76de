// Package driver runs the qlang front end over sources and reports the
// results. A Session carries the parser options, renderer, logger and
// metrics shared by every command.
package driver

import (
	"context"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/go-logr/logr"
	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
	"golang.org/x/term"

	"qlang/pkg/config"
	"qlang/pkg/errors"
	"qlang/pkg/lexer"
	"qlang/pkg/modules"
	"qlang/pkg/parser"
	"qlang/pkg/source"
)

// Options configures a Session.
type Options struct {
	Config   *config.Config       // nil means config.Default()
	Color    bool                 // colorize rendered diagnostics
	Logger   logr.Logger          // zero value discards
	Registry *prometheus.Registry // nil creates a private registry
}

// Session represents a front-end session. It is safe to parse from
// several goroutines at once.
type Session struct {
	ID       string
	config   *config.Config
	options  parser.Options
	renderer errors.Renderer
	logger   logr.Logger
	registry *prometheus.Registry
	metrics  *Metrics
}

// Result is the outcome of parsing one source.
type Result struct {
	Source      *source.SourceFile
	Program     *parser.Program
	Diagnostics []errors.Diagnostic
	Duration    time.Duration
}

// OK reports whether the parse produced no diagnostics.
func (r *Result) OK() bool {
	return len(r.Diagnostics) == 0
}

// NewSession creates a session from opts.
func NewSession(opts Options) *Session {
	cfg := opts.Config
	if cfg == nil {
		cfg = config.Default()
	}
	reg := opts.Registry
	if reg == nil {
		reg = prometheus.NewRegistry()
	}
	id := uuid.NewString()
	return &Session{
		ID:       id,
		config:   cfg,
		options:  cfg.ParserOptions(),
		renderer: errors.Renderer{Color: opts.Color},
		logger:   opts.Logger.WithValues("session", id),
		registry: reg,
		metrics:  NewMetrics(reg),
	}
}

// Config returns the configuration the session was built from.
func (s *Session) Config() *config.Config {
	return s.config
}

// ParserOptions returns the options every parse uses.
func (s *Session) ParserOptions() parser.Options {
	return s.options
}

// Gatherer exposes the session's metrics.
func (s *Session) Gatherer() prometheus.Gatherer {
	return s.registry
}

// Logger returns the session logger.
func (s *Session) Logger() logr.Logger {
	return s.logger
}

// Tokenize returns the token stream of sf, ending with EOF.
func (s *Session) Tokenize(sf *source.SourceFile) []lexer.Token {
	return lexer.Tokenize(sf.Content)
}

// Parse tokenizes and parses sf.
func (s *Session) Parse(sf *source.SourceFile) *Result {
	start := time.Now()
	program, diags := parser.Parse(sf.Content, s.options)
	elapsed := time.Since(start)

	s.metrics.observe(elapsed.Seconds(), diags)
	s.logger.V(1).Info("parsed source",
		"source", sf.DisplayPath(),
		"dialect", s.options.Dialect.String(),
		"diagnostics", len(diags),
		"duration", elapsed)
	for _, d := range diags {
		s.logger.V(2).Info("diagnostic",
			"source", sf.DisplayPath(),
			"code", d.Code.String(),
			"kind", d.Kind(),
			"position", d.Position.String())
	}

	return &Result{
		Source:      sf,
		Program:     program,
		Diagnostics: diags,
		Duration:    elapsed,
	}
}

// ParseString parses inline source text.
func (s *Session) ParseString(src string) *Result {
	return s.Parse(source.NewEvalSource(src))
}

// Check discovers source files under paths and parses them concurrently
// using the [check] settings. Results come back sorted by path.
func (s *Session) Check(ctx context.Context, paths ...string) (*modules.Registry, modules.CheckStats, error) {
	resolver := modules.NewOSFileSystemResolver("")
	resolver.SetExtensions(s.config.Check.Extensions)
	if err := resolver.SetExclude(s.config.Check.Exclude); err != nil {
		return nil, modules.CheckStats{}, err
	}

	loader := modules.NewLoader(resolver, modules.LoaderConfig{
		Pool: &modules.PoolConfig{
			NumWorkers:       s.config.Check.Workers,
			JobBufferSize:    100,
			ResultBufferSize: 100,
		},
		Options: s.options,
		Timeout: s.config.Check.Timeout.Duration,
	}, s.logger)

	reg, stats, err := loader.Check(ctx, paths...)
	if reg != nil {
		for _, res := range reg.Results() {
			s.metrics.files.Inc()
			if res.Error == nil {
				s.metrics.observe(res.ParseDuration.Seconds(), res.Diagnostics)
			}
		}
	}
	return reg, stats, err
}

// DisplayResult writes the diagnostics of res to w. It returns true when
// there were none.
func (s *Session) DisplayResult(w io.Writer, res *Result) bool {
	if res.OK() {
		return true
	}
	if err := s.renderer.Display(w, res.Source, res.Diagnostics); err != nil {
		s.logger.Error(err, "failed to write diagnostics")
	}
	return false
}

// DisplayCheck writes the diagnostics and read errors of every failed file
// followed by a one-line summary. It returns true when no file failed.
func (s *Session) DisplayCheck(w io.Writer, reg *modules.Registry, stats modules.CheckStats) bool {
	for _, res := range reg.Results() {
		switch res.State() {
		case modules.FileError:
			fmt.Fprintf(w, "error: %v\n\n", res.Error)
		case modules.FileFailed:
			if err := s.renderer.Display(w, res.Source, res.Diagnostics); err != nil {
				s.logger.Error(err, "failed to write diagnostics")
			}
			fmt.Fprintln(w)
		}
	}
	fmt.Fprintln(w, Summary(stats))
	return stats.Failed == 0
}

// Summary renders stats as a single line.
func Summary(stats modules.CheckStats) string {
	return fmt.Sprintf("checked %d %s: %d failed, %d %s",
		stats.Files, plural(stats.Files, "file", "files"),
		stats.Failed,
		stats.Diagnostics, plural(stats.Diagnostics, "diagnostic", "diagnostics"))
}

func plural(n int, one, many string) string {
	if n == 1 {
		return one
	}
	return many
}

// ColorEnabled resolves a color mode (auto, always or never) for out.
// Auto enables color only on a terminal with NO_COLOR unset.
func ColorEnabled(mode string, out io.Writer) bool {
	switch mode {
	case "always":
		return true
	case "never":
		return false
	}
	f, ok := out.(*os.File)
	if !ok || os.Getenv("NO_COLOR") != "" {
		return false
	}
	return term.IsTerminal(int(f.Fd()))
}
