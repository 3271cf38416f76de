package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/dlclark/regexp2"

	"qlang/pkg/parser"
)

// Config holds the complete qlang configuration
type Config struct {
	Parser ParserConfig `toml:"parser"`
	Output OutputConfig `toml:"output"`
	Log    LogConfig    `toml:"log"`
	Check  CheckConfig  `toml:"check"`
}

// ParserConfig holds parser settings
type ParserConfig struct {
	Dialect        string `toml:"dialect"`         // minimal or extended
	MaxDiagnostics int    `toml:"max_diagnostics"` // per file
}

// OutputConfig holds rendering settings
type OutputConfig struct {
	Color  string `toml:"color"`  // auto, always or never
	Format string `toml:"format"` // tree, json, yaml or source
}

// LogConfig holds logging settings
type LogConfig struct {
	Level string `toml:"level"` // trace, debug, info, warn or error
}

// CheckConfig holds settings for multi-file checks
type CheckConfig struct {
	Workers    int      `toml:"workers"`
	Extensions []string `toml:"extensions"`
	Exclude    []string `toml:"exclude"` // regular expressions matched against slash-separated paths
	Timeout    Duration `toml:"timeout"`
}

// Duration wraps time.Duration for TOML parsing
type Duration struct {
	time.Duration
}

// UnmarshalText parses a duration string
func (d *Duration) UnmarshalText(text []byte) error {
	var err error
	d.Duration, err = time.ParseDuration(string(text))
	return err
}

// MarshalText formats the duration as a string
func (d Duration) MarshalText() ([]byte, error) {
	return []byte(d.Duration.String()), nil
}

// EnvVar names the environment variable pointing at a config file.
const EnvVar = "QLANG_CONFIG"

var (
	ErrInvalidDialect  = errors.New("invalid parser dialect")
	ErrInvalidColor    = errors.New("invalid color mode")
	ErrInvalidFormat   = errors.New("invalid output format")
	ErrInvalidLogLevel = errors.New("invalid log level")
	ErrInvalidWorkers  = errors.New("invalid worker count")
	ErrInvalidExclude  = errors.New("invalid exclude pattern")
)

// Default returns the configuration used when no file is present.
func Default() *Config {
	cfg := &Config{}
	cfg.applyDefaults()
	return cfg
}

// Load loads configuration from a TOML file
func Load(path string) (*Config, error) {
	path = os.ExpandEnv(path)

	if _, err := os.Stat(path); os.IsNotExist(err) {
		return nil, fmt.Errorf("config file not found: %s", path)
	}

	var cfg Config
	md, err := toml.DecodeFile(path, &cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		sort.Strings(keys)
		return nil, fmt.Errorf("unknown config keys in %s: %s", path, strings.Join(keys, ", "))
	}

	cfg.applyDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config %s: %w", path, err)
	}
	return &cfg, nil
}

// DefaultPaths lists the locations LoadDefault searches, in order.
func DefaultPaths() []string {
	paths := []string{"./qlang.toml"}
	if home, err := os.UserHomeDir(); err == nil {
		paths = append(paths, filepath.Join(home, ".config", "qlang", "config.toml"))
	}
	return paths
}

// LoadDefault loads the file named by QLANG_CONFIG, or the first file found
// in DefaultPaths. Without any file it returns Default().
func LoadDefault() (*Config, error) {
	if path := os.Getenv(EnvVar); path != "" {
		return Load(path)
	}
	for _, p := range DefaultPaths() {
		if _, err := os.Stat(p); err == nil {
			return Load(p)
		}
	}
	return Default(), nil
}

// applyDefaults sets default values for missing configuration
func (c *Config) applyDefaults() {
	// Parser
	if c.Parser.Dialect == "" {
		c.Parser.Dialect = parser.Extended.String()
	}
	if c.Parser.MaxDiagnostics == 0 {
		c.Parser.MaxDiagnostics = parser.DefaultMaxDiagnostics
	}

	// Output
	if c.Output.Color == "" {
		c.Output.Color = "auto"
	}
	if c.Output.Format == "" {
		c.Output.Format = "tree"
	}

	// Log
	if c.Log.Level == "" {
		c.Log.Level = "info"
	}

	// Check
	if c.Check.Workers == 0 {
		c.Check.Workers = 4
	}
	if len(c.Check.Extensions) == 0 {
		c.Check.Extensions = []string{".q"}
	}
	if c.Check.Timeout.Duration == 0 {
		c.Check.Timeout.Duration = time.Minute
	}
}

// Validate checks enumerated values and patterns.
func (c *Config) Validate() error {
	if _, err := parser.ParseDialect(c.Parser.Dialect); err != nil {
		return fmt.Errorf("%w: %q", ErrInvalidDialect, c.Parser.Dialect)
	}
	switch c.Output.Color {
	case "auto", "always", "never":
	default:
		return fmt.Errorf("%w: %q (want auto, always or never)", ErrInvalidColor, c.Output.Color)
	}
	switch c.Output.Format {
	case "tree", "json", "yaml", "source":
	default:
		return fmt.Errorf("%w: %q (want tree, json, yaml or source)", ErrInvalidFormat, c.Output.Format)
	}
	switch c.Log.Level {
	case "trace", "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("%w: %q", ErrInvalidLogLevel, c.Log.Level)
	}
	if c.Check.Workers < 1 {
		return fmt.Errorf("%w: %d", ErrInvalidWorkers, c.Check.Workers)
	}
	for _, pattern := range c.Check.Exclude {
		if _, err := regexp2.Compile(pattern, regexp2.None); err != nil {
			return fmt.Errorf("%w %q: %v", ErrInvalidExclude, pattern, err)
		}
	}
	return nil
}

// ParserOptions converts the parser section into parser.Options.
func (c *Config) ParserOptions() parser.Options {
	dialect, err := parser.ParseDialect(c.Parser.Dialect)
	if err != nil {
		dialect = parser.Extended
	}
	return parser.Options{
		Dialect:        dialect,
		MaxDiagnostics: c.Parser.MaxDiagnostics,
	}
}
