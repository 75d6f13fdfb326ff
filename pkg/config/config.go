// Package config loads codebundle settings from an optional YAML file and the
// environment.
package config

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"codebundle/pkg/ignore"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// DefaultFile is read from the working directory when no path is given.
const DefaultFile = ".codebundle.yaml"

// ExitMode decides the process status after a failed bundle.
type ExitMode string

const (
	ExitLenient ExitMode = "lenient" // Print the error, exit 0.
	ExitStrict  ExitMode = "strict"  // Print the error, exit non-zero.
)

// BoolInput decides how create-rsp treats a yes/no answer it cannot parse.
type BoolInput string

const (
	BoolLenient BoolInput = "lenient" // Treat it as false.
	BoolStrict  BoolInput = "strict"  // Ask again.
)

// Environment variables that override the file.
const (
	EnvExitMode    = "CODEBUNDLE_EXIT_MODE"
	EnvMarkerMatch = "CODEBUNDLE_MARKER_MATCH"
	EnvBoolInput   = "CODEBUNDLE_BOOL_INPUT"
	EnvLogLevel    = "CODEBUNDLE_LOG_LEVEL"
)

// Config represents codebundle configuration options
type Config struct {
	// ExitMode is "lenient" (exit 0 on bundle errors) or "strict"
	ExitMode ExitMode `yaml:"exit_mode"`

	// MarkerMatch is "substring" or "segment"
	MarkerMatch ignore.MatchMode `yaml:"marker_match"`

	// Markers lists the build-artifact markers kept out of bundles
	Markers []string `yaml:"markers"`

	// Exclude holds extra gitignore-style patterns kept out of bundles
	Exclude []string `yaml:"exclude"`

	// BoolInput is "lenient" or "strict" for create-rsp answers
	BoolInput BoolInput `yaml:"bool_input"`

	// LogLevel sets the logging verbosity (debug, info, warn, error)
	LogLevel string `yaml:"log_level"`
}

// Default returns a Config with the historical behavior.
func Default() *Config {
	return &Config{
		ExitMode:    ExitLenient,
		MarkerMatch: ignore.ModeSubstring,
		Markers:     append([]string(nil), ignore.DefaultMarkers...),
		BoolInput:   BoolLenient,
		LogLevel:    "warn",
	}
}

// Load builds a Config from defaults, then the YAML file at path, then a .env
// file and the process environment. An empty path means DefaultFile, which may
// be absent; an explicit path must exist.
func Load(path string) (*Config, error) {
	cfg := Default()

	explicit := path != ""
	if !explicit {
		path = DefaultFile
	}
	if err := cfg.loadFile(path); err != nil {
		if explicit || !errors.Is(err, os.ErrNotExist) {
			return nil, err
		}
	}

	_ = godotenv.Load()
	cfg.applyEnv()

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) loadFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read config file %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, c); err != nil {
		return fmt.Errorf("failed to parse config file %s: %w", path, err)
	}
	return nil
}

func (c *Config) applyEnv() {
	if v := strings.TrimSpace(os.Getenv(EnvExitMode)); v != "" {
		c.ExitMode = ExitMode(v)
	}
	if v := strings.TrimSpace(os.Getenv(EnvMarkerMatch)); v != "" {
		c.MarkerMatch = ignore.MatchMode(v)
	}
	if v := strings.TrimSpace(os.Getenv(EnvBoolInput)); v != "" {
		c.BoolInput = BoolInput(v)
	}
	if v := strings.TrimSpace(os.Getenv(EnvLogLevel)); v != "" {
		c.LogLevel = v
	}
}

// Validate normalizes and checks every enumerated field.
func (c *Config) Validate() error {
	switch ExitMode(strings.ToLower(string(c.ExitMode))) {
	case "", ExitLenient:
		c.ExitMode = ExitLenient
	case ExitStrict:
		c.ExitMode = ExitStrict
	default:
		return fmt.Errorf("invalid exit_mode %q (want %q or %q)", c.ExitMode, ExitLenient, ExitStrict)
	}

	mode, err := ignore.ParseMatchMode(string(c.MarkerMatch))
	if err != nil {
		return err
	}
	c.MarkerMatch = mode

	switch BoolInput(strings.ToLower(string(c.BoolInput))) {
	case "", BoolLenient:
		c.BoolInput = BoolLenient
	case BoolStrict:
		c.BoolInput = BoolStrict
	default:
		return fmt.Errorf("invalid bool_input %q (want %q or %q)", c.BoolInput, BoolLenient, BoolStrict)
	}

	if c.LogLevel == "" {
		c.LogLevel = "warn"
	}
	return nil
}

// Strict reports whether bundle failures should change the exit status.
func (c *Config) Strict() bool {
	return c.ExitMode == ExitStrict
}

// Exclusions returns the marker and pattern matchers the selector applies.
func (c *Config) Exclusions() (ignore.Markers, *ignore.Patterns) {
	return ignore.NewMarkers(c.MarkerMatch, c.Markers...), ignore.NewPatterns(nil, c.Exclude...)
}
