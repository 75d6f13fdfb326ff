// Package logging builds the zap logger shared by the codebundle commands.
package logging

import (
	"fmt"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Options configures New.
type Options struct {
	Debug      bool   // Development encoder at debug level.
	Level      string // Minimum level when Debug is false; defaults to "warn".
	AppName    string
	AppVersion string
}

// New returns a logger writing to stderr. The caller owns it and should Sync it.
func New(opts Options) (*zap.Logger, error) {
	var cfg zap.Config
	if opts.Debug {
		cfg = zap.NewDevelopmentConfig()
	} else {
		cfg = zap.NewProductionConfig()
		level := opts.Level
		if level == "" {
			level = "warn"
		}
		lvl, err := zapcore.ParseLevel(level)
		if err != nil {
			return zap.NewNop(), fmt.Errorf("invalid log level %q: %w", level, err)
		}
		cfg.Level = zap.NewAtomicLevelAt(lvl)
	}

	cfg.OutputPaths = []string{"stderr"}
	cfg.ErrorOutputPaths = []string{"stderr"}
	cfg.InitialFields = map[string]interface{}{
		"appName":    opts.AppName,
		"appVersion": opts.AppVersion,
	}

	logger, err := cfg.Build()
	if err != nil {
		return zap.NewNop(), err
	}
	return logger, nil
}
