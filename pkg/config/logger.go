package config

import (
	"fmt"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Logger contains logging configuration, shared by the CLI, harness,
// and executor.
type Logger struct {
	LogEncoding string `yaml:"LogEncoding"`
	LogLevel    string `yaml:"LogLevel"`
	LogPath     string `yaml:"LogPath,omitempty"`
}

// Validate returns an error if Logger configuration is not valid.
func (l Logger) Validate() error {
	if len(l.LogEncoding) > 0 && l.LogEncoding != "console" && l.LogEncoding != "json" {
		return fmt.Errorf("invalid LogEncoding: %s", l.LogEncoding)
	}
	if len(l.LogLevel) > 0 {
		var lvl zapcore.Level
		if err := lvl.Set(l.LogLevel); err != nil {
			return fmt.Errorf("invalid LogLevel: %s", l.LogLevel)
		}
	}
	return nil
}

// Build constructs a *zap.Logger from this configuration.
func (l Logger) Build() (*zap.Logger, error) {
	cfg := zap.NewProductionConfig()
	if l.LogEncoding != "" {
		cfg.Encoding = l.LogEncoding
	} else {
		cfg.Encoding = "console"
	}
	cfg.EncoderConfig = zap.NewDevelopmentEncoderConfig()
	if l.LogLevel != "" {
		var lvl zapcore.Level
		if err := lvl.Set(l.LogLevel); err != nil {
			return nil, err
		}
		cfg.Level = zap.NewAtomicLevelAt(lvl)
	}
	if l.LogPath != "" {
		cfg.OutputPaths = []string{l.LogPath}
	}
	return cfg.Build()
}
