// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package logging builds the logrus logger that the CLI injects into every
// pipeline component. Nothing in the pipeline touches the global logger.
package logging

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/sirupsen/logrus"
)

// Config selects the level and output format of the logger.
type Config struct {
	// Level is a logrus level name (debug, info, warn, error). Default warn.
	Level string `json:"level" yaml:"level"`

	// Format is "text" or "json". Default text.
	Format string `json:"format" yaml:"format"`
}

// New returns a logger writing to w (stderr when nil) at the configured level.
func New(cfg Config, w io.Writer) (*logrus.Logger, error) {
	if w == nil {
		w = os.Stderr
	}

	logger := logrus.New()
	logger.SetOutput(w)

	level := logrus.WarnLevel
	if cfg.Level != "" {
		parsed, err := logrus.ParseLevel(cfg.Level)
		if err != nil {
			return nil, fmt.Errorf("parsing log level %q: %w", cfg.Level, err)
		}
		level = parsed
	}
	logger.SetLevel(level)

	switch strings.ToLower(cfg.Format) {
	case "", "text":
		logger.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	case "json":
		logger.SetFormatter(&logrus.JSONFormatter{})
	default:
		return nil, fmt.Errorf("unknown log format %q (want text or json)", cfg.Format)
	}

	return logger, nil
}

// Discard returns a logger that drops everything. Tests and library callers
// that do not care about logs use it as the default.
func Discard() *logrus.Logger {
	logger := logrus.New()
	logger.SetOutput(io.Discard)
	return logger
}
