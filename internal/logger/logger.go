// Package logger builds the process-wide zerolog logger.
package logger

import (
	"io"
	"os"
	"time"

	"github.com/rs/zerolog"
	"github.com/usersdb/usersdb/config"
)

// New returns a logger writing to stderr: human-readable in dev, JSON
// everywhere else.
func New(cfg config.Config) zerolog.Logger {
	var out io.Writer = os.Stderr
	if cfg.Env == "dev" {
		out = zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339}
	}
	return NewWithWriter(out, cfg.LogLevel)
}

// NewWithWriter returns a JSON logger on w at the given level. An empty or
// unknown level means info.
func NewWithWriter(w io.Writer, level string) zerolog.Logger {
	lvl, err := zerolog.ParseLevel(level)
	if err != nil || level == "" {
		lvl = zerolog.InfoLevel
	}
	return zerolog.New(w).
		Level(lvl).
		With().
		Timestamp().
		Str("service", "usersdb").
		Logger()
}
