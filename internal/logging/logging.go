// Package logging configures the process-wide zerolog logger.
//
// JSON output is the default; console output is available for local
// development via LOG_FORMAT=console or config.
package logging

import (
	"io"
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog"
)

// Config holds logger options.
type Config struct {
	Level  string // trace, debug, info, warn, error (default info)
	Format string // json or console (default json)
	Output io.Writer
}

// New builds a root logger from cfg. Component loggers are derived with
// logger.With().Str("component", ...).Logger().
func New(cfg Config) zerolog.Logger {
	out := cfg.Output
	if out == nil {
		out = os.Stderr
	}
	if strings.EqualFold(cfg.Format, "console") {
		out = zerolog.ConsoleWriter{Out: out, TimeFormat: time.RFC3339}
	}

	level, err := zerolog.ParseLevel(strings.ToLower(cfg.Level))
	if err != nil || cfg.Level == "" {
		level = zerolog.InfoLevel
	}

	return zerolog.New(out).Level(level).With().Timestamp().Logger()
}
