// SPDX-License-Identifier: MIT

// Package logging builds the structured logger shared by the CLI and the
// data registry.
package logging

import (
	"io"
	"os"
	"strings"

	"github.com/rs/zerolog"
)

// Config holds logger configuration.
type Config struct {
	Level  string    // trace, debug, info, warn, error, disabled
	Pretty bool      // human-readable console output
	Out    io.Writer // defaults to os.Stderr
}

// ParseLevel maps a level name to zerolog; unknown or empty names give info.
func ParseLevel(name string) zerolog.Level {
	lvl, err := zerolog.ParseLevel(strings.ToLower(strings.TrimSpace(name)))
	if err != nil || lvl == zerolog.NoLevel {
		return zerolog.InfoLevel
	}

	return lvl
}

// New creates a structured logger. Level and output are set on the logger
// itself and no zerolog global is touched, so several loggers may coexist.
func New(cfg Config) zerolog.Logger {
	out := cfg.Out
	if out == nil {
		out = os.Stderr
	}
	if cfg.Pretty {
		out = zerolog.ConsoleWriter{Out: out, TimeFormat: "15:04:05"}
	}

	return zerolog.New(out).
		Level(ParseLevel(cfg.Level)).
		With().
		Timestamp().
		Logger()
}
