package cliconfig

import (
	"io"
	"time"

	"github.com/rs/zerolog"
)

// Logger builds the zerolog logger selected by LogLevel and LogFormat.
// Call Validate first; an unknown level falls back to info.
func (c *Config) Logger(w io.Writer) zerolog.Logger {
	level, err := zerolog.ParseLevel(c.LogLevel)
	if err != nil {
		level = zerolog.InfoLevel
	}
	if c.LogFormat == FormatConsole {
		w = zerolog.ConsoleWriter{Out: w, TimeFormat: time.RFC3339}
	}
	return zerolog.New(w).Level(level).With().Timestamp().Logger()
}
