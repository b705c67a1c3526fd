package config

import (
	"io"
	"strings"

	"github.com/rs/zerolog"
)

// ParseLevel accepts zerolog level names; empty means info.
func ParseLevel(level string) (zerolog.Level, error) {
	if level == "" {
		return zerolog.InfoLevel, nil
	}
	return zerolog.ParseLevel(strings.ToLower(level))
}

// NewLogger builds the application logger described by c, writing to out.
func NewLogger(c LoggingConfig, out io.Writer) zerolog.Logger {
	level, err := ParseLevel(c.Level)
	if err != nil {
		level = zerolog.InfoLevel
	}

	w := out
	if strings.ToLower(c.Format) != "json" {
		w = zerolog.ConsoleWriter{Out: out, NoColor: c.NoColor, TimeFormat: "15:04:05.000"}
	}
	return zerolog.New(w).Level(level).With().Timestamp().Logger()
}
