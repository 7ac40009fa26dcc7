package log

import (
	"io"
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog"
)

// New builds a zerolog logger with the given level string (debug, info, warn, error)
// writing human-readable lines to stdout.
func New(level string) *zerolog.Logger {
	return NewWithWriter(level, "console", os.Stdout)
}

// NewWithWriter builds a logger writing to out. Format "json" emits raw JSON
// lines; anything else uses the console writer.
func NewWithWriter(level, format string, out io.Writer) *zerolog.Logger {
	zerolog.TimeFieldFormat = time.RFC3339Nano

	lvl := parseLevel(level)
	if format != "json" {
		out = zerolog.ConsoleWriter{
			Out:        out,
			TimeFormat: time.RFC3339,
		}
	}

	logger := zerolog.New(out).Level(lvl).With().Timestamp().Logger()
	return &logger
}

func parseLevel(level string) zerolog.Level {
	switch strings.ToLower(level) {
	case "debug":
		return zerolog.DebugLevel
	case "info":
		return zerolog.InfoLevel
	case "warn", "warning":
		return zerolog.WarnLevel
	case "error":
		return zerolog.ErrorLevel
	default:
		return zerolog.InfoLevel
	}
}
