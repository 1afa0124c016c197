package logging

import (
	"io"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/lmittmann/tint"
)

// NewConsoleLogger returns a colored, human oriented logger for interactive
// use (the CLI). The level comes from LOG_LEVEL.
func NewConsoleLogger(w io.Writer) *SlogLogger {
	return NewSlogLogger(slog.New(
		tint.NewHandler(w, &tint.Options{
			Level:      LevelFromEnv(),
			TimeFormat: time.Kitchen,
		}),
	))
}

// NewJSONLogger returns a logger writing one JSON object per line, used by
// the server.
func NewJSONLogger(w io.Writer) *SlogLogger {
	return NewSlogLogger(slog.New(
		slog.NewJSONHandler(w, &slog.HandlerOptions{Level: LevelFromEnv()}),
	))
}

// Discard returns a logger that drops everything. Handy in tests.
func Discard() *SlogLogger {
	return NewSlogLogger(slog.New(slog.NewTextHandler(io.Discard, nil)))
}

// LevelFromEnv maps LOG_LEVEL (debug, info, warn, error) to a slog level,
// defaulting to info.
func LevelFromEnv() slog.Level {
	switch strings.ToLower(os.Getenv("LOG_LEVEL")) {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
