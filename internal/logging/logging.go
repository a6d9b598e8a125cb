// Package logging constructs the structured, colorized loggers used across ecsctl.
package logging

import (
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/lmittmann/tint"
)

// Level represents a structured log level.
type Level slog.Level

const (
	// LevelDebug represents the debug logging level.
	LevelDebug Level = Level(slog.LevelDebug)
	// LevelInfo represents the informational logging level.
	LevelInfo Level = Level(slog.LevelInfo)
	// LevelWarn represents the warning logging level.
	LevelWarn Level = Level(slog.LevelWarn)
	// LevelError represents the error logging level.
	LevelError Level = Level(slog.LevelError)
)

// EnvLogLevel is the environment variable controlling the default log level.
const EnvLogLevel = "ECSCTL_LOG_LEVEL"

// ParseLevel converts a textual log level into a Level value.
// Unknown values fall back to LevelInfo.
func ParseLevel(value string) Level {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "debug":
		return LevelDebug
	case "warn", "warning":
		return LevelWarn
	case "error":
		return LevelError
	default:
		return LevelInfo
	}
}

// NewLogger constructs a slog.Logger with a tint handler at the given level.
func NewLogger(w io.Writer, level Level) *slog.Logger {
	if w == nil {
		w = os.Stderr
	}

	handler := tint.NewHandler(w, &tint.Options{
		Level: slog.Level(level),
	})

	return slog.New(handler)
}

// Default returns a logger writing to stderr at the level configured
// via ECSCTL_LOG_LEVEL (info when unset).
func Default() *slog.Logger {
	return NewLogger(os.Stderr, ParseLevel(os.Getenv(EnvLogLevel)))
}
