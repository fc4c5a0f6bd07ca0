package logger

import (
	"io"
	"log/slog"
	"os"
)

// NewTestLogger creates a quiet logger for tests: WARN and above, or DEBUG
// when TEST_DEBUG is set.
func NewTestLogger() *slog.Logger {
	return NewTestLoggerTo(os.Stdout)
}

// NewTestLoggerTo is NewTestLogger writing to w, for tests that assert on log output.
func NewTestLoggerTo(w io.Writer) *slog.Logger {
	level := slog.LevelWarn
	if os.Getenv("TEST_DEBUG") != "" {
		level = slog.LevelDebug
	}
	return NewLogger(Config{Level: level, Format: "text", Output: w})
}
