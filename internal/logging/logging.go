// Package logging provides the structured logger used by the tagging
// pipeline and batch runs. Logs are JSON-formatted via log/slog so that
// per-document processing can be analyzed after the fact.
package logging

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
)

// Log levels accepted in configuration
const (
	LevelDebug = "DEBUG"
	LevelInfo  = "INFO"
	LevelWarn  = "WARN"
	LevelError = "ERROR"
)

// New creates a JSON logger at the given level. When file is empty, logs go
// to stderr; otherwise they append to the named file. The returned closer is
// a no-op for stderr loggers.
func New(level, file string) (*slog.Logger, func() error, error) {
	var writer io.Writer = os.Stderr
	closer := func() error { return nil }

	if file != "" {
		f, err := os.OpenFile(file, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0644)
		if err != nil {
			return nil, nil, fmt.Errorf("open log file: %w", err)
		}
		writer = f
		closer = f.Close
	}

	handler := slog.NewJSONHandler(writer, &slog.HandlerOptions{
		Level: parseLevel(level),
	})

	return slog.New(handler), closer, nil
}

// Discard returns a logger that drops everything (used in tests and when
// callers pass no logger)
func Discard() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func parseLevel(level string) slog.Level {
	switch strings.ToUpper(level) {
	case LevelDebug:
		return slog.LevelDebug
	case LevelWarn:
		return slog.LevelWarn
	case LevelError:
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
