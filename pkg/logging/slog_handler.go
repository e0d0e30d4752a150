// Package logging wires up the process-wide slog.Logger used by
// cmd/hierconfig and pkg/daemon.
package logging

import (
	"log/slog"
	"os"
)

// NewLogger builds a slog.Logger for the given output format ("text" or
// "json") and minimum level name ("debug", "info", "warn", "error").
func NewLogger(format, level string) *slog.Logger {
	opts := &slog.HandlerOptions{Level: parseLevel(level)}

	var handler slog.Handler
	if format == "json" {
		handler = slog.NewJSONHandler(os.Stderr, opts)
	} else {
		handler = slog.NewTextHandler(os.Stderr, opts)
	}
	return slog.New(handler)
}

func parseLevel(level string) slog.Level {
	switch level {
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
