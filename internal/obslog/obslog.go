// Package obslog builds the structured logger that the logging components
// (the orchestrator and the timing planner) receive by pointer. Grounded in dm-vev-qdt's internal/logging package, which
// builds exactly this handler-selection-by-string shape; adapted here to
// write to stderr, since stdout is reserved for scan output formatters.
package obslog

import (
	"fmt"
	"log/slog"
	"os"
	"strings"
)

// New builds a logger at the given level, writing to stderr as either
// human-readable text or newline-delimited JSON.
func New(level string, jsonOutput bool) (*slog.Logger, error) {
	lvl, err := parseLevel(level)
	if err != nil {
		return nil, err
	}

	opts := &slog.HandlerOptions{Level: lvl}
	var handler slog.Handler
	if jsonOutput {
		handler = slog.NewJSONHandler(os.Stderr, opts)
	} else {
		handler = slog.NewTextHandler(os.Stderr, opts)
	}
	return slog.New(handler), nil
}

func parseLevel(level string) (slog.Level, error) {
	switch strings.ToLower(level) {
	case "debug":
		return slog.LevelDebug, nil
	case "info", "":
		return slog.LevelInfo, nil
	case "warn", "warning":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	default:
		return slog.LevelInfo, fmt.Errorf("unknown log level: %s", level)
	}
}
