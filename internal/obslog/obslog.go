// Package obslog constructs the process-wide slog.Logger, switching
// between JSON (the default, for machine-readable mission logs) and a
// human-readable text handler.
package obslog

import (
	"io"
	"log/slog"
	"strings"

	"github.com/pkg/errors"
)

// New builds a slog.Logger writing to w. pretty selects the text
// handler over the default JSON handler; level is one of
// debug/info/warn/error (case-insensitive).
func New(w io.Writer, level string, pretty bool) (*slog.Logger, error) {
	parsed, err := parseLevel(level)
	if err != nil {
		return nil, err
	}

	opts := &slog.HandlerOptions{Level: parsed}
	var handler slog.Handler
	if pretty {
		handler = slog.NewTextHandler(w, opts)
	} else {
		handler = slog.NewJSONHandler(w, opts)
	}
	return slog.New(handler), nil
}

func parseLevel(level string) (slog.Level, error) {
	switch strings.ToLower(level) {
	case "", "info":
		return slog.LevelInfo, nil
	case "debug":
		return slog.LevelDebug, nil
	case "warn":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	default:
		return slog.LevelInfo, errors.Errorf("obslog: unknown log level %q", level)
	}
}
