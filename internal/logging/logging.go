// Package logging builds the structured logger used for run diagnostics.
// Logs always go to the diagnostic stream, never to the output sink.
package logging

import (
	"fmt"
	"io"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Config selects the level and encoding of the run logger.
type Config struct {
	Level  string
	Format string
}

// ParseLevel maps a level name to a slog.Level.
func ParseLevel(s string) (slog.Level, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return slog.LevelDebug, nil
	case "info":
		return slog.LevelInfo, nil
	case "", "warn", "warning":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	}
	return 0, fmt.Errorf("invalid log level %q: expected debug, info, warn or error", s)
}

// New returns a logger writing to w and tagged with a fresh run id, which is
// also returned.
func New(cfg Config, w io.Writer) (*slog.Logger, string, error) {
	level, err := ParseLevel(cfg.Level)
	if err != nil {
		return nil, "", err
	}
	opts := &slog.HandlerOptions{
		Level: level,
		ReplaceAttr: func(_ []string, a slog.Attr) slog.Attr {
			if a.Key == slog.TimeKey && a.Value.Kind() == slog.KindTime {
				a.Value = slog.StringValue(a.Value.Time().UTC().Format(time.RFC3339Nano))
			}
			return a
		},
	}
	var h slog.Handler
	switch strings.ToLower(cfg.Format) {
	case "", "text":
		h = slog.NewTextHandler(w, opts)
	case "json":
		h = slog.NewJSONHandler(w, opts)
	default:
		return nil, "", fmt.Errorf("invalid log format %q: expected text or json", cfg.Format)
	}
	runID := uuid.NewString()
	return slog.New(h).With("run_id", runID), runID, nil
}
