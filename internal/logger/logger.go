// ABOUTME: Structured logger construction for tracegc tools
// ABOUTME: Builds slog loggers from level, format and output settings

package logger

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
)

// Config holds logger configuration.
type Config struct {
	Level  string // DEBUG, INFO, WARN, ERROR
	Format string // text, json
	Output string // stdout, stderr, or file path
}

// ParseLevel converts a case-insensitive level name to a slog.Level.
func ParseLevel(level string) (slog.Level, error) {
	switch strings.ToUpper(level) {
	case "DEBUG":
		return slog.LevelDebug, nil
	case "INFO", "":
		return slog.LevelInfo, nil
	case "WARN":
		return slog.LevelWarn, nil
	case "ERROR":
		return slog.LevelError, nil
	default:
		return slog.LevelInfo, fmt.Errorf("unknown log level %q", level)
	}
}

// New builds a logger from cfg. The returned close function releases the
// output file when Output names one and is a no-op otherwise.
func New(cfg Config) (*slog.Logger, func() error, error) {
	noop := func() error { return nil }

	var w io.Writer
	closer := noop
	switch strings.ToLower(cfg.Output) {
	case "stdout", "":
		w = os.Stdout
	case "stderr":
		w = os.Stderr
	default:
		f, err := os.OpenFile(cfg.Output, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
		if err != nil {
			return nil, noop, fmt.Errorf("failed to open log file %q: %w", cfg.Output, err)
		}
		w = f
		closer = f.Close
	}

	l, err := NewWithWriter(w, cfg.Level, cfg.Format)
	if err != nil {
		_ = closer()
		return nil, noop, err
	}
	return l, closer, nil
}

// NewWithWriter builds a logger writing to w. This is primarily useful
// for testing.
func NewWithWriter(w io.Writer, level, format string) (*slog.Logger, error) {
	lvl, err := ParseLevel(level)
	if err != nil {
		return nil, err
	}
	opts := &slog.HandlerOptions{Level: lvl}

	switch strings.ToLower(format) {
	case "text", "":
		return slog.New(slog.NewTextHandler(w, opts)), nil
	case "json":
		return slog.New(slog.NewJSONHandler(w, opts)), nil
	default:
		return nil, fmt.Errorf("unknown log format %q", format)
	}
}
