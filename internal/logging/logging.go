package logging

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
)

// New returns a JSON logger writing to path, or a logger that discards
// everything when path is empty: the terminal belongs to the UI. Each -v
// lowers the threshold one step below level. The returned func closes the
// log file.
func New(path, level string, verbose int) (*slog.Logger, func() error, error) {
	lvl := ParseLevel(level)
	switch {
	case verbose >= 2:
		lvl = slog.LevelDebug
	case verbose == 1 && lvl > slog.LevelInfo:
		lvl = slog.LevelInfo
	}

	if path == "" {
		return Discard(), func() error { return nil }, nil
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return Discard(), func() error { return nil }, fmt.Errorf("open log file: %w", err)
	}
	logger := slog.New(slog.NewJSONHandler(f, &slog.HandlerOptions{Level: lvl}))
	return logger, f.Close, nil
}

func Discard() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// ParseLevel maps debug|info|warn|error to a slog level, defaulting to warn.
func ParseLevel(s string) slog.Level {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return slog.LevelDebug
	case "info":
		return slog.LevelInfo
	case "error":
		return slog.LevelError
	default:
		return slog.LevelWarn
	}
}
