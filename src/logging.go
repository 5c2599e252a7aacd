package main

import (
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
)

// setupLogger opens the configured log file. The terminal belongs to the UI,
// so nothing is ever logged to stdout or stderr once the screen is up.
func setupLogger(cfg config) (*slog.Logger, io.Closer) {
	var level slog.Level
	switch strings.ToLower(strings.TrimSpace(cfg.logLevel)) {
	case "debug":
		level = slog.LevelDebug
	case "warn", "warning":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	default:
		level = slog.LevelInfo
	}

	path := strings.TrimSpace(cfg.logFile)
	if path == "" {
		return discardLogger(), nopCloser{}
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return discardLogger(), nopCloser{}
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return discardLogger(), nopCloser{}
	}
	return slog.New(slog.NewTextHandler(f, &slog.HandlerOptions{Level: level})), f
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

type nopCloser struct{}

func (nopCloser) Close() error { return nil }
