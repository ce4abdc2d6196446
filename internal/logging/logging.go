// Package logging builds the application's slog logger.
//
// Records go to a JSON file, by default steamrun.log under the user's data
// directory. The CLI and the TUI may append to the same file at once, so each
// record carries the writing process's pid.
package logging

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/mmcdole/steamrun/internal/config"
)

// SetupLogger opens the configured log file. With no file configured it returns
// a discarding logger. The closer releases the file.
func SetupLogger(cfg *config.LoggingConfig) (*slog.Logger, io.Closer, error) {
	path := cfg.Path()
	if path == "" {
		return NullLogger(), io.NopCloser(nil), nil
	}

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, nil, fmt.Errorf("failed to create log directory: %w", err)
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0644)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open log file: %w", err)
	}

	handler := slog.NewJSONHandler(f, &slog.HandlerOptions{Level: parseLogLevel(cfg.Level)})
	return slog.New(handler).With("pid", os.Getpid()), f, nil
}

// parseLogLevel maps the config level name, defaulting to INFO.
func parseLogLevel(level string) slog.Level {
	switch strings.ToUpper(strings.TrimSpace(level)) {
	case "DEBUG":
		return slog.LevelDebug
	case "WARN", "WARNING":
		return slog.LevelWarn
	case "ERROR":
		return slog.LevelError
	}
	return slog.LevelInfo
}

// NullLogger discards everything.
func NullLogger() *slog.Logger {
	return slog.New(slog.DiscardHandler)
}
