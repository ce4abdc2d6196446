package logging

import (
	"encoding/json"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mmcdole/steamrun/internal/config"
)

func TestParseLogLevel(t *testing.T) {
	tests := map[string]slog.Level{
		"debug":   slog.LevelDebug,
		"INFO":    slog.LevelInfo,
		"Warning": slog.LevelWarn,
		"WARN":    slog.LevelWarn,
		"error":   slog.LevelError,
		"":        slog.LevelInfo,
		"verbose": slog.LevelInfo,
	}
	for in, want := range tests {
		assert.Equal(t, want, parseLogLevel(in), in)
	}
}

func TestSetupLogger_WritesJSON(t *testing.T) {
	path := filepath.Join(t.TempDir(), "logs", "steamrun.log")
	logger, closer, err := SetupLogger(&config.LoggingConfig{File: path, Level: "WARN"})
	require.NoError(t, err)

	logger.Info("dropped")
	logger.Warn("kept", "appID", 440)
	require.NoError(t, closer.Close())

	data, err := os.ReadFile(path)
	require.NoError(t, err)

	var entry map[string]any
	require.NoError(t, json.Unmarshal(data, &entry), "exactly one JSON line")
	assert.Equal(t, "kept", entry["msg"])
	assert.Equal(t, float64(440), entry["appID"])
	assert.Equal(t, float64(os.Getpid()), entry["pid"])
}

func TestSetupLogger_NoFileDisablesLogging(t *testing.T) {
	logger, closer, err := SetupLogger(&config.LoggingConfig{Level: "DEBUG"})
	require.NoError(t, err)
	assert.False(t, logger.Enabled(t.Context(), slog.LevelError))
	assert.NoError(t, closer.Close())
}

func TestSetupLogger_ExpandsHome(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)

	_, closer, err := SetupLogger(&config.LoggingConfig{File: "~/logs/steamrun.log"})
	require.NoError(t, err)
	require.NoError(t, closer.Close())
	assert.FileExists(t, filepath.Join(home, "logs", "steamrun.log"))
}

func TestSetupLogger_Unwritable(t *testing.T) {
	dir := t.TempDir()
	blocker := filepath.Join(dir, "file")
	require.NoError(t, os.WriteFile(blocker, nil, 0o644))

	_, _, err := SetupLogger(&config.LoggingConfig{File: filepath.Join(blocker, "x.log")})
	assert.Error(t, err)
}
