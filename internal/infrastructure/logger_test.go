package infrastructure

import (
	"context"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"penguincli/internal/config"
)

func TestNewLogger_Stderr(t *testing.T) {
	logger, closer, err := NewLogger(config.LoggingConfig{
		Level:  "info",
		Format: "text",
		Output: "stderr",
	})
	require.NoError(t, err)
	require.NotNil(t, logger)
	assert.Nil(t, closer)
}

func TestNewLogger_File(t *testing.T) {
	logPath := filepath.Join(t.TempDir(), "logs", "run.log")

	logger, closer, err := NewLogger(config.LoggingConfig{
		Level:    "debug",
		Format:   "json",
		Output:   "file",
		FilePath: logPath,
	})
	require.NoError(t, err)
	require.NotNil(t, closer)
	defer closer.Close()

	logger.Info("hello", slog.String("key", "value"))

	data, err := os.ReadFile(logPath)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"msg":"hello"`)
	assert.Contains(t, string(data), `"key":"value"`)
}

func TestNewLogger_RunIDInjection(t *testing.T) {
	logPath := filepath.Join(t.TempDir(), "run.log")

	logger, closer, err := NewLogger(config.LoggingConfig{
		Level:    "info",
		Format:   "json",
		Output:   "file",
		FilePath: logPath,
	})
	require.NoError(t, err)
	defer closer.Close()

	ctx := WithRunID(context.Background(), "run-1234")
	logger.InfoContext(ctx, "tagged message")

	data, err := os.ReadFile(logPath)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"run_id":"run-1234"`)
}

func TestParseLogLevel(t *testing.T) {
	tests := []struct {
		input    string
		expected slog.Level
	}{
		{"debug", slog.LevelDebug},
		{"info", slog.LevelInfo},
		{"warn", slog.LevelWarn},
		{"warning", slog.LevelWarn},
		{"error", slog.LevelError},
		{"ERROR", slog.LevelError},
		{"unknown", slog.LevelInfo},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			assert.Equal(t, tt.expected, parseLogLevel(tt.input))
		})
	}
}

func TestRunIDContext(t *testing.T) {
	ctx := context.Background()
	assert.Empty(t, GetRunID(ctx))

	ctx = ContextWithRunID(ctx)
	id := GetRunID(ctx)
	require.NotEmpty(t, id)
	// UUID v4 string form
	assert.Len(t, strings.Split(id, "-"), 5)

	ctx = WithRunID(ctx, "override")
	assert.Equal(t, "override", GetRunID(ctx))
}

func TestGenerateRunID_Unique(t *testing.T) {
	assert.NotEqual(t, GenerateRunID(), GenerateRunID())
}
