package logger

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newBufferLogger(t *testing.T, level, format string) (*Logger, *bytes.Buffer) {
	t.Helper()

	output := &bytes.Buffer{}
	logger, err := New(&Config{
		Level:      level,
		Format:     format,
		TimeFormat: time.RFC3339,
		writer:     output,
	})
	require.NoError(t, err)

	return logger, output
}

func TestNew(t *testing.T) {
	t.Run("json entries carry level, message and attributes", func(t *testing.T) {
		logger, output := newBufferLogger(t, "debug", "json")

		logger.Debug("document decision stored", slog.String("document_id", "doc-1"))

		var entry map[string]interface{}
		require.NoError(t, json.Unmarshal(output.Bytes(), &entry))
		assert.Equal(t, "DEBUG", entry["level"])
		assert.Equal(t, "document decision stored", entry["msg"])
		assert.Equal(t, "doc-1", entry["document_id"])
		assert.Contains(t, entry, "time")
	})

	t.Run("entries below the configured level are dropped", func(t *testing.T) {
		logger, output := newBufferLogger(t, "warn", "json")

		logger.Debug("debug line")
		logger.Info("info line")
		logger.Warn("publish retry exhausted")

		lines := strings.Split(strings.TrimSpace(output.String()), "\n")
		require.Len(t, lines, 1)
		assert.Contains(t, lines[0], "publish retry exhausted")
	})

	t.Run("console format renders through tint", func(t *testing.T) {
		logger, output := newBufferLogger(t, "info", "console")

		logger.Info("worker promoted")

		// tint abbreviates the level to INF
		assert.Contains(t, output.String(), "INF")
		assert.Contains(t, output.String(), "worker promoted")
	})

	t.Run("unknown format falls back to json", func(t *testing.T) {
		logger, output := newBufferLogger(t, "info", "logfmt")

		logger.Info("fallback")

		var entry map[string]interface{}
		require.NoError(t, json.Unmarshal(output.Bytes(), &entry))
		assert.Equal(t, "fallback", entry["msg"])
	})

	t.Run("source location is attached when enabled", func(t *testing.T) {
		output := &bytes.Buffer{}
		logger, err := New(&Config{
			Level:        "info",
			Format:       "json",
			EnableSource: true,
			writer:       output,
		})
		require.NoError(t, err)

		logger.Info("with source")

		var entry map[string]interface{}
		require.NoError(t, json.Unmarshal(output.Bytes(), &entry))
		require.Contains(t, entry, "source")
		source := entry["source"].(map[string]interface{})
		assert.Contains(t, source, "file")
		assert.Contains(t, source, "line")
	})
}

func TestParseLevel(t *testing.T) {
	tests := []struct {
		level    string
		expected slog.Level
	}{
		{level: "debug", expected: slog.LevelDebug},
		{level: "info", expected: slog.LevelInfo},
		{level: "warn", expected: slog.LevelWarn},
		{level: "warning", expected: slog.LevelWarn},
		{level: "error", expected: slog.LevelError},
		// case-sensitive on purpose; config files use lowercase
		{level: "DEBUG", expected: slog.LevelInfo},
		{level: "", expected: slog.LevelInfo},
		{level: "invalid", expected: slog.LevelInfo},
	}

	for _, tt := range tests {
		t.Run("level "+tt.level, func(t *testing.T) {
			assert.Equal(t, tt.expected, parseLevel(tt.level))
		})
	}
}
