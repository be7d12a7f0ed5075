package infrastructure

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"indicadores/internal/config"
)

func TestInitializeLogger_File(t *testing.T) {
	ResetLoggerForTesting()
	defer ResetLoggerForTesting()

	logFile := filepath.Join(t.TempDir(), "logs", "test.log")
	logger, err := InitializeLogger(config.LoggingConfig{
		Level:    "info",
		Format:   "json",
		Output:   "file",
		FilePath: logFile,
	})
	require.NoError(t, err)
	require.NotNil(t, logger)

	logger.Info("test message", "key", "value")
	require.NoError(t, CloseLogFile())

	content, err := os.ReadFile(logFile)
	require.NoError(t, err)

	var entry map[string]interface{}
	require.NoError(t, json.Unmarshal(content, &entry))
	assert.Equal(t, "test message", entry["msg"])
	assert.Equal(t, "value", entry["key"])
	assert.Equal(t, "INFO", entry["level"])
}

func TestInitializeLogger_FileOutputNeedsPath(t *testing.T) {
	ResetLoggerForTesting()
	defer ResetLoggerForTesting()

	_, err := InitializeLogger(config.LoggingConfig{Output: "both"})
	assert.Error(t, err)
}

func TestTraceIDInjection(t *testing.T) {
	var buf bytes.Buffer
	logger := NewLogger(config.LoggingConfig{Level: "info", Format: "json"}, &buf)

	ctx := WithTraceID(context.Background(), "trace-123")
	logger.InfoContext(ctx, "with trace")

	var entry map[string]interface{}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "trace-123", entry["trace_id"])

	buf.Reset()
	logger.With(slog.String("component", "x")).InfoContext(ctx, "derived")
	assert.Contains(t, buf.String(), `"trace_id":"trace-123"`)
	assert.Contains(t, buf.String(), `"component":"x"`)
}

func TestLogLevels(t *testing.T) {
	var buf bytes.Buffer
	logger := NewLogger(config.LoggingConfig{Level: "warn", Format: "text"}, &buf)

	logger.Info("hidden")
	logger.Warn("shown")

	out := buf.String()
	assert.NotContains(t, out, "hidden")
	assert.Contains(t, out, "shown")
	assert.False(t, strings.HasPrefix(out, "{"), "text format")
}

func TestParseLogLevel(t *testing.T) {
	assert.Equal(t, slog.LevelDebug, ParseLogLevel("DEBUG"))
	assert.Equal(t, slog.LevelWarn, ParseLogLevel("warning"))
	assert.Equal(t, slog.LevelError, ParseLogLevel("error"))
	assert.Equal(t, slog.LevelInfo, ParseLogLevel("bogus"))
}

func TestEnsureTraceID(t *testing.T) {
	ctx := EnsureTraceID(context.Background())
	id := GetTraceID(ctx)
	assert.Len(t, id, 36)

	assert.Equal(t, id, GetTraceID(EnsureTraceID(ctx)), "existing id is kept")
}
