package logger

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

func TestParseLevel(t *testing.T) {
	tests := []struct {
		name     string
		expected zapcore.Level
	}{
		{name: "debug", expected: zapcore.DebugLevel},
		{name: "info", expected: zapcore.InfoLevel},
		{name: "warn", expected: zapcore.WarnLevel},
		{name: "warning", expected: zapcore.WarnLevel},
		{name: "ERROR", expected: zapcore.ErrorLevel},
		{name: "", expected: zapcore.InfoLevel},
		{name: "chatty", expected: zapcore.InfoLevel},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, ParseLevel(tt.name))
		})
	}
}

func TestNewWithWriter(t *testing.T) {
	var buf bytes.Buffer
	log := NewWithWriter("info", &buf)

	log.Debug("hidden")
	log.Info("request completed", zap.String("method", "GET"), zap.Int("status", 200))
	require.NoError(t, log.Sync())

	lines := bytes.Split(bytes.TrimSpace(buf.Bytes()), []byte("\n"))
	require.Len(t, lines, 1)

	var entry map[string]any
	require.NoError(t, json.Unmarshal(lines[0], &entry))

	assert.Equal(t, "info", entry["level"])
	assert.Equal(t, "request completed", entry["msg"])
	assert.Equal(t, "GET", entry["method"])
	assert.Equal(t, float64(200), entry["status"])
	assert.Contains(t, entry, "ts")
	assert.Contains(t, entry, "caller")
}
