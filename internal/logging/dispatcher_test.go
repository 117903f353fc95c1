package logging

import (
	"bytes"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gzreplay/gzr/internal/dispatcher"
	"github.com/gzreplay/gzr/pkg/core"
)

var _ dispatcher.Logger = (*DispatcherLogger)(nil)

func decodeEntry(t *testing.T, buf *bytes.Buffer) map[string]any {
	t.Helper()
	var logEntry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &logEntry), "failed to parse log output")
	return logEntry
}

func TestNewDispatcherLogger(t *testing.T) {
	dl := NewDispatcherLogger(zerolog.Nop())
	require.NotNil(t, dl)
}

func TestDispatcherLogger_Levels(t *testing.T) {
	tests := []struct {
		name  string
		log   func(dl *DispatcherLogger)
		level string
		msg   string
		check func(t *testing.T, e map[string]any)
	}{
		{
			name:  "debug",
			log:   func(dl *DispatcherLogger) { dl.Debug("test message", "key1", "value1", "key2", 42) },
			level: "debug",
			msg:   "test message",
			check: func(t *testing.T, e map[string]any) {
				assert.Equal(t, "value1", e["key1"])
				assert.Equal(t, float64(42), e["key2"]) // JSON numbers are float64
			},
		},
		{
			name:  "info",
			log:   func(dl *DispatcherLogger) { dl.Info("info message", "status", "ok") },
			level: "info",
			msg:   "info message",
			check: func(t *testing.T, e map[string]any) {
				assert.Equal(t, "ok", e["status"])
			},
		},
		{
			name:  "warn",
			log:   func(dl *DispatcherLogger) { dl.Warn("payload decode failed", "opcode", "BASICINFO", "offset", 9) },
			level: "warn",
			msg:   "payload decode failed",
			check: func(t *testing.T, e map[string]any) {
				assert.Equal(t, "BASICINFO", e["opcode"])
				assert.Equal(t, float64(9), e["offset"])
			},
		},
		{
			name:  "error",
			log:   func(dl *DispatcherLogger) { dl.Error("error occurred", "code", 500, "reason", "internal") },
			level: "error",
			msg:   "error occurred",
			check: func(t *testing.T, e map[string]any) {
				assert.Equal(t, float64(500), e["code"])
				assert.Equal(t, "internal", e["reason"])
			},
		},
		{
			name:  "odd key-values drop the dangling key",
			log:   func(dl *DispatcherLogger) { dl.Info("odd", "a", 1, "b") },
			level: "info",
			msg:   "odd",
			check: func(t *testing.T, e map[string]any) {
				assert.Equal(t, float64(1), e["a"])
				assert.NotContains(t, e, "b")
			},
		},
		{
			name:  "non-string keys are skipped",
			log:   func(dl *DispatcherLogger) { dl.Info("keys", 7, "x", "y", "z") },
			level: "info",
			msg:   "keys",
			check: func(t *testing.T, e map[string]any) {
				assert.Equal(t, "z", e["y"])
			},
		},
		{
			name: "typed values",
			log: func(dl *DispatcherLogger) {
				dl.Error("decode failed", "opcode", core.OpBasicInfo, "duration", 2*time.Millisecond, "error", errors.New("short read"))
			},
			level: "error",
			msg:   "decode failed",
			check: func(t *testing.T, e map[string]any) {
				assert.Equal(t, core.OpBasicInfo.String(), e["opcode"])
				assert.Equal(t, "short read", e["error"])
				assert.Equal(t, float64(2), e["duration"])
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			dl := NewDispatcherLogger(zerolog.New(&buf).Level(zerolog.TraceLevel))

			tt.log(dl)

			e := decodeEntry(t, &buf)
			assert.Equal(t, tt.level, e["level"])
			assert.Equal(t, tt.msg, e["message"])
			assert.Equal(t, "dispatcher", e["component"])
			tt.check(t, e)
		})
	}
}
