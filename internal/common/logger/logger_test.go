package logger

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestParseLevel(t *testing.T) {
	tests := []struct {
		in   string
		want zapcore.Level
	}{
		{"debug", zapcore.DebugLevel},
		{"info", zapcore.InfoLevel},
		{"warn", zapcore.WarnLevel},
		{"warning", zapcore.WarnLevel},
		{"error", zapcore.ErrorLevel},
		{"", zapcore.InfoLevel},
		{"verbose", zapcore.InfoLevel},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, ParseLevel(tt.in))
		})
	}
}

func TestNew_AppliesLevel(t *testing.T) {
	l := New(Options{Level: "warn", Format: "json", Output: "stderr"})
	defer l.Sync()

	assert.False(t, l.Core().Enabled(zapcore.InfoLevel))
	assert.True(t, l.Core().Enabled(zapcore.WarnLevel))
}

func TestNew_BadOutputFallsBackToNop(t *testing.T) {
	l := New(Options{Output: "/nonexistent-dir/skill.log"})

	assert.False(t, l.Core().Enabled(zapcore.ErrorLevel))
}

func TestZapAdapter_FieldsAndWith(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	log := NewZapAdapter(zap.New(core)).With(map[string]interface{}{"requestId": "req-1"})

	log.Warn("catalog call failed", map[string]interface{}{
		"operation": "search_artists",
		"error":     errors.New("status 503"),
		"skipped":   nil,
	})

	entries := logs.All()
	if assert.Len(t, entries, 1) {
		fields := entries[0].ContextMap()
		assert.Equal(t, "req-1", fields["requestId"])
		assert.Equal(t, "search_artists", fields["operation"])
		assert.Equal(t, "status 503", fields["error"])
		assert.NotContains(t, fields, "skipped")
		assert.Equal(t, zapcore.WarnLevel, entries[0].Level)
	}
}

func TestZapAdapter_WithEmptyFieldsReturnsSameLogger(t *testing.T) {
	log := NewNoOpLogger()

	assert.Same(t, log, log.With(nil))
	assert.NotPanics(t, func() { NewZapAdapter(nil).Info("ok", nil) })
}
