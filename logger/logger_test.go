package logger

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestNew_Level(t *testing.T) {
	tests := []struct {
		level string
		want  zapcore.Level
	}{
		{"debug", zapcore.DebugLevel},
		{"info", zapcore.InfoLevel},
		{"warn", zapcore.WarnLevel},
		{"error", zapcore.ErrorLevel},
		{"bogus", zapcore.InfoLevel},
	}

	for _, tt := range tests {
		t.Run(tt.level, func(t *testing.T) {
			l := New(tt.level, "json")
			assert.True(t, l.Core().Enabled(tt.want))
			if tt.want > zapcore.DebugLevel {
				assert.False(t, l.Core().Enabled(tt.want-1))
			}
		})
	}
}

func TestWrapper_Fields(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	log := NewZapAdapter(zap.New(core))

	log.WithFields(map[string]interface{}{"component": "service"}).
		WithError(errors.New("boom")).
		Warn("cache unavailable", map[string]interface{}{"key": "emi:v1:1:2:3"})

	entries := logs.All()
	assert.Len(t, entries, 1)

	ctx := entries[0].ContextMap()
	assert.Equal(t, "cache unavailable", entries[0].Message)
	assert.Equal(t, "service", ctx["component"])
	assert.Equal(t, "boom", ctx["error"])
	assert.Equal(t, "emi:v1:1:2:3", ctx["key"])
}

func TestNoOpLogger(t *testing.T) {
	log := NewNoOpLogger()
	log.Info("ignored", nil)
	log.WithFields(nil).Error("ignored", map[string]interface{}{"k": 1})
}
