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
	assert.Equal(t, zapcore.DebugLevel, parseLevel("debug"))
	assert.Equal(t, zapcore.WarnLevel, parseLevel("warn"))
	assert.Equal(t, zapcore.InfoLevel, parseLevel("bogus"))
}

func TestZapWrapper_FieldsAndErrors(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	log := NewZapAdapter(zap.New(core)).WithFields(map[string]interface{}{"taskType": "recommend-procurement"})

	log.Info("Processing job", map[string]interface{}{"productId": "P1"})
	log.WithError(errors.New("boom")).Error("Job failed", map[string]interface{}{"cause": errors.New("timeout")})

	entries := logs.All()
	assert.Len(t, entries, 2)
	assert.Equal(t, "recommend-procurement", entries[0].ContextMap()["taskType"])
	assert.Equal(t, "P1", entries[0].ContextMap()["productId"])
	assert.Equal(t, "boom", entries[1].ContextMap()["error"])
	assert.Equal(t, "timeout", entries[1].ContextMap()["cause"])
}

func TestNew_InitialFields(t *testing.T) {
	l := New(Options{Level: "info", Format: "json", Service: "procurement-workers"})
	assert.NotNil(t, l)
	assert.True(t, l.Core().Enabled(zapcore.InfoLevel))
	assert.False(t, l.Core().Enabled(zapcore.DebugLevel))
}

func TestNoOpLogger(t *testing.T) {
	log := NewNoOpLogger()
	log.Info("ignored", nil)
	assert.NoError(t, log.Sync())
}
