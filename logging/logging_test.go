package logging

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
)

func TestNewLogger(t *testing.T) {
	info := NewLogger("test", false)
	assert.False(t, info.Desugar().Core().Enabled(zap.DebugLevel))
	assert.True(t, info.Desugar().Core().Enabled(zap.InfoLevel))

	debug := NewLogger("test", true)
	assert.True(t, debug.Desugar().Core().Enabled(zap.DebugLevel))
}

func TestObservedLogger(t *testing.T) {
	logger, logs := NewObservedTestLogger(t)
	logger.Infow("trained", "accuracy", 0.5)
	entries := logs.FilterMessage("trained").All()
	if assert.Len(t, entries, 1) {
		assert.Equal(t, 0.5, entries[0].ContextMap()["accuracy"])
	}
}
