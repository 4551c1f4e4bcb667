package logger

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap/zapcore"

	"github.com/mager/tracklens/config"
)

func TestProvideLoggerLevel(t *testing.T) {
	log := ProvideLogger(config.Config{LogLevel: "warn"})
	assert.False(t, log.Desugar().Core().Enabled(zapcore.InfoLevel))
	assert.True(t, log.Desugar().Core().Enabled(zapcore.WarnLevel))
}

func TestNewTestLogger(t *testing.T) {
	log, recorded := NewTestLogger()
	log.Infow("dataset ready", "rows", 3)

	entries := recorded.FilterMessage("dataset ready").All()
	if assert.Len(t, entries, 1) {
		assert.Equal(t, int64(3), entries[0].ContextMap()["rows"])
	}
}
