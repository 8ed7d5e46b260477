package logger

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

func TestZapLoggerWritesSortedFields(t *testing.T) {
	core, logs := observer.New(zap.DebugLevel)
	log := New(zap.New(core))

	log.Info("generated", map[string]interface{}{"length": 12, "classes": "lowercase"})
	log.Error("persist failed", errors.New("disk full"), nil)

	entries := logs.All()
	require.Len(t, entries, 2)
	assert.Equal(t, "generated", entries[0].Message)
	require.Len(t, entries[0].Context, 2)
	assert.Equal(t, "classes", entries[0].Context[0].Key)
	assert.Equal(t, "length", entries[0].Context[1].Key)
	assert.Equal(t, "error", entries[1].Context[0].Key)
}

func TestNewZapQuietByDefault(t *testing.T) {
	log := NewZap(false)
	assert.False(t, log.z.Core().Enabled(zap.ErrorLevel))
}
