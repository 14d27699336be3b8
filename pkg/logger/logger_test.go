package logger

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zapcore"
)

func TestNewHonoursLogLevel(t *testing.T) {
	t.Setenv("LOG_LEVEL", "debug")

	l, err := New()
	require.NoError(t, err)
	assert.True(t, l.Core().Enabled(zapcore.DebugLevel))
}

func TestNewRejectsUnknownLevel(t *testing.T) {
	t.Setenv("LOG_LEVEL", "chatty")

	_, err := New()
	assert.Error(t, err)
}

func TestNamedNilBase(t *testing.T) {
	l := Named(nil, "svc.test")
	require.NotNil(t, l)
	l.Info("discarded")
}
