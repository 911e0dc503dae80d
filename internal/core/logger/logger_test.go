package logger

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zapcore"

	"ai-interview-lab/internal/core/config"
)

func TestNew_WritesRotatedFile(t *testing.T) {
	file := filepath.Join(t.TempDir(), "app.log")
	opt := FromConfig(config.Log{
		Level: "info",
		JSON:  true,
		Rotate: config.Rotate{
			Enable:    true,
			Filename:  file,
			MaxSizeMB: 1,
		},
	})
	assert.False(t, opt.Development)

	l, cleanup := New(opt)
	l.Debug("hidden")
	l.Info("store opened")
	cleanup()

	data, err := os.ReadFile(file)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"msg":"store opened"`)
	assert.Contains(t, string(data), `"ts":`)
	assert.NotContains(t, string(data), "hidden")
}

func TestNew_UnknownLevelFallsBackToInfo(t *testing.T) {
	l, cleanup := New(Options{Level: "loud"})
	defer cleanup()
	assert.True(t, l.Core().Enabled(zapcore.InfoLevel))
	assert.False(t, l.Core().Enabled(zapcore.DebugLevel))
}

func TestToStdLogger(t *testing.T) {
	l, cleanup := New(Options{Level: "error"})
	defer cleanup()
	assert.NotNil(t, ToStdLogger(l, zapcore.ErrorLevel))
}
