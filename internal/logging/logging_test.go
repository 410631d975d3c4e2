package logging

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

func TestNew(t *testing.T) {
	t.Run("default level is info", func(t *testing.T) {
		var buf bytes.Buffer
		logger := New(&buf, false)
		assert.True(t, logger.Core().Enabled(zapcore.InfoLevel))
		assert.False(t, logger.Core().Enabled(zapcore.DebugLevel))

		logger.Debug("hidden")
		assert.Empty(t, buf.String())
	})

	t.Run("verbose enables debug", func(t *testing.T) {
		var buf bytes.Buffer
		logger := New(&buf, true)
		assert.True(t, logger.Core().Enabled(zapcore.DebugLevel))

		logger.Debug("visible", zap.String("url", "https://example.com"))
		assert.Contains(t, buf.String(), "visible")
		assert.Contains(t, buf.String(), "https://example.com")
	})
}
