package proxy

import (
	"testing"

	assert "github.com/stretchr/testify/require"
	"go.uber.org/zap/zapcore"
)

func TestParseFilter(t *testing.T) {
	// An empty filter has no overrides
	{
		f, err := ParseFilter("")
		assert.NoError(t, err)
		assert.Equal(t, zapcore.InfoLevel, f.levelFor(TargetValidate, zapcore.InfoLevel))
	}

	// A single override applies only to its named target
	{
		f, err := ParseFilter("app::validate=debug")
		assert.NoError(t, err)
		assert.Equal(t, zapcore.DebugLevel, f.levelFor(TargetValidate, zapcore.InfoLevel))
		assert.Equal(t, zapcore.InfoLevel, f.levelFor(TargetSkip, zapcore.InfoLevel))
	}

	// Multiple comma-separated overrides all apply
	{
		f, err := ParseFilter("app::validate=debug,app::skip=warn")
		assert.NoError(t, err)
		assert.Equal(t, zapcore.DebugLevel, f.levelFor(TargetValidate, zapcore.InfoLevel))
		assert.Equal(t, zapcore.WarnLevel, f.levelFor(TargetSkip, zapcore.InfoLevel))
	}

	// A malformed entry is rejected
	{
		_, err := ParseFilter("app::validate")
		assert.Error(t, err)
	}

	// An unknown level name is rejected
	{
		_, err := ParseFilter("app::validate=loud")
		assert.Error(t, err)
	}
}

func TestLogConfigDefaultsLevel(t *testing.T) {
	logger, err := NewLogger(LogConfig{})
	assert.NoError(t, err)
	assert.NotNil(t, logger.Validate)
}
