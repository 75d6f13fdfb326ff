package logging

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestNew_DefaultLevelIsWarn(t *testing.T) {
	logger, err := New(Options{AppName: "codebundle", AppVersion: "test"})
	require.NoError(t, err)
	assert.False(t, logger.Core().Enabled(zap.InfoLevel))
	assert.True(t, logger.Core().Enabled(zap.WarnLevel))
}

func TestNew_DebugEnablesEverything(t *testing.T) {
	logger, err := New(Options{Debug: true, Level: "error"})
	require.NoError(t, err)
	assert.True(t, logger.Core().Enabled(zap.DebugLevel))
}

func TestNew_InvalidLevel(t *testing.T) {
	logger, err := New(Options{Level: "loud"})
	assert.Error(t, err)
	assert.NotNil(t, logger)
}
