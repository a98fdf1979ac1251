package logging

import (
	"testing"

	"github.com/charmbracelet/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetLogger_InitializesOnFirstUse(t *testing.T) {
	logger := GetLogger()
	require.NotNil(t, logger)

	assert.Same(t, logger, GetLogger(), "repeated calls return the same logger")
}

func TestSetLevel(t *testing.T) {
	tests := []struct {
		name  string
		level string
		want  log.Level
	}{
		{name: "debug", level: "debug", want: log.DebugLevel},
		{name: "warn", level: "warn", want: log.WarnLevel},
		{name: "warning alias", level: "warning", want: log.WarnLevel},
		{name: "error", level: "error", want: log.ErrorLevel},
		{name: "mixed case with whitespace", level: "  DEBUG ", want: log.DebugLevel},
		{name: "unknown falls back to info", level: "loud", want: log.InfoLevel},
		{name: "empty falls back to info", level: "", want: log.InfoLevel},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			SetLevel(tt.level)
			assert.Equal(t, tt.want, GetLogger().GetLevel())
		})
	}

	SetLevel("info")
}

func TestWithHelpers(t *testing.T) {
	assert.NotNil(t, WithFields("key", "value"))
	assert.NotNil(t, WithChunkCoords(3, -7))
	assert.NotNil(t, WithWorldSeed(12345))

	// Derived loggers must not replace the process logger.
	assert.NotSame(t, GetLogger(), WithChunkCoords(0, 0))
}
