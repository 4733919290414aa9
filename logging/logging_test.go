package logging

import (
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseLogLevel(t *testing.T) {
	tests := []struct {
		name     string
		level    string
		expected slog.Level
	}{
		{
			name:     "debug level",
			level:    "debug",
			expected: slog.LevelDebug,
		},
		{
			name:     "info level",
			level:    "info",
			expected: slog.LevelInfo,
		},
		{
			name:     "warning level",
			level:    "warning",
			expected: slog.LevelWarn,
		},
		{
			name:     "error level",
			level:    "error",
			expected: slog.LevelError,
		},
		{
			name:     "silent level",
			level:    "silent",
			expected: slog.Level(1000),
		},
		{
			name:     "none is silent",
			level:    "none",
			expected: slog.Level(1000),
		},
		{
			name:     "unknown defaults to info",
			level:    "bogus",
			expected: slog.LevelInfo,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, ParseLogLevel(tt.level))
		})
	}
}

func TestLogLevelFlag(t *testing.T) {
	flag := &logLevelFlag{value: "info"}

	assert.False(t, flag.IsSet())
	assert.Equal(t, "info", flag.String())

	require.NoError(t, flag.Set("debug"))
	assert.True(t, flag.IsSet())
	assert.Equal(t, "debug", flag.String())

	err := flag.Set("verbose")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid value")
}
