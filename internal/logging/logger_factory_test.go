package logging

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/fivetwenty-io/decadog/internal/constants"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseLogLevel(t *testing.T) {
	t.Parallel()

	tests := []struct {
		input    string
		expected LogLevel
		wantErr  bool
	}{
		{"", LogLevelWarn, false},
		{"debug", LogLevelDebug, false},
		{"info", LogLevelInfo, false},
		{"warn", LogLevelWarn, false},
		{"error", LogLevelError, false},
		{"trace", "", true},
		{"DEBUG", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			t.Parallel()

			level, err := ParseLogLevel(tt.input)
			if tt.wantErr {
				require.ErrorIs(t, err, constants.ErrInvalidLogLevel)

				return
			}

			require.NoError(t, err)
			assert.Equal(t, tt.expected, level)
		})
	}
}

func TestParseLogFormat(t *testing.T) {
	t.Parallel()

	format, err := ParseLogFormat("")
	require.NoError(t, err)
	assert.Equal(t, LogFormatConsole, format)

	format, err = ParseLogFormat("structured")
	require.NoError(t, err)
	assert.Equal(t, LogFormatStructured, format)

	_, err = ParseLogFormat("xml")
	require.ErrorIs(t, err, constants.ErrInvalidLogFormat)
}

func TestCreateLogger(t *testing.T) {
	t.Parallel()

	t.Run("rejects unsupported values", func(t *testing.T) {
		t.Parallel()

		factory := NewLoggerFactory()

		_, err := factory.CreateLogger("verbose", LogFormatConsole)
		require.ErrorIs(t, err, constants.ErrInvalidLogLevel)

		_, err = factory.CreateLogger(LogLevelInfo, "xml")
		require.ErrorIs(t, err, constants.ErrInvalidLogFormat)
	})

	t.Run("structured output honors level", func(t *testing.T) {
		t.Parallel()

		path := filepath.Join(t.TempDir(), "decadog.log")
		factory := &LoggerFactory{outputPaths: []string{path}}

		logger, err := factory.CreateLogger(LogLevelWarn, LogFormatStructured)
		require.NoError(t, err)

		logger.Info("dropped")
		logger.Warn("kept")
		_ = logger.Sync()

		data, err := os.ReadFile(path)
		require.NoError(t, err)

		var entry map[string]any
		require.NoError(t, json.Unmarshal(data, &entry))
		assert.Equal(t, "kept", entry["msg"])
		assert.Equal(t, "warn", entry["level"])
	})
}
