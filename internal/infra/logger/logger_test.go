package logger

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"
	zlog "github.com/rs/zerolog/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseLevel(t *testing.T) {
	tests := []struct {
		input    string
		expected zerolog.Level
	}{
		{input: "debug", expected: zerolog.DebugLevel},
		{input: "DEBUG", expected: zerolog.DebugLevel},
		{input: "", expected: zerolog.InfoLevel},
		{input: "info", expected: zerolog.InfoLevel},
		{input: "warning", expected: zerolog.WarnLevel},
		{input: "warn", expected: zerolog.WarnLevel},
		{input: "error", expected: zerolog.ErrorLevel},
		{input: "verbose", expected: zerolog.InfoLevel},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			assert.Equal(t, tt.expected, parseLevel(tt.input))
		})
	}
}

func TestNewLogger_JSON(t *testing.T) {
	var buf bytes.Buffer
	l := newLogger(&buf, false, zerolog.InfoLevel)
	l.Info().Str("mood", "happy").Msg("generated")

	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "happy", entry["mood"])
	assert.Equal(t, "generated", entry[zerolog.MessageFieldName])
}

func TestInit_FileOutput(t *testing.T) {
	defer func(prev zerolog.Logger, lvl zerolog.Level) {
		zlog.Logger = prev
		zerolog.SetGlobalLevel(lvl)
	}(zlog.Logger, zerolog.GlobalLevel())

	path := filepath.Join(t.TempDir(), "moodmix.log")
	require.NoError(t, Init(Config{Output: path, Level: "warn"}))

	zlog.Info().Msg("dropped")
	zlog.Warn().Msg("kept")

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.NotContains(t, string(data), "dropped")
	assert.Contains(t, string(data), "kept")
}
