package textgen

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewFromSettings(t *testing.T) {
	tests := []struct {
		name     string
		typ      string
		settings map[string]any
		wantErr  bool
		wantName string
	}{
		{
			name:     "openai",
			typ:      "openai",
			settings: map[string]any{"api_key": "sk-test"},
			wantName: "openai",
		},
		{
			name:     "openai missing key",
			typ:      "openai",
			settings: map[string]any{},
			wantErr:  true,
		},
		{
			name:     "ollama with defaults",
			typ:      "ollama",
			settings: nil,
			wantName: "ollama",
		},
		{
			name:     "ollama invalid host",
			typ:      "ollama",
			settings: map[string]any{"host": "not a url"},
			wantErr:  true,
		},
		{
			name:    "unknown type",
			typ:     "gemini",
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g, err := NewFromSettings(tt.typ, tt.settings)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantName, g.Name())
		})
	}
}

func TestNewFromSettings_OllamaDefaults(t *testing.T) {
	g, err := NewFromSettings("ollama", map[string]any{})
	require.NoError(t, err)

	o, ok := g.(*Ollama)
	require.True(t, ok)
	assert.Equal(t, "http://localhost:11434", o.baseURL)
	assert.Equal(t, "llama3.2", o.model)
}
