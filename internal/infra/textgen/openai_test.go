package textgen

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/osa030/moodmix/internal/infra/provider"
)

func newOpenAITestServer(t *testing.T, status int, body string, check func(req map[string]any)) *OpenAI {
	t.Helper()
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v1/chat/completions", r.URL.Path)
		assert.Equal(t, "Bearer test-key", r.Header.Get("Authorization"))

		var req map[string]any
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		if check != nil {
			check(req)
		}

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		fmt.Fprint(w, body)
	}))
	t.Cleanup(server.Close)

	g, err := NewOpenAI(OpenAIConfig{APIKey: "test-key", BaseURL: server.URL + "/v1/"})
	require.NoError(t, err)
	return g
}

func TestOpenAI_Generate(t *testing.T) {
	g := newOpenAITestServer(t, http.StatusOK,
		`{"id": "chatcmpl-1", "object": "chat.completion", "choices": [{"index": 0, "message": {"role": "assistant", "content": "  dreamy synth pop  \n"}, "finish_reason": "stop"}]}`,
		func(req map[string]any) {
			assert.Equal(t, "gpt-3.5-turbo", req["model"])
			assert.EqualValues(t, 100, req["max_tokens"])
			assert.InDelta(t, 0.8, req["temperature"], 0.0001)

			messages := req["messages"].([]any)
			require.Len(t, messages, 2)
			assert.Equal(t, "system", messages[0].(map[string]any)["role"])
			assert.Equal(t, "user", messages[1].(map[string]any)["role"])
			assert.Equal(t, "find songs", messages[1].(map[string]any)["content"])
		})

	out, err := g.Generate(context.Background(), Prompt{
		System:      "You are a music expert.",
		User:        "find songs",
		MaxTokens:   100,
		Temperature: 0.8,
	})
	require.NoError(t, err)
	assert.Equal(t, "dreamy synth pop", out)
	assert.Equal(t, provider.OpenAI, g.Name())
}

func TestOpenAI_Generate_Errors(t *testing.T) {
	tests := []struct {
		name   string
		status int
		body   string
	}{
		{
			name:   "unauthorized",
			status: http.StatusUnauthorized,
			body:   `{"error": {"message": "Incorrect API key provided", "type": "invalid_request_error", "code": "invalid_api_key"}}`,
		},
		{
			name:   "no choices",
			status: http.StatusOK,
			body:   `{"id": "chatcmpl-1", "choices": []}`,
		},
		{
			name:   "blank completion",
			status: http.StatusOK,
			body:   `{"id": "chatcmpl-1", "choices": [{"index": 0, "message": {"role": "assistant", "content": "   "}}]}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g := newOpenAITestServer(t, tt.status, tt.body, nil)
			_, err := g.Generate(context.Background(), Prompt{User: "hello", MaxTokens: 10})
			require.Error(t, err)
			assert.True(t, provider.Is(err, provider.OpenAI))
		})
	}
}

func TestNewOpenAI_RequiresKey(t *testing.T) {
	_, err := NewOpenAI(OpenAIConfig{})
	assert.Error(t, err)
}
