package textgen

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"strings"
	"time"

	"github.com/osa030/moodmix/internal/infra/provider"
)

// OllamaConfig represents Ollama generator settings.
type OllamaConfig struct {
	Host  string `yaml:"host" mapstructure:"host" default:"http://localhost:11434" validate:"url"`
	Model string `yaml:"model" mapstructure:"model" default:"llama3.2" validate:"required"`
}

// Ollama generates text with a local Ollama instance.
type Ollama struct {
	baseURL    string
	model      string
	httpClient *http.Client
}

type ollamaMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type ollamaOptions struct {
	Temperature float32 `json:"temperature"`
	NumPredict  int     `json:"num_predict,omitempty"`
}

type ollamaChatRequest struct {
	Model    string          `json:"model"`
	Messages []ollamaMessage `json:"messages"`
	Stream   bool            `json:"stream"`
	Options  ollamaOptions   `json:"options"`
}

type ollamaChatResponse struct {
	Message ollamaMessage `json:"message"`
	Error   string        `json:"error,omitempty"`
}

// NewOllama creates a new Ollama generator.
func NewOllama(cfg OllamaConfig) *Ollama {
	return &Ollama{
		baseURL: strings.TrimRight(cfg.Host, "/"),
		model:   cfg.Model,
		httpClient: &http.Client{
			Timeout: 60 * time.Second,
		},
	}
}

// Generate sends the prompt to /api/chat without streaming.
func (g *Ollama) Generate(ctx context.Context, p Prompt) (string, error) {
	if strings.TrimSpace(p.User) == "" {
		return "", provider.Newf(provider.Ollama, "prompt is required")
	}

	messages := make([]ollamaMessage, 0, 2)
	if p.System != "" {
		messages = append(messages, ollamaMessage{Role: "system", Content: p.System})
	}
	messages = append(messages, ollamaMessage{Role: "user", Content: p.User})

	body, err := json.Marshal(ollamaChatRequest{
		Model:    g.model,
		Messages: messages,
		Stream:   false,
		Options:  ollamaOptions{Temperature: p.Temperature, NumPredict: p.MaxTokens},
	})
	if err != nil {
		return "", provider.Wrap(provider.Ollama, err, "marshal request")
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, g.baseURL+"/api/chat", bytes.NewReader(body))
	if err != nil {
		return "", provider.Wrap(provider.Ollama, err, "build request")
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := g.httpClient.Do(req)
	if err != nil {
		return "", provider.Wrap(provider.Ollama, err, "request failed")
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return "", provider.Newf(provider.Ollama, "unexpected status %d", resp.StatusCode)
	}

	var parsed ollamaChatResponse
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return "", provider.Wrap(provider.Ollama, err, "decode response")
	}
	if parsed.Error != "" {
		return "", provider.Newf(provider.Ollama, "%s", parsed.Error)
	}

	content := strings.TrimSpace(parsed.Message.Content)
	if content == "" {
		return "", provider.Newf(provider.Ollama, "empty response")
	}
	return content, nil
}

// Name returns the generator name.
func (g *Ollama) Name() string {
	return provider.Ollama
}
