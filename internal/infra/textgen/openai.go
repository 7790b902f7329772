package textgen

import (
	"context"
	"strings"

	"github.com/cockroachdb/errors"
	"github.com/sashabaranov/go-openai"

	"github.com/osa030/moodmix/internal/infra/provider"
)

// OpenAIConfig represents OpenAI generator settings.
type OpenAIConfig struct {
	APIKey  string `yaml:"api_key" mapstructure:"api_key" validate:"required"`
	Model   string `yaml:"model" mapstructure:"model" default:"gpt-3.5-turbo"`
	BaseURL string `yaml:"base_url" mapstructure:"base_url"`
}

// OpenAI generates text with the OpenAI Chat Completions API.
type OpenAI struct {
	client *openai.Client
	model  string
}

// NewOpenAI creates a new OpenAI generator.
func NewOpenAI(cfg OpenAIConfig) (*OpenAI, error) {
	if cfg.APIKey == "" {
		return nil, errors.New("openai API key is required")
	}

	clientCfg := openai.DefaultConfig(cfg.APIKey)
	if cfg.BaseURL != "" {
		clientCfg.BaseURL = strings.TrimRight(cfg.BaseURL, "/")
	}

	model := cfg.Model
	if model == "" {
		model = openai.GPT3Dot5Turbo
	}

	return &OpenAI{
		client: openai.NewClientWithConfig(clientCfg),
		model:  model,
	}, nil
}

// Generate sends the prompt as a system + user message pair.
func (g *OpenAI) Generate(ctx context.Context, p Prompt) (string, error) {
	if strings.TrimSpace(p.User) == "" {
		return "", provider.Newf(provider.OpenAI, "prompt is required")
	}

	messages := make([]openai.ChatCompletionMessage, 0, 2)
	if p.System != "" {
		messages = append(messages, openai.ChatCompletionMessage{Role: openai.ChatMessageRoleSystem, Content: p.System})
	}
	messages = append(messages, openai.ChatCompletionMessage{Role: openai.ChatMessageRoleUser, Content: p.User})

	resp, err := g.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model:       g.model,
		Messages:    messages,
		MaxTokens:   p.MaxTokens,
		Temperature: p.Temperature,
	})
	if err != nil {
		return "", provider.Wrap(provider.OpenAI, err, "chat completion failed")
	}
	if len(resp.Choices) == 0 {
		return "", provider.Newf(provider.OpenAI, "no choices returned")
	}

	content := strings.TrimSpace(resp.Choices[0].Message.Content)
	if content == "" {
		return "", provider.Newf(provider.OpenAI, "empty completion")
	}
	return content, nil
}

// Name returns the generator name.
func (g *OpenAI) Name() string {
	return provider.OpenAI
}
