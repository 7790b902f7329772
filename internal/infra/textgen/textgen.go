// Package textgen provides text-generation gateways backed by chat-completion APIs.
package textgen

import "context"

// Prompt is a single chat-completion request.
type Prompt struct {
	System      string
	User        string
	MaxTokens   int
	Temperature float32
}

// Generator generates text for a prompt.
// Implementations return the completion trimmed of surrounding whitespace,
// and a *provider.Error on any failure, including an empty completion.
type Generator interface {
	Generate(ctx context.Context, p Prompt) (string, error)
	Name() string
}
