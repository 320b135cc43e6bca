// Package llm wraps the model providers behind a single interface. The rest
// of the system treats a provider as an opaque "generate text given a
// prompt" capability; which model answers is configuration.
package llm

import "context"

// Provider is the interface for all LLM providers.
type Provider interface {
	GenerateResponse(ctx context.Context, prompt string, systemPrompt string, options map[string]interface{}) (string, error)
}

// Message is the role/content pair shared by the chat-completions wire format.
type Message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}
