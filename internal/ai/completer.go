package ai

import (
	"context"
)

type Role string

const (
	RoleSystem    Role = "system"
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// Message is a single role-tagged turn sent to the completion service.
type Message struct {
	Role    Role
	Content string
}

// Request describes one non-streaming completion call.
type Request struct {
	Messages    []Message
	Temperature float64
	MaxTokens   int
}

// Completer is the language model completion service.
type Completer interface {
	Complete(ctx context.Context, req Request) (string, error)
	Model() string
}

// Provider names accepted in configuration.
const (
	ProviderOllama = "ollama"
	ProviderGemini = "gemini"
)
