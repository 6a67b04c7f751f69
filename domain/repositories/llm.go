package repositories

import "context"

// LargeLanguageModel abstracts any chat/LLM provider
type LargeLanguageModel interface {
	// Complete submits an ordered list of role-tagged messages and returns
	// the generated text
	Complete(ctx context.Context, messages []ChatMessage, temperature float32) (string, error)
}

// ChatMessage represents a single message in a completion request
type ChatMessage struct {
	Role    Role   `json:"role"`
	Content string `json:"content"`
}

// Role defines the type of message sender
type Role string

const (
	UserRole   Role = "user"
	SystemRole Role = "system"
)
