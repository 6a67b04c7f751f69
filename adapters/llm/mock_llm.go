package llm

import (
	"context"
	"sync"

	"go.uber.org/zap"

	"github.com/yescribe/transcriptor/domain/repositories"
)

// MockLLM is a scriptable implementation of the LargeLanguageModel
// interface for tests. It records every request it serves.
type MockLLM struct {
	logger *zap.Logger

	mu           sync.Mutex
	Response     string
	Err          error
	Requests     [][]repositories.ChatMessage
	Temperatures []float32
}

// NewMockLLM creates a new mock completion service
func NewMockLLM(logger *zap.Logger, response string) *MockLLM {
	return &MockLLM{
		logger:   logger,
		Response: response,
	}
}

// Complete implements repositories.LargeLanguageModel
func (m *MockLLM) Complete(ctx context.Context, messages []repositories.ChatMessage, temperature float32) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.logger.Info("Serving mock completion", zap.Int("messages", len(messages)))

	m.Requests = append(m.Requests, messages)
	m.Temperatures = append(m.Temperatures, temperature)

	if m.Err != nil {
		return "", m.Err
	}
	return m.Response, nil
}

// CallCount returns how many completion calls were served
func (m *MockLLM) CallCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.Requests)
}

// LastRequest returns the messages of the most recent call, or nil
func (m *MockLLM) LastRequest() []repositories.ChatMessage {
	m.mu.Lock()
	defer m.mu.Unlock()
	if len(m.Requests) == 0 {
		return nil
	}
	return m.Requests[len(m.Requests)-1]
}
