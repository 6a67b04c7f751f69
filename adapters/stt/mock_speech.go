package stt

import (
	"context"
	"fmt"
	"sync"

	"go.uber.org/zap"

	"github.com/yescribe/transcriptor/domain/repositories"
)

// MockSpeechToText is a scriptable implementation of speech recognition for
// tests. Each call returns the next entry of Responses in order and records
// the call it served.
type MockSpeechToText struct {
	logger *zap.Logger

	mu        sync.Mutex
	Responses []string
	Err       error
	Calls     []repositories.AudioConfig
}

// NewMockSpeechToText creates a new mock speech-to-text service
func NewMockSpeechToText(logger *zap.Logger, responses ...string) *MockSpeechToText {
	return &MockSpeechToText{
		logger:    logger,
		Responses: responses,
	}
}

// TranscribeAudio implements repositories.SpeechToText
func (m *MockSpeechToText) TranscribeAudio(ctx context.Context, audioData []byte, config repositories.AudioConfig) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.logger.Info("Processing mock transcription",
		zap.Int("audioSize", len(audioData)),
		zap.String("language", config.Language))

	if m.Err != nil {
		return "", m.Err
	}

	index := len(m.Calls)
	m.Calls = append(m.Calls, config)

	if index >= len(m.Responses) {
		return "", fmt.Errorf("no scripted response for call %d", index)
	}
	return m.Responses[index], nil
}

// CallCount returns how many transcription calls were served
func (m *MockSpeechToText) CallCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.Calls)
}
