package stt

import (
	"bytes"
	"context"
	"fmt"
	"net/http"
	"time"

	openai "github.com/sashabaranov/go-openai"
	"go.uber.org/zap"

	"github.com/yescribe/transcriptor/domain/repositories"
)

const (
	defaultModel          = openai.Whisper1
	defaultFileName       = "audio.mp3"
	defaultTimeoutSeconds = 60
)

// WhisperConfig holds configuration for the Whisper speech-to-text adapter.
// Required fields:
// - APIKey: Your OpenAI API key
// Optional fields with defaults:
// - Model: The transcription model to use (default: whisper-1)
// - TimeoutSeconds: HTTP timeout for each transcription call (default: 60)
type WhisperConfig struct {
	APIKey         string
	Model          string
	TimeoutSeconds int
}

// WhisperTranscriber implements SpeechToText using OpenAI's transcription API
type WhisperTranscriber struct {
	client *openai.Client
	model  string
	logger *zap.Logger
}

// Ensure WhisperTranscriber implements the SpeechToText interface
var _ repositories.SpeechToText = (*WhisperTranscriber)(nil)

// ValidateWhisperConfig validates the WhisperConfig
func ValidateWhisperConfig(config WhisperConfig) error {
	if config.APIKey == "" {
		return fmt.Errorf("OpenAI API key is required")
	}
	if config.TimeoutSeconds < 0 {
		return fmt.Errorf("timeout must be positive, got %d", config.TimeoutSeconds)
	}
	return nil
}

// NewWhisperTranscriber creates a new Whisper transcription adapter
func NewWhisperTranscriber(config WhisperConfig, logger *zap.Logger) (*WhisperTranscriber, error) {
	if err := ValidateWhisperConfig(config); err != nil {
		return nil, err
	}

	model := config.Model
	if model == "" {
		model = defaultModel
	}

	timeoutSeconds := config.TimeoutSeconds
	if timeoutSeconds == 0 {
		timeoutSeconds = defaultTimeoutSeconds
	}

	clientConfig := openai.DefaultConfig(config.APIKey)
	clientConfig.HTTPClient = &http.Client{Timeout: time.Duration(timeoutSeconds) * time.Second}

	return &WhisperTranscriber{
		client: openai.NewClientWithConfig(clientConfig),
		model:  model,
		logger: logger,
	}, nil
}

// TranscribeAudio submits one audio segment as a named file attachment and
// returns the transcribed text. One call per segment, no retries.
func (w *WhisperTranscriber) TranscribeAudio(ctx context.Context, audioData []byte, config repositories.AudioConfig) (string, error) {
	fileName := config.FileName
	if fileName == "" {
		fileName = defaultFileName
	}

	w.logger.Info("Submitting audio segment for transcription",
		zap.Int("audioSize", len(audioData)),
		zap.String("model", w.model),
		zap.String("language", config.Language))

	resp, err := w.client.CreateTranscription(ctx, openai.AudioRequest{
		Model:    w.model,
		Reader:   bytes.NewReader(audioData),
		FilePath: fileName,
		Language: config.Language,
	})
	if err != nil {
		return "", fmt.Errorf("transcription request failed: %w", err)
	}

	return resp.Text, nil
}
