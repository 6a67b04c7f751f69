package llm

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"
	"google.golang.org/genai"

	"github.com/yescribe/transcriptor/domain/repositories"
)

const defaultGeminiModel = "gemini-2.0-flash"

// GeminiConfig holds configuration for the Gemini completion adapter.
// Required fields:
// - APIKey: Your Google AI API key
// Optional fields with defaults:
// - Model: The generation model to use (default: gemini-2.0-flash)
// - TimeoutSeconds: timeout for each generation call (default: 60)
type GeminiConfig struct {
	APIKey         string
	Model          string
	TimeoutSeconds int
}

// GeminiLLM implements the LargeLanguageModel interface using Google's
// Gemini API. It is the alternate summarization backend, selected by
// configuration.
type GeminiLLM struct {
	client         *genai.Client
	model          string
	timeoutSeconds int
	logger         *zap.Logger
}

// Ensure GeminiLLM implements the LargeLanguageModel interface
var _ repositories.LargeLanguageModel = (*GeminiLLM)(nil)

// ValidateGeminiConfig validates the GeminiConfig
func ValidateGeminiConfig(config GeminiConfig) error {
	if config.APIKey == "" {
		return fmt.Errorf("Google AI API key is required")
	}
	if config.TimeoutSeconds < 0 {
		return fmt.Errorf("timeout must be positive, got %d", config.TimeoutSeconds)
	}
	return nil
}

// NewGeminiLLM creates a new Gemini completion adapter
func NewGeminiLLM(ctx context.Context, config GeminiConfig, logger *zap.Logger) (*GeminiLLM, error) {
	if err := ValidateGeminiConfig(config); err != nil {
		return nil, err
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  config.APIKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create Gemini client: %w", err)
	}

	model := config.Model
	if model == "" {
		model = defaultGeminiModel
	}

	timeoutSeconds := config.TimeoutSeconds
	if timeoutSeconds == 0 {
		timeoutSeconds = defaultTimeoutSeconds
	}

	return &GeminiLLM{
		client:         client,
		model:          model,
		timeoutSeconds: timeoutSeconds,
		logger:         logger,
	}, nil
}

// Complete submits the messages and returns the generated text. System
// messages become the system instruction; the rest are sent as user content.
func (g *GeminiLLM) Complete(ctx context.Context, messages []repositories.ChatMessage, temperature float32) (string, error) {
	var contents []*genai.Content
	config := &genai.GenerateContentConfig{
		Temperature: genai.Ptr(temperature),
	}

	for _, msg := range messages {
		if msg.Role == repositories.SystemRole {
			config.SystemInstruction = genai.NewContentFromText(msg.Content, genai.RoleUser)
			continue
		}
		contents = append(contents, genai.NewContentFromText(msg.Content, genai.RoleUser))
	}

	ctx, cancel := context.WithTimeout(ctx, time.Duration(g.timeoutSeconds)*time.Second)
	defer cancel()

	response, err := g.client.Models.GenerateContent(ctx, g.model, contents, config)
	if err != nil {
		return "", fmt.Errorf("generation request failed: %w", err)
	}

	if len(response.Candidates) == 0 || response.Candidates[0].Content == nil {
		return "", fmt.Errorf("generation returned no candidates")
	}

	var text string
	for _, part := range response.Candidates[0].Content.Parts {
		if part.Text != "" {
			text += part.Text
		}
	}

	if text == "" {
		return "", fmt.Errorf("generation returned empty content")
	}

	g.logger.Info("Completion generated",
		zap.String("model", g.model),
		zap.Int("responseLength", len(text)))

	return text, nil
}
