package llm

import (
	"context"
	"fmt"
	"net/http"
	"time"

	openai "github.com/sashabaranov/go-openai"
	"go.uber.org/zap"

	"github.com/yescribe/transcriptor/domain/repositories"
)

const (
	defaultOpenAIModel    = "gpt-4.1-mini"
	defaultTimeoutSeconds = 60
)

// OpenAIConfig holds configuration for the OpenAI completion adapter.
// Required fields:
// - APIKey: Your OpenAI API key
// Optional fields with defaults:
// - Model: The completion model to use (default: gpt-4.1-mini)
// - TimeoutSeconds: HTTP timeout for each completion call (default: 60)
type OpenAIConfig struct {
	APIKey         string
	Model          string
	TimeoutSeconds int
}

// OpenAILLM implements the LargeLanguageModel interface using OpenAI's chat
// completion API
type OpenAILLM struct {
	client *openai.Client
	model  string
	logger *zap.Logger
}

// Ensure OpenAILLM implements the LargeLanguageModel interface
var _ repositories.LargeLanguageModel = (*OpenAILLM)(nil)

// ValidateOpenAIConfig validates the OpenAIConfig
func ValidateOpenAIConfig(config OpenAIConfig) error {
	if config.APIKey == "" {
		return fmt.Errorf("OpenAI API key is required")
	}
	if config.TimeoutSeconds < 0 {
		return fmt.Errorf("timeout must be positive, got %d", config.TimeoutSeconds)
	}
	return nil
}

// NewOpenAILLM creates a new OpenAI completion adapter
func NewOpenAILLM(config OpenAIConfig, logger *zap.Logger) (*OpenAILLM, error) {
	if err := ValidateOpenAIConfig(config); err != nil {
		return nil, err
	}

	model := config.Model
	if model == "" {
		model = defaultOpenAIModel
	}

	timeoutSeconds := config.TimeoutSeconds
	if timeoutSeconds == 0 {
		timeoutSeconds = defaultTimeoutSeconds
	}

	clientConfig := openai.DefaultConfig(config.APIKey)
	clientConfig.HTTPClient = &http.Client{Timeout: time.Duration(timeoutSeconds) * time.Second}

	return &OpenAILLM{
		client: openai.NewClientWithConfig(clientConfig),
		model:  model,
		logger: logger,
	}, nil
}

// Complete submits the messages and returns the generated text. A single
// attempt per call; failures propagate to the caller.
func (o *OpenAILLM) Complete(ctx context.Context, messages []repositories.ChatMessage, temperature float32) (string, error) {
	request := openai.ChatCompletionRequest{
		Model:       o.model,
		Messages:    convertMessages(messages),
		Temperature: temperature,
	}

	resp, err := o.client.CreateChatCompletion(ctx, request)
	if err != nil {
		return "", fmt.Errorf("completion request failed: %w", err)
	}

	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("completion returned no choices")
	}

	content := resp.Choices[0].Message.Content
	o.logger.Info("Completion generated",
		zap.String("model", o.model),
		zap.Int("responseLength", len(content)))

	return content, nil
}

// convertMessages maps repository messages to the OpenAI request format
func convertMessages(messages []repositories.ChatMessage) []openai.ChatCompletionMessage {
	converted := make([]openai.ChatCompletionMessage, 0, len(messages))
	for _, msg := range messages {
		role := openai.ChatMessageRoleUser
		if msg.Role == repositories.SystemRole {
			role = openai.ChatMessageRoleSystem
		}
		converted = append(converted, openai.ChatCompletionMessage{
			Role:    role,
			Content: msg.Content,
		})
	}
	return converted
}
