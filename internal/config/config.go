package config

import (
	"fmt"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// Summary provider identifiers.
const (
	ProviderOpenAI = "openai"
	ProviderGemini = "gemini"
)

// Config carries everything read from the environment at startup.
type Config struct {
	// BotToken authenticates against the Telegram Bot API (required)
	BotToken string
	// OpenAIAPIKey authenticates transcription and, by default,
	// summarization (required)
	OpenAIAPIKey string
	// GeminiAPIKey is required only when SummaryProvider is "gemini"
	GeminiAPIKey string

	// SummaryProvider selects the summarization backend: openai | gemini
	SummaryProvider string
	// WhisperModel is the transcription model identifier
	WhisperModel string
	// SummaryModel is the summarization model identifier
	SummaryModel string

	// TimeoutSeconds bounds every external call
	TimeoutSeconds int
	// HTTPPort serves the health/status endpoints
	HTTPPort string
}

// Load reads .env (when present) and the process environment, and fails
// fast with a clear diagnostic when a required secret is missing.
func Load() (*Config, error) {
	// A missing .env file is fine; the environment may be set directly.
	_ = godotenv.Load()

	cfg := &Config{
		BotToken:        os.Getenv("BOT_TOKEN"),
		OpenAIAPIKey:    os.Getenv("OPENAI_API_KEY"),
		GeminiAPIKey:    os.Getenv("GEMINI_API_KEY"),
		SummaryProvider: getEnv("SUMMARY_PROVIDER", ProviderOpenAI),
		WhisperModel:    getEnv("WHISPER_MODEL", "whisper-1"),
		SummaryModel:    os.Getenv("SUMMARY_MODEL"),
		HTTPPort:        getEnv("HTTP_PORT", "8080"),
		TimeoutSeconds:  60,
	}

	if raw := os.Getenv("TIMEOUT_SECONDS"); raw != "" {
		seconds, err := strconv.Atoi(raw)
		if err != nil || seconds <= 0 {
			return nil, fmt.Errorf("TIMEOUT_SECONDS must be a positive integer, got %q", raw)
		}
		cfg.TimeoutSeconds = seconds
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) validate() error {
	if c.BotToken == "" {
		return fmt.Errorf("BOT_TOKEN environment variable is required")
	}
	if c.OpenAIAPIKey == "" {
		return fmt.Errorf("OPENAI_API_KEY environment variable is required")
	}

	switch c.SummaryProvider {
	case ProviderOpenAI:
	case ProviderGemini:
		if c.GeminiAPIKey == "" {
			return fmt.Errorf("GEMINI_API_KEY environment variable is required when SUMMARY_PROVIDER=gemini")
		}
	default:
		return fmt.Errorf("unsupported SUMMARY_PROVIDER %q (expected %s or %s)", c.SummaryProvider, ProviderOpenAI, ProviderGemini)
	}

	return nil
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}
