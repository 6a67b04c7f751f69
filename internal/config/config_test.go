package config

import "testing"

func setRequired(t *testing.T) {
	t.Setenv("BOT_TOKEN", "test-token")
	t.Setenv("OPENAI_API_KEY", "test-key")
}

func TestLoadFailsWithoutBotToken(t *testing.T) {
	t.Setenv("BOT_TOKEN", "")
	t.Setenv("OPENAI_API_KEY", "test-key")

	if _, err := Load(); err == nil {
		t.Error("Expected error when BOT_TOKEN is missing")
	}
}

func TestLoadFailsWithoutOpenAIKey(t *testing.T) {
	t.Setenv("BOT_TOKEN", "test-token")
	t.Setenv("OPENAI_API_KEY", "")

	if _, err := Load(); err == nil {
		t.Error("Expected error when OPENAI_API_KEY is missing")
	}
}

func TestLoadDefaults(t *testing.T) {
	setRequired(t)
	t.Setenv("SUMMARY_PROVIDER", "")
	t.Setenv("WHISPER_MODEL", "")
	t.Setenv("TIMEOUT_SECONDS", "")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if cfg.SummaryProvider != ProviderOpenAI {
		t.Errorf("Expected default provider %s, got %s", ProviderOpenAI, cfg.SummaryProvider)
	}
	if cfg.WhisperModel != "whisper-1" {
		t.Errorf("Expected default whisper model, got %s", cfg.WhisperModel)
	}
	if cfg.TimeoutSeconds != 60 {
		t.Errorf("Expected default timeout 60, got %d", cfg.TimeoutSeconds)
	}
}

func TestLoadGeminiProviderRequiresKey(t *testing.T) {
	setRequired(t)
	t.Setenv("SUMMARY_PROVIDER", "gemini")
	t.Setenv("GEMINI_API_KEY", "")

	if _, err := Load(); err == nil {
		t.Error("Expected error when gemini provider has no API key")
	}

	t.Setenv("GEMINI_API_KEY", "gk")
	if _, err := Load(); err != nil {
		t.Errorf("Expected gemini provider with key to load, got %v", err)
	}
}

func TestLoadRejectsUnknownProvider(t *testing.T) {
	setRequired(t)
	t.Setenv("SUMMARY_PROVIDER", "llama")

	if _, err := Load(); err == nil {
		t.Error("Expected error for an unknown summary provider")
	}
}

func TestLoadRejectsBadTimeout(t *testing.T) {
	setRequired(t)
	t.Setenv("TIMEOUT_SECONDS", "pronto")

	if _, err := Load(); err == nil {
		t.Error("Expected error for a non-numeric timeout")
	}
}
