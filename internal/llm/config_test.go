package llm

import (
	"testing"
)

func TestConfigFromEnv_Overrides(t *testing.T) {
	t.Setenv("AULAPLAN_LLM_PROVIDER", "anthropic")
	t.Setenv("AULAPLAN_ANTHROPIC_API_KEY", "sk-test")
	t.Setenv("AULAPLAN_ANTHROPIC_MODEL", "claude-custom")

	cfg := ConfigFromEnv()
	if cfg.Provider != "anthropic" {
		t.Errorf("provider = %q", cfg.Provider)
	}
	if cfg.Anthropic.APIKey != "sk-test" || cfg.Anthropic.Model != "claude-custom" {
		t.Errorf("anthropic config = %+v", cfg.Anthropic)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("valid config rejected: %v", err)
	}
}

func TestConfigFromEnv_Defaults(t *testing.T) {
	t.Setenv("AULAPLAN_LLM_PROVIDER", "")

	cfg := ConfigFromEnv()
	if cfg.Provider != "gemini" {
		t.Errorf("default provider = %q, want gemini", cfg.Provider)
	}
	if cfg.Gemini.Model != "gemini-flash" {
		t.Errorf("default gemini model = %q", cfg.Gemini.Model)
	}
	if cfg.Retry.MaxAttempts != 3 {
		t.Errorf("default retry attempts = %d", cfg.Retry.MaxAttempts)
	}
}

func TestConfig_ValidateMissingKey(t *testing.T) {
	cfg := DefaultConfig()
	if err := cfg.Validate(); err == nil {
		t.Error("gemini without an API key should not validate")
	}

	cfg.Provider = "mock"
	if err := cfg.Validate(); err != nil {
		t.Errorf("mock provider needs no key: %v", err)
	}

	cfg.Provider = "watson"
	if err := cfg.Validate(); err == nil {
		t.Error("unknown provider should not validate")
	}
}

func TestDiscoverConfig_PriorityOrder(t *testing.T) {
	t.Setenv("GEMINI_API_KEY", "g-key")
	t.Setenv("OPENAI_API_KEY", "o-key")
	t.Setenv("ANTHROPIC_API_KEY", "a-key")

	cfg, ok := DiscoverConfig()
	if !ok || cfg.Provider != "gemini" {
		t.Errorf("discover = %q ok=%v, want gemini first", cfg.Provider, ok)
	}

	t.Setenv("GEMINI_API_KEY", "")
	cfg, ok = DiscoverConfig()
	if !ok || cfg.Provider != "openai" {
		t.Errorf("discover = %q ok=%v, want openai second", cfg.Provider, ok)
	}

	t.Setenv("OPENAI_API_KEY", "")
	cfg, ok = DiscoverConfig()
	if !ok || cfg.Provider != "anthropic" {
		t.Errorf("discover = %q ok=%v, want anthropic third", cfg.Provider, ok)
	}

	t.Setenv("ANTHROPIC_API_KEY", "")
	if _, ok := DiscoverConfig(); ok {
		t.Error("discover with no keys should report not found")
	}
}
