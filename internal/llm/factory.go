package llm

import (
	"fmt"
	"strings"
	"time"
)

// Provider represents the LLM provider type
type Provider string

const (
	ProviderGemini Provider = "gemini"
	ProviderOpenAI Provider = "openai"
	ProviderClaude Provider = "claude"
)

// Settings carries the credential and model for the selected provider.
type Settings struct {
	APIKey  string
	Model   string
	Timeout time.Duration
}

// ParseProvider accepts a case-insensitive provider name; empty means Gemini.
func ParseProvider(name string) (Provider, error) {
	switch p := Provider(strings.ToLower(strings.TrimSpace(name))); p {
	case "":
		return ProviderGemini, nil
	case ProviderGemini, ProviderOpenAI, ProviderClaude:
		return p, nil
	default:
		return "", fmt.Errorf("unsupported LLM provider: %s (supported: gemini, openai, claude)", name)
	}
}

// New creates a client for provider. A missing API key is an error so the
// caller can decide to run without a generator.
func New(provider Provider, s Settings) (LLM, error) {
	if s.APIKey == "" {
		return nil, fmt.Errorf("%s API key is required", provider)
	}
	switch provider {
	case ProviderGemini, "":
		return NewGemini(s.APIKey, s.Model, s.Timeout), nil
	case ProviderOpenAI:
		return NewOpenAI(s.APIKey, s.Model, s.Timeout), nil
	case ProviderClaude:
		return NewClaude(s.APIKey, s.Model, s.Timeout), nil
	default:
		return nil, fmt.Errorf("unsupported LLM provider: %s", provider)
	}
}
