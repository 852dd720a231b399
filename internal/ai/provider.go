package ai

import (
	"context"
	"fmt"
	"time"
)

// Provider names accepted in configuration and request payloads.
const (
	ProviderOpenAI    = "openai"
	ProviderAnthropic = "anthropic"
)

const defaultTimeout = 60 * time.Second

// Provider is the interface that all LLM providers must implement.
type Provider interface {
	// Complete sends one chat-completion request and returns the first
	// text completion. Implementations make a single attempt.
	Complete(ctx context.Context, req CompletionRequest) (*Completion, error)

	// Name returns the provider identifier ("openai", "anthropic").
	Name() string

	// Model returns the default model used when a request leaves it empty.
	Model() string
}

// ImageGenerator is implemented by providers that can render images.
type ImageGenerator interface {
	GenerateImage(ctx context.Context, req ImageRequest) (*GeneratedImage, error)
}

// NewProvider creates the appropriate provider based on config.
func NewProvider(cfg ProviderConfig) (Provider, error) {
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("%s provider: API key is required", cfg.Provider)
	}

	timeout := defaultTimeout
	if cfg.TimeoutSec > 0 {
		timeout = time.Duration(cfg.TimeoutSec) * time.Second
	}

	switch cfg.Provider {
	case ProviderAnthropic:
		return NewAnthropicProvider(cfg, timeout), nil
	case ProviderOpenAI:
		return NewOpenAIProvider(cfg, timeout), nil
	default:
		return nil, fmt.Errorf("unsupported AI provider: %s", cfg.Provider)
	}
}

// NormalizeProvider maps caller-supplied provider flags onto a known
// provider name. Unknown or empty values yield fallback.
func NormalizeProvider(flag, fallback string) string {
	switch flag {
	case "anthropic", "claude":
		return ProviderAnthropic
	case "openai", "gpt", "chatgpt":
		return ProviderOpenAI
	default:
		return fallback
	}
}
