package llm

import (
	"context"
	"fmt"
)

// Prompt is the two-part instruction sent to the model.
type Prompt struct {
	System string
	User   string
}

// CompletionOptions are the per-call sampling settings.
type CompletionOptions struct {
	Model       string
	Temperature float64
	MaxTokens   int
}

// Completer is an abstraction over LLM providers
type Completer interface {
	// Complete sends one blocking request and returns the raw response text.
	Complete(ctx context.Context, prompt Prompt, opts CompletionOptions) (string, error)
	// Close releases any resources held by the client
	Close() error
}

// NewCompleter creates a provider client based on configuration
func NewCompleter(ctx context.Context, config *Config) (Completer, error) {
	if config == nil {
		return nil, fmt.Errorf("llm config is nil")
	}
	if config.APIKey == "" {
		return nil, fmt.Errorf("API key is required for provider %s", config.Provider)
	}

	switch config.Provider {
	case ProviderOpenAI, "":
		return NewOpenAIClient(config), nil
	case ProviderGemini:
		return NewGeminiClient(ctx, config)
	case ProviderAnthropic:
		return NewAnthropicClient(config), nil
	default:
		return nil, fmt.Errorf("unsupported provider %q", config.Provider)
	}
}
