// Package llm provides the generation client: provider configuration, prompt
// assembly and a single blocking completion call per request.
package llm

import (
	"fmt"
	"time"
)

// ModelTier represents the complexity/capability level of a model
type ModelTier string

const (
	// TierLite is the cheapest model of a provider
	TierLite ModelTier = "lite"
	// TierStandard is the default model for resume adaptation
	TierStandard ModelTier = "standard"
	// TierAdvanced is the most capable (and slowest) model
	TierAdvanced ModelTier = "advanced"
)

// ParseModelTier parses a tier name.
func ParseModelTier(s string) (ModelTier, error) {
	switch ModelTier(s) {
	case TierLite, TierStandard, TierAdvanced:
		return ModelTier(s), nil
	case "":
		return TierStandard, nil
	}
	return "", fmt.Errorf("invalid model tier %q: must be lite, standard or advanced", s)
}

// Provider represents an LLM provider
type Provider string

// Provider constants define supported LLM providers
const (
	// ProviderOpenAI is the OpenAI chat completions provider
	ProviderOpenAI Provider = "openai"
	// ProviderGemini is the Google Gemini provider
	ProviderGemini Provider = "gemini"
	// ProviderAnthropic is the Anthropic/Claude provider
	ProviderAnthropic Provider = "anthropic"
)

// Output and timing limits.
const (
	DefaultMaxOutputTokens  = 3000
	HardMaxOutputTokens     = 4096
	DefaultTimeout          = 120 * time.Second
	DefaultMaxResponseChars = 60000
)

// Config holds everything the generation client needs. It is passed
// explicitly; the client never reads the process environment.
type Config struct {
	Provider Provider
	Models   map[ModelTier]string
	Tier     ModelTier
	APIKey   string
	// BaseURL overrides the provider endpoint (proxies, compatible gateways, tests).
	BaseURL          string
	Timeout          time.Duration
	MaxOutputTokens  int
	MaxResponseChars int
}

// DefaultConfig returns the default configuration (OpenAI)
func DefaultConfig() *Config {
	return DefaultOpenAIConfig()
}

// DefaultConfigFor returns the default configuration of a provider.
func DefaultConfigFor(provider Provider) (*Config, error) {
	switch provider {
	case ProviderOpenAI, "":
		return DefaultOpenAIConfig(), nil
	case ProviderGemini:
		return DefaultGeminiConfig(), nil
	case ProviderAnthropic:
		return DefaultAnthropicConfig(), nil
	default:
		return nil, fmt.Errorf("unsupported provider %q: must be openai, gemini or anthropic", provider)
	}
}

// DefaultOpenAIConfig returns the default OpenAI configuration
func DefaultOpenAIConfig() *Config {
	return withDefaults(ProviderOpenAI, map[ModelTier]string{
		TierLite:     "gpt-4o-mini",
		TierStandard: "gpt-4o-mini",
		TierAdvanced: "gpt-4o",
	})
}

// DefaultGeminiConfig returns the default Gemini configuration
func DefaultGeminiConfig() *Config {
	return withDefaults(ProviderGemini, map[ModelTier]string{
		TierLite:     "gemini-2.5-flash-lite",
		TierStandard: "gemini-2.5-flash",
		TierAdvanced: "gemini-2.5-pro",
	})
}

// DefaultAnthropicConfig returns the default Anthropic configuration
func DefaultAnthropicConfig() *Config {
	return withDefaults(ProviderAnthropic, map[ModelTier]string{
		TierLite:     "claude-3-5-haiku-latest",
		TierStandard: "claude-sonnet-4-20250514",
		TierAdvanced: "claude-opus-4-1-20250805",
	})
}

func withDefaults(provider Provider, models map[ModelTier]string) *Config {
	return &Config{
		Provider:         provider,
		Models:           models,
		Tier:             TierStandard,
		Timeout:          DefaultTimeout,
		MaxOutputTokens:  DefaultMaxOutputTokens,
		MaxResponseChars: DefaultMaxResponseChars,
	}
}

// GetModel returns the model name for a given tier
func (c *Config) GetModel(tier ModelTier) string {
	if model, ok := c.Models[tier]; ok {
		return model
	}
	// Fallback chain: try standard, then lite
	if model, ok := c.Models[TierStandard]; ok {
		return model
	}
	if model, ok := c.Models[TierLite]; ok {
		return model
	}
	return "" // No model configured
}

// Model returns the model used for generation (the configured tier).
func (c *Config) Model() string {
	return c.GetModel(c.Tier)
}

// WithModel returns a new Config with a specific model for a tier
func (c *Config) WithModel(tier ModelTier, model string) *Config {
	newConfig := *c
	newConfig.Models = make(map[ModelTier]string, len(c.Models)+1)
	for k, v := range c.Models {
		newConfig.Models[k] = v
	}
	newConfig.Models[tier] = model
	return &newConfig
}

// OutputTokens returns the requested completion length, capped at HardMaxOutputTokens.
func (c *Config) OutputTokens() int {
	switch {
	case c.MaxOutputTokens <= 0:
		return DefaultMaxOutputTokens
	case c.MaxOutputTokens > HardMaxOutputTokens:
		return HardMaxOutputTokens
	default:
		return c.MaxOutputTokens
	}
}

// RequestTimeout returns the per-call timeout.
func (c *Config) RequestTimeout() time.Duration {
	if c.Timeout <= 0 {
		return DefaultTimeout
	}
	return c.Timeout
}

// Validate checks that the configuration can build a client.
func (c *Config) Validate() error {
	if _, err := DefaultConfigFor(c.Provider); err != nil {
		return err
	}
	if c.APIKey == "" {
		return fmt.Errorf("API key is required for provider %s", c.Provider)
	}
	if c.Model() == "" {
		return fmt.Errorf("no model configured for tier %s", c.Tier)
	}
	return nil
}
