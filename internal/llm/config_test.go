package llm

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultConfig(t *testing.T) {
	config := DefaultConfig()

	assert.Equal(t, ProviderOpenAI, config.Provider)
	assert.Equal(t, TierStandard, config.Tier)
	assert.Equal(t, "gpt-4o-mini", config.Model())
	assert.Equal(t, "gpt-4o", config.GetModel(TierAdvanced))
	assert.Equal(t, DefaultMaxOutputTokens, config.OutputTokens())
}

func TestDefaultConfigFor(t *testing.T) {
	gemini, err := DefaultConfigFor(ProviderGemini)
	require.NoError(t, err)
	assert.Equal(t, "gemini-2.5-flash", gemini.Model())

	anthropic, err := DefaultConfigFor(ProviderAnthropic)
	require.NoError(t, err)
	assert.Equal(t, ProviderAnthropic, anthropic.Provider)

	openai, err := DefaultConfigFor("")
	require.NoError(t, err)
	assert.Equal(t, ProviderOpenAI, openai.Provider)

	_, err = DefaultConfigFor("cohere")
	assert.Error(t, err)
}

func TestGetModel_Fallback(t *testing.T) {
	config := &Config{
		Provider: ProviderGemini,
		Models: map[ModelTier]string{
			TierLite: "fallback-model",
		},
	}

	// Unknown tier should fallback to TierStandard, then TierLite
	assert.Equal(t, "fallback-model", config.GetModel("unknown"))
}

func TestGetModel_EmptyConfig(t *testing.T) {
	config := &Config{
		Provider: ProviderGemini,
		Models:   map[ModelTier]string{},
	}

	// Empty config should return empty string
	assert.Equal(t, "", config.GetModel(TierAdvanced))
}

func TestWithModel(t *testing.T) {
	config := DefaultGeminiConfig()
	config.APIKey = "key"
	newConfig := config.WithModel(TierAdvanced, "custom-model")

	// Original should be unchanged
	assert.Equal(t, "gemini-2.5-pro", config.GetModel(TierAdvanced))

	// New config should have custom model
	assert.Equal(t, "custom-model", newConfig.GetModel(TierAdvanced))

	// Other tiers and settings should be copied
	assert.Equal(t, "gemini-2.5-flash-lite", newConfig.GetModel(TierLite))
	assert.Equal(t, "key", newConfig.APIKey)
}

func TestOutputTokens(t *testing.T) {
	tests := []struct {
		configured int
		want       int
	}{
		{0, DefaultMaxOutputTokens},
		{-5, DefaultMaxOutputTokens},
		{1000, 1000},
		{HardMaxOutputTokens, HardMaxOutputTokens},
		{100000, HardMaxOutputTokens},
	}
	for _, tt := range tests {
		c := &Config{MaxOutputTokens: tt.configured}
		assert.Equal(t, tt.want, c.OutputTokens(), "configured=%d", tt.configured)
	}
}

func TestRequestTimeout(t *testing.T) {
	assert.Equal(t, DefaultTimeout, (&Config{}).RequestTimeout())
	assert.Equal(t, 5*time.Second, (&Config{Timeout: 5 * time.Second}).RequestTimeout())
}

func TestConfigValidate(t *testing.T) {
	config := DefaultConfig()
	assert.Error(t, config.Validate(), "missing API key")

	config.APIKey = "sk-test"
	assert.NoError(t, config.Validate())

	config.Provider = "cohere"
	assert.Error(t, config.Validate())

	empty := &Config{Provider: ProviderOpenAI, APIKey: "k", Models: map[ModelTier]string{}}
	assert.Error(t, empty.Validate())
}

func TestParseModelTier(t *testing.T) {
	tier, err := ParseModelTier("")
	require.NoError(t, err)
	assert.Equal(t, TierStandard, tier)

	tier, err = ParseModelTier("advanced")
	require.NoError(t, err)
	assert.Equal(t, TierAdvanced, tier)

	_, err = ParseModelTier("ultra")
	assert.Error(t, err)
}

func TestProviderConstants(t *testing.T) {
	assert.Equal(t, Provider("gemini"), ProviderGemini)
	assert.Equal(t, Provider("openai"), ProviderOpenAI)
	assert.Equal(t, Provider("anthropic"), ProviderAnthropic)
}
