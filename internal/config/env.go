package config

import (
	"os"
	"strconv"
	"strings"
)

// Environment variable names.
const (
	EnvPrefix          = "RESUME_ADAPTER_"
	EnvOpenAIAPIKey    = "OPENAI_API_KEY"
	EnvGeminiAPIKey    = "GEMINI_API_KEY"
	EnvAnthropicAPIKey = "ANTHROPIC_API_KEY"
	EnvRedisURL        = "REDIS_URL"
	EnvDatabaseURL     = "DATABASE_URL"
)

// ApplyEnv overrides fields from RESUME_ADAPTER_* variables and fills the
// API key and infrastructure URLs from their conventional variables.
func (c *Config) ApplyEnv() {
	c.Provider = getEnvString(EnvPrefix+"PROVIDER", c.Provider)
	c.Model = getEnvString(EnvPrefix+"MODEL", c.Model)
	c.ModelTier = getEnvString(EnvPrefix+"MODEL_TIER", c.ModelTier)
	c.APIKey = getEnvString(EnvPrefix+"API_KEY", c.APIKey)
	c.BaseURL = getEnvString(EnvPrefix+"BASE_URL", c.BaseURL)
	c.Timeout = getEnvString(EnvPrefix+"TIMEOUT", c.Timeout)
	c.MaxOutputTokens = getEnvInt(EnvPrefix+"MAX_OUTPUT_TOKENS", c.MaxOutputTokens)
	c.MaxResponseChars = getEnvInt(EnvPrefix+"MAX_RESPONSE_CHARS", c.MaxResponseChars)
	c.Language = getEnvString(EnvPrefix+"LANGUAGE", c.Language)
	c.Creativity = getEnvString(EnvPrefix+"CREATIVITY", c.Creativity)
	c.OutputDir = getEnvString(EnvPrefix+"OUTPUT_DIR", c.OutputDir)
	c.LogFormat = getEnvString(EnvPrefix+"LOG_FORMAT", c.LogFormat)
	c.Verbose = getEnvBool(EnvPrefix+"VERBOSE", c.Verbose)
	c.UseBrowser = getEnvBool(EnvPrefix+"USE_BROWSER", c.UseBrowser)
	c.CacheTTL = getEnvString(EnvPrefix+"CACHE_TTL", c.CacheTTL)
	c.AccessKeyHash = getEnvString(EnvPrefix+"ACCESS_KEY_HASH", c.AccessKeyHash)
	if formats := os.Getenv(EnvPrefix + "FORMATS"); formats != "" {
		c.Formats = splitList(formats)
	}

	if c.RedisURL == "" {
		c.RedisURL = os.Getenv(EnvRedisURL)
	}
	if c.DatabaseURL == "" {
		c.DatabaseURL = os.Getenv(EnvDatabaseURL)
	}
	if c.APIKey == "" {
		c.APIKey = os.Getenv(ProviderKeyEnv(c.Provider))
	}
}

// ProviderKeyEnv names the conventional API key variable of a provider.
func ProviderKeyEnv(provider string) string {
	switch provider {
	case "gemini":
		return EnvGeminiAPIKey
	case "anthropic":
		return EnvAnthropicAPIKey
	default:
		return EnvOpenAIAPIKey
	}
}

// getEnvString gets an environment variable with a default value.
func getEnvString(key string, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getEnvInt gets an environment variable as an integer with a default value.
func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

// getEnvBool gets an environment variable as a boolean with a default value.
func getEnvBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if boolValue, err := strconv.ParseBool(value); err == nil {
			return boolValue
		}
	}
	return defaultValue
}

func splitList(list string) []string {
	var out []string
	for _, item := range strings.Split(list, ",") {
		if item = strings.TrimSpace(item); item != "" {
			out = append(out, item)
		}
	}
	return out
}
