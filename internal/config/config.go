// Package config loads resume_adapter settings from a JSON file, the
// environment and built-in defaults.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/jonathan/resume-adapter/internal/llm"
	"github.com/jonathan/resume-adapter/internal/types"
)

// DefaultPath is the config file read when --config is not given and the file exists.
const DefaultPath = "resume_adapter.json"

// Config is the merged resume_adapter configuration. Every field may be
// omitted from the file; Load fills the gaps.
type Config struct {
	// Generation service
	Provider         string `json:"provider,omitempty"`           // openai, gemini or anthropic
	Model            string `json:"model,omitempty"`              // Explicit model name (overrides model_tier)
	ModelTier        string `json:"model_tier,omitempty"`         // lite, standard or advanced
	APIKey           string `json:"api_key,omitempty"`            // Provider API key
	BaseURL          string `json:"base_url,omitempty"`           // Provider endpoint override
	Timeout          string `json:"timeout,omitempty"`            // Per-request timeout (e.g. "90s")
	MaxOutputTokens  int    `json:"max_output_tokens,omitempty"`  // Requested completion length
	MaxResponseChars int    `json:"max_response_chars,omitempty"` // Response truncation limit

	// Request defaults
	Language   string   `json:"language,omitempty"`   // Target language
	Creativity string   `json:"creativity,omitempty"` // Preset name or number
	Formats    []string `json:"formats,omitempty"`    // Export formats to write
	OutputDir  string   `json:"output_dir,omitempty"` // Directory for result.json and exports

	// Behavior
	UseBrowser bool   `json:"use_browser,omitempty"` // Use headless browser for job URLs
	Verbose    bool   `json:"verbose,omitempty"`     // Print detailed debug information
	LogFormat  string `json:"log_format,omitempty"`  // text or json

	// Optional infrastructure
	RedisURL    string `json:"redis_url,omitempty"`    // Result cache
	CacheTTL    string `json:"cache_ttl,omitempty"`    // Result cache entry lifetime
	DatabaseURL string `json:"database_url,omitempty"` // Generation audit log

	// Access gate
	AccessKeyHash string `json:"access_key_hash,omitempty"` // bcrypt hash of the access key
}

// Defaults returns the built-in configuration.
func Defaults() Config {
	return Config{
		Provider:   string(llm.ProviderOpenAI),
		ModelTier:  string(llm.TierStandard),
		Timeout:    llm.DefaultTimeout.String(),
		Language:   string(types.DefaultLanguage),
		Creativity: "medium",
		Formats:    []string{string(types.ExportTXT), string(types.ExportPDF), string(types.ExportDOCX)},
		OutputDir:  "output",
		LogFormat:  "text",
		CacheTTL:   "24h",
	}
}

// LoadConfig decodes one JSON config file without applying env or defaults.
func LoadConfig(path string) (*Config, error) {
	if path == "" {
		return nil, fmt.Errorf("config path is empty")
	}

	if !filepath.IsAbs(path) {
		cwd, err := os.Getwd()
		if err != nil {
			return nil, fmt.Errorf("failed to get current directory: %w", err)
		}
		path = filepath.Join(cwd, path)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
	}

	var cfg Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config %s: %w", path, err)
	}

	return &cfg, nil
}

// Load reads the config file at path, or DefaultPath when path is empty and
// that file exists, applies environment overrides and fills defaults.
func Load(path string) (*Config, error) {
	cfg := &Config{}
	if path == "" {
		if _, err := os.Stat(DefaultPath); err == nil {
			path = DefaultPath
		}
	}
	if path != "" {
		loaded, err := LoadConfig(path)
		if err != nil {
			return nil, err
		}
		cfg = loaded
	}

	cfg.ApplyEnv()
	merged := cfg.MergeWithDefaults(Defaults())
	if err := merged.Validate(); err != nil {
		return nil, err
	}
	return &merged, nil
}

// Validate checks enum and range fields. The API key is checked later by
// llm.Config.Validate because flags may still change the provider.
func (c *Config) Validate() error {
	if c.Provider != "" {
		if _, err := llm.DefaultConfigFor(llm.Provider(c.Provider)); err != nil {
			return fmt.Errorf("config error: %w", err)
		}
	}
	if _, err := llm.ParseModelTier(c.ModelTier); err != nil {
		return fmt.Errorf("config error: %w", err)
	}
	if c.Language != "" {
		if _, err := types.ParseLanguage(c.Language); err != nil {
			return fmt.Errorf("config error: %w", err)
		}
	}
	if c.Creativity != "" {
		v, err := types.ParseCreativity(c.Creativity)
		if err != nil {
			return fmt.Errorf("config error: %w", err)
		}
		if v < types.MinCreativity || v > types.MaxCreativity {
			return fmt.Errorf("config error: 'creativity' must be within [%.1f, %.1f]", types.MinCreativity, types.MaxCreativity)
		}
	}
	for _, f := range c.Formats {
		if _, ok := types.ParseExportFormat(f); !ok {
			return fmt.Errorf("config error: unsupported export format %q", f)
		}
	}

	// Validate numeric ranges
	if c.MaxOutputTokens < 0 {
		return fmt.Errorf("config error: 'max_output_tokens' must be non-negative")
	}
	if c.MaxResponseChars < 0 {
		return fmt.Errorf("config error: 'max_response_chars' must be non-negative")
	}
	if _, err := c.TimeoutDuration(); err != nil {
		return err
	}
	if _, err := c.CacheTTLDuration(); err != nil {
		return err
	}

	switch strings.ToLower(c.LogFormat) {
	case "", "text", "json":
	default:
		return fmt.Errorf("config error: 'log_format' must be text or json")
	}

	return nil
}

// MergeWithDefaults returns a new Config with empty fields filled from defaults.
func (c *Config) MergeWithDefaults(defaults Config) Config {
	result := *c

	fillString(&result.Provider, defaults.Provider)
	fillString(&result.Model, defaults.Model)
	fillString(&result.ModelTier, defaults.ModelTier)
	fillString(&result.APIKey, defaults.APIKey)
	fillString(&result.BaseURL, defaults.BaseURL)
	fillString(&result.Timeout, defaults.Timeout)
	fillString(&result.Language, defaults.Language)
	fillString(&result.Creativity, defaults.Creativity)
	fillString(&result.OutputDir, defaults.OutputDir)
	fillString(&result.LogFormat, defaults.LogFormat)
	fillString(&result.RedisURL, defaults.RedisURL)
	fillString(&result.CacheTTL, defaults.CacheTTL)
	fillString(&result.DatabaseURL, defaults.DatabaseURL)
	fillString(&result.AccessKeyHash, defaults.AccessKeyHash)

	if result.MaxOutputTokens == 0 {
		result.MaxOutputTokens = defaults.MaxOutputTokens
	}
	if result.MaxResponseChars == 0 {
		result.MaxResponseChars = defaults.MaxResponseChars
	}

	if len(result.Formats) == 0 {
		result.Formats = append([]string(nil), defaults.Formats...)
	}

	return result
}

func fillString(dst *string, def string) {
	if *dst == "" {
		*dst = def
	}
}

// TimeoutDuration parses Timeout. Empty means llm.DefaultTimeout.
func (c *Config) TimeoutDuration() (time.Duration, error) {
	return parseDuration("timeout", c.Timeout, llm.DefaultTimeout)
}

// CacheTTLDuration parses CacheTTL. Empty means no expiry.
func (c *Config) CacheTTLDuration() (time.Duration, error) {
	return parseDuration("cache_ttl", c.CacheTTL, 0)
}

func parseDuration(name, value string, def time.Duration) (time.Duration, error) {
	if value == "" {
		return def, nil
	}
	d, err := time.ParseDuration(value)
	if err != nil || d < 0 {
		return 0, fmt.Errorf("config error: '%s' must be a non-negative duration such as 90s: %q", name, value)
	}
	return d, nil
}

// LLMConfig builds the generation client configuration.
func (c *Config) LLMConfig() (*llm.Config, error) {
	out, err := llm.DefaultConfigFor(llm.Provider(c.Provider))
	if err != nil {
		return nil, err
	}
	tier, err := llm.ParseModelTier(c.ModelTier)
	if err != nil {
		return nil, err
	}
	out.Tier = tier
	if c.Model != "" {
		out = out.WithModel(tier, c.Model)
	}
	timeout, err := c.TimeoutDuration()
	if err != nil {
		return nil, err
	}

	out.APIKey = c.APIKey
	out.BaseURL = c.BaseURL
	out.Timeout = timeout
	if c.MaxOutputTokens > 0 {
		out.MaxOutputTokens = c.MaxOutputTokens
	}
	if c.MaxResponseChars > 0 {
		out.MaxResponseChars = c.MaxResponseChars
	}
	return out, nil
}
