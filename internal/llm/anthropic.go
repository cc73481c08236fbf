package llm

import (
	"context"
	"strings"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"
)

// anthropicMaxTemperature is the upper bound the Messages API accepts.
const anthropicMaxTemperature = 1.0

// AnthropicClient implements Completer for Claude models.
type AnthropicClient struct {
	client anthropic.Client
}

// NewAnthropicClient creates a new Anthropic client. SDK retries are disabled.
func NewAnthropicClient(config *Config) *AnthropicClient {
	opts := []option.RequestOption{
		option.WithAPIKey(config.APIKey),
		option.WithMaxRetries(0),
	}
	if config.BaseURL != "" {
		opts = append(opts, option.WithBaseURL(config.BaseURL))
	}
	return &AnthropicClient{client: anthropic.NewClient(opts...)}
}

// Complete sends one Messages API request. Temperatures above 1.0 are clamped.
func (c *AnthropicClient) Complete(ctx context.Context, prompt Prompt, opts CompletionOptions) (string, error) {
	temperature := opts.Temperature
	if temperature > anthropicMaxTemperature {
		temperature = anthropicMaxTemperature
	}

	msg, err := c.client.Messages.New(ctx, anthropic.MessageNewParams{
		Model:     anthropic.Model(opts.Model),
		MaxTokens: int64(opts.MaxTokens),
		System: []anthropic.TextBlockParam{
			{Text: prompt.System},
		},
		Messages: []anthropic.MessageParam{
			anthropic.NewUserMessage(anthropic.NewTextBlock(prompt.User)),
		},
		Temperature: anthropic.Float(temperature),
	})
	if err != nil {
		return "", err
	}

	var parts []string
	for _, block := range msg.Content {
		if block.Type == "text" {
			parts = append(parts, block.Text)
		}
	}
	return strings.Join(parts, ""), nil
}

// Close is a no-op; the HTTP client needs no teardown.
func (c *AnthropicClient) Close() error {
	return nil
}
