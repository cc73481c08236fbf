package llm

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/jonathan/resume-adapter/internal/directives"
	"github.com/jonathan/resume-adapter/internal/prompts"
	"github.com/jonathan/resume-adapter/internal/sections"
	"github.com/jonathan/resume-adapter/internal/types"
)

// Generator turns a GenerationRequest into the raw generator text.
type Generator struct {
	completer Completer
	config    *Config
	logger    *slog.Logger
}

// NewGenerator builds a provider client from config.
func NewGenerator(ctx context.Context, config *Config, logger *slog.Logger) (*Generator, error) {
	if config == nil {
		return nil, fmt.Errorf("llm config is nil")
	}
	if err := config.Validate(); err != nil {
		return nil, err
	}
	completer, err := NewCompleter(ctx, config)
	if err != nil {
		return nil, err
	}
	return NewGeneratorWithCompleter(completer, config, logger), nil
}

// NewGeneratorWithCompleter wires an existing Completer (used by tests and custom providers).
func NewGeneratorWithCompleter(completer Completer, config *Config, logger *slog.Logger) *Generator {
	if logger == nil {
		logger = slog.Default()
	}
	return &Generator{completer: completer, config: config, logger: logger}
}

// Provider returns the configured provider.
func (g *Generator) Provider() Provider {
	return g.config.Provider
}

// Model returns the model name used for generation.
func (g *Generator) Model() string {
	return g.config.Model()
}

// Close releases the provider client.
func (g *Generator) Close() error {
	return g.completer.Close()
}

// BuildPrompt assembles the system and user instructions for a request.
// The user part ends with the compiled directives, whose final line is the
// language directive.
func BuildPrompt(req *types.GenerationRequest) (Prompt, error) {
	set, err := prompts.Load(prompts.Generation)
	if err != nil {
		return Prompt{}, err
	}
	system, err := set.Template(prompts.KeySystem)
	if err != nil {
		return Prompt{}, err
	}
	user, err := set.Template(prompts.KeyUser)
	if err != nil {
		return Prompt{}, err
	}

	job := strings.TrimSpace(req.JobDescription)
	if job == "" {
		if job, err = set.Template(prompts.KeyNoJobDescription); err != nil {
			return Prompt{}, err
		}
	}

	markers := map[string]string{
		"ResumeMarker":      sections.ResumeMarker,
		"CoverLetterMarker": sections.CoverLetterMarker,
	}
	data := map[string]string{
		"JobDescription": job,
		"SourceText":     strings.TrimSpace(req.SourceText),
		"Directives":     directives.Compile(req.Directives, req.CustomInstructions, req.TargetLanguage),
	}
	for k, v := range markers {
		data[k] = v
	}

	return Prompt{
		System: prompts.Format(system, markers),
		User:   prompts.Format(user, data),
	}, nil
}

// Generate validates the request, performs exactly one blocking call under
// the configured timeout and returns the trimmed response text. Failures are
// never retried.
func (g *Generator) Generate(ctx context.Context, req *types.GenerationRequest) (string, error) {
	if req == nil {
		return "", fmt.Errorf("generation request is nil")
	}
	if err := req.Validate(); err != nil {
		return "", err
	}

	prompt, err := BuildPrompt(req)
	if err != nil {
		return "", fmt.Errorf("failed to build prompt: %w", err)
	}

	model := g.config.Model()
	opts := CompletionOptions{
		Model:       model,
		Temperature: req.Creativity,
		MaxTokens:   g.config.OutputTokens(),
	}

	callCtx, cancel := context.WithTimeout(ctx, g.config.RequestTimeout())
	defer cancel()

	start := time.Now()
	g.logger.Debug("sending generation request",
		slog.String("provider", string(g.config.Provider)),
		slog.String("model", model),
		slog.Int("max_tokens", opts.MaxTokens),
		slog.Float64("temperature", opts.Temperature),
		slog.Int("prompt_chars", len(prompt.System)+len(prompt.User)),
	)

	text, err := g.completer.Complete(callCtx, prompt, opts)
	if err != nil {
		var unavailable *UnavailableError
		if errors.As(err, &unavailable) {
			return "", err
		}
		return "", &UnavailableError{Provider: g.config.Provider, Model: model, Cause: err}
	}

	text = CleanResponse(text)
	if text == "" {
		return "", &EmptyResponseError{Provider: g.config.Provider, Model: model}
	}

	if limit := g.config.MaxResponseChars; limit > 0 {
		if truncated, ok := TruncateRunes(text, limit); ok {
			g.logger.Warn("generation response truncated",
				slog.Int("limit_chars", limit),
				slog.Int("response_chars", len([]rune(text))),
			)
			text = truncated
		}
	}

	g.logger.Debug("generation response received",
		slog.Duration("elapsed", time.Since(start)),
		slog.Int("response_chars", len(text)),
	)
	return text, nil
}
