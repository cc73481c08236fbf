package llm

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/resume-adapter/internal/sections"
	"github.com/jonathan/resume-adapter/internal/types"
)

type stubCompleter struct {
	response string
	err      error
	delay    time.Duration
	calls    int
	prompt   Prompt
	opts     CompletionOptions
}

func (s *stubCompleter) Complete(ctx context.Context, prompt Prompt, opts CompletionOptions) (string, error) {
	s.calls++
	s.prompt = prompt
	s.opts = opts
	if s.delay > 0 {
		select {
		case <-time.After(s.delay):
		case <-ctx.Done():
			return "", ctx.Err()
		}
	}
	return s.response, s.err
}

func (s *stubCompleter) Close() error { return nil }

func testConfig() *Config {
	config := DefaultConfig()
	config.APIKey = "sk-test"
	return config
}

func testRequest() *types.GenerationRequest {
	return &types.GenerationRequest{
		SourceText:     "I am a cat herder with 5 years experience.",
		JobDescription: "Senior cat herder wanted.",
		TargetLanguage: types.LanguageFrench,
		Directives: types.NewDirectiveSet(
			types.Directive{Label: "Storytelling", Weight: types.WeightMedium, Category: types.CategoryStyle},
		),
		CustomInstructions: []string{"Mention patience"},
		Creativity:         types.CreativityHigh,
	}
}

func TestBuildPrompt(t *testing.T) {
	prompt, err := BuildPrompt(testRequest())
	require.NoError(t, err)

	assert.Contains(t, prompt.System, sections.ResumeMarker)
	assert.Contains(t, prompt.System, sections.CoverLetterMarker)
	assert.NotContains(t, prompt.System, "{{.")

	assert.Contains(t, prompt.User, "Senior cat herder wanted.")
	assert.Contains(t, prompt.User, "I am a cat herder with 5 years experience.")
	assert.Contains(t, prompt.User, "- Storytelling (importance: medium)")
	assert.Contains(t, prompt.User, "- Mention patience")
	assert.True(t, strings.HasSuffix(prompt.User, "Produce the output entirely in French, regardless of the input language."))
}

func TestBuildPrompt_NoJobDescription(t *testing.T) {
	req := testRequest()
	req.JobDescription = "  "
	prompt, err := BuildPrompt(req)
	require.NoError(t, err)
	assert.Contains(t, prompt.User, "No job description was provided")
}

func TestGenerate_Success(t *testing.T) {
	stub := &stubCompleter{response: "\n" + sections.ResumeMarker + "\nCV\n" + sections.CoverLetterMarker + "\nLettre\n"}
	config := testConfig()
	config.MaxOutputTokens = 10000
	gen := NewGeneratorWithCompleter(stub, config, nil)

	text, err := gen.Generate(context.Background(), testRequest())
	require.NoError(t, err)

	assert.Equal(t, 1, stub.calls)
	assert.Equal(t, sections.ResumeMarker+"\nCV\n"+sections.CoverLetterMarker+"\nLettre", text)
	assert.Equal(t, "gpt-4o-mini", stub.opts.Model)
	assert.Equal(t, HardMaxOutputTokens, stub.opts.MaxTokens)
	assert.InDelta(t, types.CreativityHigh, stub.opts.Temperature, 1e-9)
}

func TestGenerate_InvalidRequestMakesNoCall(t *testing.T) {
	stub := &stubCompleter{response: "x"}
	gen := NewGeneratorWithCompleter(stub, testConfig(), nil)

	req := testRequest()
	req.TargetLanguage = "Klingon"
	_, err := gen.Generate(context.Background(), req)

	var verr *types.ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, 0, stub.calls)

	_, err = gen.Generate(context.Background(), nil)
	assert.Error(t, err)
}

func TestGenerate_FailureIsUnavailable(t *testing.T) {
	cause := errors.New("connection refused")
	stub := &stubCompleter{err: cause}
	gen := NewGeneratorWithCompleter(stub, testConfig(), nil)

	_, err := gen.Generate(context.Background(), testRequest())

	var unavailable *UnavailableError
	require.ErrorAs(t, err, &unavailable)
	assert.Equal(t, ProviderOpenAI, unavailable.Provider)
	assert.Equal(t, "gpt-4o-mini", unavailable.Model)
	assert.ErrorIs(t, err, cause)
	assert.Equal(t, 1, stub.calls, "no automatic retry")
}

func TestGenerate_Timeout(t *testing.T) {
	stub := &stubCompleter{response: "late", delay: time.Second}
	config := testConfig()
	config.Timeout = 20 * time.Millisecond
	gen := NewGeneratorWithCompleter(stub, config, nil)

	_, err := gen.Generate(context.Background(), testRequest())

	var unavailable *UnavailableError
	require.ErrorAs(t, err, &unavailable)
	assert.ErrorIs(t, err, context.DeadlineExceeded)
}

func TestGenerate_EmptyResponse(t *testing.T) {
	for _, blank := range []string{"", "   \n\t", "```\n```"} {
		stub := &stubCompleter{response: blank}
		gen := NewGeneratorWithCompleter(stub, testConfig(), nil)

		_, err := gen.Generate(context.Background(), testRequest())

		var empty *EmptyResponseError
		require.ErrorAs(t, err, &empty, "response %q", blank)
		assert.Equal(t, ProviderOpenAI, empty.Provider)
	}
}

func TestGenerate_TruncatesOversizedResponse(t *testing.T) {
	var logs bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&logs, nil))
	stub := &stubCompleter{response: strings.Repeat("é", 50)}
	config := testConfig()
	config.MaxResponseChars = 10
	gen := NewGeneratorWithCompleter(stub, config, logger)

	text, err := gen.Generate(context.Background(), testRequest())
	require.NoError(t, err)

	assert.Equal(t, strings.Repeat("é", 10), text)
	assert.Contains(t, logs.String(), "generation response truncated")
}

func TestNewGenerator_RequiresAPIKey(t *testing.T) {
	_, err := NewGenerator(context.Background(), DefaultConfig(), nil)
	assert.Error(t, err)

	_, err = NewGenerator(context.Background(), nil, nil)
	assert.Error(t, err)
}

func TestNewGenerator_OpenAI(t *testing.T) {
	gen, err := NewGenerator(context.Background(), testConfig(), nil)
	require.NoError(t, err)
	defer func() { _ = gen.Close() }()

	assert.Equal(t, ProviderOpenAI, gen.Provider())
	assert.Equal(t, "gpt-4o-mini", gen.Model())
}
