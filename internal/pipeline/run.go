// Package pipeline provides the high-level orchestration of one generation:
// extract, compile, generate, parse, diff and export.
package pipeline

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/jonathan/resume-adapter/internal/cache"
	"github.com/jonathan/resume-adapter/internal/db"
	"github.com/jonathan/resume-adapter/internal/diffing"
	"github.com/jonathan/resume-adapter/internal/extraction"
	"github.com/jonathan/resume-adapter/internal/llm"
	"github.com/jonathan/resume-adapter/internal/rendering"
	"github.com/jonathan/resume-adapter/internal/sections"
	"github.com/jonathan/resume-adapter/internal/types"
)

// Step names reported through ProgressCallback.
const (
	StepExtract  = "extract"
	StepGenerate = "generate"
	StepParse    = "parse"
	StepDiff     = "diff"
	StepExport   = "export"
)

// ProgressEvent represents a progress update during pipeline execution
type ProgressEvent struct {
	Step    string `json:"step"`
	Message string `json:"message"`
	RunID   string `json:"run_id,omitempty"`
}

// ProgressCallback is called when pipeline progress occurs
type ProgressCallback func(event ProgressEvent)

// Generator produces the raw generation text for a request.
type Generator interface {
	Generate(ctx context.Context, req *types.GenerationRequest) (string, error)
	Provider() llm.Provider
	Model() string
}

// ResponseCache stores raw generation text by request key.
type ResponseCache interface {
	Get(ctx context.Context, key string) (string, bool, error)
	Set(ctx context.Context, key, value string) error
}

// RunRecorder persists one audit row per invocation.
type RunRecorder interface {
	RecordRun(ctx context.Context, input *db.RunInput) (uuid.UUID, error)
}

// Input is everything one invocation needs.
type Input struct {
	Document           []byte
	MediaType          string // MIME string of Document
	JobDescription     string
	Language           types.Language
	Directives         types.DirectiveSet
	CustomInstructions []string
	Creativity         float64
	Formats            []string // export formats; empty skips export
	SkipDiff           bool
}

// Result holds every output of one invocation.
type Result struct {
	ID         uuid.UUID
	Source     *types.SourceDocument
	Request    *types.GenerationRequest
	Generation *types.GenerationResult
	Diff       string
	Added      int
	Removed    int
	Artifacts  []*types.ExportArtifact
	Provider   string
	Model      string
	CacheHit   bool
	Duration   time.Duration
}

// Pipeline runs generations. It holds no per-invocation state.
type Pipeline struct {
	generator  Generator
	cache      ResponseCache
	recorder   RunRecorder
	logger     *slog.Logger
	onProgress ProgressCallback
}

// Option configures a Pipeline.
type Option func(*Pipeline)

// WithCache enables the response cache.
func WithCache(c ResponseCache) Option {
	return func(p *Pipeline) { p.cache = c }
}

// WithRecorder enables the audit log.
func WithRecorder(r RunRecorder) Option {
	return func(p *Pipeline) { p.recorder = r }
}

// WithLogger sets the structured logger.
func WithLogger(l *slog.Logger) Option {
	return func(p *Pipeline) { p.logger = l }
}

// WithProgress sets the progress callback.
func WithProgress(cb ProgressCallback) Option {
	return func(p *Pipeline) { p.onProgress = cb }
}

// New returns a pipeline around generator.
func New(generator Generator, opts ...Option) *Pipeline {
	p := &Pipeline{generator: generator, logger: slog.Default()}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// emitProgress calls the progress callback if configured
func (p *Pipeline) emitProgress(runID uuid.UUID, step, message string) {
	if p.onProgress != nil {
		p.onProgress(ProgressEvent{Step: step, Message: message, RunID: runID.String()})
	}
}

// Run executes one invocation. Generation failures are returned unchanged so
// callers can match them with errors.As; a degraded parse is not an error.
func (p *Pipeline) Run(ctx context.Context, in Input) (res *Result, err error) {
	start := time.Now()
	res = &Result{
		ID:       uuid.New(),
		Provider: string(p.generator.Provider()),
		Model:    p.generator.Model(),
	}
	logger := p.logger.With(slog.String("run_id", res.ID.String()))

	defer func() {
		res.Duration = time.Since(start)
		p.record(ctx, logger, res, err)
		if err != nil {
			res = nil
		}
	}()

	// Step 1: extract
	doc, err := extraction.Extract(in.Document, in.MediaType)
	if err != nil {
		return res, fmt.Errorf("document extraction failed: %w", err)
	}
	res.Source = doc
	logger.Info("extracted source document",
		slog.String("media_type", string(doc.MediaType)),
		slog.Int("lines", len(doc.Lines)))
	p.emitProgress(res.ID, StepExtract, fmt.Sprintf("Extracted %d lines from %s", len(doc.Lines), doc.MediaType))

	// Step 2: build and validate the request
	language := in.Language
	if language == "" {
		language = types.DefaultLanguage
	}
	req := &types.GenerationRequest{
		SourceText:         doc.Text(),
		JobDescription:     in.JobDescription,
		TargetLanguage:     language,
		Directives:         in.Directives,
		CustomInstructions: in.CustomInstructions,
		Creativity:         in.Creativity,
	}
	if err := req.Validate(); err != nil {
		return res, err
	}
	res.Request = req

	// Step 3: generate (or reuse a cached response)
	raw, err := p.generate(ctx, logger, res, req)
	if err != nil {
		return res, err
	}

	// Step 4: parse
	res.Generation = sections.Parse(raw)
	if res.Generation.Degraded {
		logger.Warn("generation ignored section markers, using degraded result")
	}
	p.emitProgress(res.ID, StepParse, parseMessage(res.Generation))

	// Step 5: diff
	if !in.SkipDiff {
		res.Diff = diffing.Unified(doc.Lines, splitLines(res.Generation.Resume()), diffing.DefaultOptions())
		res.Added, res.Removed = diffing.Stats(res.Diff)
		p.emitProgress(res.ID, StepDiff, fmt.Sprintf("%d lines added, %d removed", res.Added, res.Removed))
	}

	// Step 6: export
	if len(in.Formats) > 0 {
		artifacts, err := rendering.RenderAll(ctx, res.Generation.Sections, in.Formats)
		if err != nil {
			return res, fmt.Errorf("export failed: %w", err)
		}
		res.Artifacts = artifacts
		p.emitProgress(res.ID, StepExport, fmt.Sprintf("Rendered %d artifacts", len(artifacts)))
	}

	logger.Info("generation run completed",
		slog.Bool("degraded", res.Generation.Degraded),
		slog.Bool("cache_hit", res.CacheHit),
		slog.Duration("duration", time.Since(start)))
	return res, nil
}

func (p *Pipeline) generate(ctx context.Context, logger *slog.Logger, res *Result, req *types.GenerationRequest) (string, error) {
	var key string
	if p.cache != nil {
		key = cache.Key(res.Provider, res.Model, req)
		raw, ok, err := p.cache.Get(ctx, key)
		switch {
		case err != nil:
			logger.Warn("response cache lookup failed", slog.Any("error", err))
		case ok:
			res.CacheHit = true
			logger.Debug("response cache hit", slog.String("key", key))
			p.emitProgress(res.ID, StepGenerate, "Reused cached generation")
			return raw, nil
		}
	}

	p.emitProgress(res.ID, StepGenerate, fmt.Sprintf("Requesting generation from %s (%s)", res.Provider, res.Model))
	raw, err := p.generator.Generate(ctx, req)
	if err != nil {
		return "", err
	}

	if p.cache != nil {
		if err := p.cache.Set(ctx, key, raw); err != nil {
			logger.Warn("response cache store failed", slog.Any("error", err))
		}
	}
	return raw, nil
}

// record writes the audit row. Audit failures never fail the run.
func (p *Pipeline) record(ctx context.Context, logger *slog.Logger, res *Result, runErr error) {
	if p.recorder == nil {
		return
	}

	input := &db.RunInput{
		ID:       res.ID,
		Provider: res.Provider,
		Model:    res.Model,
		CacheHit: res.CacheHit,
		Duration: res.Duration,
		Err:      runErr,
	}
	if res.Request != nil {
		input.Fingerprint = cache.Key(res.Provider, res.Model, res.Request)
		input.Language = string(res.Request.TargetLanguage)
		input.DirectiveCount = res.Request.Directives.Len()
		input.Creativity = res.Request.Creativity
		input.SourceChars = len(res.Request.SourceText)
	}
	if res.Generation != nil {
		input.Degraded = res.Generation.Degraded
		input.ResponseChars = len(res.Generation.Raw)
	}

	// The audit write outlives a cancelled invocation context.
	if _, err := p.recorder.RecordRun(context.WithoutCancel(ctx), input); err != nil {
		logger.Warn("failed to record generation run", slog.Any("error", err))
	}
}

func parseMessage(g *types.GenerationResult) string {
	if g.Degraded {
		return "Section markers missing or out of order; whole response used as resume"
	}
	return "Parsed resume and cover letter sections"
}

func splitLines(s string) []string {
	if s == "" {
		return nil
	}
	return strings.Split(s, "\n")
}
