package main

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/jonathan/resume-adapter/internal/access"
	"github.com/jonathan/resume-adapter/internal/cache"
	"github.com/jonathan/resume-adapter/internal/config"
	"github.com/jonathan/resume-adapter/internal/db"
	"github.com/jonathan/resume-adapter/internal/extraction"
	"github.com/jonathan/resume-adapter/internal/ingestion"
	"github.com/jonathan/resume-adapter/internal/observability"
	"github.com/jonathan/resume-adapter/internal/pipeline"
	"github.com/jonathan/resume-adapter/internal/types"
)

// EnvAccessKey supplies the access key when --access-key is not given.
const EnvAccessKey = "RESUME_ADAPTER_ACCESS_KEY"

type generateOptions struct {
	resume     string
	job        string
	jobText    string
	jobURL     string
	language   string
	creativity string
	formats    []string
	out        string
	preview    bool
	noDiff     bool
	accessKey  string
	provider   string
	tier       string
	model      string
	useBrowser bool
	directives directiveFlags
}

func newGenerateCmd(a *app) *cobra.Command {
	opts := &generateOptions{}
	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Generate an adapted resume and cover letter",
		Long: "Extract the resume text, compile the directives, call the configured LLM once, split the answer " +
			"into resume and cover letter, and write result.json plus the requested exports.",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runGenerate(cmd, a, opts)
		},
	}

	cmd.Flags().StringVarP(&opts.resume, "resume", "r", "", "Path to the resume (.pdf or .docx) (required)")
	cmd.Flags().StringVar(&opts.job, "job", "", "Path to a job description text file")
	cmd.Flags().StringVar(&opts.jobText, "job-text", "", "Job description text")
	cmd.Flags().StringVar(&opts.jobURL, "job-url", "", "URL of a job posting")
	cmd.Flags().StringVarP(&opts.language, "language", "l", "", "Output language (English, Dutch, Spanish, French, German, Chinese, Japanese, Russian)")
	cmd.Flags().StringVarP(&opts.creativity, "creativity", "c", "", "Creativity: low, medium, high, very-high or a number in [0, 1.5]")
	cmd.Flags().StringSliceVarP(&opts.formats, "format", "f", nil, "Export formats: txt, pdf, docx (default from config)")
	cmd.Flags().StringVarP(&opts.out, "out", "o", "", "Output directory (default from config)")
	cmd.Flags().BoolVar(&opts.preview, "preview", false, "Also write an HTML preview")
	cmd.Flags().BoolVar(&opts.noDiff, "no-diff", false, "Skip the resume diff")
	cmd.Flags().StringVar(&opts.accessKey, "access-key", "", "Access key when an access key hash is configured (or "+EnvAccessKey+")")
	cmd.Flags().StringVar(&opts.provider, "provider", "", "LLM provider: openai, gemini or anthropic")
	cmd.Flags().StringVar(&opts.tier, "model-tier", "", "Model tier: lite, standard or advanced")
	cmd.Flags().StringVar(&opts.model, "model", "", "Explicit model name")
	cmd.Flags().BoolVar(&opts.useBrowser, "use-browser", false, "Render --job-url in a headless browser when static HTML has too little text")
	opts.directives.register(cmd)

	_ = cmd.MarkFlagRequired("resume")
	cmd.MarkFlagsMutuallyExclusive("job", "job-text", "job-url")
	return cmd
}

func runGenerate(cmd *cobra.Command, a *app, opts *generateOptions) error {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	cfg := *a.cfg
	logger := a.logger
	printer := observability.NewPrinter(cmd.OutOrStdout())

	if err := checkAccess(cfg.AccessKeyHash, opts.accessKey); err != nil {
		return err
	}

	// Flags override config values
	if opts.provider != "" {
		cfg.Provider = opts.provider
		if opts.provider != a.cfg.Provider {
			cfg.APIKey = os.Getenv(config.ProviderKeyEnv(opts.provider))
		}
	}
	if opts.tier != "" {
		cfg.ModelTier = opts.tier
	}
	if opts.model != "" {
		cfg.Model = opts.model
	}
	if opts.language != "" {
		cfg.Language = opts.language
	}
	if opts.creativity != "" {
		cfg.Creativity = opts.creativity
	}
	if opts.out != "" {
		cfg.OutputDir = opts.out
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	language, err := types.ParseLanguage(cfg.Language)
	if err != nil {
		return err
	}
	creativity, err := types.ParseCreativity(cfg.Creativity)
	if err != nil {
		return err
	}
	formats, err := parseFormats(opts.formats, cfg.Formats)
	if err != nil {
		return err
	}
	set, err := opts.directives.set()
	if err != nil {
		return err
	}

	raw, err := os.ReadFile(opts.resume)
	if err != nil {
		return fmt.Errorf("failed to read resume: %w", err)
	}

	jobDescription, err := loadJobDescription(ctx, a, opts, cfg.UseBrowser || opts.useBrowser)
	if err != nil {
		return err
	}

	llmCfg, err := cfg.LLMConfig()
	if err != nil {
		return err
	}
	if err := llmCfg.Validate(); err != nil {
		return fmt.Errorf("generation client configuration: %w", err)
	}
	gen, err := a.newGenerator(ctx, llmCfg, logger)
	if err != nil {
		return err
	}
	defer func() { _ = gen.Close() }()

	pipelineOpts := []pipeline.Option{pipeline.WithLogger(logger)}
	if cfg.RedisURL != "" {
		ttl, _ := cfg.CacheTTLDuration()
		c, err := cache.Open(ctx, cfg.RedisURL, ttl)
		if err != nil {
			logger.Warn("response cache disabled", "error", err)
		} else {
			defer func() { _ = c.Close() }()
			pipelineOpts = append(pipelineOpts, pipeline.WithCache(c))
		}
	}
	if cfg.DatabaseURL != "" {
		database, err := connectAuditLog(ctx, cfg.DatabaseURL)
		if err != nil {
			logger.Warn("audit log disabled", "error", err)
		} else {
			defer database.Close()
			pipelineOpts = append(pipelineOpts, pipeline.WithRecorder(database))
		}
	}
	if cfg.Verbose {
		pipelineOpts = append(pipelineOpts, pipeline.WithProgress(func(e pipeline.ProgressEvent) {
			fmt.Fprintf(cmd.OutOrStdout(), "[%s] %s\n", e.Step, e.Message)
		}))
	}

	res, err := pipeline.New(gen, pipelineOpts...).Run(ctx, pipeline.Input{
		Document:           raw,
		MediaType:          extraction.MediaTypeForPath(opts.resume),
		JobDescription:     jobDescription,
		Language:           language,
		Directives:         set,
		CustomInstructions: opts.directives.instructions,
		Creativity:         creativity,
		Formats:            formats,
		SkipDiff:           opts.noDiff,
	})
	if err != nil {
		return err
	}

	doc, err := pipeline.Write(res, pipeline.WriteOptions{Dir: cfg.OutputDir, Preview: opts.preview})
	if err != nil {
		return err
	}

	if cfg.Verbose {
		printer.PrintDocument(res.Source)
		printer.PrintRequest(res.Request)
		printer.PrintResult(res.Generation)
		if !opts.noDiff {
			printer.PrintDiffStats(res.Added, res.Removed)
		}
		paths := make(map[types.ExportFormat]string, len(doc.Artifacts))
		for _, artifact := range doc.Artifacts {
			paths[artifact.Format] = artifact.Path
		}
		printer.PrintArtifacts(paths)
	} else if res.Generation.Degraded {
		printer.PrintResult(res.Generation)
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Wrote %s and %d export(s) to %s\n", pipeline.ResultFileName, len(doc.Artifacts), cfg.OutputDir)
	return nil
}

// checkAccess enforces the optional access key.
func checkAccess(hash, key string) error {
	if hash == "" {
		return nil
	}
	if key == "" {
		key = os.Getenv(EnvAccessKey)
	}
	keyCfg, err := access.NewKeyConfig()
	if err != nil {
		return err
	}
	return access.New(hash, keyCfg).Check(key)
}

func loadJobDescription(ctx context.Context, a *app, opts *generateOptions, useBrowser bool) (string, error) {
	ing := ingestion.NewIngester(a.logger, useBrowser)

	var (
		jd  *ingestion.JobDescription
		err error
	)
	switch {
	case opts.jobURL != "":
		jd, err = ing.FromURL(ctx, opts.jobURL)
	case opts.job != "":
		jd, err = ing.FromFile(opts.job)
	case opts.jobText != "":
		jd, err = ing.FromText(opts.jobText)
	default:
		return "", nil
	}
	if err != nil {
		if errors.Is(err, ingestion.ErrEmptyJobDescription) {
			a.logger.Warn("job description is empty, generating without one")
			return "", nil
		}
		return "", fmt.Errorf("failed to load job description: %w", err)
	}
	a.logger.Debug("loaded job description", "source", jd.Source, "chars", len(jd.Text), "hash", jd.Hash)
	return jd.Text, nil
}

func connectAuditLog(ctx context.Context, databaseURL string) (*db.DB, error) {
	database, err := db.Connect(ctx, databaseURL)
	if err != nil {
		return nil, err
	}
	if err := database.Migrate(ctx); err != nil {
		database.Close()
		return nil, err
	}
	return database, nil
}
