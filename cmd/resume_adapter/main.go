// Package main provides the resume_adapter command line interface.
package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/jonathan/resume-adapter/internal/config"
	"github.com/jonathan/resume-adapter/internal/llm"
	"github.com/jonathan/resume-adapter/internal/observability"
	"github.com/jonathan/resume-adapter/internal/pipeline"
)

// generator is a pipeline generator that owns a provider client.
type generator interface {
	pipeline.Generator
	Close() error
}

// generatorFactory builds the generator for one invocation.
type generatorFactory func(ctx context.Context, cfg *llm.Config, logger *slog.Logger) (generator, error)

func newLLMGenerator(ctx context.Context, cfg *llm.Config, logger *slog.Logger) (generator, error) {
	gen, err := llm.NewGenerator(ctx, cfg, logger)
	if err != nil {
		return nil, err
	}
	return gen, nil
}

// app carries the state shared by all subcommands of one process.
type app struct {
	configPath string
	verbose    bool
	logFormat  string

	cfg          *config.Config
	logger       *slog.Logger
	newGenerator generatorFactory
}

func newApp() *app {
	return &app{newGenerator: newLLMGenerator}
}

// load reads configuration and builds the logger. Flags win over the config file.
func (a *app) load(cmd *cobra.Command) error {
	cfg, err := config.Load(a.configPath)
	if err != nil {
		return err
	}
	if a.verbose {
		cfg.Verbose = true
	}
	if cmd.Flags().Changed("log-format") {
		cfg.LogFormat = a.logFormat
	}
	a.cfg = cfg
	a.logger = observability.NewLogger(cmd.ErrOrStderr(), cfg.Verbose, cfg.LogFormat)
	return nil
}

func newRootCmd(a *app) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "resume_adapter",
		Short: "Adapt a resume to a job description and write a matching cover letter",
		Long: "resume_adapter extracts the text of a PDF or DOCX resume, asks an LLM to adapt it to a job " +
			"description under weighted style, flair and audience directives, splits the answer into an " +
			"adapted resume and a cover letter, and exports both as txt, pdf and docx.",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return a.load(cmd)
		},
	}

	rootCmd.PersistentFlags().StringVar(&a.configPath, "config", "", "Path to JSON config file (default "+config.DefaultPath+" if present)")
	rootCmd.PersistentFlags().BoolVarP(&a.verbose, "verbose", "v", false, "Print detailed debug information")
	rootCmd.PersistentFlags().StringVar(&a.logFormat, "log-format", observability.FormatText, "Log format: text or json")

	rootCmd.AddCommand(
		newGenerateCmd(a),
		newExtractCmd(a),
		newCompileCmd(a),
		newExportCmd(a),
		newDiffCmd(a),
		newDirectivesCmd(a),
		newHashKeyCmd(a),
		newHistoryCmd(a),
	)
	return rootCmd
}

func run(args []string, stdout, stderr io.Writer) error {
	rootCmd := newRootCmd(newApp())
	rootCmd.SetArgs(args)
	rootCmd.SetOut(stdout)
	rootCmd.SetErr(stderr)
	return rootCmd.Execute()
}

func main() {
	// Load .env file if it exists
	_ = godotenv.Load()

	if err := run(os.Args[1:], os.Stdout, os.Stderr); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
