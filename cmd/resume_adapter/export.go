package main

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/jonathan/resume-adapter/internal/pipeline"
	"github.com/jonathan/resume-adapter/internal/rendering"
	"github.com/jonathan/resume-adapter/internal/sections"
	"github.com/jonathan/resume-adapter/internal/types"
)

func newExportCmd(a *app) *cobra.Command {
	var (
		formats []string
		out     string
	)
	cmd := &cobra.Command{
		Use:   "export <result.json|response.txt>",
		Short: "Render saved sections to txt, pdf or docx",
		Long: "Read the sections from a result.json written by generate, or parse them from a raw text response " +
			"with section markers, and render the requested export formats.",
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			parsed, err := loadSections(args[0])
			if err != nil {
				return err
			}
			if parsed.Degraded {
				fmt.Fprintln(cmd.ErrOrStderr(), "Warning: section markers missing; exporting the whole text as the resume")
			}

			selected, err := parseFormats(formats, a.cfg.Formats)
			if err != nil {
				return err
			}
			artifacts, err := rendering.RenderAll(cmd.Context(), parsed.Sections, selected)
			if err != nil {
				return err
			}

			if out == "" {
				out = a.cfg.OutputDir
			}
			if err := os.MkdirAll(out, 0755); err != nil {
				return fmt.Errorf("failed to create output directory: %w", err)
			}
			for _, artifact := range artifacts {
				path := filepath.Join(out, rendering.FileName(artifact.Format))
				if err := os.WriteFile(path, artifact.Bytes, 0644); err != nil {
					return fmt.Errorf("failed to write %s: %w", path, err)
				}
				fmt.Fprintf(cmd.OutOrStdout(), "%s\n", path)
			}
			return nil
		},
	}
	cmd.Flags().StringSliceVarP(&formats, "format", "f", nil, "Export formats: txt, pdf, docx (default from config)")
	cmd.Flags().StringVarP(&out, "out", "o", "", "Output directory (default from config)")
	return cmd
}

// loadSections reads sections from result.json or parses a marker-delimited text.
func loadSections(path string) (*types.GenerationResult, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}

	if strings.EqualFold(filepath.Ext(path), ".json") {
		var doc pipeline.ResultDocument
		if err := json.Unmarshal(data, &doc); err != nil {
			return nil, fmt.Errorf("failed to parse %s: %w", path, err)
		}
		return &types.GenerationResult{
			Sections: map[types.Section]string{
				types.SectionResume:      doc.Sections.Resume,
				types.SectionCoverLetter: doc.Sections.CoverLetter,
			},
			Degraded: doc.Degraded,
			Preamble: doc.Preamble,
		}, nil
	}
	return sections.Parse(string(data)), nil
}
