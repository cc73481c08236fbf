package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/jonathan/resume-adapter/internal/directives"
	"github.com/jonathan/resume-adapter/internal/extraction"
	"github.com/jonathan/resume-adapter/internal/types"
)

// directiveFlags are the flags shared by generate and compile.
type directiveFlags struct {
	style        []string
	flair        []string
	audience     []string
	custom       []string
	file         string
	instructions []string
}

func (f *directiveFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringArrayVar(&f.style, "style", nil, "Writing style directive as label[=low|medium|high] (repeatable)")
	cmd.Flags().StringArrayVar(&f.flair, "flair", nil, "Creative flair directive as label[=weight] (repeatable)")
	cmd.Flags().StringArrayVar(&f.audience, "audience", nil, "Target company type directive as label[=weight] (repeatable)")
	cmd.Flags().StringArrayVarP(&f.custom, "directive", "d", nil, "Free directive as label[=weight]; catalog labels keep their category (repeatable)")
	cmd.Flags().StringVar(&f.file, "directives-file", "", "JSON file with [{label, weight, category}] directives")
	cmd.Flags().StringArrayVarP(&f.instructions, "instruction", "i", nil, "Additional free-text instruction line (repeatable)")
}

// set builds the directive set: file entries first, then flags in order.
func (f *directiveFlags) set() (types.DirectiveSet, error) {
	var set types.DirectiveSet
	if f.file != "" {
		loaded, err := directives.LoadFile(f.file)
		if err != nil {
			return types.DirectiveSet{}, err
		}
		set = loaded
	}

	groups := []struct {
		values   []string
		category types.Category
	}{
		{f.style, types.CategoryStyle},
		{f.flair, types.CategoryFlair},
		{f.audience, types.CategoryAudience},
		{f.custom, ""},
	}
	for _, g := range groups {
		for _, value := range g.values {
			d, err := directives.ParseDirective(value, g.category)
			if err != nil {
				return types.DirectiveSet{}, err
			}
			set.Add(d)
		}
	}
	return set, nil
}

// readDocument loads a resume file and extracts its text.
func readDocument(path string) (*types.SourceDocument, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}
	return extraction.Extract(raw, extraction.MediaTypeForPath(path))
}

// readTextOrDocument returns the lines of a plain text file, or the extracted
// lines of a PDF or DOCX file.
func readTextOrDocument(path string) ([]string, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".pdf", ".docx", ".doc":
		doc, err := readDocument(path)
		if err != nil {
			return nil, err
		}
		return doc.Lines, nil
	}
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}
	text := strings.TrimRight(strings.ReplaceAll(string(raw), "\r\n", "\n"), "\n")
	if text == "" {
		return nil, nil
	}
	return strings.Split(text, "\n"), nil
}

// parseFormats validates export format names, falling back to defaults.
func parseFormats(values, defaults []string) ([]string, error) {
	if len(values) == 0 {
		values = defaults
	}
	out := make([]string, 0, len(values))
	for _, v := range values {
		for _, part := range strings.Split(v, ",") {
			part = strings.TrimSpace(part)
			if part == "" {
				continue
			}
			f, ok := types.ParseExportFormat(part)
			if !ok {
				return nil, fmt.Errorf("unsupported export format %q (supported: txt, pdf, docx)", part)
			}
			out = append(out, string(f))
		}
	}
	return out, nil
}
