// Package observability provides structured logging and formatted output for verbose CLI mode.
package observability

import (
	"fmt"
	"io"
	"strings"
	"unicode/utf8"

	"github.com/jonathan/resume-adapter/internal/types"
)

const (
	// boxWidth is the default width for formatted output boxes
	boxWidth = 60
	// maxItemsToShow is the default number of items to display in lists
	maxItemsToShow = 5
)

// Printer handles formatted output for verbose mode
type Printer struct {
	out io.Writer
}

// NewPrinter creates a new Printer that writes to the given writer
func NewPrinter(out io.Writer) *Printer {
	return &Printer{out: out}
}

// printBox prints a formatted box with a title and content
//
//nolint:errcheck // writing to stdout; errors are not recoverable
func (p *Printer) printBox(title string, content string) {
	border := strings.Repeat("─", boxWidth-2)
	fmt.Fprintf(p.out, "┌%s┐\n", border)
	fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, title)
	fmt.Fprintf(p.out, "├%s┤\n", border)

	for _, line := range strings.Split(content, "\n") {
		fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, shorten(line, boxWidth-4))
	}

	fmt.Fprintf(p.out, "└%s┘\n", border)
}

// shorten truncates s to at most n runes, marking the cut with "...".
func shorten(s string, n int) string {
	if utf8.RuneCountInString(s) <= n {
		return s
	}
	runes := []rune(s)
	return string(runes[:n-3]) + "..."
}

// PrintDocument outputs a summary of the extracted source document.
func (p *Printer) PrintDocument(doc *types.SourceDocument) {
	if doc == nil {
		return
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Format:   %s\n", doc.MediaType))
	sb.WriteString(fmt.Sprintf("Lines:    %d\n", len(doc.Lines)))
	sb.WriteString(fmt.Sprintf("Chars:    %d\n", utf8.RuneCountInString(doc.Text())))

	shown := 0
	for _, line := range doc.Lines {
		if line == "" {
			continue
		}
		if shown == 0 {
			sb.WriteString("\n")
		}
		sb.WriteString(fmt.Sprintf("  %s\n", line))
		shown++
		if shown == maxItemsToShow {
			break
		}
	}

	p.printBox("EXTRACTED DOCUMENT", strings.TrimSuffix(sb.String(), "\n"))
}

// PrintRequest outputs the generation settings: language, creativity and directives.
func (p *Printer) PrintRequest(req *types.GenerationRequest) {
	if req == nil {
		return
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Language:   %s\n", req.TargetLanguage))
	sb.WriteString(fmt.Sprintf("Creativity: %.2f\n", req.Creativity))
	if req.JobDescription != "" {
		sb.WriteString(fmt.Sprintf("Job text:   %d chars\n", utf8.RuneCountInString(req.JobDescription)))
	}

	items := req.Directives.Items()
	if len(items) > 0 {
		sb.WriteString("\nDirectives:\n")
		count := min(len(items), maxItemsToShow)
		for i := 0; i < count; i++ {
			sb.WriteString(fmt.Sprintf("  • %s [%s, %s]\n", items[i].Label, items[i].Weight, items[i].Category))
		}
		if len(items) > maxItemsToShow {
			sb.WriteString(fmt.Sprintf("  ... and %d more\n", len(items)-maxItemsToShow))
		}
	}
	if len(req.CustomInstructions) > 0 {
		sb.WriteString(fmt.Sprintf("\nCustom instructions: %d\n", len(req.CustomInstructions)))
	}

	p.printBox("GENERATION SETTINGS", strings.TrimSuffix(sb.String(), "\n"))
}

// PrintResult outputs the parsed sections, or a warning when parsing degraded.
//
//nolint:errcheck // writing to stdout; errors are not recoverable
func (p *Printer) PrintResult(result *types.GenerationResult) {
	if result == nil {
		return
	}

	if result.Degraded {
		fmt.Fprintf(p.out, "┌%s┐\n", strings.Repeat("─", boxWidth-2))
		fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, "⚠ SECTION MARKERS MISSING: OUTPUT DEGRADED")
		fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, "Whole response kept as resume; no cover letter.")
		fmt.Fprintf(p.out, "└%s┘\n", strings.Repeat("─", boxWidth-2))
	}

	var sb strings.Builder
	for _, section := range types.Sections() {
		text := result.Sections[section]
		lines := 0
		if text != "" {
			lines = strings.Count(text, "\n") + 1
		}
		sb.WriteString(fmt.Sprintf("%-16s %5d lines %7d chars\n", section.Title()+":", lines, utf8.RuneCountInString(text)))
	}
	if result.Preamble != "" {
		sb.WriteString(fmt.Sprintf("\nPreamble dropped: %s\n", result.Preamble))
	}

	p.printBox("PARSED SECTIONS", strings.TrimSuffix(sb.String(), "\n"))
}

// PrintDiffStats outputs line counts from the resume diff.
func (p *Printer) PrintDiffStats(added, removed int) {
	content := "No changes to the resume text."
	if added > 0 || removed > 0 {
		content = fmt.Sprintf("+%d lines\n-%d lines", added, removed)
	}
	p.printBox("RESUME DIFF", content)
}

// PrintArtifacts outputs the written export files.
func (p *Printer) PrintArtifacts(paths map[types.ExportFormat]string) {
	if len(paths) == 0 {
		return
	}

	var sb strings.Builder
	for _, format := range types.ExportFormats() {
		if path, ok := paths[format]; ok {
			sb.WriteString(fmt.Sprintf("%-5s %s\n", format, path))
		}
	}
	p.printBox("EXPORTS", strings.TrimSuffix(sb.String(), "\n"))
}
