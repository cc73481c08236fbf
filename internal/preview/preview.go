// Package preview renders generation results as a standalone HTML page.
package preview

import (
	"bytes"
	_ "embed"
	"fmt"
	"html/template"
	"strings"

	"github.com/microcosm-cc/bluemonday"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/renderer/html"

	"github.com/jonathan/resume-adapter/internal/types"
)

// FileName is the name the CLI writes the preview under.
const FileName = "preview.html"

//go:embed page.html.tmpl
var pageTemplate string

var page = template.Must(template.New("preview").Parse(pageTemplate))

var markdown = goldmark.New(
	goldmark.WithExtensions(extension.Table, extension.Strikethrough),
	goldmark.WithRendererOptions(html.WithHardWraps()),
)

// Options controls the page content.
type Options struct {
	Language types.Language
	Degraded bool
	Diff     string // unified diff; empty omits the diff section
}

type pageSection struct {
	ID    string
	Title string
	Body  template.HTML
}

type diffLine struct {
	Class string
	Text  string
}

type pageData struct {
	Lang     string
	Title    string
	Degraded bool
	Sections []pageSection
	Diff     []diffLine
}

// Render returns the HTML page for the given sections. Section text is read
// as Markdown and sanitized, so model output cannot inject markup or script.
func Render(sections map[types.Section]string, opts Options) ([]byte, error) {
	policy := bluemonday.UGCPolicy()

	data := pageData{
		Lang:     languageTag(opts.Language),
		Title:    types.SectionResume.Title(),
		Degraded: opts.Degraded,
	}
	for _, section := range types.Sections() {
		text := sections[section]
		if text == types.NoContent {
			continue
		}
		var buf bytes.Buffer
		if err := markdown.Convert([]byte(text), &buf); err != nil {
			return nil, fmt.Errorf("failed to convert %s to HTML: %w", section, err)
		}
		data.Sections = append(data.Sections, pageSection{
			ID:    string(section),
			Title: section.Title(),
			Body:  template.HTML(policy.SanitizeBytes(buf.Bytes())),
		})
	}
	data.Diff = diffLines(opts.Diff)

	var out bytes.Buffer
	if err := page.Execute(&out, data); err != nil {
		return nil, fmt.Errorf("failed to render preview: %w", err)
	}
	return out.Bytes(), nil
}

func diffLines(diff string) []diffLine {
	if strings.TrimSpace(diff) == "" {
		return nil
	}
	var lines []diffLine
	for _, line := range strings.Split(strings.TrimRight(diff, "\n"), "\n") {
		class := "ctx"
		switch {
		case strings.HasPrefix(line, "+++"), strings.HasPrefix(line, "---"), strings.HasPrefix(line, "@@"):
			class = "hdr"
		case strings.HasPrefix(line, "+"):
			class = "add"
		case strings.HasPrefix(line, "-"):
			class = "del"
		}
		lines = append(lines, diffLine{Class: class, Text: line})
	}
	return lines
}

var languageTags = map[types.Language]string{
	types.LanguageEnglish:  "en",
	types.LanguageDutch:    "nl",
	types.LanguageSpanish:  "es",
	types.LanguageFrench:   "fr",
	types.LanguageGerman:   "de",
	types.LanguageChinese:  "zh",
	types.LanguageJapanese: "ja",
	types.LanguageRussian:  "ru",
}

func languageTag(lang types.Language) string {
	if tag, ok := languageTags[lang]; ok {
		return tag
	}
	return "en"
}
