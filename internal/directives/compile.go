// Package directives compiles weighted directives, free-text instructions and
// the target language into the instruction block sent to the generator.
package directives

import (
	"fmt"
	"sort"
	"strings"

	"github.com/jonathan/resume-adapter/internal/types"
)

const (
	enhancementsHeader = "Creative enhancements to apply (with importance weights):"
	customHeader       = "Additional instructions:"
)

// LanguageDirective is the line that pins the output language.
func LanguageDirective(language types.Language) string {
	return fmt.Sprintf("Produce the output entirely in %s, regardless of the input language.", language)
}

// Compile renders the directive block. Directives are ordered by descending
// weight, ties keep insertion order, custom lines follow, and the language
// directive is always the final line. Compile is pure.
func Compile(set types.DirectiveSet, customLines []string, language types.Language) string {
	// Re-adding through a fresh set collapses duplicates even for sets built by hand.
	items := types.NewDirectiveSet(set.Items()...).Items()
	sort.SliceStable(items, func(i, j int) bool {
		return items[i].Weight > items[j].Weight
	})

	var blocks []string

	if len(items) > 0 {
		var sb strings.Builder
		sb.WriteString(enhancementsHeader)
		for _, d := range items {
			sb.WriteString(fmt.Sprintf("\n- %s (importance: %s)", d.Label, d.Weight))
		}
		blocks = append(blocks, sb.String())
	}

	if custom := cleanLines(customLines); len(custom) > 0 {
		var sb strings.Builder
		sb.WriteString(customHeader)
		for _, line := range custom {
			sb.WriteString("\n- " + line)
		}
		blocks = append(blocks, sb.String())
	}

	if language == "" {
		language = types.DefaultLanguage
	}
	blocks = append(blocks, LanguageDirective(language))

	return strings.Join(blocks, "\n\n")
}

func cleanLines(lines []string) []string {
	var out []string
	for _, line := range lines {
		for _, part := range strings.Split(line, "\n") {
			if part = strings.TrimSpace(part); part != "" {
				out = append(out, part)
			}
		}
	}
	return out
}
