package llm

import (
	"strings"
	"unicode/utf8"
)

// CleanResponse trims the response and removes a code fence wrapping the
// whole text. Models sometimes fence their answer even for prose.
func CleanResponse(text string) string {
	text = strings.TrimSpace(text)
	if !strings.HasPrefix(text, "```") || !strings.HasSuffix(text, "```") || len(text) < 6 {
		return text
	}

	inner := strings.TrimSuffix(strings.TrimPrefix(text, "```"), "```")
	// Skip a language identifier on the opening line.
	if idx := strings.Index(inner, "\n"); idx >= 0 {
		firstLine := inner[:idx]
		if len(firstLine) < 20 && !strings.Contains(strings.TrimSpace(firstLine), " ") {
			inner = inner[idx+1:]
		}
	}
	return strings.TrimSpace(inner)
}

// TruncateRunes cuts s to at most limit runes. It reports whether s was cut.
func TruncateRunes(s string, limit int) (string, bool) {
	if limit <= 0 || utf8.RuneCountInString(s) <= limit {
		return s, false
	}
	count := 0
	for i := range s {
		if count == limit {
			return s[:i], true
		}
		count++
	}
	return s, false
}
