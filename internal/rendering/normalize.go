package rendering

import "strings"

// NormalizePunctuation replaces typographic punctuation with ASCII
// equivalents before any export:
// en/em dash -> "-", single quotes -> "'", double quotes -> "\"",
// ellipsis -> "...", bullet -> "-".
func NormalizePunctuation(text string) string {
	if text == "" {
		return ""
	}

	var result strings.Builder
	result.Grow(len(text))

	for _, r := range text {
		switch r {
		case '–', '—':
			result.WriteByte('-')
		case '‘', '’':
			result.WriteByte('\'')
		case '“', '”':
			result.WriteByte('"')
		case '…':
			result.WriteString("...")
		case '•':
			result.WriteByte('-')
		default:
			result.WriteRune(r)
		}
	}

	return result.String()
}

// sectionLines normalizes a section and splits it into lines.
func sectionLines(text string) []string {
	text = strings.ReplaceAll(NormalizePunctuation(text), "\r\n", "\n")
	return strings.Split(text, "\n")
}
