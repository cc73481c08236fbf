package rendering

import (
	"github.com/jonathan/resume-adapter/internal/sections"
	"github.com/jonathan/resume-adapter/internal/types"
)

// renderTXT writes both sections under their markers so the artifact
// parses back into the same sections.
func renderTXT(s map[types.Section]string) []byte {
	normalized := make(map[types.Section]string, len(s))
	for _, section := range types.Sections() {
		normalized[section] = NormalizePunctuation(s[section])
	}
	return []byte(sections.Join(normalized))
}
