// Package sections splits raw generator output into the resume and cover letter.
package sections

import (
	"strings"

	"github.com/jonathan/resume-adapter/internal/types"
)

// Section delimiters the generator is instructed to emit.
const (
	ResumeMarker      = "=== Adapted Resume ==="
	CoverLetterMarker = "=== Cover Letter ==="
)

// Marker returns the delimiter line of a section.
func Marker(s types.Section) string {
	switch s {
	case types.SectionResume:
		return ResumeMarker
	case types.SectionCoverLetter:
		return CoverLetterMarker
	default:
		return ""
	}
}

// Parse splits raw output into named sections. When each marker appears
// exactly once and the resume marker comes first, the text between and after
// the markers becomes the two sections and any leading text is kept as
// Preamble. Otherwise the result is degraded: the whole trimmed payload is the
// resume and the cover letter is types.NoContent. Parse never fails.
func Parse(raw string) *types.GenerationResult {
	result := &types.GenerationResult{
		Raw: raw,
		Sections: map[types.Section]string{
			types.SectionResume:      types.NoContent,
			types.SectionCoverLetter: types.NoContent,
		},
	}

	resumeAt := strings.Index(raw, ResumeMarker)
	coverAt := strings.Index(raw, CoverLetterMarker)
	wellFormed := resumeAt >= 0 && coverAt >= 0 &&
		strings.Count(raw, ResumeMarker) == 1 &&
		strings.Count(raw, CoverLetterMarker) == 1 &&
		resumeAt+len(ResumeMarker) <= coverAt

	if !wellFormed {
		result.Degraded = true
		result.Sections[types.SectionResume] = strings.TrimSpace(raw)
		return result
	}

	result.Preamble = strings.TrimSpace(raw[:resumeAt])
	result.Sections[types.SectionResume] = strings.TrimSpace(raw[resumeAt+len(ResumeMarker) : coverAt])
	result.Sections[types.SectionCoverLetter] = strings.TrimSpace(raw[coverAt+len(CoverLetterMarker):])
	return result
}

// Join renders sections back into marker-delimited text. Parse(Join(s))
// yields s for any sections that do not themselves contain a marker.
func Join(s map[types.Section]string) string {
	var sb strings.Builder
	for i, section := range types.Sections() {
		if i > 0 {
			sb.WriteString("\n\n")
		}
		sb.WriteString(Marker(section))
		sb.WriteString("\n")
		sb.WriteString(s[section])
	}
	sb.WriteString("\n")
	return sb.String()
}
