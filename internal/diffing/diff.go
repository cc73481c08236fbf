// Package diffing reports line-level differences between the source resume
// and the adapted one as a unified diff.
package diffing

import (
	"strings"

	"github.com/pmezard/go-difflib/difflib"
)

// Default header labels and context size.
const (
	DefaultFromLabel = "Original Resume"
	DefaultToLabel   = "Adapted Resume"
	DefaultContext   = 3
)

// Options controls diff headers and context.
type Options struct {
	FromLabel string
	ToLabel   string
	Context   int
}

// DefaultOptions returns the standard resume diff labels with 3 lines of context.
func DefaultOptions() Options {
	return Options{
		FromLabel: DefaultFromLabel,
		ToLabel:   DefaultToLabel,
		Context:   DefaultContext,
	}
}

func (o Options) withDefaults() Options {
	if o.FromLabel == "" {
		o.FromLabel = DefaultFromLabel
	}
	if o.ToLabel == "" {
		o.ToLabel = DefaultToLabel
	}
	if o.Context <= 0 {
		o.Context = DefaultContext
	}
	return o
}

// Unified returns a unified diff of two line sequences. Identical inputs
// produce the empty string.
func Unified(original, revised []string, opts Options) string {
	if equalLines(original, revised) {
		return ""
	}
	opts = opts.withDefaults()

	diff := difflib.UnifiedDiff{
		A:        withNewlines(original),
		B:        withNewlines(revised),
		FromFile: opts.FromLabel,
		ToFile:   opts.ToLabel,
		Context:  opts.Context,
	}
	out, err := difflib.GetUnifiedDiffString(diff)
	if err != nil {
		// Only write errors are possible and the target is an in-memory buffer.
		return ""
	}
	return out
}

// Text diffs two texts line by line.
func Text(original, revised string, opts Options) string {
	return Unified(splitLines(original), splitLines(revised), opts)
}

// Stats counts added and removed lines in a unified diff. Only hunk bodies
// are counted, so a removed line that itself starts with "--" is not
// mistaken for the "---" file header.
func Stats(unified string) (added, removed int) {
	inHunk := false
	for _, line := range strings.Split(unified, "\n") {
		switch {
		case strings.HasPrefix(line, "@@"):
			inHunk = true
		case !inHunk:
		case strings.HasPrefix(line, "+"):
			added++
		case strings.HasPrefix(line, "-"):
			removed++
		}
	}
	return added, removed
}

func splitLines(s string) []string {
	if s == "" {
		return nil
	}
	s = strings.ReplaceAll(s, "\r\n", "\n")
	return strings.Split(strings.TrimSuffix(s, "\n"), "\n")
}

func withNewlines(lines []string) []string {
	out := make([]string, len(lines))
	for i, line := range lines {
		out[i] = line + "\n"
	}
	return out
}

func equalLines(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
