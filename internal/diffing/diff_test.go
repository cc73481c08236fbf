package diffing

import (
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUnified_Identity(t *testing.T) {
	lines := []string{"Jane Doe", "Engineer", "Go, SQL"}
	assert.Equal(t, "", Unified(lines, lines, DefaultOptions()))
	assert.Equal(t, "", Unified(nil, nil, DefaultOptions()))
	assert.Equal(t, "", Text("a\nb\n", "a\nb", Options{}))
}

func TestUnified_Changes(t *testing.T) {
	original := []string{"Jane Doe", "Engineer", "Go, SQL"}
	revised := []string{"Jane Doe", "Senior Engineer", "Go, SQL", "Kubernetes"}

	got := Unified(original, revised, DefaultOptions())

	want := strings.Join([]string{
		"--- Original Resume",
		"+++ Adapted Resume",
		"@@ -1,3 +1,4 @@",
		" Jane Doe",
		"-Engineer",
		"+Senior Engineer",
		" Go, SQL",
		"+Kubernetes",
		"",
	}, "\n")
	assert.Equal(t, want, got)

	added, removed := Stats(got)
	assert.Equal(t, 2, added)
	assert.Equal(t, 1, removed)
}

func TestStats_DashedLines(t *testing.T) {
	original := []string{"Jane Doe", "---", "-- Skills", "Go"}
	revised := []string{"Jane Doe", "Go", "++ Extras"}

	got := Unified(original, revised, DefaultOptions())
	require.Contains(t, got, "\n----\n")
	require.Contains(t, got, "\n--- Skills\n")

	added, removed := Stats(got)
	assert.Equal(t, 1, added)
	assert.Equal(t, 2, removed)

	added, removed = Stats("")
	assert.Zero(t, added)
	assert.Zero(t, removed)
}

func TestUnified_CustomLabelsAndContext(t *testing.T) {
	original := make([]string, 20)
	for i := range original {
		original[i] = fmt.Sprintf("line %d", i)
	}
	revised := append([]string{}, original...)
	revised[10] = "changed"

	got := Unified(original, revised, Options{FromLabel: "before", ToLabel: "after", Context: 1})

	assert.True(t, strings.HasPrefix(got, "--- before\n+++ after\n"))
	assert.Contains(t, got, "@@ -10,3 +10,3 @@")
}

func TestText_NormalizesLineEndings(t *testing.T) {
	got := Text("a\r\nb\r\n", "a\nc\n", DefaultOptions())
	assert.Contains(t, got, "-b\n")
	assert.Contains(t, got, "+c\n")
	assert.NotContains(t, got, "\r")
}

func TestText_FromEmpty(t *testing.T) {
	got := Text("", "new resume", DefaultOptions())
	assert.Contains(t, got, "+new resume")
}
