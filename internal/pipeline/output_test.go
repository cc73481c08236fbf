package pipeline

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/resume-adapter/internal/preview"
	"github.com/jonathan/resume-adapter/internal/rendering"
	"github.com/jonathan/resume-adapter/internal/types"
)

func TestWrite(t *testing.T) {
	gen := &stubGenerator{response: frenchResponse()}
	res, err := New(gen, WithLogger(quietLogger())).Run(context.Background(), frenchInput(t))
	require.NoError(t, err)

	dir := filepath.Join(t.TempDir(), "out")
	doc, err := Write(res, WriteOptions{Dir: dir, Preview: true})
	require.NoError(t, err)

	require.Len(t, doc.Artifacts, 2)
	for _, a := range doc.Artifacts {
		assert.Equal(t, filepath.Join(dir, rendering.FileName(a.Format)), a.Path)
		info, err := os.Stat(a.Path)
		require.NoError(t, err)
		assert.EqualValues(t, a.Bytes, info.Size())
	}

	page, err := os.ReadFile(filepath.Join(dir, preview.FileName))
	require.NoError(t, err)
	assert.Contains(t, string(page), `<html lang="fr">`)

	data, err := os.ReadFile(filepath.Join(dir, ResultFileName))
	require.NoError(t, err)
	var written ResultDocument
	require.NoError(t, json.Unmarshal(data, &written))
	assert.Equal(t, res.ID.String(), written.ID)
	assert.Equal(t, "French", written.Language)
	assert.Equal(t, res.Generation.Resume(), written.Sections.Resume)
	assert.Equal(t, res.Generation.CoverLetter(), written.Sections.CoverLetter)
	assert.Equal(t, res.Diff, written.Diff)
	assert.False(t, written.Degraded)
	assert.Len(t, written.Artifacts, 2)
}

func TestWrite_DegradedWithoutPreview(t *testing.T) {
	gen := &stubGenerator{response: "no markers here"}
	in := frenchInput(t)
	in.Formats = []string{"txt"}
	res, err := New(gen, WithLogger(quietLogger())).Run(context.Background(), in)
	require.NoError(t, err)

	dir := t.TempDir()
	doc, err := Write(res, WriteOptions{Dir: dir})
	require.NoError(t, err)
	assert.True(t, doc.Degraded)
	assert.Equal(t, types.NoContent, doc.Sections.CoverLetter)

	_, err = os.Stat(filepath.Join(dir, preview.FileName))
	assert.True(t, os.IsNotExist(err))

	data, err := os.ReadFile(filepath.Join(dir, ResultFileName))
	require.NoError(t, err)
	assert.Contains(t, string(data), `"cover_letter": ""`)
}

func TestWrite_NilResult(t *testing.T) {
	_, err := Write(nil, WriteOptions{Dir: t.TempDir()})
	assert.Error(t, err)
}
