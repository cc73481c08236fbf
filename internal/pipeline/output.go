package pipeline

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/jonathan/resume-adapter/internal/preview"
	"github.com/jonathan/resume-adapter/internal/rendering"
	"github.com/jonathan/resume-adapter/internal/schemas"
	"github.com/jonathan/resume-adapter/internal/types"
)

// ResultFileName is the name of the JSON summary written next to the artifacts.
const ResultFileName = "result.json"

// SectionsDocument is the sections object of result.json.
type SectionsDocument struct {
	Resume      string `json:"resume"`
	CoverLetter string `json:"cover_letter"`
}

// ArtifactEntry describes one written export file.
type ArtifactEntry struct {
	Format types.ExportFormat `json:"format"`
	Path   string             `json:"path"`
	Bytes  int                `json:"bytes"`
}

// ResultDocument is the JSON form of a Result.
type ResultDocument struct {
	ID        string           `json:"id"`
	Language  string           `json:"language"`
	Provider  string           `json:"provider,omitempty"`
	Model     string           `json:"model,omitempty"`
	Degraded  bool             `json:"degraded"`
	CacheHit  bool             `json:"cache_hit"`
	Sections  SectionsDocument `json:"sections"`
	Preamble  string           `json:"preamble,omitempty"`
	Diff      string           `json:"diff,omitempty"`
	Artifacts []ArtifactEntry  `json:"artifacts,omitempty"`
}

// Document converts the result to its JSON form.
func (r *Result) Document() *ResultDocument {
	doc := &ResultDocument{
		ID:       r.ID.String(),
		Provider: r.Provider,
		Model:    r.Model,
		CacheHit: r.CacheHit,
		Diff:     r.Diff,
	}
	if r.Request != nil {
		doc.Language = string(r.Request.TargetLanguage)
	}
	if g := r.Generation; g != nil {
		doc.Degraded = g.Degraded
		doc.Preamble = g.Preamble
		doc.Sections = SectionsDocument{Resume: g.Resume(), CoverLetter: g.CoverLetter()}
	}
	return doc
}

// WriteOptions controls Write.
type WriteOptions struct {
	Dir     string
	Preview bool
}

// Write stores the export artifacts, an optional HTML preview and result.json
// in opts.Dir. The returned document lists the written artifacts.
func Write(res *Result, opts WriteOptions) (*ResultDocument, error) {
	if res == nil || res.Generation == nil {
		return nil, fmt.Errorf("nothing to write: generation result is missing")
	}
	if err := os.MkdirAll(opts.Dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create output directory: %w", err)
	}

	doc := res.Document()
	for _, artifact := range res.Artifacts {
		path := filepath.Join(opts.Dir, rendering.FileName(artifact.Format))
		if err := os.WriteFile(path, artifact.Bytes, 0644); err != nil {
			return nil, fmt.Errorf("failed to write %s artifact: %w", artifact.Format, err)
		}
		doc.Artifacts = append(doc.Artifacts, ArtifactEntry{Format: artifact.Format, Path: path, Bytes: len(artifact.Bytes)})
	}

	if opts.Preview {
		page, err := preview.Render(res.Generation.Sections, preview.Options{
			Language: types.Language(doc.Language),
			Degraded: res.Generation.Degraded,
			Diff:     res.Diff,
		})
		if err != nil {
			return nil, err
		}
		if err := os.WriteFile(filepath.Join(opts.Dir, preview.FileName), page, 0644); err != nil {
			return nil, fmt.Errorf("failed to write preview: %w", err)
		}
	}

	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to marshal result: %w", err)
	}
	if err := schemas.Validate(schemas.Result, data); err != nil {
		return nil, err
	}
	if err := os.WriteFile(filepath.Join(opts.Dir, ResultFileName), data, 0644); err != nil {
		return nil, fmt.Errorf("failed to write result: %w", err)
	}
	return doc, nil
}
