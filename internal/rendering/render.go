package rendering

import (
	"context"
	"strings"

	"golang.org/x/sync/errgroup"

	"github.com/jonathan/resume-adapter/internal/types"
)

// FileBaseName is the base name of every downloadable artifact.
const FileBaseName = "adapted_resume_and_cover_letter"

// Render serializes both sections into one artifact of the requested format.
// A missing section renders as empty. Every format applies NormalizePunctuation.
func Render(sections map[types.Section]string, format string) (*types.ExportArtifact, error) {
	f, ok := types.ParseExportFormat(format)
	if !ok {
		return nil, &UnsupportedExportFormatError{Format: format}
	}

	var (
		data []byte
		err  error
	)
	switch f {
	case types.ExportTXT:
		data = renderTXT(sections)
	case types.ExportPDF:
		data, err = renderPDF(sections)
	case types.ExportDOCX:
		data, err = renderDOCX(sections)
	}
	if err != nil {
		return nil, err
	}

	return &types.ExportArtifact{Format: f, Bytes: data}, nil
}

// RenderAll renders several formats concurrently. Formats are validated
// before any rendering starts; results keep the order of formats.
func RenderAll(ctx context.Context, sections map[types.Section]string, formats []string) ([]*types.ExportArtifact, error) {
	for _, format := range formats {
		if _, ok := types.ParseExportFormat(format); !ok {
			return nil, &UnsupportedExportFormatError{Format: format}
		}
	}

	artifacts := make([]*types.ExportArtifact, len(formats))
	g, ctx := errgroup.WithContext(ctx)
	for i, format := range formats {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			artifact, err := Render(sections, format)
			if err != nil {
				return err
			}
			artifacts[i] = artifact
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return artifacts, nil
}

// FileName returns the download file name for a format.
func FileName(format types.ExportFormat) string {
	return FileBaseName + "." + strings.ToLower(string(format))
}

// ContentType returns the MIME type of a format.
func ContentType(format types.ExportFormat) string {
	switch format {
	case types.ExportPDF:
		return types.MIMEPDF
	case types.ExportDOCX:
		return types.MIMEDOCX
	case types.ExportTXT:
		return "text/plain; charset=utf-8"
	default:
		return "application/octet-stream"
	}
}
