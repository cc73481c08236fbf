package types

import "strings"

// ExportFormat is a downloadable artifact format.
type ExportFormat string

const (
	// ExportPDF renders sections to PDF
	ExportPDF ExportFormat = "pdf"
	// ExportDOCX renders sections to DOCX
	ExportDOCX ExportFormat = "docx"
	// ExportTXT renders sections to plain text
	ExportTXT ExportFormat = "txt"
)

// ExportFormats lists every supported export format.
func ExportFormats() []ExportFormat {
	return []ExportFormat{ExportTXT, ExportPDF, ExportDOCX}
}

// ParseExportFormat normalizes a format name. It returns false for unknown formats.
func ParseExportFormat(s string) (ExportFormat, bool) {
	f := ExportFormat(strings.ToLower(strings.TrimPrefix(strings.TrimSpace(s), ".")))
	for _, known := range ExportFormats() {
		if f == known {
			return f, true
		}
	}
	return "", false
}

// ExportArtifact is a rendered byte payload. It is derived and never mutated.
type ExportArtifact struct {
	Format ExportFormat
	Bytes  []byte
}
