// Package types provides type definitions for structured data used throughout the resume-adapter pipeline.
package types

import "strings"

// MediaType identifies the binary format of an uploaded source document.
type MediaType string

const (
	// MediaTypePDF is a PDF document
	MediaTypePDF MediaType = "pdf"
	// MediaTypeDOCX is an Office Open XML word processing document
	MediaTypeDOCX MediaType = "docx"
)

// MIME strings accepted at the upload boundary.
const (
	MIMEPDF        = "application/pdf"
	MIMEDOCX       = "application/vnd.openxmlformats-officedocument.wordprocessingml.document"
	MIMEMSWord     = "application/msword"
	mimeParamDelim = ";"
)

// MediaTypeFromMIME maps a declared MIME string to a MediaType.
// Parameters (e.g. "; charset=binary") and case are ignored.
func MediaTypeFromMIME(mime string) (MediaType, bool) {
	if idx := strings.Index(mime, mimeParamDelim); idx >= 0 {
		mime = mime[:idx]
	}
	switch strings.ToLower(strings.TrimSpace(mime)) {
	case MIMEPDF, string(MediaTypePDF):
		return MediaTypePDF, true
	case MIMEDOCX, MIMEMSWord, string(MediaTypeDOCX):
		return MediaTypeDOCX, true
	default:
		return "", false
	}
}

// SourceDocument is an uploaded document together with its extracted plain text.
// It is immutable once extracted.
type SourceDocument struct {
	Raw       []byte    `json:"-"`
	MediaType MediaType `json:"media_type"`
	Lines     []string  `json:"lines"`
}

// Text returns the extracted plain text, one line per entry in Lines.
func (d *SourceDocument) Text() string {
	if d == nil {
		return ""
	}
	return strings.Join(d.Lines, "\n")
}
