// Package extraction turns uploaded PDF and DOCX bytes into plain text lines.
package extraction

import (
	"bytes"
	"path/filepath"
	"strings"

	"github.com/jonathan/resume-adapter/internal/types"
)

// MaxDocumentSize is the largest upload Extract accepts.
const MaxDocumentSize = 10 << 20

// oleSignature opens every OLE2 compound file, the container of legacy .doc.
var oleSignature = []byte{0xD0, 0xCF, 0x11, 0xE0, 0xA1, 0xB1, 0x1A, 0xE1}

// Extract converts raw document bytes tagged with a MIME type into a SourceDocument.
// Only application/pdf and the two DOCX MIME strings are accepted; anything else
// fails with *UnsupportedFormatError before any parsing is attempted.
func Extract(raw []byte, mediaType string) (*types.SourceDocument, error) {
	mt, ok := types.MediaTypeFromMIME(mediaType)
	if !ok {
		return nil, &UnsupportedFormatError{MediaType: mediaType}
	}
	if len(raw) > MaxDocumentSize {
		return nil, &DocumentTooLargeError{Size: len(raw), Limit: MaxDocumentSize}
	}
	if len(raw) == 0 {
		return nil, &CorruptDocumentError{MediaType: string(mt), Message: "document is empty"}
	}

	var (
		lines []string
		err   error
	)
	switch mt {
	case types.MediaTypePDF:
		lines, err = extractPDF(raw)
	case types.MediaTypeDOCX:
		if bytes.HasPrefix(raw, oleSignature) {
			return nil, &UnsupportedFormatError{
				MediaType: mediaType,
				Reason:    "binary Word 97-2003 (.doc) files are not supported; save the file as .docx and upload it again",
			}
		}
		lines, err = extractDOCX(raw)
	}
	if err != nil {
		return nil, err
	}

	if strings.TrimSpace(strings.Join(lines, "")) == "" {
		return nil, &EmptyDocumentError{MediaType: string(mt)}
	}

	return &types.SourceDocument{
		Raw:       raw,
		MediaType: mt,
		Lines:     lines,
	}, nil
}

// MediaTypeForPath guesses the MIME type from a file extension.
// Unknown extensions return "application/octet-stream", which Extract rejects.
func MediaTypeForPath(path string) string {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".pdf":
		return types.MIMEPDF
	case ".docx":
		return types.MIMEDOCX
	case ".doc":
		return types.MIMEMSWord
	case ".png":
		return "image/png"
	case ".rtf":
		return "application/rtf"
	case ".txt":
		return "text/plain"
	default:
		return "application/octet-stream"
	}
}
