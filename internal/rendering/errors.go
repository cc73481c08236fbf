// Package rendering serializes the parsed sections into downloadable
// txt, pdf and docx artifacts.
package rendering

import "fmt"

// UnsupportedExportFormatError is returned for formats other than pdf, docx and txt.
type UnsupportedExportFormatError struct {
	Format string
}

func (e *UnsupportedExportFormatError) Error() string {
	return fmt.Sprintf("unsupported export format %q: must be pdf, docx or txt", e.Format)
}

// RenderError represents a general rendering failure
type RenderError struct {
	Format  string
	Message string
	Cause   error
}

func (e *RenderError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("render error (%s): %s: %v", e.Format, e.Message, e.Cause)
	}
	return fmt.Sprintf("render error (%s): %s", e.Format, e.Message)
}

func (e *RenderError) Unwrap() error {
	return e.Cause
}
