package extraction

import "fmt"

// UnsupportedFormatError is returned for media types outside the accepted set,
// and for content that is not what an accepted media type promises.
type UnsupportedFormatError struct {
	MediaType string
	Reason    string
}

func (e *UnsupportedFormatError) Error() string {
	if e.Reason != "" {
		return fmt.Sprintf("unsupported document format %q: %s", e.MediaType, e.Reason)
	}
	return fmt.Sprintf("unsupported document format %q: accepted formats are PDF and DOCX", e.MediaType)
}

// CorruptDocumentError is returned when a document of an accepted type cannot be parsed.
type CorruptDocumentError struct {
	MediaType string
	Message   string
	Cause     error
}

func (e *CorruptDocumentError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("corrupt %s document: %s: %v", e.MediaType, e.Message, e.Cause)
	}
	return fmt.Sprintf("corrupt %s document: %s", e.MediaType, e.Message)
}

func (e *CorruptDocumentError) Unwrap() error {
	return e.Cause
}

// DocumentTooLargeError is returned when the upload exceeds the size limit.
type DocumentTooLargeError struct {
	Size  int
	Limit int
}

func (e *DocumentTooLargeError) Error() string {
	return fmt.Sprintf("document is %d bytes, limit is %d bytes", e.Size, e.Limit)
}

// EmptyDocumentError is returned when a document parses but yields no text.
type EmptyDocumentError struct {
	MediaType string
}

func (e *EmptyDocumentError) Error() string {
	return fmt.Sprintf("no extractable text found in %s document", e.MediaType)
}
