package extraction

import (
	"archive/zip"
	"bytes"
	"encoding/xml"
	"errors"
	"io"
	"strings"
)

const docxBodyPart = "word/document.xml"

// extractDOCX reads word/document.xml and returns one line per paragraph.
// Runs of blank paragraphs collapse to one; leading and trailing blanks are dropped.
func extractDOCX(raw []byte) ([]string, error) {
	zr, err := zip.NewReader(bytes.NewReader(raw), int64(len(raw)))
	if err != nil {
		return nil, &CorruptDocumentError{MediaType: "docx", Message: "not a valid OOXML package", Cause: err}
	}

	var body *zip.File
	for _, f := range zr.File {
		if f.Name == docxBodyPart {
			body = f
			break
		}
	}
	if body == nil {
		return nil, &CorruptDocumentError{MediaType: "docx", Message: docxBodyPart + " not found in archive"}
	}

	rc, err := body.Open()
	if err != nil {
		return nil, &CorruptDocumentError{MediaType: "docx", Message: "failed to open " + docxBodyPart, Cause: err}
	}
	defer func() { _ = rc.Close() }()

	paragraphs, err := readParagraphs(rc)
	if err != nil {
		return nil, &CorruptDocumentError{MediaType: "docx", Message: "malformed " + docxBodyPart, Cause: err}
	}
	return collapseBlankLines(paragraphs), nil
}

// WordprocessingML namespaces: transitional and strict conformance.
const (
	wmlNamespace       = "http://schemas.openxmlformats.org/wordprocessingml/2006/main"
	wmlStrictNamespace = "http://purl.oclc.org/ooxml/wordprocessingml/main"
	mcNamespace        = "http://schemas.openxmlformats.org/markup-compatibility/2006"
)

func isWML(name xml.Name) bool {
	return name.Space == wmlNamespace || name.Space == wmlStrictNamespace
}

// readParagraphs returns the text of every w:p in document order of their
// closing tags. A paragraph nested inside another one (a text box) becomes
// its own line ahead of the paragraph that anchors it. Only mc:Choice
// content is read, so a text box and its VML fallback are not duplicated.
func readParagraphs(r io.Reader) ([]string, error) {
	decoder := xml.NewDecoder(r)
	var (
		paragraphs []string
		open       []*strings.Builder
		inText     bool
	)

	for {
		tok, err := decoder.Token()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, err
		}

		switch t := tok.(type) {
		case xml.StartElement:
			if t.Name.Space == mcNamespace && t.Name.Local == "Fallback" {
				if err := decoder.Skip(); err != nil {
					return nil, err
				}
				continue
			}
			if !isWML(t.Name) {
				continue
			}
			switch t.Name.Local {
			case "p":
				open = append(open, &strings.Builder{})
			case "pPr", "rPr":
				// tab stops and run properties carry no text
				if err := decoder.Skip(); err != nil {
					return nil, err
				}
			case "t":
				inText = len(open) > 0
			case "tab":
				if len(open) > 0 {
					open[len(open)-1].WriteByte('\t')
				}
			case "br", "cr":
				if len(open) > 0 {
					open[len(open)-1].WriteByte(' ')
				}
			}
		case xml.CharData:
			if inText {
				open[len(open)-1].Write(t)
			}
		case xml.EndElement:
			if !isWML(t.Name) {
				continue
			}
			switch t.Name.Local {
			case "t":
				inText = false
			case "p":
				if len(open) > 0 {
					current := open[len(open)-1]
					open = open[:len(open)-1]
					paragraphs = append(paragraphs, strings.TrimSpace(current.String()))
					inText = false
				}
			}
		}
	}
	return paragraphs, nil
}

func collapseBlankLines(lines []string) []string {
	out := make([]string, 0, len(lines))
	for _, line := range lines {
		if line == "" && (len(out) == 0 || out[len(out)-1] == "") {
			continue
		}
		out = append(out, line)
	}
	for len(out) > 0 && out[len(out)-1] == "" {
		out = out[:len(out)-1]
	}
	return out
}
