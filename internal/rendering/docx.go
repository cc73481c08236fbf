package rendering

import (
	"archive/zip"
	"bytes"
	"encoding/xml"
	"strings"

	"github.com/jonathan/resume-adapter/internal/types"
)

const (
	docxContentTypes = `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>
<Types xmlns="http://schemas.openxmlformats.org/package/2006/content-types">
<Default Extension="rels" ContentType="application/vnd.openxmlformats-package.relationships+xml"/>
<Default Extension="xml" ContentType="application/xml"/>
<Override PartName="/word/document.xml" ContentType="application/vnd.openxmlformats-officedocument.wordprocessingml.document.main+xml"/>
<Override PartName="/word/styles.xml" ContentType="application/vnd.openxmlformats-officedocument.wordprocessingml.styles+xml"/>
</Types>`

	docxRootRels = `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>
<Relationships xmlns="http://schemas.openxmlformats.org/package/2006/relationships">
<Relationship Id="rId1" Type="http://schemas.openxmlformats.org/officeDocument/2006/relationships/officeDocument" Target="word/document.xml"/>
</Relationships>`

	docxDocumentRels = `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>
<Relationships xmlns="http://schemas.openxmlformats.org/package/2006/relationships">
<Relationship Id="rId1" Type="http://schemas.openxmlformats.org/officeDocument/2006/relationships/styles" Target="styles.xml"/>
</Relationships>`

	docxStyles = `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>
<w:styles xmlns:w="http://schemas.openxmlformats.org/wordprocessingml/2006/main">
<w:style w:type="paragraph" w:default="1" w:styleId="Normal"><w:name w:val="Normal"/><w:rPr><w:sz w:val="22"/></w:rPr></w:style>
<w:style w:type="paragraph" w:styleId="Heading1"><w:name w:val="heading 1"/><w:basedOn w:val="Normal"/><w:next w:val="Normal"/><w:pPr><w:keepNext/><w:spacing w:before="240" w:after="120"/><w:outlineLvl w:val="0"/></w:pPr><w:rPr><w:b/><w:sz w:val="32"/></w:rPr></w:style>
</w:styles>`

	docxDocumentOpen = `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>
<w:document xmlns:w="http://schemas.openxmlformats.org/wordprocessingml/2006/main"><w:body>`

	docxDocumentClose = `<w:sectPr><w:pgSz w:w="11906" w:h="16838"/><w:pgMar w:top="1134" w:right="1134" w:bottom="1134" w:left="1134" w:header="708" w:footer="708" w:gutter="0"/></w:sectPr></w:body></w:document>`
)

// renderDOCX writes a minimal OOXML package: a Heading1 per section, one
// paragraph per line and a page break between sections.
func renderDOCX(s map[types.Section]string) ([]byte, error) {
	var body strings.Builder
	body.WriteString(docxDocumentOpen)
	for i, section := range types.Sections() {
		if i > 0 {
			body.WriteString(`<w:p><w:r><w:br w:type="page"/></w:r></w:p>`)
		}
		writeParagraph(&body, section.Title(), "Heading1")
		for _, line := range sectionLines(s[section]) {
			writeParagraph(&body, line, "")
		}
	}
	body.WriteString(docxDocumentClose)

	parts := []struct {
		name    string
		content string
	}{
		{"[Content_Types].xml", docxContentTypes},
		{"_rels/.rels", docxRootRels},
		{"word/document.xml", body.String()},
		{"word/_rels/document.xml.rels", docxDocumentRels},
		{"word/styles.xml", docxStyles},
	}

	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	for _, part := range parts {
		w, err := zw.Create(part.name)
		if err != nil {
			return nil, &RenderError{Format: "docx", Message: "failed to create " + part.name, Cause: err}
		}
		if _, err := w.Write([]byte(part.content)); err != nil {
			return nil, &RenderError{Format: "docx", Message: "failed to write " + part.name, Cause: err}
		}
	}
	if err := zw.Close(); err != nil {
		return nil, &RenderError{Format: "docx", Message: "failed to finish package", Cause: err}
	}
	return buf.Bytes(), nil
}

func writeParagraph(sb *strings.Builder, text, style string) {
	sb.WriteString("<w:p>")
	if style != "" {
		sb.WriteString(`<w:pPr><w:pStyle w:val="` + style + `"/></w:pPr>`)
	}
	if text != "" {
		sb.WriteString("<w:r>")
		// Word ignores literal tabs inside w:t; each one needs its own w:tab.
		for i, chunk := range strings.Split(stripInvalidXML(text), "\t") {
			if i > 0 {
				sb.WriteString("<w:tab/>")
			}
			if chunk == "" {
				continue
			}
			sb.WriteString(`<w:t xml:space="preserve">`)
			// strings.Builder writes never fail
			_ = xml.EscapeText(sb, []byte(chunk))
			sb.WriteString("</w:t>")
		}
		sb.WriteString("</w:r>")
	}
	sb.WriteString("</w:p>")
}

// stripInvalidXML drops control characters that XML 1.0 cannot carry.
func stripInvalidXML(s string) string {
	return strings.Map(func(r rune) rune {
		switch {
		case r == '\t' || r == '\n' || r == '\r':
			return r
		case r < 0x20, r == 0xFFFE, r == 0xFFFF:
			return -1
		default:
			return r
		}
	}, s)
}
