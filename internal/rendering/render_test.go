package rendering

import (
	"archive/zip"
	"bytes"
	"context"
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/resume-adapter/internal/extraction"
	"github.com/jonathan/resume-adapter/internal/sections"
	"github.com/jonathan/resume-adapter/internal/types"
)

func testSections() map[types.Section]string {
	return map[types.Section]string{
		types.SectionResume:      "Jane Doe — Engineer\n\n• Built “things” … fast\nIt’s café time",
		types.SectionCoverLetter: "Dear team,\nI’d love to join – truly.",
	}
}

func TestNormalizePunctuation(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"a – b — c", "a - b - c"},
		{"‘single’ “double”", `'single' "double"`},
		{"wait…", "wait..."},
		{"• item", "- item"},
		{"plain ASCII & café", "plain ASCII & café"},
		{"", ""},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, NormalizePunctuation(tt.in))
	}
}

func TestRender_UnsupportedFormat(t *testing.T) {
	for _, format := range []string{"rtf", "html", ""} {
		artifact, err := Render(testSections(), format)
		assert.Nil(t, artifact)
		var unsupported *UnsupportedExportFormatError
		require.ErrorAs(t, err, &unsupported)
		assert.Equal(t, format, unsupported.Format)
	}
}

func TestRender_TXT(t *testing.T) {
	artifact, err := Render(testSections(), "TXT")
	require.NoError(t, err)
	assert.Equal(t, types.ExportTXT, artifact.Format)

	text := string(artifact.Bytes)
	for _, r := range []string{"–", "—", "‘", "’", "“", "”", "…", "•"} {
		assert.NotContains(t, text, r)
	}
	assert.Contains(t, text, `- Built "things" ... fast`)

	reparsed := sections.Parse(text)
	assert.False(t, reparsed.Degraded)
	assert.Equal(t, NormalizePunctuation(testSections()[types.SectionResume]), reparsed.Resume())
	assert.Equal(t, "Dear team,\nI'd love to join - truly.", reparsed.CoverLetter())
}

func TestRender_PDF(t *testing.T) {
	artifact, err := Render(testSections(), "pdf")
	require.NoError(t, err)
	assert.Equal(t, types.ExportPDF, artifact.Format)
	assert.True(t, bytes.HasPrefix(artifact.Bytes, []byte("%PDF-")))

	doc, err := extraction.Extract(artifact.Bytes, types.MIMEPDF)
	require.NoError(t, err)
	text := doc.Text()
	assert.Contains(t, text, "Adapted Resume")
	assert.Contains(t, text, "Cover Letter")
	assert.Contains(t, text, "Jane Doe - Engineer")
	assert.Contains(t, text, "It's café time")
	assert.NotContains(t, text, "—")
}

func TestRender_PDFUnicodeText(t *testing.T) {
	artifact, err := Render(map[types.Section]string{
		types.SectionResume:      "Иван Петров, инженер",
		types.SectionCoverLetter: "Ελληνικά και Ñandú",
	}, "pdf")
	require.NoError(t, err)
	require.True(t, bytes.HasPrefix(artifact.Bytes, []byte("%PDF-")))

	out := string(artifact.Bytes)
	assert.Contains(t, out, "/Encoding /Identity-H")
	assert.Contains(t, out, "DejaVuSansCondensed")
	assert.Contains(t, out, "/FontFile2")
}

func TestRender_PDFKeepsCoreFontForWesternText(t *testing.T) {
	artifact, err := Render(testSections(), "pdf")
	require.NoError(t, err)

	out := string(artifact.Bytes)
	assert.NotContains(t, out, "Identity-H")
	assert.Contains(t, out, "/BaseFont /Helvetica")
}

func TestRender_PDFMissingGlyphs(t *testing.T) {
	artifact, err := Render(map[types.Section]string{
		types.SectionResume:      "Иван Петров",
		types.SectionCoverLetter: "日本語のカバーレター",
	}, "pdf")
	assert.Nil(t, artifact)

	var renderErr *RenderError
	require.ErrorAs(t, err, &renderErr)
	assert.Equal(t, "pdf", renderErr.Format)
	assert.Contains(t, renderErr.Error(), "U+65E5")
	assert.NotContains(t, renderErr.Error(), "U+0418")
}

func TestRender_DOCX(t *testing.T) {
	artifact, err := Render(testSections(), "docx")
	require.NoError(t, err)
	assert.Equal(t, types.ExportDOCX, artifact.Format)

	zr, err := zip.NewReader(bytes.NewReader(artifact.Bytes), int64(len(artifact.Bytes)))
	require.NoError(t, err)
	names := make([]string, 0, len(zr.File))
	var documentXML string
	for _, f := range zr.File {
		names = append(names, f.Name)
		if f.Name == "word/document.xml" {
			rc, err := f.Open()
			require.NoError(t, err)
			data, err := io.ReadAll(rc)
			require.NoError(t, err)
			require.NoError(t, rc.Close())
			documentXML = string(data)
		}
	}
	assert.ElementsMatch(t, []string{
		"[Content_Types].xml", "_rels/.rels", "word/document.xml", "word/_rels/document.xml.rels", "word/styles.xml",
	}, names)
	assert.Equal(t, 2, strings.Count(documentXML, `<w:pStyle w:val="Heading1"/>`))
	assert.Equal(t, 1, strings.Count(documentXML, `<w:br w:type="page"/>`))
	assert.Contains(t, documentXML, "- Built &#34;things&#34; ... fast")

	doc, err := extraction.Extract(artifact.Bytes, types.MIMEDOCX)
	require.NoError(t, err)
	assert.Equal(t, []string{
		"Adapted Resume",
		"Jane Doe - Engineer",
		"",
		`- Built "things" ... fast`,
		"It's café time",
		"",
		"Cover Letter",
		"Dear team,",
		"I'd love to join - truly.",
	}, doc.Lines)
}

func TestRender_EscapesMarkup(t *testing.T) {
	artifact, err := Render(map[types.Section]string{
		types.SectionResume:      "R&D <lead> \x01",
		types.SectionCoverLetter: types.NoContent,
	}, "docx")
	require.NoError(t, err)

	doc, err := extraction.Extract(artifact.Bytes, types.MIMEDOCX)
	require.NoError(t, err)
	assert.Contains(t, doc.Lines, "R&D <lead>")
}

func TestRender_DOCXTabs(t *testing.T) {
	artifact, err := Render(map[types.Section]string{
		types.SectionResume:      "Go\tPython\tSQL\n2019\t\tBerlin",
		types.SectionCoverLetter: "Hello",
	}, "docx")
	require.NoError(t, err)

	documentXML := docxPart(t, artifact.Bytes, "word/document.xml")
	assert.Contains(t, documentXML,
		`<w:r><w:t xml:space="preserve">Go</w:t><w:tab/><w:t xml:space="preserve">Python</w:t><w:tab/><w:t xml:space="preserve">SQL</w:t></w:r>`)
	assert.Contains(t, documentXML, `2019</w:t><w:tab/><w:tab/><w:t xml:space="preserve">Berlin`)
	assert.NotContains(t, documentXML, "\t")

	doc, err := extraction.Extract(artifact.Bytes, types.MIMEDOCX)
	require.NoError(t, err)
	assert.Contains(t, doc.Lines, "Go\tPython\tSQL")
	assert.Contains(t, doc.Lines, "2019\t\tBerlin")
}

func docxPart(t *testing.T, pkg []byte, name string) string {
	t.Helper()
	zr, err := zip.NewReader(bytes.NewReader(pkg), int64(len(pkg)))
	require.NoError(t, err)
	for _, f := range zr.File {
		if f.Name != name {
			continue
		}
		rc, err := f.Open()
		require.NoError(t, err)
		defer rc.Close()
		data, err := io.ReadAll(rc)
		require.NoError(t, err)
		return string(data)
	}
	t.Fatalf("part %s not found", name)
	return ""
}

func TestRenderAll(t *testing.T) {
	artifacts, err := RenderAll(context.Background(), testSections(), []string{"txt", "pdf", "docx"})
	require.NoError(t, err)
	require.Len(t, artifacts, 3)
	assert.Equal(t, types.ExportTXT, artifacts[0].Format)
	assert.Equal(t, types.ExportPDF, artifacts[1].Format)
	assert.Equal(t, types.ExportDOCX, artifacts[2].Format)
	for _, a := range artifacts {
		assert.NotEmpty(t, a.Bytes)
	}

	_, err = RenderAll(context.Background(), testSections(), []string{"txt", "odt"})
	var unsupported *UnsupportedExportFormatError
	assert.ErrorAs(t, err, &unsupported)
}

func TestFileNameAndContentType(t *testing.T) {
	assert.Equal(t, "adapted_resume_and_cover_letter.pdf", FileName(types.ExportPDF))
	assert.Equal(t, "adapted_resume_and_cover_letter.docx", FileName(types.ExportDOCX))
	assert.Equal(t, types.MIMEPDF, ContentType(types.ExportPDF))
	assert.Equal(t, types.MIMEDOCX, ContentType(types.ExportDOCX))
	assert.Contains(t, ContentType(types.ExportTXT), "text/plain")
}
