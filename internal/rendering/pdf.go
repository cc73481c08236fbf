package rendering

import (
	"bytes"
	_ "embed"
	"fmt"
	"strings"
	"sync"
	"unicode"

	"github.com/go-pdf/fpdf"
	"golang.org/x/image/font/sfnt"
	"golang.org/x/text/encoding/charmap"

	"github.com/jonathan/resume-adapter/internal/types"
)

// Page layout in millimetres and points.
const (
	pdfMargin      = 15.0
	pdfHeadingSize = 16.0
	pdfBodySize    = 12.0
	pdfHeadingH    = 10.0
	pdfLineH       = 8.0
	pdfFont        = "Arial"
	pdfUnicodeFont = "DejaVu"
)

// DejaVu Sans Condensed covers Latin, Greek and Cyrillic. It is embedded
// only when some text falls outside Windows-1252.
var (
	//go:embed fonts/DejaVuSansCondensed.ttf
	dejaVuRegular []byte
	//go:embed fonts/DejaVuSansCondensed-Bold.ttf
	dejaVuBold []byte
)

var (
	unicodeFontOnce sync.Once
	unicodeFont     *sfnt.Font
	unicodeFontErr  error
)

func parsedUnicodeFont() (*sfnt.Font, error) {
	unicodeFontOnce.Do(func() {
		unicodeFont, unicodeFontErr = sfnt.Parse(dejaVuRegular)
	})
	return unicodeFont, unicodeFontErr
}

// renderPDF writes one A4 page (or more, with auto page break) per section.
// Text that Windows-1252 can carry uses the core Arial font; anything else
// switches the whole document to the embedded Unicode font. Runes that font
// has no glyph for fail the render instead of printing placeholders.
func renderPDF(s map[types.Section]string) ([]byte, error) {
	lines := make(map[types.Section][]string, len(types.Sections()))
	winAnsi := true
	for _, section := range types.Sections() {
		lines[section] = sectionLines(s[section])
		if !fitsWinAnsi(section.Title()) {
			winAnsi = false
		}
		for _, line := range lines[section] {
			if !fitsWinAnsi(line) {
				winAnsi = false
			}
		}
	}

	pdf := fpdf.New("P", "mm", "A4", "")
	pdf.SetAutoPageBreak(true, pdfMargin)
	pdf.SetCreator("resume-adapter", true)

	family, encode := pdfFont, toWinAnsi
	if !winAnsi {
		if err := checkGlyphCoverage(lines); err != nil {
			return nil, err
		}
		pdf.AddUTF8FontFromBytes(pdfUnicodeFont, "", dejaVuRegular)
		pdf.AddUTF8FontFromBytes(pdfUnicodeFont, "B", dejaVuBold)
		family, encode = pdfUnicodeFont, func(text string) string { return text }
	}

	for _, section := range types.Sections() {
		pdf.AddPage()
		pdf.SetFont(family, "B", pdfHeadingSize)
		pdf.CellFormat(0, pdfHeadingH, encode(section.Title()), "", 1, "", false, 0, "")
		pdf.SetFont(family, "", pdfBodySize)
		for _, line := range lines[section] {
			if line == "" {
				pdf.Ln(pdfLineH)
				continue
			}
			pdf.MultiCell(0, pdfLineH, encode(line), "", "", false)
		}
	}

	if err := pdf.Error(); err != nil {
		return nil, &RenderError{Format: "pdf", Message: "failed to lay out document", Cause: err}
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, &RenderError{Format: "pdf", Message: "failed to write document", Cause: err}
	}
	return buf.Bytes(), nil
}

// checkGlyphCoverage reports every distinct rune the embedded Unicode font
// cannot draw.
func checkGlyphCoverage(lines map[types.Section][]string) error {
	f, err := parsedUnicodeFont()
	if err != nil {
		return &RenderError{Format: "pdf", Message: "failed to load embedded font", Cause: err}
	}

	var (
		b       sfnt.Buffer
		seen    = map[rune]bool{}
		missing []string
	)
	for _, section := range types.Sections() {
		for _, line := range lines[section] {
			for _, r := range line {
				if seen[r] || unicode.IsControl(r) || unicode.IsSpace(r) {
					continue
				}
				seen[r] = true
				idx, err := f.GlyphIndex(&b, r)
				if err != nil || idx == 0 {
					missing = append(missing, fmt.Sprintf("%q (U+%04X)", r, r))
				}
			}
		}
	}
	if len(missing) == 0 {
		return nil
	}
	return &RenderError{
		Format:  "pdf",
		Message: "no glyph in the embedded font for " + strings.Join(missing, ", "),
	}
}

func fitsWinAnsi(text string) bool {
	for _, r := range text {
		if _, ok := charmap.Windows1252.EncodeRune(r); !ok {
			return false
		}
	}
	return true
}

// toWinAnsi encodes text for the PDF core fonts. Callers check fitsWinAnsi
// first; any rune without a Windows-1252 mapping becomes '?'.
func toWinAnsi(text string) string {
	out := make([]byte, 0, len(text))
	for _, r := range text {
		if b, ok := charmap.Windows1252.EncodeRune(r); ok {
			out = append(out, b)
		} else {
			out = append(out, '?')
		}
	}
	return string(out)
}
