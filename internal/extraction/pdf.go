package extraction

import (
	"bytes"
	"fmt"
	"io"
	"strconv"
	"strings"
	"unicode/utf16"

	"github.com/pdfcpu/pdfcpu/pkg/api"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/model"
	"golang.org/x/text/encoding/charmap"
)

// kerningGap is the TJ adjustment (in thousandths of an em) treated as a word gap.
const kerningGap = -250

// extractPDF reads every page's content stream in page order and returns the
// non-blank text lines. Pages are joined with a single newline.
func extractPDF(raw []byte) (lines []string, err error) {
	defer func() {
		if r := recover(); r != nil {
			lines = nil
			err = &CorruptDocumentError{MediaType: "pdf", Message: "parser panic", Cause: fmt.Errorf("%v", r)}
		}
	}()

	conf := model.NewDefaultConfiguration()
	ctx, err := api.ReadValidateAndOptimize(bytes.NewReader(raw), conf)
	if err != nil {
		return nil, &CorruptDocumentError{MediaType: "pdf", Message: "failed to read PDF", Cause: err}
	}

	for pageNr := 1; pageNr <= ctx.PageCount; pageNr++ {
		r, err := pdfcpu.ExtractPageContent(ctx, pageNr)
		if err != nil {
			return nil, &CorruptDocumentError{MediaType: "pdf", Message: fmt.Sprintf("failed to read page %d", pageNr), Cause: err}
		}
		if r == nil {
			continue
		}
		data, err := io.ReadAll(r)
		if err != nil {
			return nil, &CorruptDocumentError{MediaType: "pdf", Message: fmt.Sprintf("failed to read page %d", pageNr), Cause: err}
		}
		lines = append(lines, textFromContentStream(data)...)
	}

	return lines, nil
}

// operand is a value on the content stream operand stack.
type operand struct {
	text   string
	number float64
	isText bool
	isNum  bool
}

// pageText accumulates text lines for one page.
type pageText struct {
	lines   []string
	current strings.Builder
}

func (p *pageText) write(s string) {
	p.current.WriteString(s)
}

func (p *pageText) space() {
	cur := p.current.String()
	if cur != "" && !strings.HasSuffix(cur, " ") {
		p.current.WriteByte(' ')
	}
}

func (p *pageText) newline() {
	for _, line := range strings.Split(p.current.String(), "\n") {
		if line = strings.TrimSpace(line); line != "" {
			p.lines = append(p.lines, line)
		}
	}
	p.current.Reset()
}

// textFromContentStream tokenizes a decoded page content stream and collects
// the strings shown by the Tj, TJ, ' and " operators.
func textFromContentStream(data []byte) []string {
	s := &scanner{data: data}
	page := &pageText{}
	var stack []operand

	for {
		tok, kind, ok := s.next()
		if !ok {
			break
		}
		switch kind {
		case tokString:
			stack = append(stack, operand{text: decodePDFText(tok), isText: true})
		case tokArray:
			stack = append(stack, operand{text: string(tok), isText: true})
		case tokNumber:
			n, _ := strconv.ParseFloat(string(tok), 64)
			stack = append(stack, operand{number: n, isNum: true})
		case tokOperator:
			applyOperator(string(tok), stack, page, s)
			stack = stack[:0]
		}
	}
	page.newline()
	return page.lines
}

func applyOperator(op string, stack []operand, page *pageText, s *scanner) {
	switch op {
	case "BT", "T*", "Tm":
		page.newline()
	case "Td", "TD":
		if len(stack) >= 2 && stack[len(stack)-1].isNum && stack[len(stack)-2].isNum {
			tx, ty := stack[len(stack)-2].number, stack[len(stack)-1].number
			if ty != 0 {
				page.newline()
			} else if tx > 0 {
				page.space()
			}
		}
	case "Tj", "TJ":
		if t, ok := lastText(stack); ok {
			page.write(t)
		}
	case "'", "\"":
		page.newline()
		if t, ok := lastText(stack); ok {
			page.write(t)
		}
	case "ID":
		s.skipInlineImage()
	}
}

func lastText(stack []operand) (string, bool) {
	for i := len(stack) - 1; i >= 0; i-- {
		if stack[i].isText {
			return stack[i].text, true
		}
	}
	return "", false
}

type tokenKind int

const (
	tokString tokenKind = iota
	tokArray
	tokNumber
	tokOperator
	tokOther
)

type scanner struct {
	data []byte
	pos  int
}

func isPDFWhitespace(b byte) bool {
	switch b {
	case ' ', '\t', '\r', '\n', '\f', 0:
		return true
	}
	return false
}

func isPDFDelimiter(b byte) bool {
	switch b {
	case '(', ')', '<', '>', '[', ']', '{', '}', '/', '%':
		return true
	}
	return false
}

func (s *scanner) skipSpaceAndComments() {
	for s.pos < len(s.data) {
		b := s.data[s.pos]
		if isPDFWhitespace(b) {
			s.pos++
			continue
		}
		if b == '%' {
			for s.pos < len(s.data) && s.data[s.pos] != '\n' && s.data[s.pos] != '\r' {
				s.pos++
			}
			continue
		}
		return
	}
}

// next returns the next token. Arrays are returned already flattened to
// their shown text (raw bytes for strings are decoded here).
func (s *scanner) next() ([]byte, tokenKind, bool) {
	s.skipSpaceAndComments()
	if s.pos >= len(s.data) {
		return nil, tokOther, false
	}
	b := s.data[s.pos]
	switch {
	case b == '(':
		return s.literalString(), tokString, true
	case b == '<':
		if s.pos+1 < len(s.data) && s.data[s.pos+1] == '<' {
			s.pos += 2
			return nil, tokOther, true
		}
		return s.hexString(), tokString, true
	case b == '>':
		s.pos++
		if s.pos < len(s.data) && s.data[s.pos] == '>' {
			s.pos++
		}
		return nil, tokOther, true
	case b == '[':
		s.pos++
		return []byte(s.arrayText()), tokArray, true
	case b == ']' || b == '{' || b == '}' || b == ')':
		s.pos++
		return nil, tokOther, true
	case b == '/':
		s.pos++
		s.regular()
		return nil, tokOther, true
	default:
		word := s.regular()
		if len(word) == 0 {
			s.pos++
			return nil, tokOther, true
		}
		if isNumber(word) {
			return word, tokNumber, true
		}
		return word, tokOperator, true
	}
}

func (s *scanner) regular() []byte {
	start := s.pos
	for s.pos < len(s.data) && !isPDFWhitespace(s.data[s.pos]) && !isPDFDelimiter(s.data[s.pos]) {
		s.pos++
	}
	return s.data[start:s.pos]
}

func isNumber(word []byte) bool {
	if len(word) == 0 {
		return false
	}
	for i, c := range word {
		if (c < '0' || c > '9') && c != '.' && !(i == 0 && (c == '-' || c == '+')) {
			return false
		}
	}
	return true
}

// literalString reads a (...) string with balanced parentheses and escapes.
func (s *scanner) literalString() []byte {
	s.pos++ // opening paren
	var out []byte
	depth := 1
	for s.pos < len(s.data) {
		c := s.data[s.pos]
		switch c {
		case '\\':
			s.pos++
			if s.pos >= len(s.data) {
				return out
			}
			e := s.data[s.pos]
			switch e {
			case 'n':
				out = append(out, '\n')
			case 'r':
				out = append(out, '\r')
			case 't':
				out = append(out, '\t')
			case 'b':
				out = append(out, '\b')
			case 'f':
				out = append(out, '\f')
			case '\r':
				if s.pos+1 < len(s.data) && s.data[s.pos+1] == '\n' {
					s.pos++
				}
			case '\n':
				// line continuation
			default:
				if e >= '0' && e <= '7' {
					val := int(e - '0')
					for i := 0; i < 2 && s.pos+1 < len(s.data) && s.data[s.pos+1] >= '0' && s.data[s.pos+1] <= '7'; i++ {
						s.pos++
						val = val*8 + int(s.data[s.pos]-'0')
					}
					out = append(out, byte(val))
				} else {
					out = append(out, e)
				}
			}
		case '(':
			depth++
			out = append(out, c)
		case ')':
			depth--
			if depth == 0 {
				s.pos++
				return out
			}
			out = append(out, c)
		default:
			out = append(out, c)
		}
		s.pos++
	}
	return out
}

// hexString reads a <...> string. An odd trailing digit is padded with 0.
func (s *scanner) hexString() []byte {
	s.pos++ // opening angle bracket
	var out []byte
	var hi byte
	half := false
	for s.pos < len(s.data) {
		c := s.data[s.pos]
		s.pos++
		if c == '>' {
			break
		}
		v, ok := hexValue(c)
		if !ok {
			continue
		}
		if !half {
			hi = v
			half = true
		} else {
			out = append(out, hi<<4|v)
			half = false
		}
	}
	if half {
		out = append(out, hi<<4)
	}
	return out
}

func hexValue(c byte) (byte, bool) {
	switch {
	case c >= '0' && c <= '9':
		return c - '0', true
	case c >= 'a' && c <= 'f':
		return c - 'a' + 10, true
	case c >= 'A' && c <= 'F':
		return c - 'A' + 10, true
	}
	return 0, false
}

// arrayText reads a TJ array and returns its shown text. Large negative
// kerning adjustments are rendered as a single space.
func (s *scanner) arrayText() string {
	var sb strings.Builder
	for {
		s.skipSpaceAndComments()
		if s.pos >= len(s.data) {
			return sb.String()
		}
		c := s.data[s.pos]
		switch {
		case c == ']':
			s.pos++
			return sb.String()
		case c == '(':
			sb.WriteString(decodePDFText(s.literalString()))
		case c == '<':
			sb.WriteString(decodePDFText(s.hexString()))
		default:
			word := s.regular()
			if len(word) == 0 {
				s.pos++
				continue
			}
			if n, err := strconv.ParseFloat(string(word), 64); err == nil && n < kerningGap {
				if cur := sb.String(); cur != "" && !strings.HasSuffix(cur, " ") {
					sb.WriteByte(' ')
				}
			}
		}
	}
}

// skipInlineImage advances past inline image data up to the EI operator.
func (s *scanner) skipInlineImage() {
	idx := bytes.Index(s.data[s.pos:], []byte("EI"))
	for idx >= 0 {
		end := s.pos + idx
		before := end == 0 || isPDFWhitespace(s.data[end-1])
		after := end+2 >= len(s.data) || isPDFWhitespace(s.data[end+2])
		if before && after {
			s.pos = end + 2
			return
		}
		next := bytes.Index(s.data[end+2:], []byte("EI"))
		if next < 0 {
			break
		}
		idx = end + 2 + next - s.pos
	}
	s.pos = len(s.data)
}

// decodePDFText decodes a shown string. UTF-16BE is recognized by its byte
// order mark; everything else is treated as WinAnsi.
func decodePDFText(raw []byte) string {
	if len(raw) >= 2 && raw[0] == 0xFE && raw[1] == 0xFF {
		body := raw[2:]
		units := make([]uint16, 0, len(body)/2)
		for i := 0; i+1 < len(body); i += 2 {
			units = append(units, uint16(body[i])<<8|uint16(body[i+1]))
		}
		return string(utf16.Decode(units))
	}
	decoded, err := charmap.Windows1252.NewDecoder().Bytes(raw)
	if err != nil {
		return string(raw)
	}
	return strings.ReplaceAll(string(decoded), "\r", "")
}
