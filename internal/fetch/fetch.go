// Package fetch retrieves job posting pages and reduces them to their main text.
package fetch

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
)

// Client defaults.
const (
	DefaultTimeout      = 30 * time.Second
	DefaultUserAgent    = "Mozilla/5.0 (compatible; ResumeAdapter/1.0)"
	DefaultMaxBodyBytes = 5 << 20
)

// Error operations.
const (
	OpValidate = "validate"
	OpRequest  = "request"
	OpRead     = "read"
	OpStatus   = "status"
)

// Error reports which step of a page fetch failed.
type Error struct {
	URL    string
	Op     string
	Status int // set for OpStatus
	Cause  error
}

func (e *Error) Error() string {
	var what string
	switch e.Op {
	case OpValidate:
		what = "invalid URL"
	case OpStatus:
		what = fmt.Sprintf("HTTP status %d", e.Status)
	default:
		what = e.Op + " failed"
	}
	if e.Cause != nil {
		return fmt.Sprintf("fetch %s: %s: %v", e.URL, what, e.Cause)
	}
	return fmt.Sprintf("fetch %s: %s", e.URL, what)
}

func (e *Error) Unwrap() error {
	return e.Cause
}

// Page is a fetched job posting.
type Page struct {
	URL         string
	Platform    Platform
	Status      int
	ContentType string
	HTML        string
}

// MainText extracts the posting text using the page's platform selectors.
func (p *Page) MainText() (string, error) {
	return MainText(p.HTML, p.Platform)
}

// Client fetches pages over plain HTTP.
type Client struct {
	http         *http.Client
	userAgent    string
	headers      map[string]string
	maxBodyBytes int64
}

// ClientOption configures a Client.
type ClientOption func(*Client)

// WithHTTPClient replaces the underlying HTTP client.
func WithHTTPClient(hc *http.Client) ClientOption {
	return func(c *Client) { c.http = hc }
}

// WithHeader adds a request header.
func WithHeader(key, value string) ClientOption {
	return func(c *Client) { c.headers[key] = value }
}

// WithMaxBodyBytes caps how much of a response body is read.
func WithMaxBodyBytes(n int64) ClientOption {
	return func(c *Client) {
		if n > 0 {
			c.maxBodyBytes = n
		}
	}
}

// NewClient returns a client with a 30s timeout and a 5 MiB body limit.
func NewClient(opts ...ClientOption) *Client {
	c := &Client{
		http:         &http.Client{Timeout: DefaultTimeout},
		userAgent:    DefaultUserAgent,
		headers:      map[string]string{},
		maxBodyBytes: DefaultMaxBodyBytes,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// ValidateURL checks that rawURL is an absolute http(s) URL.
func ValidateURL(rawURL string) error {
	u, err := url.Parse(strings.TrimSpace(rawURL))
	if err != nil {
		return &Error{URL: rawURL, Op: OpValidate, Cause: err}
	}
	if u.Host == "" || (u.Scheme != "http" && u.Scheme != "https") {
		return &Error{URL: rawURL, Op: OpValidate}
	}
	return nil
}

// Get fetches rawURL. A non-200 response returns the page together with an
// OpStatus error so callers can inspect the body.
func (c *Client) Get(ctx context.Context, rawURL string) (*Page, error) {
	if err := ValidateURL(rawURL); err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return nil, &Error{URL: rawURL, Op: OpRequest, Cause: err}
	}
	req.Header.Set("User-Agent", c.userAgent)
	req.Header.Set("Accept", "text/html,application/xhtml+xml;q=0.9,*/*;q=0.5")
	for key, value := range c.headers {
		req.Header.Set(key, value)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, &Error{URL: rawURL, Op: OpRequest, Cause: err}
	}
	defer func() { _ = resp.Body.Close() }()

	body, err := io.ReadAll(io.LimitReader(resp.Body, c.maxBodyBytes))
	if err != nil {
		return nil, &Error{URL: rawURL, Op: OpRead, Cause: err}
	}

	page := &Page{
		URL:         rawURL,
		Platform:    DetectPlatform(rawURL),
		Status:      resp.StatusCode,
		ContentType: resp.Header.Get("Content-Type"),
		HTML:        string(body),
	}
	if resp.StatusCode != http.StatusOK {
		return page, &Error{URL: rawURL, Op: OpStatus, Status: resp.StatusCode}
	}
	return page, nil
}

// pageChrome is removed from every page before text extraction.
const pageChrome = "nav, footer, header, script, style, noscript, svg, iframe, .ad, .advertisement, .sidebar, .cookie-banner, .popup"

// MainText parses html and returns the text of the first element matching
// the platform's content selectors, or of the body. Block elements end a
// line and list items become "- " bullets.
func MainText(html string, platform Platform) (string, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return "", fmt.Errorf("failed to parse HTML: %w", err)
	}

	content, noise := selectorsFor(platform)
	doc.Find(pageChrome).Remove()
	doc.Find(strings.Join(noise, ", ")).Remove()

	main := doc.Find("body")
	for _, selector := range content {
		if found := doc.Find(selector); found.Length() > 0 {
			main = found.First()
			break
		}
	}

	main.Find("p, li, h1, h2, h3, h4, h5, h6, div, br, tr").AppendHtml("\n")
	main.Find("li").PrependHtml("- ")

	return squeezeLines(main.Text()), nil
}

// squeezeLines collapses runs of whitespace inside lines and drops blank lines.
func squeezeLines(text string) string {
	var out []string
	for _, line := range strings.Split(text, "\n") {
		if line = strings.Join(strings.Fields(line), " "); line != "" {
			out = append(out, line)
		}
	}
	return strings.Join(out, "\n")
}
