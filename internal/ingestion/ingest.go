package ingestion

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/jonathan/resume-adapter/internal/fetch"
)

var (
	// ErrHTTPRequestFailed is returned when HTTP request fails
	ErrHTTPRequestFailed = errors.New("HTTP request failed")
	// ErrContentExtractionFailed is returned when content extraction fails
	ErrContentExtractionFailed = errors.New("content extraction failed")
	// ErrEmptyJobDescription is returned when a source yields no text
	ErrEmptyJobDescription = errors.New("job description is empty")
)

// Source kinds of a job description.
const (
	SourceText = "text"
	SourceFile = "file"
	SourceURL  = "url"
)

// JobDescription is a cleaned job description and where it came from.
type JobDescription struct {
	Text      string    `json:"text"`
	Source    string    `json:"source"`
	Location  string    `json:"location,omitempty"` // file path or URL
	Platform  string    `json:"platform,omitempty"`
	Hash      string    `json:"hash"` // SHA256 hex digest of Text
	Timestamp time.Time `json:"timestamp"`
}

func newJobDescription(text, source, location string) *JobDescription {
	sum := sha256.Sum256([]byte(text))
	return &JobDescription{
		Text:      text,
		Source:    source,
		Location:  location,
		Hash:      hex.EncodeToString(sum[:]),
		Timestamp: time.Now().UTC(),
	}
}

// Ingester loads job descriptions.
type Ingester struct {
	Client   *fetch.Client
	Renderer fetch.Renderer // nil disables the browser fallback
	Logger   *slog.Logger
}

// NewIngester returns an ingester. When useBrowser is set, pages with too
// little static text are re-read through a headless browser.
func NewIngester(logger *slog.Logger, useBrowser bool) *Ingester {
	if logger == nil {
		logger = slog.Default()
	}
	ing := &Ingester{Client: fetch.NewClient(), Logger: logger}
	if useBrowser {
		ing.Renderer = fetch.NewBrowserRenderer(logger)
	}
	return ing
}

// FromText cleans an inline job description.
func (i *Ingester) FromText(text string) (*JobDescription, error) {
	cleaned := CleanText(text)
	if cleaned == "" {
		return nil, ErrEmptyJobDescription
	}
	return newJobDescription(cleaned, SourceText, ""), nil
}

// FromFile reads and cleans a text file.
func (i *Ingester) FromFile(path string) (*JobDescription, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("file not found: %w", err)
		}
		return nil, fmt.Errorf("failed to read file: %w", err)
	}

	cleaned := CleanText(string(content))
	if cleaned == "" {
		return nil, fmt.Errorf("%s: %w", path, ErrEmptyJobDescription)
	}
	return newJobDescription(cleaned, SourceFile, path), nil
}

// FromURL fetches a job posting, extracts its main text with platform-specific
// selectors and cleans it.
func (i *Ingester) FromURL(ctx context.Context, urlStr string) (*JobDescription, error) {
	page, err := i.Client.Get(ctx, urlStr)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrHTTPRequestFailed, err)
	}
	logger := i.Logger.With(slog.String("url", urlStr), slog.String("platform", string(page.Platform)))
	logger.Debug("fetched job posting", slog.Int("html_bytes", len(page.HTML)))

	text, err := page.MainText()
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrContentExtractionFailed, err)
	}

	if i.Renderer != nil && fetch.ShouldUseBrowser(text) {
		logger.Debug("static content too short, rendering in browser",
			slog.Int("chars", len(text)), slog.Int("min_chars", fetch.MinContentLength))

		html, renderErr := i.Renderer.Render(ctx, urlStr)
		if renderErr != nil {
			logger.Warn("browser rendering failed, using static content", slog.Any("error", renderErr))
		} else if rendered, extractErr := fetch.MainText(html, page.Platform); extractErr != nil {
			logger.Warn("browser content extraction failed", slog.Any("error", extractErr))
		} else if len(rendered) > len(text) {
			text = rendered
		}
	}

	cleaned := CleanText(text)
	if cleaned == "" {
		return nil, fmt.Errorf("%s: %w", urlStr, ErrEmptyJobDescription)
	}
	logger.Debug("extracted job description", slog.Int("chars", len(cleaned)))

	jd := newJobDescription(cleaned, SourceURL, urlStr)
	jd.Platform = string(page.Platform)
	return jd, nil
}
