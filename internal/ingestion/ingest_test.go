package ingestion

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubRenderer struct {
	html  string
	err   error
	calls int
}

func (s *stubRenderer) Render(context.Context, string) (string, error) {
	s.calls++
	return s.html, s.err
}

func testIngester() *Ingester {
	ing := NewIngester(slog.New(slog.NewTextHandler(io.Discard, nil)), false)
	return ing
}

func TestFromText(t *testing.T) {
	ing := testIngester()

	jd, err := ing.FromText("  Herd cats.\r\n\r\n\r\nKeep them fed.  ")
	require.NoError(t, err)
	assert.Equal(t, "Herd cats.\n\nKeep them fed.", jd.Text)
	assert.Equal(t, SourceText, jd.Source)
	assert.Len(t, jd.Hash, 64)
	assert.False(t, jd.Timestamp.IsZero())

	_, err = ing.FromText(" \n ")
	assert.ErrorIs(t, err, ErrEmptyJobDescription)
}

func TestFromFile(t *testing.T) {
	ing := testIngester()
	path := filepath.Join(t.TempDir(), "job.txt")
	require.NoError(t, os.WriteFile(path, []byte("# Cat Herder\n\n## Requirements\n-   Patience"), 0644))

	jd, err := ing.FromFile(path)
	require.NoError(t, err)
	assert.Equal(t, "# Cat Herder\n\n## Requirements\n- Patience", jd.Text)
	assert.Equal(t, SourceFile, jd.Source)
	assert.Equal(t, path, jd.Location)

	again, err := ing.FromFile(path)
	require.NoError(t, err)
	assert.Equal(t, jd.Hash, again.Hash)
}

func TestFromFile_Errors(t *testing.T) {
	ing := testIngester()

	_, err := ing.FromFile("/nonexistent/file.txt")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "file not found")

	empty := filepath.Join(t.TempDir(), "empty.txt")
	require.NoError(t, os.WriteFile(empty, []byte("   "), 0644))
	_, err = ing.FromFile(empty)
	assert.ErrorIs(t, err, ErrEmptyJobDescription)
}

const postingHTML = `<!DOCTYPE html>
<html>
<body>
<nav>Nav</nav>
<main>
<h1>Senior Cat Herder</h1>
<h2>Requirements</h2>
<ul>
<li>Five years herding cats</li>
<li>Patience</li>
</ul>
<form id="application-form">Apply here</form>
</main>
<footer>Footer</footer>
</body>
</html>`

func TestFromURL(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(postingHTML))
	}))
	defer server.Close()

	jd, err := testIngester().FromURL(context.Background(), server.URL)
	require.NoError(t, err)

	assert.Equal(t, "Senior Cat Herder\nRequirements\n- Five years herding cats\n- Patience", jd.Text)
	assert.Equal(t, SourceURL, jd.Source)
	assert.Equal(t, server.URL, jd.Location)
	assert.Equal(t, "unknown", jd.Platform)
}

func TestFromURL_Errors(t *testing.T) {
	_, err := testIngester().FromURL(context.Background(), "not-a-url")
	assert.ErrorIs(t, err, ErrHTTPRequestFailed)

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusForbidden)
	}))
	defer server.Close()
	_, err = testIngester().FromURL(context.Background(), server.URL)
	assert.ErrorIs(t, err, ErrHTTPRequestFailed)

	blank := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte("<html><body><script>render()</script></body></html>"))
	}))
	defer blank.Close()
	_, err = testIngester().FromURL(context.Background(), blank.URL)
	assert.ErrorIs(t, err, ErrEmptyJobDescription)
}

func TestFromURL_BrowserFallback(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`<html><body><main>Loading...</main></body></html>`))
	}))
	defer server.Close()

	long := strings.Repeat("Herd cats with care. ", 40)
	renderer := &stubRenderer{html: "<html><body><main><p>" + long + "</p></main></body></html>"}
	ing := testIngester()
	ing.Renderer = renderer

	jd, err := ing.FromURL(context.Background(), server.URL)
	require.NoError(t, err)
	assert.Equal(t, 1, renderer.calls)
	assert.Equal(t, strings.TrimSpace(long), jd.Text)
}

func TestFromURL_BrowserFailureKeepsStaticText(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`<html><body><main>Short posting</main></body></html>`))
	}))
	defer server.Close()

	ing := testIngester()
	ing.Renderer = &stubRenderer{err: errors.New("chrome not installed")}

	jd, err := ing.FromURL(context.Background(), server.URL)
	require.NoError(t, err)
	assert.Equal(t, "Short posting", jd.Text)
}

func TestNewIngester_BrowserOption(t *testing.T) {
	assert.Nil(t, NewIngester(nil, false).Renderer)
	assert.NotNil(t, NewIngester(nil, true).Renderer)
}
