package main

import (
	"archive/zip"
	"bytes"
	"context"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/jonathan/resume-adapter/internal/llm"
	"github.com/jonathan/resume-adapter/internal/types"
)

type stubGenerator struct {
	response string
	err      error
	calls    int
	closed   bool
	request  *types.GenerationRequest
}

func (s *stubGenerator) Generate(_ context.Context, req *types.GenerationRequest) (string, error) {
	s.calls++
	s.request = req
	return s.response, s.err
}

func (s *stubGenerator) Provider() llm.Provider { return llm.ProviderOpenAI }
func (s *stubGenerator) Model() string { return "stub-model" }
func (s *stubGenerator) Close() error {
	s.closed = true
	return nil
}

// isolateEnv clears variables that would reach real infrastructure.
func isolateEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{
		"REDIS_URL", "DATABASE_URL", "ACCESS_KEY_PEPPER", "ACCESS_BCRYPT_COST",
		"RESUME_ADAPTER_PROVIDER", "RESUME_ADAPTER_API_KEY", "RESUME_ADAPTER_ACCESS_KEY_HASH",
		"RESUME_ADAPTER_ACCESS_KEY", "RESUME_ADAPTER_OUTPUT_DIR", "RESUME_ADAPTER_FORMATS",
		"RESUME_ADAPTER_LANGUAGE", "RESUME_ADAPTER_VERBOSE",
	} {
		t.Setenv(key, "")
	}
	t.Setenv("OPENAI_API_KEY", "test-key")
}

// execute runs the CLI in process with the given generator and stdin.
func execute(t *testing.T, gen *stubGenerator, stdin string, args ...string) (string, string, error) {
	t.Helper()
	a := newApp()
	if gen != nil {
		a.newGenerator = func(context.Context, *llm.Config, *slog.Logger) (generator, error) {
			return gen, nil
		}
	}

	var stdout, stderr bytes.Buffer
	rootCmd := newRootCmd(a)
	rootCmd.SetArgs(args)
	rootCmd.SetIn(strings.NewReader(stdin))
	rootCmd.SetOut(&stdout)
	rootCmd.SetErr(&stderr)
	err := rootCmd.Execute()
	return stdout.String(), stderr.String(), err
}

func writeFile(t *testing.T, dir, name string, data []byte) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, data, 0644))
	return path
}

func docxWithLines(t *testing.T, lines ...string) []byte {
	t.Helper()
	var body strings.Builder
	for _, line := range lines {
		body.WriteString(`<w:p><w:r><w:t>` + line + `</w:t></w:r></w:p>`)
	}
	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	w, err := zw.Create("word/document.xml")
	require.NoError(t, err)
	_, err = io.WriteString(w, `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>`+
		`<w:document xmlns:w="http://schemas.openxmlformats.org/wordprocessingml/2006/main"><w:body>`+
		body.String()+`</w:body></w:document>`)
	require.NoError(t, err)
	require.NoError(t, zw.Close())
	return buf.Bytes()
}
