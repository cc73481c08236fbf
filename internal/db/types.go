package db

import (
	"time"

	"github.com/google/uuid"
)

// RunStatus constants
const (
	RunStatusSucceeded = "succeeded"
	RunStatusFailed    = "failed"
)

// MaxErrorMessageLength bounds the stored error text.
const MaxErrorMessageLength = 2000

// GenerationRun is one audited generation invocation. Document content is
// never stored; only sizes and a request fingerprint.
type GenerationRun struct {
	ID             uuid.UUID `json:"id"`
	Fingerprint    string    `json:"fingerprint"`
	Provider       string    `json:"provider"`
	Model          string    `json:"model"`
	Language       string    `json:"language"`
	DirectiveCount int       `json:"directive_count"`
	Creativity     float64   `json:"creativity"`
	Status         string    `json:"status"`
	Degraded       bool      `json:"degraded"`
	CacheHit       bool      `json:"cache_hit"`
	SourceChars    int       `json:"source_chars"`
	ResponseChars  int       `json:"response_chars"`
	DurationMs     int       `json:"duration_ms"`
	ErrorMessage   *string   `json:"error_message,omitempty"`
	CreatedAt      time.Time `json:"created_at"`
}

// RunInput represents input for recording a generation run
type RunInput struct {
	ID             uuid.UUID
	Fingerprint    string
	Provider       string
	Model          string
	Language       string
	DirectiveCount int
	Creativity     float64
	Degraded       bool
	CacheHit       bool
	SourceChars    int
	ResponseChars  int
	Duration       time.Duration
	Err            error
}

// Status derives the run status from the recorded error.
func (in *RunInput) Status() string {
	if in.Err != nil {
		return RunStatusFailed
	}
	return RunStatusSucceeded
}

// ErrorMessage returns the truncated error text, or nil for a successful run.
func (in *RunInput) ErrorMessage() *string {
	if in.Err == nil {
		return nil
	}
	msg := in.Err.Error()
	if r := []rune(msg); len(r) > MaxErrorMessageLength {
		msg = string(r[:MaxErrorMessageLength])
	}
	return &msg
}
