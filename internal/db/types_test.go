package db

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRunStatusConstants(t *testing.T) {
	assert.Equal(t, "succeeded", RunStatusSucceeded)
	assert.Equal(t, "failed", RunStatusFailed)
}

func TestRunInput_Status(t *testing.T) {
	assert.Equal(t, RunStatusSucceeded, (&RunInput{}).Status())
	assert.Equal(t, RunStatusFailed, (&RunInput{Err: errors.New("boom")}).Status())
}

func TestRunInput_ErrorMessage(t *testing.T) {
	assert.Nil(t, (&RunInput{}).ErrorMessage())

	msg := (&RunInput{Err: errors.New("generation service unavailable")}).ErrorMessage()
	require.NotNil(t, msg)
	assert.Equal(t, "generation service unavailable", *msg)

	long := (&RunInput{Err: errors.New(strings.Repeat("é", MaxErrorMessageLength+10))}).ErrorMessage()
	require.NotNil(t, long)
	assert.Equal(t, MaxErrorMessageLength, len([]rune(*long)))
}

func TestSchemaEmbedded(t *testing.T) {
	assert.Contains(t, schemaSQL, "CREATE TABLE IF NOT EXISTS generation_runs")
	assert.NotContains(t, schemaSQL, "source_text", "document content is never stored")
}
