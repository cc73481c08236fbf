package db

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

// DefaultListLimit is used by ListRecentRuns when limit is not positive.
const DefaultListLimit = 20

const runColumns = `id, fingerprint, provider, model, language, directive_count, creativity,
	status, degraded, cache_hit, source_chars, response_chars, duration_ms, error_message, created_at`

// RecordRun inserts an audit row and returns its ID. A nil input ID is replaced
// by a fresh UUID.
func (db *DB) RecordRun(ctx context.Context, input *RunInput) (uuid.UUID, error) {
	id := input.ID
	if id == uuid.Nil {
		id = uuid.New()
	}

	_, err := db.pool.Exec(ctx,
		`INSERT INTO generation_runs (id, fingerprint, provider, model, language, directive_count,
		     creativity, status, degraded, cache_hit, source_chars, response_chars, duration_ms, error_message)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)`,
		id, input.Fingerprint, input.Provider, input.Model, input.Language, input.DirectiveCount,
		input.Creativity, input.Status(), input.Degraded, input.CacheHit, input.SourceChars,
		input.ResponseChars, int(input.Duration.Milliseconds()), input.ErrorMessage(),
	)
	if err != nil {
		return uuid.Nil, fmt.Errorf("failed to record generation run: %w", err)
	}
	return id, nil
}

// GetRun retrieves a run by ID. Returns nil, nil when it does not exist.
func (db *DB) GetRun(ctx context.Context, id uuid.UUID) (*GenerationRun, error) {
	row := db.pool.QueryRow(ctx, `SELECT `+runColumns+` FROM generation_runs WHERE id = $1`, id)
	run, err := scanRun(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get generation run: %w", err)
	}
	return run, nil
}

// ListRecentRuns returns the newest runs first.
func (db *DB) ListRecentRuns(ctx context.Context, limit int) ([]GenerationRun, error) {
	if limit <= 0 {
		limit = DefaultListLimit
	}

	rows, err := db.pool.Query(ctx,
		`SELECT `+runColumns+` FROM generation_runs ORDER BY created_at DESC LIMIT $1`, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list generation runs: %w", err)
	}
	defer rows.Close()

	var runs []GenerationRun
	for rows.Next() {
		run, err := scanRun(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan generation run: %w", err)
		}
		runs = append(runs, *run)
	}
	return runs, rows.Err()
}

func scanRun(row pgx.Row) (*GenerationRun, error) {
	var run GenerationRun
	err := row.Scan(&run.ID, &run.Fingerprint, &run.Provider, &run.Model, &run.Language,
		&run.DirectiveCount, &run.Creativity, &run.Status, &run.Degraded, &run.CacheHit,
		&run.SourceChars, &run.ResponseChars, &run.DurationMs, &run.ErrorMessage, &run.CreatedAt)
	if err != nil {
		return nil, err
	}
	return &run, nil
}
