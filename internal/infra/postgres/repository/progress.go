package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/aliskhannn/quiz-presenter-bot/internal/domain/entities"
	"github.com/aliskhannn/quiz-presenter-bot/internal/infra/postgres"
)

// ProgressRepository persists serialized progress in PostgreSQL, one row per storage key.
type ProgressRepository struct {
	db postgres.DBTX
}

// NewProgressRepository creates a new ProgressRepository with the provided database pool.
func NewProgressRepository(db postgres.DBTX) *ProgressRepository {
	return &ProgressRepository{db: db}
}

// Load retrieves the progress stored under key.
// Returns entities.ErrProgressNotFound if the record doesn't exist.
func (r *ProgressRepository) Load(ctx context.Context, key string) ([]byte, error) {
	query := `SELECT answered FROM quiz_progress WHERE storage_key = $1`

	var data []byte
	err := r.db.QueryRow(ctx, query, key).Scan(&data)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, entities.ErrProgressNotFound
		}
		return nil, fmt.Errorf("load progress: %w", err)
	}

	return data, nil
}

// Save creates or replaces the progress stored under key.
func (r *ProgressRepository) Save(ctx context.Context, key string, data []byte) error {
	query := `
		INSERT INTO quiz_progress (storage_key, answered, updated_at)
		VALUES ($1, $2::jsonb, NOW())
		ON CONFLICT (storage_key)
		DO UPDATE SET
			answered = excluded.answered,
			updated_at = excluded.updated_at
	`

	if _, err := r.db.Exec(ctx, query, key, string(data)); err != nil {
		return fmt.Errorf("save progress: %w", err)
	}

	return nil
}

// Delete removes the progress stored under key.
func (r *ProgressRepository) Delete(ctx context.Context, key string) error {
	query := `DELETE FROM quiz_progress WHERE storage_key = $1`

	if _, err := r.db.Exec(ctx, query, key); err != nil {
		return fmt.Errorf("delete progress: %w", err)
	}

	return nil
}

// Ping checks database connectivity when backed by a pool.
func (r *ProgressRepository) Ping(ctx context.Context) error {
	if p, ok := r.db.(*pgxpool.Pool); ok {
		return p.Ping(ctx)
	}
	return nil
}
