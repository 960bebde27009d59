package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
)

const schema = `
CREATE TABLE IF NOT EXISTS quiz_progress (
	storage_key TEXT PRIMARY KEY,
	answered    JSONB       NOT NULL DEFAULT '[]'::jsonb,
	updated_at  TIMESTAMPTZ NOT NULL DEFAULT NOW()
)`

// Migrate creates the progress table if it does not exist.
func Migrate(ctx context.Context, tr *Transactor) error {
	return tr.WithinTx(ctx, func(ctx context.Context, tx pgx.Tx) error {
		if _, err := tx.Exec(ctx, schema); err != nil {
			return fmt.Errorf("create quiz_progress: %w", err)
		}
		return nil
	})
}
