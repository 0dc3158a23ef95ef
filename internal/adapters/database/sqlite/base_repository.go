package sqlite

import (
	"context"
	"database/sql"

	"github.com/claimpilot/claims_management_app/internal/apperrors"
)

// BaseRepository carries the provider handle shared by all SQLite repositories.
type BaseRepository struct {
	provider *Provider
}

// DB returns the live database handle or apperrors.ErrNotConnected.
func (r *BaseRepository) DB() (*sql.DB, error) {
	return r.provider.database()
}

func (r *BaseRepository) Begin(ctx context.Context) (*sql.Tx, error) {
	db, err := r.DB()
	if err != nil {
		return nil, err
	}
	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to begin transaction", err)
	}
	return tx, nil
}

func (r *BaseRepository) Commit(tx *sql.Tx) error {
	if err := tx.Commit(); err != nil {
		return apperrors.NewAppError(500, "failed to commit transaction", err)
	}
	return nil
}

// Rollback is safe to defer; a rollback after commit is ignored.
func (r *BaseRepository) Rollback(tx *sql.Tx) {
	_ = tx.Rollback()
}
