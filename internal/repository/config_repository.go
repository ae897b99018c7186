package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/jmoiron/sqlx"

	"bugtrail/internal/domain"
)

type ConfigRepository interface {
	Get(ctx context.Context, key string) (*domain.ConfigEntry, error)
	Set(ctx context.Context, key, value string) error
}

type configRepository struct {
	db *sqlx.DB
}

func NewConfigRepository(db *sqlx.DB) ConfigRepository {
	return &configRepository{db: db}
}

// Get returns nil without an error for an unset key; callers apply the
// documented default for that key.
func (r *configRepository) Get(ctx context.Context, key string) (*domain.ConfigEntry, error) {
	var entry domain.ConfigEntry
	query := `SELECT * FROM system_config WHERE key = $1`

	err := r.db.GetContext(ctx, &entry, query, key)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &entry, nil
}

func (r *configRepository) Set(ctx context.Context, key, value string) error {
	query := `
		INSERT INTO system_config (key, value, updated_at)
		VALUES ($1, $2, NOW())
		ON CONFLICT (key) DO UPDATE
		SET value = EXCLUDED.value, updated_at = NOW()`

	_, err := r.db.ExecContext(ctx, query, key, value)
	return err
}
