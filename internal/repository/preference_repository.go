package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"bugtrail/internal/domain"
)

type PreferenceRepository interface {
	Get(ctx context.Context, userID uuid.UUID) (*domain.ChannelPreference, error)
	Upsert(ctx context.Context, pref *domain.ChannelPreference) error
}

type preferenceRepository struct {
	db *sqlx.DB
}

func NewPreferenceRepository(db *sqlx.DB) PreferenceRepository {
	return &preferenceRepository{db: db}
}

// Get returns nil without an error when the user has no stored row; callers
// interpret that as all channels enabled.
func (r *preferenceRepository) Get(ctx context.Context, userID uuid.UUID) (*domain.ChannelPreference, error) {
	var pref domain.ChannelPreference
	query := `SELECT * FROM user_notification_preferences WHERE user_id = $1`

	err := r.db.GetContext(ctx, &pref, query, userID)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &pref, nil
}

func (r *preferenceRepository) Upsert(ctx context.Context, pref *domain.ChannelPreference) error {
	query := `
		INSERT INTO user_notification_preferences (user_id, email_enabled, push_enabled, inapp_enabled, updated_at)
		VALUES ($1, $2, $3, $4, NOW())
		ON CONFLICT (user_id) DO UPDATE
		SET email_enabled = EXCLUDED.email_enabled,
			push_enabled = EXCLUDED.push_enabled,
			inapp_enabled = EXCLUDED.inapp_enabled,
			updated_at = NOW()
		RETURNING updated_at`

	return r.db.QueryRowxContext(ctx, query,
		pref.UserID, pref.EmailEnabled, pref.PushEnabled, pref.InAppEnabled,
	).Scan(&pref.UpdatedAt)
}
