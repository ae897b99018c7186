package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"bugtrail/internal/domain"
)

type NotificationRepository interface {
	Create(ctx context.Context, notif *domain.Notification) error
	ListByUser(ctx context.Context, userID uuid.UUID, params domain.PaginationParams) ([]domain.Notification, int64, error)
	MarkAsRead(ctx context.Context, id, userID uuid.UUID) (bool, error)
	MarkAllAsRead(ctx context.Context, userID uuid.UUID) error
	CountUnread(ctx context.Context, userID uuid.UUID) (int64, error)
	Delete(ctx context.Context, id, userID uuid.UUID) (bool, error)

	PruneUserExcess(ctx context.Context, userID uuid.UUID, keep int) (int64, error)
	DeleteOlderThan(ctx context.Context, cutoff time.Time) (int64, error)
	DeleteExcess(ctx context.Context, keep int) (int64, error)
	CountAll(ctx context.Context) (int64, error)
	CountOlderThan(ctx context.Context, cutoff time.Time) (int64, error)
	CountByUser(ctx context.Context) ([]domain.NotificationCount, error)
}

type notificationRepository struct {
	db *sqlx.DB
}

func NewNotificationRepository(db *sqlx.DB) NotificationRepository {
	return &notificationRepository{db: db}
}

func (r *notificationRepository) Create(ctx context.Context, notif *domain.Notification) error {
	query := `
		INSERT INTO notifications (id, user_id, title, content, bug_id)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING created_at`

	return r.db.QueryRowxContext(ctx, query,
		notif.ID, notif.UserID, notif.Title, notif.Content, notif.BugID,
	).Scan(&notif.CreatedAt)
}

func (r *notificationRepository) ListByUser(ctx context.Context, userID uuid.UUID, params domain.PaginationParams) ([]domain.Notification, int64, error) {
	params.Validate()

	var total int64
	countQuery := `SELECT COUNT(*) FROM notifications WHERE user_id = $1`
	if err := r.db.GetContext(ctx, &total, countQuery, userID); err != nil {
		return nil, 0, err
	}

	var notifications []domain.Notification
	query := `
		SELECT * FROM notifications
		WHERE user_id = $1
		ORDER BY created_at DESC
		LIMIT $2 OFFSET $3`
	err := r.db.SelectContext(ctx, &notifications, query, userID, params.Limit, params.Offset)
	return notifications, total, err
}

func (r *notificationRepository) MarkAsRead(ctx context.Context, id, userID uuid.UUID) (bool, error) {
	query := `
		UPDATE notifications SET is_read = true, read_at = NOW()
		WHERE id = $1 AND user_id = $2 AND is_read = false`

	res, err := r.db.ExecContext(ctx, query, id, userID)
	if err != nil {
		return false, err
	}
	affected, err := res.RowsAffected()
	return affected > 0, err
}

func (r *notificationRepository) MarkAllAsRead(ctx context.Context, userID uuid.UUID) error {
	query := `
		UPDATE notifications SET is_read = true, read_at = NOW()
		WHERE user_id = $1 AND is_read = false`

	_, err := r.db.ExecContext(ctx, query, userID)
	return err
}

func (r *notificationRepository) CountUnread(ctx context.Context, userID uuid.UUID) (int64, error) {
	var count int64
	query := `SELECT COUNT(*) FROM notifications WHERE user_id = $1 AND is_read = false`
	err := r.db.GetContext(ctx, &count, query, userID)
	return count, err
}

func (r *notificationRepository) Delete(ctx context.Context, id, userID uuid.UUID) (bool, error) {
	query := `DELETE FROM notifications WHERE id = $1 AND user_id = $2`

	res, err := r.db.ExecContext(ctx, query, id, userID)
	if err != nil {
		return false, err
	}
	affected, err := res.RowsAffected()
	return affected > 0, err
}

// PruneUserExcess removes one user's rows beyond the newest keep entries.
func (r *notificationRepository) PruneUserExcess(ctx context.Context, userID uuid.UUID, keep int) (int64, error) {
	query := `
		DELETE FROM notifications
		WHERE user_id = $1 AND id NOT IN (
			SELECT id FROM notifications
			WHERE user_id = $1
			ORDER BY created_at DESC
			LIMIT $2
		)`

	res, err := r.db.ExecContext(ctx, query, userID, keep)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

func (r *notificationRepository) DeleteOlderThan(ctx context.Context, cutoff time.Time) (int64, error) {
	query := `DELETE FROM notifications WHERE created_at < $1`

	res, err := r.db.ExecContext(ctx, query, cutoff)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

// DeleteExcess trims every user to the newest keep rows in one statement.
func (r *notificationRepository) DeleteExcess(ctx context.Context, keep int) (int64, error) {
	query := `
		DELETE FROM notifications
		WHERE id IN (
			SELECT id FROM (
				SELECT id, ROW_NUMBER() OVER (PARTITION BY user_id ORDER BY created_at DESC) AS rn
				FROM notifications
			) ranked
			WHERE ranked.rn > $1
		)`

	res, err := r.db.ExecContext(ctx, query, keep)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

func (r *notificationRepository) CountAll(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.GetContext(ctx, &count, `SELECT COUNT(*) FROM notifications`)
	return count, err
}

func (r *notificationRepository) CountOlderThan(ctx context.Context, cutoff time.Time) (int64, error) {
	var count int64
	query := `SELECT COUNT(*) FROM notifications WHERE created_at < $1`
	err := r.db.GetContext(ctx, &count, query, cutoff)
	return count, err
}

func (r *notificationRepository) CountByUser(ctx context.Context) ([]domain.NotificationCount, error) {
	var counts []domain.NotificationCount
	query := `
		SELECT user_id, COUNT(*) AS count
		FROM notifications
		GROUP BY user_id
		ORDER BY count DESC`

	err := r.db.SelectContext(ctx, &counts, query)
	return counts, err
}
