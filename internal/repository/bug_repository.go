package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"bugtrail/internal/domain"
)

type BugRepository interface {
	Create(ctx context.Context, bug *domain.Bug) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Bug, error)
	Update(ctx context.Context, bug *domain.Bug) error
}

type bugRepository struct {
	db *sqlx.DB
}

func NewBugRepository(db *sqlx.DB) BugRepository {
	return &bugRepository{db: db}
}

func (r *bugRepository) Create(ctx context.Context, bug *domain.Bug) error {
	query := `
		INSERT INTO bugs (id, title, description, status, creator_id, assignee_id, manager_id)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING created_at, updated_at`

	return r.db.QueryRowxContext(ctx, query,
		bug.ID, bug.Title, bug.Description, bug.Status,
		bug.CreatorID, bug.AssigneeID, bug.ManagerID,
	).Scan(&bug.CreatedAt, &bug.UpdatedAt)
}

func (r *bugRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Bug, error) {
	var bug domain.Bug
	query := `SELECT * FROM bugs WHERE id = $1`

	err := r.db.GetContext(ctx, &bug, query, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &bug, nil
}

func (r *bugRepository) Update(ctx context.Context, bug *domain.Bug) error {
	query := `
		UPDATE bugs
		SET title = :title, description = :description, status = :status,
			assignee_id = :assignee_id, manager_id = :manager_id,
			resolution = :resolution, updated_at = NOW()
		WHERE id = :id`

	_, err := r.db.NamedExecContext(ctx, query, bug)
	return err
}
