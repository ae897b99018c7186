package domain

import (
	"time"

	"github.com/google/uuid"
)

// MaxTitleLength is enforced on insert; longer titles are cut down, never rejected.
const MaxTitleLength = 200

type Notification struct {
	ID        uuid.UUID  `json:"id" db:"id"`
	UserID    uuid.UUID  `json:"user_id" db:"user_id"`
	Title     string     `json:"title" db:"title"`
	Content   string     `json:"content" db:"content"`
	IsRead    bool       `json:"is_read" db:"is_read"`
	ReadAt    *time.Time `json:"read_at,omitempty" db:"read_at"`
	BugID     *uuid.UUID `json:"bug_id,omitempty" db:"bug_id"`
	CreatedAt time.Time  `json:"created_at" db:"created_at"`
}

// NotificationCount is one row of the per-user distribution used by retention stats.
type NotificationCount struct {
	UserID uuid.UUID `json:"user_id" db:"user_id"`
	Count  int64     `json:"count" db:"count"`
}

type CleanupStats struct {
	Total         int64               `json:"total"`
	PerUser       []NotificationCount `json:"per_user"`
	ExpiredCount  int64               `json:"expired_count"`
	ExcessCount   int64               `json:"excess_count"`
	RetentionDays int                 `json:"retention_days"`
	MaxPerUser    int                 `json:"max_per_user"`
}
