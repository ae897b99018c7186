package domain

import (
	"time"

	"github.com/google/uuid"
)

type BugStatus string

const (
	StatusOpen       BugStatus = "open"
	StatusAssigned   BugStatus = "assigned"
	StatusInProgress BugStatus = "in_progress"
	StatusResolved   BugStatus = "resolved"
	StatusClosed     BugStatus = "closed"
)

func (s BugStatus) IsValid() bool {
	switch s {
	case StatusOpen, StatusAssigned, StatusInProgress, StatusResolved, StatusClosed:
		return true
	default:
		return false
	}
}

type Bug struct {
	ID          uuid.UUID  `json:"id" db:"id"`
	Title       string     `json:"title" db:"title"`
	Description string     `json:"description" db:"description"`
	Status      BugStatus  `json:"status" db:"status"`
	CreatorID   uuid.UUID  `json:"creator_id" db:"creator_id"`
	AssigneeID  *uuid.UUID `json:"assignee_id,omitempty" db:"assignee_id"`
	ManagerID   *uuid.UUID `json:"manager_id,omitempty" db:"manager_id"`
	Resolution  *string    `json:"resolution,omitempty" db:"resolution"`
	CreatedAt   time.Time  `json:"created_at" db:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at" db:"updated_at"`
}

type CreateBugInput struct {
	Title       string     `json:"title"`
	Description string     `json:"description"`
	ManagerID   *uuid.UUID `json:"manager_id,omitempty"`
}

type AssignBugInput struct {
	AssigneeID uuid.UUID `json:"assignee_id"`
}

type UpdateBugStatusInput struct {
	Status BugStatus `json:"status"`
}

type ResolveBugInput struct {
	Resolution string `json:"resolution"`
}

type CloseBugInput struct {
	Reason string `json:"reason"`
}
