package domain

import "github.com/google/uuid"

type EventType string

const (
	EventBugCreated       EventType = "BUG_CREATED"
	EventBugAssigned      EventType = "BUG_ASSIGNED"
	EventBugStatusChanged EventType = "BUG_STATUS_CHANGED"
	EventBugResolved      EventType = "BUG_RESOLVED"
	EventBugClosed        EventType = "BUG_CLOSED"
)

// Event is the closed set of notification triggers. Each payload carries the
// bug snapshot taken after the mutation committed, plus whatever that event
// type needs, so the resolver and renderer can switch exhaustively instead of
// digging values out of an untyped map.
type Event interface {
	EventType() EventType
}

type BugCreated struct {
	Bug       Bug
	ManagerID *uuid.UUID
	ActorName string
}

type BugAssigned struct {
	Bug        Bug
	AssigneeID uuid.UUID
	ActorName  string
}

type BugStatusChanged struct {
	Bug       Bug
	OldStatus BugStatus
	NewStatus BugStatus
	ActorName string
}

type BugResolved struct {
	Bug        Bug
	Resolution string
	ActorName  string
}

type BugClosed struct {
	Bug       Bug
	Reason    string
	ActorName string
}

func (BugCreated) EventType() EventType       { return EventBugCreated }
func (BugAssigned) EventType() EventType      { return EventBugAssigned }
func (BugStatusChanged) EventType() EventType { return EventBugStatusChanged }
func (BugResolved) EventType() EventType      { return EventBugResolved }
func (BugClosed) EventType() EventType        { return EventBugClosed }
