package channel

import (
	"context"

	"github.com/google/uuid"

	"bugtrail/internal/domain"
)

// Recipient is the per-send view of a user record: just what a delivery
// mechanism needs to address one person.
type Recipient struct {
	ID          uuid.UUID
	DisplayName string
	Email       string
	PushToken   string
}

// Message is one rendered notification. Priority is the internal 1..4 scale.
type Message struct {
	Title    string
	Body     string
	Priority int
	BugID    *uuid.UUID
}

// Channel delivers one rendered notification to one external system.
// Send reports success as a plain bool: transport and configuration failures
// are logged inside the channel and never propagate, so the failure of one
// channel cannot block or roll back another.
type Channel interface {
	Kind() domain.Channel
	Enabled() bool
	ValidateRecipient(rcpt Recipient) bool
	Send(ctx context.Context, msg Message, rcpt Recipient) bool
}
