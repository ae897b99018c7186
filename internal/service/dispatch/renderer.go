package dispatch

import (
	"fmt"

	"bugtrail/internal/domain"
	"bugtrail/internal/service/channel"
)

// freeTextLimit caps user-written fields (description, resolution, close
// reason) before substitution so one long paragraph cannot flood a subject
// line or a push payload.
const freeTextLimit = 100

const (
	priorityLow    = 1
	priorityNormal = 2
	priorityHigh   = 3
	priorityUrgent = 4
)

// Render turns an event into the message delivered to one recipient. The
// greeting personalizes on the recipient's display name; everything else is
// shared across recipients of the same event.
func Render(event domain.Event, rcpt channel.Recipient) channel.Message {
	msg := channel.Message{Priority: priorityNormal}

	switch e := event.(type) {
	case domain.BugCreated:
		msg.Title = fmt.Sprintf("[New Bug] %s", e.Bug.Title)
		msg.Body = fmt.Sprintf("Hi %s,\n\n%s reported a new bug: %s\n\n%s",
			rcpt.DisplayName, e.ActorName, e.Bug.Title, truncate(e.Bug.Description))
		msg.Priority = priorityHigh
		msg.BugID = &e.Bug.ID

	case domain.BugAssigned:
		msg.Title = fmt.Sprintf("[Assigned to You] %s", e.Bug.Title)
		msg.Body = fmt.Sprintf("Hi %s,\n\n%s assigned the bug %q to you.",
			rcpt.DisplayName, e.ActorName, e.Bug.Title)
		msg.Priority = priorityHigh
		msg.BugID = &e.Bug.ID

	case domain.BugStatusChanged:
		msg.Title = fmt.Sprintf("[Status Changed] %s", e.Bug.Title)
		msg.Body = fmt.Sprintf("Hi %s,\n\n%s moved the bug %q from %s to %s.",
			rcpt.DisplayName, e.ActorName, e.Bug.Title, e.OldStatus, e.NewStatus)
		msg.BugID = &e.Bug.ID

	case domain.BugResolved:
		msg.Title = fmt.Sprintf("[Resolved] %s", e.Bug.Title)
		msg.Body = fmt.Sprintf("Hi %s,\n\n%s resolved the bug %q.\n\nResolution: %s",
			rcpt.DisplayName, e.ActorName, e.Bug.Title, truncate(e.Resolution))
		msg.BugID = &e.Bug.ID

	case domain.BugClosed:
		msg.Title = fmt.Sprintf("[Closed] %s", e.Bug.Title)
		msg.Body = fmt.Sprintf("Hi %s,\n\n%s closed the bug %q.\n\nReason: %s",
			rcpt.DisplayName, e.ActorName, e.Bug.Title, truncate(e.Reason))
		msg.Priority = priorityLow
		msg.BugID = &e.Bug.ID

	default:
		msg.Title = "Bug tracker notification"
		msg.Body = fmt.Sprintf("Hi %s,\n\nSomething changed in the bug tracker.", rcpt.DisplayName)
	}

	return msg
}

func truncate(s string) string {
	runes := []rune(s)
	if len(runes) <= freeTextLimit {
		return s
	}
	return string(runes[:freeTextLimit]) + "..."
}
