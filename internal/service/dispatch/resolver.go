package dispatch

import (
	"context"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"bugtrail/internal/domain"
	"bugtrail/internal/repository"
)

// resolver maps a business event to the set of user ids that should hear
// about it. The rules are deterministic; the only lookup is the manager-role
// query when a created bug carries no explicit manager.
type resolver struct {
	userRepo repository.UserRepository
	log      zerolog.Logger
}

func newResolver(userRepo repository.UserRepository, log zerolog.Logger) *resolver {
	return &resolver{
		userRepo: userRepo,
		log:      log.With().Str("component", "resolver").Logger(),
	}
}

func (r *resolver) Resolve(ctx context.Context, event domain.Event) ([]uuid.UUID, error) {
	set := map[uuid.UUID]struct{}{}

	switch e := event.(type) {
	case domain.BugCreated:
		if e.ManagerID != nil {
			set[*e.ManagerID] = struct{}{}
			break
		}
		// Older callers do not route bugs to a specific manager; fall back
		// to everyone holding the manager role.
		managers, err := r.userRepo.ListByRole(ctx, domain.RoleManager)
		if err != nil {
			return nil, err
		}
		for _, m := range managers {
			set[m.ID] = struct{}{}
		}

	case domain.BugAssigned:
		set[e.AssigneeID] = struct{}{}

	case domain.BugStatusChanged:
		set[e.Bug.CreatorID] = struct{}{}
		if e.Bug.AssigneeID != nil {
			set[*e.Bug.AssigneeID] = struct{}{}
		}

	case domain.BugResolved:
		set[e.Bug.CreatorID] = struct{}{}
		managers, err := r.userRepo.ListByRole(ctx, domain.RoleManager)
		if err != nil {
			return nil, err
		}
		for _, m := range managers {
			set[m.ID] = struct{}{}
		}

	case domain.BugClosed:
		set[e.Bug.CreatorID] = struct{}{}
		if e.Bug.AssigneeID != nil {
			set[*e.Bug.AssigneeID] = struct{}{}
		}

	default:
		r.log.Warn().Str("event_type", string(event.EventType())).Msg("no recipient rule for event type")
		return nil, nil
	}

	recipients := make([]uuid.UUID, 0, len(set))
	for id := range set {
		recipients = append(recipients, id)
	}
	return recipients, nil
}
