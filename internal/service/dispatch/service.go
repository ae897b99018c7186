package dispatch

import (
	"context"

	"github.com/rs/zerolog"

	"bugtrail/internal/domain"
	"bugtrail/internal/repository"
	"bugtrail/internal/service/channel"
	"bugtrail/internal/service/preference"
)

// Service fans one business event out to every entitled recipient over every
// enabled channel. Delivery is best effort relative to the mutation that
// triggered it: nothing here ever returns an error to the caller, and the
// failure of one channel or recipient never blocks the rest.
type Service interface {
	Dispatch(ctx context.Context, event domain.Event)
}

type service struct {
	resolver *resolver
	userRepo repository.UserRepository
	prefs    preference.Service
	channels []channel.Channel
	log      zerolog.Logger
}

func NewService(userRepo repository.UserRepository, prefs preference.Service, channels []channel.Channel, log zerolog.Logger) Service {
	return &service{
		resolver: newResolver(userRepo, log),
		userRepo: userRepo,
		prefs:    prefs,
		channels: channels,
		log:      log.With().Str("component", "dispatch").Logger(),
	}
}

func (s *service) Dispatch(ctx context.Context, event domain.Event) {
	eventType := string(event.EventType())

	if !s.prefs.ServerEnabled(ctx) {
		s.log.Debug().Str("event_type", eventType).Msg("notifications disabled, skipping dispatch")
		return
	}

	recipients, err := s.resolver.Resolve(ctx, event)
	if err != nil {
		s.log.Error().Err(err).Str("event_type", eventType).Msg("recipient resolution failed")
		return
	}
	if len(recipients) == 0 {
		s.log.Debug().Str("event_type", eventType).Msg("no recipients for event")
		return
	}

	for _, userID := range recipients {
		user, err := s.userRepo.GetByID(ctx, userID)
		if err != nil || user == nil {
			s.log.Warn().Err(err).Stringer("user_id", userID).Str("event_type", eventType).Msg("recipient lookup failed, skipping")
			continue
		}

		rcpt := toRecipient(user)
		userPref := s.prefs.UserPreferences(ctx, userID)
		msg := Render(event, rcpt)

		delivered := false
		for _, ch := range s.channels {
			kind := ch.Kind()
			if !s.prefs.ChannelEnabled(ctx, kind) || !userPref.EnabledFor(kind) {
				continue
			}
			if !ch.Enabled() || !ch.ValidateRecipient(rcpt) {
				continue
			}

			ok := ch.Send(ctx, msg, rcpt)
			delivered = delivered || ok
			s.log.Debug().
				Str("event_type", eventType).
				Stringer("user_id", userID).
				Str("channel", string(kind)).
				Bool("ok", ok).
				Msg("channel send finished")
		}

		if !delivered {
			s.log.Warn().Str("event_type", eventType).Stringer("user_id", userID).Msg("no channel delivered for recipient")
		}
	}
}

func toRecipient(user *domain.User) channel.Recipient {
	rcpt := channel.Recipient{
		ID:          user.ID,
		DisplayName: user.DisplayName,
	}
	if user.Email != nil {
		rcpt.Email = *user.Email
	}
	if user.PushToken != nil {
		rcpt.PushToken = *user.PushToken
	}
	return rcpt
}
