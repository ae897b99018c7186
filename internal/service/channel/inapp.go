package channel

import (
	"context"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"bugtrail/internal/domain"
	"bugtrail/internal/repository"
)

// retentionReader is the slice of the preference store the in-app channel
// needs: the cap is read fresh on every send so an admin change applies
// immediately.
type retentionReader interface {
	RetentionPolicy(ctx context.Context) domain.RetentionPolicy
}

type inAppChannel struct {
	notifRepo repository.NotificationRepository
	retention retentionReader
	log       zerolog.Logger
}

func NewInAppChannel(notifRepo repository.NotificationRepository, retention retentionReader, log zerolog.Logger) Channel {
	return &inAppChannel{
		notifRepo: notifRepo,
		retention: retention,
		log:       log.With().Str("channel", "inapp").Logger(),
	}
}

func (i *inAppChannel) Kind() domain.Channel {
	return domain.ChannelInApp
}

// Enabled is always true: local storage needs no external configuration.
func (i *inAppChannel) Enabled() bool {
	return true
}

// ValidateRecipient is always true: a missing email or push profile is
// irrelevant to storing a row for the user.
func (i *inAppChannel) ValidateRecipient(rcpt Recipient) bool {
	return true
}

func (i *inAppChannel) Send(ctx context.Context, msg Message, rcpt Recipient) bool {
	title := msg.Title
	if r := []rune(title); len(r) > domain.MaxTitleLength {
		title = string(r[:domain.MaxTitleLength])
	}

	notif := &domain.Notification{
		ID:      uuid.New(),
		UserID:  rcpt.ID,
		Title:   title,
		Content: msg.Body,
		BugID:   msg.BugID,
	}

	if err := i.notifRepo.Create(ctx, notif); err != nil {
		i.log.Warn().Err(err).Stringer("user_id", rcpt.ID).Msg("notification insert failed")
		return false
	}

	// Keep the user's inbox bounded right away instead of waiting for the
	// next retention cycle. The insert already succeeded, so a prune failure
	// does not fail the send.
	maxPerUser := i.retention.RetentionPolicy(ctx).MaxPerUser
	if pruned, err := i.notifRepo.PruneUserExcess(ctx, rcpt.ID, maxPerUser); err != nil {
		i.log.Warn().Err(err).Stringer("user_id", rcpt.ID).Msg("inbox prune failed")
	} else if pruned > 0 {
		i.log.Debug().Int64("pruned", pruned).Stringer("user_id", rcpt.ID).Msg("inbox pruned")
	}

	return true
}
