package domain

import (
	"time"

	"github.com/google/uuid"
)

// ChannelPreference is the per-user opt-in state. Absence of a row means every
// channel is enabled, so readers should fall back to DefaultChannelPreference.
type ChannelPreference struct {
	UserID       uuid.UUID `json:"user_id" db:"user_id"`
	EmailEnabled bool      `json:"email_enabled" db:"email_enabled"`
	PushEnabled  bool      `json:"push_enabled" db:"push_enabled"`
	InAppEnabled bool      `json:"inapp_enabled" db:"inapp_enabled"`
	UpdatedAt    time.Time `json:"updated_at" db:"updated_at"`
}

func DefaultChannelPreference(userID uuid.UUID) ChannelPreference {
	return ChannelPreference{
		UserID:       userID,
		EmailEnabled: true,
		PushEnabled:  true,
		InAppEnabled: true,
	}
}

func (p ChannelPreference) EnabledFor(ch Channel) bool {
	switch ch {
	case ChannelEmail:
		return p.EmailEnabled
	case ChannelPush:
		return p.PushEnabled
	case ChannelInApp:
		return p.InAppEnabled
	default:
		return false
	}
}

func (p *ChannelPreference) SetChannel(ch Channel, enabled bool) {
	switch ch {
	case ChannelEmail:
		p.EmailEnabled = enabled
	case ChannelPush:
		p.PushEnabled = enabled
	case ChannelInApp:
		p.InAppEnabled = enabled
	}
}

type UpdatePreferenceInput struct {
	Channel Channel `json:"channel"`
	Enabled bool    `json:"enabled"`
}
