package domain

import "time"

// System config keys. Values are stored as strings and parsed on every read so
// that admin changes apply to the very next dispatch.
const (
	ConfigServerEnabled      = "notifications_enabled"
	ConfigEmailEnabled       = "email_channel_enabled"
	ConfigPushEnabled        = "push_channel_enabled"
	ConfigInAppEnabled       = "inapp_channel_enabled"
	ConfigRetentionDays      = "retention_days"
	ConfigMaxPerUser         = "max_per_user"
	ConfigAutoCleanupEnabled = "auto_cleanup_enabled"
)

const (
	DefaultRetentionDays = 90
	DefaultMaxPerUser    = 100
)

type ConfigEntry struct {
	Key       string    `json:"key" db:"key"`
	Value     string    `json:"value" db:"value"`
	UpdatedAt time.Time `json:"updated_at" db:"updated_at"`
}

func ChannelConfigKey(ch Channel) string {
	switch ch {
	case ChannelEmail:
		return ConfigEmailEnabled
	case ChannelPush:
		return ConfigPushEnabled
	case ChannelInApp:
		return ConfigInAppEnabled
	default:
		return ""
	}
}

// RetentionPolicy is the cleanup configuration as read at the start of a cycle.
type RetentionPolicy struct {
	Days        int  `json:"retention_days"`
	MaxPerUser  int  `json:"max_per_user"`
	AutoCleanup bool `json:"auto_cleanup_enabled"`
}

func DefaultRetentionPolicy() RetentionPolicy {
	return RetentionPolicy{
		Days:        DefaultRetentionDays,
		MaxPerUser:  DefaultMaxPerUser,
		AutoCleanup: true,
	}
}
