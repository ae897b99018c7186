package preference

import (
	"context"
	"strconv"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"bugtrail/internal/domain"
	"bugtrail/internal/repository"
)

// Service is the layered enable/disable state for notification delivery:
// a server master switch, one global switch per channel, and one per-user
// per-channel flag. Every check goes straight to storage so a toggle applies
// to the very next dispatch. Read failures resolve as enabled: losing a
// notification to an outage is considered worse than over-delivering.
type Service interface {
	ServerEnabled(ctx context.Context) bool
	SetServerEnabled(ctx context.Context, enabled bool) error
	ChannelEnabled(ctx context.Context, ch domain.Channel) bool
	SetChannelEnabled(ctx context.Context, ch domain.Channel, enabled bool) error
	UserPreferences(ctx context.Context, userID uuid.UUID) domain.ChannelPreference
	SetUserPreference(ctx context.Context, userID uuid.UUID, ch domain.Channel, enabled bool, actingUser *domain.User) bool
	RetentionPolicy(ctx context.Context) domain.RetentionPolicy
}

type service struct {
	prefRepo   repository.PreferenceRepository
	configRepo repository.ConfigRepository
	log        zerolog.Logger
}

func NewService(prefRepo repository.PreferenceRepository, configRepo repository.ConfigRepository, log zerolog.Logger) Service {
	return &service{
		prefRepo:   prefRepo,
		configRepo: configRepo,
		log:        log.With().Str("component", "preference").Logger(),
	}
}

func (s *service) ServerEnabled(ctx context.Context) bool {
	return s.boolConfig(ctx, domain.ConfigServerEnabled, true)
}

func (s *service) SetServerEnabled(ctx context.Context, enabled bool) error {
	return s.configRepo.Set(ctx, domain.ConfigServerEnabled, strconv.FormatBool(enabled))
}

func (s *service) ChannelEnabled(ctx context.Context, ch domain.Channel) bool {
	key := domain.ChannelConfigKey(ch)
	if key == "" {
		return false
	}
	return s.boolConfig(ctx, key, true)
}

func (s *service) SetChannelEnabled(ctx context.Context, ch domain.Channel, enabled bool) error {
	key := domain.ChannelConfigKey(ch)
	if key == "" {
		return domain.ErrNotFound
	}
	return s.configRepo.Set(ctx, key, strconv.FormatBool(enabled))
}

func (s *service) UserPreferences(ctx context.Context, userID uuid.UUID) domain.ChannelPreference {
	pref, err := s.prefRepo.Get(ctx, userID)
	if err != nil {
		s.log.Warn().Err(err).Stringer("user_id", userID).Msg("preference read failed, treating all channels as enabled")
		return domain.DefaultChannelPreference(userID)
	}
	if pref == nil {
		return domain.DefaultChannelPreference(userID)
	}
	return *pref
}

// SetUserPreference updates one channel flag. A nil actingUser means the user
// changes their own preference. When actingUser is set it must hold the admin
// role; a non-admin caller gets false back instead of an error.
func (s *service) SetUserPreference(ctx context.Context, userID uuid.UUID, ch domain.Channel, enabled bool, actingUser *domain.User) bool {
	if !ch.IsValid() {
		return false
	}
	if actingUser != nil && actingUser.ID != userID && !actingUser.IsAdmin() {
		s.log.Warn().
			Stringer("user_id", userID).
			Stringer("acting_user_id", actingUser.ID).
			Msg("non-admin attempted to change another user's preferences")
		return false
	}

	pref := s.UserPreferences(ctx, userID)
	pref.SetChannel(ch, enabled)

	if err := s.prefRepo.Upsert(ctx, &pref); err != nil {
		s.log.Error().Err(err).Stringer("user_id", userID).Msg("preference upsert failed")
		return false
	}
	return true
}

func (s *service) RetentionPolicy(ctx context.Context) domain.RetentionPolicy {
	policy := domain.DefaultRetentionPolicy()
	policy.Days = s.intConfig(ctx, domain.ConfigRetentionDays, policy.Days)
	policy.MaxPerUser = s.intConfig(ctx, domain.ConfigMaxPerUser, policy.MaxPerUser)
	policy.AutoCleanup = s.boolConfig(ctx, domain.ConfigAutoCleanupEnabled, policy.AutoCleanup)
	return policy
}

func (s *service) boolConfig(ctx context.Context, key string, defaultValue bool) bool {
	entry, err := s.configRepo.Get(ctx, key)
	if err != nil {
		s.log.Warn().Err(err).Str("key", key).Msg("config read failed, using default")
		return defaultValue
	}
	if entry == nil {
		return defaultValue
	}
	parsed, err := strconv.ParseBool(entry.Value)
	if err != nil {
		s.log.Warn().Str("key", key).Str("value", entry.Value).Msg("config value is not a boolean, using default")
		return defaultValue
	}
	return parsed
}

func (s *service) intConfig(ctx context.Context, key string, defaultValue int) int {
	entry, err := s.configRepo.Get(ctx, key)
	if err != nil {
		s.log.Warn().Err(err).Str("key", key).Msg("config read failed, using default")
		return defaultValue
	}
	if entry == nil {
		return defaultValue
	}
	parsed, err := strconv.Atoi(entry.Value)
	if err != nil || parsed < 1 {
		s.log.Warn().Str("key", key).Str("value", entry.Value).Msg("config value is not a positive integer, using default")
		return defaultValue
	}
	return parsed
}
