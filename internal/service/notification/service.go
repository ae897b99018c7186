package notification

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"bugtrail/internal/domain"
	"bugtrail/internal/repository"
)

// unreadCountTTL keeps the cached unread badge short-lived; the in-app channel
// writes rows without going through this service, so the cache must age out
// quickly rather than rely on perfect invalidation.
const unreadCountTTL = 30 * time.Second

type Service interface {
	List(ctx context.Context, userID uuid.UUID, params domain.PaginationParams) (domain.PaginatedResponse[domain.Notification], error)
	MarkAsRead(ctx context.Context, id, userID uuid.UUID) error
	MarkAllAsRead(ctx context.Context, userID uuid.UUID) error
	UnreadCount(ctx context.Context, userID uuid.UUID) (int64, error)
	Delete(ctx context.Context, id, userID uuid.UUID) error
}

type service struct {
	notifRepo repository.NotificationRepository
	redis     *redis.Client
	log       zerolog.Logger
}

func NewService(notifRepo repository.NotificationRepository, redisClient *redis.Client, log zerolog.Logger) Service {
	return &service{
		notifRepo: notifRepo,
		redis:     redisClient,
		log:       log.With().Str("component", "notification").Logger(),
	}
}

func (s *service) List(ctx context.Context, userID uuid.UUID, params domain.PaginationParams) (domain.PaginatedResponse[domain.Notification], error) {
	params.Validate()

	notifications, total, err := s.notifRepo.ListByUser(ctx, userID, params)
	if err != nil {
		return domain.PaginatedResponse[domain.Notification]{}, err
	}
	if notifications == nil {
		notifications = []domain.Notification{}
	}

	return domain.NewPaginatedResponse(notifications, params.Limit, params.Offset, total), nil
}

func (s *service) MarkAsRead(ctx context.Context, id, userID uuid.UUID) error {
	updated, err := s.notifRepo.MarkAsRead(ctx, id, userID)
	if err != nil {
		return err
	}
	if updated {
		s.invalidateUnreadCount(ctx, userID)
	}
	return nil
}

// MarkAllAsRead is idempotent: calling it on an already-read inbox updates
// nothing and still succeeds.
func (s *service) MarkAllAsRead(ctx context.Context, userID uuid.UUID) error {
	if err := s.notifRepo.MarkAllAsRead(ctx, userID); err != nil {
		return err
	}
	s.invalidateUnreadCount(ctx, userID)
	return nil
}

func (s *service) UnreadCount(ctx context.Context, userID uuid.UUID) (int64, error) {
	key := unreadCountKey(userID)

	if s.redis != nil {
		if cached, err := s.redis.Get(ctx, key).Result(); err == nil {
			if count, parseErr := strconv.ParseInt(cached, 10, 64); parseErr == nil {
				return count, nil
			}
		}
	}

	count, err := s.notifRepo.CountUnread(ctx, userID)
	if err != nil {
		return 0, err
	}

	if s.redis != nil {
		if err := s.redis.Set(ctx, key, count, unreadCountTTL).Err(); err != nil {
			s.log.Debug().Err(err).Msg("unread count cache write failed")
		}
	}

	return count, nil
}

func (s *service) Delete(ctx context.Context, id, userID uuid.UUID) error {
	deleted, err := s.notifRepo.Delete(ctx, id, userID)
	if err != nil {
		return err
	}
	if !deleted {
		return domain.ErrNotFound
	}
	s.invalidateUnreadCount(ctx, userID)
	return nil
}

func (s *service) invalidateUnreadCount(ctx context.Context, userID uuid.UUID) {
	if s.redis == nil {
		return
	}
	if err := s.redis.Del(ctx, unreadCountKey(userID)).Err(); err != nil {
		s.log.Debug().Err(err).Msg("unread count cache invalidation failed")
	}
}

func unreadCountKey(userID uuid.UUID) string {
	return fmt.Sprintf("notifications:unread:%s", userID)
}
