package retention

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"bugtrail/internal/domain"
	"bugtrail/internal/mocks"
)

type fixedPolicy struct {
	policy domain.RetentionPolicy
}

func (f fixedPolicy) RetentionPolicy(ctx context.Context) domain.RetentionPolicy {
	return f.policy
}

func TestCleanupExpired(t *testing.T) {
	ctx := context.Background()
	repo := new(mocks.NotificationRepository)
	repo.On("DeleteOlderThan", ctx, mock.MatchedBy(func(cutoff time.Time) bool {
		expected := time.Now().AddDate(0, 0, -30)
		return cutoff.Sub(expected).Abs() < time.Minute
	})).Return(int64(12), nil).Once()

	svc := NewService(repo, fixedPolicy{policy: domain.RetentionPolicy{Days: 30, MaxPerUser: 100, AutoCleanup: true}}, zerolog.Nop())

	deleted, err := svc.CleanupExpired(ctx)

	assert.NoError(t, err)
	assert.Equal(t, int64(12), deleted)
	repo.AssertExpectations(t)
}

func TestCleanupExcess(t *testing.T) {
	ctx := context.Background()
	repo := new(mocks.NotificationRepository)
	repo.On("DeleteExcess", ctx, 100).Return(int64(5), nil).Once()

	svc := NewService(repo, fixedPolicy{policy: domain.RetentionPolicy{Days: 30, MaxPerUser: 100, AutoCleanup: true}}, zerolog.Nop())

	deleted, err := svc.CleanupExcess(ctx)

	assert.NoError(t, err)
	assert.Equal(t, int64(5), deleted)
	repo.AssertExpectations(t)
}

func TestStats(t *testing.T) {
	ctx := context.Background()
	heavyUser := uuid.New()
	lightUser := uuid.New()

	repo := new(mocks.NotificationRepository)
	repo.On("CountAll", ctx).Return(int64(130), nil).Once()
	repo.On("CountByUser", ctx).Return([]domain.NotificationCount{
		{UserID: heavyUser, Count: 105},
		{UserID: lightUser, Count: 25},
	}, nil).Once()
	repo.On("CountOlderThan", ctx, mock.AnythingOfType("time.Time")).Return(int64(7), nil).Once()

	svc := NewService(repo, fixedPolicy{policy: domain.RetentionPolicy{Days: 90, MaxPerUser: 100, AutoCleanup: true}}, zerolog.Nop())

	stats, err := svc.Stats(ctx)

	assert.NoError(t, err)
	assert.Equal(t, int64(130), stats.Total)
	assert.Equal(t, int64(7), stats.ExpiredCount)
	// only the heavy user is over the cap: 105 - 100
	assert.Equal(t, int64(5), stats.ExcessCount)
	assert.Len(t, stats.PerUser, 2)
	repo.AssertExpectations(t)
}

func TestSchedulerLifecycle(t *testing.T) {
	repo := new(mocks.NotificationRepository)
	svc := NewService(repo, fixedPolicy{policy: domain.DefaultRetentionPolicy()}, zerolog.Nop())

	assert.False(t, svc.Running())

	assert.NoError(t, svc.Start(1))
	assert.True(t, svc.Running())

	assert.ErrorIs(t, svc.Start(1), ErrAlreadyRunning)

	assert.NoError(t, svc.Stop())
	assert.False(t, svc.Running())

	assert.ErrorIs(t, svc.Stop(), ErrNotRunning)
}

func TestSchedulerRestartsAfterStop(t *testing.T) {
	repo := new(mocks.NotificationRepository)
	svc := NewService(repo, fixedPolicy{policy: domain.DefaultRetentionPolicy()}, zerolog.Nop())

	assert.NoError(t, svc.Start(2))
	assert.NoError(t, svc.Stop())
	assert.NoError(t, svc.Start(2))
	assert.NoError(t, svc.Stop())
}
