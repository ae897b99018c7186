package channel_test

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"bugtrail/internal/domain"
	"bugtrail/internal/mocks"
	"bugtrail/internal/service/channel"
)

type fixedPolicy struct {
	policy domain.RetentionPolicy
}

func (f fixedPolicy) RetentionPolicy(ctx context.Context) domain.RetentionPolicy {
	return f.policy
}

func TestInAppChannel_AlwaysAvailable(t *testing.T) {
	ch := channel.NewInAppChannel(new(mocks.NotificationRepository), fixedPolicy{}, zerolog.Nop())

	assert.True(t, ch.Enabled())
	assert.True(t, ch.ValidateRecipient(channel.Recipient{}))
}

func TestInAppChannel_SendStoresAndPrunes(t *testing.T) {
	ctx := context.Background()
	userID := uuid.New()
	bugID := uuid.New()

	repo := new(mocks.NotificationRepository)
	repo.On("Create", ctx, mock.MatchedBy(func(n *domain.Notification) bool {
		return n.UserID == userID && n.Title == "Bug assigned" && n.BugID != nil && *n.BugID == bugID
	})).Return(nil).Once()
	repo.On("PruneUserExcess", ctx, userID, 50).Return(int64(0), nil).Once()

	policy := fixedPolicy{policy: domain.RetentionPolicy{Days: 90, MaxPerUser: 50, AutoCleanup: true}}
	ch := channel.NewInAppChannel(repo, policy, zerolog.Nop())

	ok := ch.Send(ctx, channel.Message{Title: "Bug assigned", Body: "Details", BugID: &bugID}, channel.Recipient{ID: userID})

	assert.True(t, ok)
	repo.AssertExpectations(t)
}

func TestInAppChannel_LongTitleIsCut(t *testing.T) {
	ctx := context.Background()
	userID := uuid.New()

	repo := new(mocks.NotificationRepository)
	repo.On("Create", ctx, mock.MatchedBy(func(n *domain.Notification) bool {
		return len([]rune(n.Title)) == domain.MaxTitleLength
	})).Return(nil).Once()
	repo.On("PruneUserExcess", ctx, userID, mock.AnythingOfType("int")).Return(int64(0), nil).Once()

	ch := channel.NewInAppChannel(repo, fixedPolicy{policy: domain.DefaultRetentionPolicy()}, zerolog.Nop())

	ok := ch.Send(ctx, channel.Message{Title: strings.Repeat("t", 300)}, channel.Recipient{ID: userID})

	assert.True(t, ok)
	repo.AssertExpectations(t)
}

func TestInAppChannel_InsertFailure(t *testing.T) {
	ctx := context.Background()
	userID := uuid.New()

	repo := new(mocks.NotificationRepository)
	repo.On("Create", ctx, mock.Anything).Return(errors.New("db down")).Once()

	ch := channel.NewInAppChannel(repo, fixedPolicy{policy: domain.DefaultRetentionPolicy()}, zerolog.Nop())

	ok := ch.Send(ctx, channel.Message{Title: "t"}, channel.Recipient{ID: userID})

	assert.False(t, ok)
	repo.AssertNotCalled(t, "PruneUserExcess", mock.Anything, mock.Anything, mock.Anything)
}

func TestInAppChannel_PruneFailureStillCountsAsDelivered(t *testing.T) {
	ctx := context.Background()
	userID := uuid.New()

	repo := new(mocks.NotificationRepository)
	repo.On("Create", ctx, mock.Anything).Return(nil).Once()
	repo.On("PruneUserExcess", ctx, userID, mock.AnythingOfType("int")).Return(int64(0), errors.New("db down")).Once()

	ch := channel.NewInAppChannel(repo, fixedPolicy{policy: domain.DefaultRetentionPolicy()}, zerolog.Nop())

	ok := ch.Send(ctx, channel.Message{Title: "t"}, channel.Recipient{ID: userID})

	assert.True(t, ok)
	repo.AssertExpectations(t)
}
