package dispatch

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"bugtrail/internal/domain"
	"bugtrail/internal/mocks"
	"bugtrail/internal/service/channel"
	"bugtrail/internal/service/preference"
)

// newTestPrefs builds a preference service whose config and preference reads
// all come back empty, which means every switch is at its default (enabled).
func newTestPrefs() (preference.Service, *mocks.ConfigRepository, *mocks.PreferenceRepository) {
	configRepo := new(mocks.ConfigRepository)
	prefRepo := new(mocks.PreferenceRepository)
	configRepo.On("Get", mock.Anything, mock.AnythingOfType("string")).Return(nil, nil).Maybe()
	prefRepo.On("Get", mock.Anything, mock.AnythingOfType("uuid.UUID")).Return(nil, nil).Maybe()
	return preference.NewService(prefRepo, configRepo, zerolog.Nop()), configRepo, prefRepo
}

func TestDispatch_ServerDisabledSkipsEverything(t *testing.T) {
	ctx := context.Background()

	configRepo := new(mocks.ConfigRepository)
	configRepo.On("Get", ctx, domain.ConfigServerEnabled).
		Return(&domain.ConfigEntry{Key: domain.ConfigServerEnabled, Value: "false"}, nil).Once()
	prefRepo := new(mocks.PreferenceRepository)
	prefs := preference.NewService(prefRepo, configRepo, zerolog.Nop())

	mockUsers := new(mocks.UserRepository)
	ch := &mocks.Channel{ChannelKind: domain.ChannelInApp}

	svc := NewService(mockUsers, prefs, []channel.Channel{ch}, zerolog.Nop())
	svc.Dispatch(ctx, domain.BugAssigned{
		Bug:        domain.Bug{ID: uuid.New()},
		AssigneeID: uuid.New(),
	})

	ch.AssertNotCalled(t, "Send", mock.Anything, mock.Anything, mock.Anything)
	mockUsers.AssertNotCalled(t, "GetByID", mock.Anything, mock.Anything)
	configRepo.AssertExpectations(t)
}

func TestDispatch_AssignedReachesExactlyTheAssignee(t *testing.T) {
	ctx := context.Background()
	prefs, _, _ := newTestPrefs()

	assignee := &domain.User{ID: uuid.New(), Username: "dana", DisplayName: "Dana", Role: "member"}
	bug := domain.Bug{ID: uuid.New(), Title: "Search index out of date", CreatorID: uuid.New()}

	mockUsers := new(mocks.UserRepository)
	mockUsers.On("GetByID", ctx, assignee.ID).Return(assignee, nil).Once()

	ch := &mocks.Channel{ChannelKind: domain.ChannelInApp}
	ch.On("Enabled").Return(true)
	ch.On("ValidateRecipient", mock.Anything).Return(true)
	ch.On("Send", ctx, mock.MatchedBy(func(msg channel.Message) bool {
		return msg.Title == "[Assigned to You] "+bug.Title
	}), mock.MatchedBy(func(rcpt channel.Recipient) bool {
		return rcpt.ID == assignee.ID
	})).Return(true).Once()

	svc := NewService(mockUsers, prefs, []channel.Channel{ch}, zerolog.Nop())
	svc.Dispatch(ctx, domain.BugAssigned{Bug: bug, AssigneeID: assignee.ID, ActorName: "Sam"})

	ch.AssertExpectations(t)
	mockUsers.AssertExpectations(t)
}

func TestDispatch_OneChannelFailingDoesNotBlockAnother(t *testing.T) {
	ctx := context.Background()
	prefs, _, _ := newTestPrefs()

	email := "dana@example.com"
	assignee := &domain.User{ID: uuid.New(), DisplayName: "Dana", Email: &email, Role: "member"}

	mockUsers := new(mocks.UserRepository)
	mockUsers.On("GetByID", ctx, assignee.ID).Return(assignee, nil).Once()

	mailCh := &mocks.Channel{ChannelKind: domain.ChannelEmail}
	mailCh.On("Enabled").Return(true)
	mailCh.On("ValidateRecipient", mock.Anything).Return(true)
	mailCh.On("Send", ctx, mock.Anything, mock.Anything).Return(false).Once()

	inAppCh := &mocks.Channel{ChannelKind: domain.ChannelInApp}
	inAppCh.On("Enabled").Return(true)
	inAppCh.On("ValidateRecipient", mock.Anything).Return(true)
	inAppCh.On("Send", ctx, mock.Anything, mock.Anything).Return(true).Once()

	svc := NewService(mockUsers, prefs, []channel.Channel{mailCh, inAppCh}, zerolog.Nop())

	assert.NotPanics(t, func() {
		svc.Dispatch(ctx, domain.BugAssigned{
			Bug:        domain.Bug{ID: uuid.New(), Title: "Flaky test"},
			AssigneeID: assignee.ID,
		})
	})

	mailCh.AssertExpectations(t)
	inAppCh.AssertExpectations(t)
}

func TestDispatch_UserPreferenceDisablesChannel(t *testing.T) {
	ctx := context.Background()

	assignee := &domain.User{ID: uuid.New(), DisplayName: "Dana", Role: "member"}

	configRepo := new(mocks.ConfigRepository)
	configRepo.On("Get", mock.Anything, mock.AnythingOfType("string")).Return(nil, nil).Maybe()
	prefRepo := new(mocks.PreferenceRepository)
	stored := domain.DefaultChannelPreference(assignee.ID)
	stored.InAppEnabled = false
	prefRepo.On("Get", ctx, assignee.ID).Return(&stored, nil).Once()
	prefs := preference.NewService(prefRepo, configRepo, zerolog.Nop())

	mockUsers := new(mocks.UserRepository)
	mockUsers.On("GetByID", ctx, assignee.ID).Return(assignee, nil).Once()

	ch := &mocks.Channel{ChannelKind: domain.ChannelInApp}

	svc := NewService(mockUsers, prefs, []channel.Channel{ch}, zerolog.Nop())
	svc.Dispatch(ctx, domain.BugAssigned{
		Bug:        domain.Bug{ID: uuid.New(), Title: "Broken build"},
		AssigneeID: assignee.ID,
	})

	ch.AssertNotCalled(t, "Send", mock.Anything, mock.Anything, mock.Anything)
	prefRepo.AssertExpectations(t)
}

func TestDispatch_MissingRecipientIsSkipped(t *testing.T) {
	ctx := context.Background()
	prefs, _, _ := newTestPrefs()

	ghostID := uuid.New()
	mockUsers := new(mocks.UserRepository)
	mockUsers.On("GetByID", ctx, ghostID).Return(nil, nil).Once()

	ch := &mocks.Channel{ChannelKind: domain.ChannelInApp}

	svc := NewService(mockUsers, prefs, []channel.Channel{ch}, zerolog.Nop())
	svc.Dispatch(ctx, domain.BugAssigned{
		Bug:        domain.Bug{ID: uuid.New()},
		AssigneeID: ghostID,
	})

	ch.AssertNotCalled(t, "Send", mock.Anything, mock.Anything, mock.Anything)
	mockUsers.AssertExpectations(t)
}
