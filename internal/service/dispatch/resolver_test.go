package dispatch

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"

	"bugtrail/internal/domain"
	"bugtrail/internal/mocks"
)

type unknownEvent struct{}

func (unknownEvent) EventType() domain.EventType { return "SOMETHING_ELSE" }

func TestResolver_BugCreated(t *testing.T) {
	ctx := context.Background()
	creatorID := uuid.New()

	t.Run("explicit manager gets the notification alone", func(t *testing.T) {
		mockUsers := new(mocks.UserRepository)
		r := newResolver(mockUsers, zerolog.Nop())

		managerID := uuid.New()
		recipients, err := r.Resolve(ctx, domain.BugCreated{
			Bug:       domain.Bug{ID: uuid.New(), CreatorID: creatorID},
			ManagerID: &managerID,
		})

		assert.NoError(t, err)
		assert.Equal(t, []uuid.UUID{managerID}, recipients)
		mockUsers.AssertNotCalled(t, "ListByRole")
	})

	t.Run("no explicit manager falls back to the manager role", func(t *testing.T) {
		mockUsers := new(mocks.UserRepository)
		r := newResolver(mockUsers, zerolog.Nop())

		managers := []domain.User{
			{ID: uuid.New(), Role: "manager"},
			{ID: uuid.New(), Role: "manager"},
		}
		mockUsers.On("ListByRole", ctx, domain.RoleManager).Return(managers, nil).Once()

		recipients, err := r.Resolve(ctx, domain.BugCreated{
			Bug: domain.Bug{ID: uuid.New(), CreatorID: creatorID},
		})

		assert.NoError(t, err)
		assert.ElementsMatch(t, []uuid.UUID{managers[0].ID, managers[1].ID}, recipients)
		mockUsers.AssertExpectations(t)
	})
}

func TestResolver_BugAssigned(t *testing.T) {
	mockUsers := new(mocks.UserRepository)
	r := newResolver(mockUsers, zerolog.Nop())

	assigneeID := uuid.New()
	recipients, err := r.Resolve(context.Background(), domain.BugAssigned{
		Bug:        domain.Bug{ID: uuid.New()},
		AssigneeID: assigneeID,
	})

	assert.NoError(t, err)
	assert.Equal(t, []uuid.UUID{assigneeID}, recipients)
}

func TestResolver_BugStatusChanged(t *testing.T) {
	mockUsers := new(mocks.UserRepository)
	r := newResolver(mockUsers, zerolog.Nop())

	t.Run("creator and assignee", func(t *testing.T) {
		creatorID := uuid.New()
		assigneeID := uuid.New()

		recipients, err := r.Resolve(context.Background(), domain.BugStatusChanged{
			Bug: domain.Bug{ID: uuid.New(), CreatorID: creatorID, AssigneeID: &assigneeID},
		})

		assert.NoError(t, err)
		assert.ElementsMatch(t, []uuid.UUID{creatorID, assigneeID}, recipients)
	})

	t.Run("creator who is also the assignee appears once", func(t *testing.T) {
		creatorID := uuid.New()

		recipients, err := r.Resolve(context.Background(), domain.BugStatusChanged{
			Bug: domain.Bug{ID: uuid.New(), CreatorID: creatorID, AssigneeID: &creatorID},
		})

		assert.NoError(t, err)
		assert.Equal(t, []uuid.UUID{creatorID}, recipients)
	})
}

func TestResolver_BugResolved(t *testing.T) {
	mockUsers := new(mocks.UserRepository)
	r := newResolver(mockUsers, zerolog.Nop())

	ctx := context.Background()
	creatorID := uuid.New()
	managerID := uuid.New()
	mockUsers.On("ListByRole", ctx, domain.RoleManager).
		Return([]domain.User{{ID: managerID, Role: "manager"}}, nil).Once()

	recipients, err := r.Resolve(ctx, domain.BugResolved{
		Bug: domain.Bug{ID: uuid.New(), CreatorID: creatorID},
	})

	assert.NoError(t, err)
	assert.ElementsMatch(t, []uuid.UUID{creatorID, managerID}, recipients)
	mockUsers.AssertExpectations(t)
}

func TestResolver_BugClosed(t *testing.T) {
	mockUsers := new(mocks.UserRepository)
	r := newResolver(mockUsers, zerolog.Nop())

	creatorID := uuid.New()
	assigneeID := uuid.New()

	recipients, err := r.Resolve(context.Background(), domain.BugClosed{
		Bug: domain.Bug{ID: uuid.New(), CreatorID: creatorID, AssigneeID: &assigneeID},
	})

	assert.NoError(t, err)
	assert.ElementsMatch(t, []uuid.UUID{creatorID, assigneeID}, recipients)
}

func TestResolver_UnknownEvent(t *testing.T) {
	mockUsers := new(mocks.UserRepository)
	r := newResolver(mockUsers, zerolog.Nop())

	recipients, err := r.Resolve(context.Background(), unknownEvent{})

	assert.NoError(t, err)
	assert.Empty(t, recipients)
}
