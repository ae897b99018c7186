package mocks

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"bugtrail/internal/domain"
)

type BugRepository struct {
	mock.Mock
}

func (m *BugRepository) Create(ctx context.Context, bug *domain.Bug) error {
	args := m.Called(ctx, bug)
	return args.Error(0)
}

func (m *BugRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Bug, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Bug), args.Error(1)
}

func (m *BugRepository) Update(ctx context.Context, bug *domain.Bug) error {
	args := m.Called(ctx, bug)
	return args.Error(0)
}
