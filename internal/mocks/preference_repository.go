package mocks

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"bugtrail/internal/domain"
)

type PreferenceRepository struct {
	mock.Mock
}

func (m *PreferenceRepository) Get(ctx context.Context, userID uuid.UUID) (*domain.ChannelPreference, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ChannelPreference), args.Error(1)
}

func (m *PreferenceRepository) Upsert(ctx context.Context, pref *domain.ChannelPreference) error {
	args := m.Called(ctx, pref)
	return args.Error(0)
}
