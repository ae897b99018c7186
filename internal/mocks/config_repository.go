package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"bugtrail/internal/domain"
)

type ConfigRepository struct {
	mock.Mock
}

func (m *ConfigRepository) Get(ctx context.Context, key string) (*domain.ConfigEntry, error) {
	args := m.Called(ctx, key)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ConfigEntry), args.Error(1)
}

func (m *ConfigRepository) Set(ctx context.Context, key, value string) error {
	args := m.Called(ctx, key, value)
	return args.Error(0)
}
