package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"bugtrail/internal/domain"
)

type Dispatcher struct {
	mock.Mock
}

func (m *Dispatcher) Dispatch(ctx context.Context, event domain.Event) {
	m.Called(ctx, event)
}
