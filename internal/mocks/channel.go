package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"bugtrail/internal/domain"
	"bugtrail/internal/service/channel"
)

type Channel struct {
	mock.Mock
	ChannelKind domain.Channel
}

func (m *Channel) Kind() domain.Channel {
	return m.ChannelKind
}

func (m *Channel) Enabled() bool {
	args := m.Called()
	return args.Bool(0)
}

func (m *Channel) ValidateRecipient(rcpt channel.Recipient) bool {
	args := m.Called(rcpt)
	return args.Bool(0)
}

func (m *Channel) Send(ctx context.Context, msg channel.Message, rcpt channel.Recipient) bool {
	args := m.Called(ctx, msg, rcpt)
	return args.Bool(0)
}
