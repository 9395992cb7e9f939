package mocks

import (
	"context"

	"streetsaga-server/internal/messaging"

	"github.com/stretchr/testify/mock"
)

// EventPublisher is a testify mock for messaging.EventPublisher.
type EventPublisher struct {
	mock.Mock
}

func (m *EventPublisher) PublishPlayerEvent(ctx context.Context, payload messaging.PlayerEventPayload) error {
	args := m.Called(ctx, payload)
	return args.Error(0)
}
