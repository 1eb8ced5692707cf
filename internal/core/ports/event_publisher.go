package ports

import (
	"context"

	"marketplace/internal/core/domain/model/outbox"
)

// EventPublisher delivers outbox messages to the message broker.
type EventPublisher interface {
	Publish(ctx context.Context, message outbox.Message) error
}
