package ports

import (
	"context"
	"time"

	"marketplace/internal/core/domain/model/outbox"
)

// OutboxRepository stores events next to the state change they describe.
type OutboxRepository interface {
	// Add inserts a pending message.
	Add(ctx context.Context, message outbox.Message) error

	// GetPending returns up to limit unsent messages oldest first. Inside a
	// transaction the rows are locked and rows locked by other relays are skipped.
	GetPending(ctx context.Context, limit int) ([]outbox.Message, error)

	// MarkSent stamps the messages with sentAt.
	MarkSent(ctx context.Context, ids []int64, sentAt time.Time) error
}
