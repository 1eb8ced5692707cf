package ports

import (
	"context"

	"marketplace/internal/core/domain/model/kernel"
)

// IdempotencyStore remembers which order a client-supplied Idempotency-Key produced.
type IdempotencyStore interface {
	// Reserve claims key for a new placement. When the key was already used it
	// returns reserved=false and the stored order id; the id is nil while the
	// first placement is still running.
	Reserve(ctx context.Context, key string) (reserved bool, orderID *kernel.UUID, err error)

	// Complete binds key to the created order.
	Complete(ctx context.Context, key string, orderID kernel.UUID) error

	// Release forgets key after a failed placement so the client can retry.
	Release(ctx context.Context, key string) error
}
