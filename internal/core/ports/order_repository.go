package ports

import (
	"context"

	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/core/domain/model/order"
)

// OrderRepository persists order aggregates together with their items.
type OrderRepository interface {
	// Add inserts the order and all of its items.
	Add(ctx context.Context, aggregate *order.Order) error

	// Get loads an order with items ordered by position.
	// Returns errs.ObjectNotFoundError when the order does not exist.
	Get(ctx context.Context, id kernel.UUID) (*order.Order, error)
}
