// Package ports defines the contracts between the marketplace core and its
// infrastructure: repositories bound to a unit of work, the event publisher and
// the idempotency store.
package ports

import (
	"context"

	"marketplace/internal/core/domain/model/cart"
	"marketplace/internal/core/domain/model/kernel"
)

// CartRepository reads and clears a user's cart for the order ledger.
// Cart rows are written by the cart service, never by this one.
type CartRepository interface {
	// GetSnapshot reads the cart joined with live product data, ordered by
	// insertion time then product id. Inside a transaction the cart rows are
	// locked until commit, so two placements for one user run one after another.
	// An empty cart yields an empty snapshot, not an error.
	GetSnapshot(ctx context.Context, userID kernel.UUID) (cart.Snapshot, error)

	// Clear deletes exactly the (user, product) rows captured by snapshot.
	Clear(ctx context.Context, snapshot cart.Snapshot) error
}
