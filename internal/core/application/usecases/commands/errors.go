package commands

import (
	"errors"
	"fmt"

	"marketplace/internal/core/ports"
)

var (
	// ErrEmptyCart is returned when a user places an order with nothing in the cart.
	ErrEmptyCart = errors.New("cart is empty")

	// ErrOrderPlacementFailed wraps any storage failure during placement.
	// Nothing of the placement is persisted when it is returned.
	ErrOrderPlacementFailed = errors.New("order placement failed")

	// ErrPlacementInProgress is returned when the same idempotency key is
	// replayed while the first placement is still running.
	ErrPlacementInProgress = errors.New("order placement with this idempotency key is in progress")

	// ErrAssignmentFailed wraps storage failures while accepting a delivery.
	ErrAssignmentFailed = errors.New("delivery assignment failed")

	// ErrDeliveryCreationFailed wraps storage failures while creating a delivery.
	ErrDeliveryCreationFailed = errors.New("delivery creation failed")

	// ErrOutboxRelayFailed wraps storage or broker failures of a relay run.
	ErrOutboxRelayFailed = errors.New("outbox relay failed")

	// ErrDeliveryAlreadyActive is returned when an order already has an
	// unassigned or accepted delivery.
	ErrDeliveryAlreadyActive = ports.ErrDeliveryAlreadyActive
)

// wrap joins a category sentinel with its cause so both match errors.Is.
func wrap(category, cause error) error {
	return fmt.Errorf("%w: %w", category, cause)
}
