package ports

import (
	"context"
	"errors"

	"marketplace/internal/core/domain/model/delivery"
	"marketplace/internal/core/domain/model/kernel"
)

// DeliveryRepository persists delivery aggregates.
type DeliveryRepository interface {
	// Add inserts a new delivery. A second active delivery for the same order
	// is rejected with ErrDeliveryAlreadyActive.
	Add(ctx context.Context, aggregate *delivery.Delivery) error

	// Update writes driver, status, driver position and assignment time.
	Update(ctx context.Context, aggregate *delivery.Delivery) error

	// GetForUpdate loads a delivery and locks its row until the transaction ends.
	GetForUpdate(ctx context.Context, id kernel.UUID) (*delivery.Delivery, error)
}

// ErrDeliveryAlreadyActive is returned by DeliveryRepository.Add when the order
// already has an unassigned or accepted delivery.
var ErrDeliveryAlreadyActive = errors.New("order already has an active delivery")
