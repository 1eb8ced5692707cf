package order

import (
	"errors"
	"slices"
	"time"

	"marketplace/internal/core/domain/model/cart"
	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/pkg/errs"
)

var (
	// ErrOrderIsNotConstructed is returned when an Order was not created through
	// NewOrder or RestoreOrder.
	ErrOrderIsNotConstructed = errors.New("Order must be created via NewOrder constructor")

	// ErrNoItems is returned when an order would be created without items.
	ErrNoItems = errors.New("order must contain at least one item")
)

// Order is the aggregate root written by the order ledger.
//
// Order follows these invariants:
//   - Has at least one item
//   - Total equals the sum of item subtotals at creation time
//   - Destination is a valid GeoPoint
//   - Only the status can change after creation
type Order struct {
	id          kernel.UUID
	userID      kernel.UUID
	items       []Item
	total       kernel.Money
	destination kernel.GeoPoint
	status      Status
	createdAt   time.Time

	isConstructed bool
}

// NewOrder converts a cart snapshot into a Placed order.
//
// Parameters:
//   - id: identifier assigned to the new order
//   - snapshot: priced cart lines, must not be empty
//   - destination: delivery point
//   - now: creation timestamp
//
// Returns:
//   - *Order: the new order with items in snapshot order and the computed total
//   - error: ErrNoItems for an empty snapshot, or validation errors
//
// Example:
//
//	snapshot, _ := cartRepo.GetSnapshot(ctx, userID)
//	destination, _ := kernel.NewGeoPoint(52.52, 13.40)
//	o, err := order.NewOrder(kernel.NewUUID(), snapshot, destination, time.Now())
func NewOrder(id kernel.UUID, snapshot cart.Snapshot, destination kernel.GeoPoint, now time.Time) (*Order, error) {
	if snapshot.IsEmpty() {
		return nil, ErrNoItems
	}

	if err := errors.Join(
		id.Validate(),
		snapshot.UserID().Validate(),
		destination.Validate(),
	); err != nil {
		return nil, err
	}

	lines := snapshot.Lines()
	items := make([]Item, 0, len(lines))
	for i, l := range lines {
		items = append(items, itemFromLine(i, l))
	}

	return &Order{
		id:            id,
		userID:        snapshot.UserID(),
		items:         items,
		total:         snapshot.Total(),
		destination:   destination,
		status:        Placed,
		createdAt:     now.UTC(),
		isConstructed: true,
	}, nil
}

// RestoreOrder rebuilds an order from storage. The stored total is kept as is.
func RestoreOrder(
	id, userID kernel.UUID,
	items []Item,
	total kernel.Money,
	destination kernel.GeoPoint,
	status Status,
	createdAt time.Time,
) (*Order, error) {
	if len(items) == 0 {
		return nil, ErrNoItems
	}
	if err := errors.Join(
		id.Validate(),
		userID.Validate(),
		total.Validate(),
		destination.Validate(),
		status.Validate(),
	); err != nil {
		return nil, errs.NewValueIsInvalidErrorWithCause("order", err)
	}

	return &Order{
		id:            id,
		userID:        userID,
		items:         slices.Clone(items),
		total:         total,
		destination:   destination,
		status:        status,
		createdAt:     createdAt,
		isConstructed: true,
	}, nil
}

// Validate ensures the order was built by a constructor.
func (o *Order) Validate() error {
	if o == nil || !o.isConstructed {
		return ErrOrderIsNotConstructed
	}
	return nil
}

// IsEqual compares orders by identifier.
func (o *Order) IsEqual(other *Order) bool {
	return other != nil && o.id.IsEqual(other.id)
}

func (o *Order) ID() kernel.UUID              { return o.id }
func (o *Order) UserID() kernel.UUID          { return o.userID }
func (o *Order) Total() kernel.Money          { return o.total }
func (o *Order) Destination() kernel.GeoPoint { return o.destination }
func (o *Order) Status() Status               { return o.status }
func (o *Order) CreatedAt() time.Time         { return o.createdAt }

// Items returns a copy of the order items ordered by position.
func (o *Order) Items() []Item {
	return slices.Clone(o.items)
}

// PlacedEvent describes the order for the orders.placed topic.
func (o *Order) PlacedEvent() PlacedEvent {
	return PlacedEvent{
		OrderID:    o.id.String(),
		UserID:     o.userID.String(),
		Total:      o.total.String(),
		ItemCount:  len(o.items),
		Latitude:   o.destination.Latitude(),
		Longitude:  o.destination.Longitude(),
		OccurredAt: o.createdAt,
	}
}
