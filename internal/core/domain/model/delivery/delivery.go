package delivery

import (
	"errors"
	"fmt"
	"time"

	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/pkg/errs"
)

var (
	// ErrDeliveryIsNotConstructed is returned when a Delivery was not built by
	// NewDelivery or RestoreDelivery.
	ErrDeliveryIsNotConstructed = errors.New("Delivery must be created via NewDelivery constructor")

	// ErrInvalidState is returned when a transition is not allowed from the
	// current state, or when a different driver tries to take an assigned delivery.
	ErrInvalidState = errors.New("delivery is in an invalid state for this operation")
)

// Delivery is the aggregate root of the assignment tracker.
type Delivery struct {
	id             kernel.UUID
	orderID        kernel.UUID
	driverID       *kernel.UUID
	status         Status
	driverPosition *kernel.GeoPoint
	assignedAt     *time.Time
	createdAt      time.Time

	isConstructed bool
}

// NewDelivery creates an Unassigned delivery for an order. driverID may be nil
// when no driver is known yet.
//
// Example:
//
//	d, err := delivery.NewDelivery(kernel.NewUUID(), orderID, nil, time.Now())
func NewDelivery(id, orderID kernel.UUID, driverID *kernel.UUID, now time.Time) (*Delivery, error) {
	d := &Delivery{
		status:        Unassigned,
		createdAt:     now.UTC(),
		isConstructed: true,
	}

	if err := errors.Join(
		d.setID(id),
		d.setOrderID(orderID),
		d.setDriverID(driverID),
	); err != nil {
		return nil, err
	}

	return d, nil
}

// RestoreDelivery rebuilds a delivery from storage.
func RestoreDelivery(
	id, orderID kernel.UUID,
	driverID *kernel.UUID,
	status Status,
	driverPosition *kernel.GeoPoint,
	assignedAt *time.Time,
	createdAt time.Time,
) (*Delivery, error) {
	d := &Delivery{
		status:         status,
		driverPosition: driverPosition,
		assignedAt:     assignedAt,
		createdAt:      createdAt,
		isConstructed:  true,
	}

	if err := errors.Join(
		d.setID(id),
		d.setOrderID(orderID),
		d.setDriverID(driverID),
		status.Validate(),
	); err != nil {
		return nil, err
	}

	if status == Accepted && (d.driverID == nil || driverPosition == nil || assignedAt == nil) {
		return nil, errs.NewValueIsInvalidErrorWithCause("delivery",
			errors.New("accepted delivery must have a driver, a driver position and an assignment time"))
	}

	return d, nil
}

// Validate ensures the delivery was built by a constructor.
func (d *Delivery) Validate() error {
	if d == nil || !d.isConstructed {
		return ErrDeliveryIsNotConstructed
	}
	return nil
}

func (d *Delivery) ID() kernel.UUID                  { return d.id }
func (d *Delivery) OrderID() kernel.UUID             { return d.orderID }
func (d *Delivery) DriverID() *kernel.UUID           { return d.driverID }
func (d *Delivery) Status() Status                   { return d.status }
func (d *Delivery) DriverPosition() *kernel.GeoPoint { return d.driverPosition }
func (d *Delivery) AssignedAt() *time.Time           { return d.assignedAt }
func (d *Delivery) CreatedAt() time.Time             { return d.createdAt }

// Accept records a driver taking the delivery.
//
// Business rules:
//   - position must be a constructed GeoPoint
//   - Delivered and Cancelled deliveries cannot be accepted
//   - a delivery without a driver requires driverID, which becomes its driver
//   - a delivery with a driver accepts a nil driverID or the same driverID;
//     a different driverID fails with ErrInvalidState
//   - re-accepting an Accepted delivery overwrites position and assignedAt
//
// Parameters:
//   - driverID: accepting driver, optional when the delivery already has one
//   - position: driver position at acceptance
//   - now: acceptance timestamp
//
// Returns:
//   - error: validation error (InvalidArgument) or ErrInvalidState
func (d *Delivery) Accept(driverID *kernel.UUID, position kernel.GeoPoint, now time.Time) error {
	if err := position.Validate(); err != nil {
		return errs.NewValueIsRequiredErrorWithCause("driverPosition", err)
	}

	newStatus, err := d.status.Accept()
	if err != nil {
		return err
	}

	switch {
	case d.driverID == nil && driverID == nil:
		return errs.NewValueIsRequiredError("driverId")
	case d.driverID == nil:
		if err := d.setDriverID(driverID); err != nil {
			return err
		}
	case driverID != nil && !d.driverID.IsEqual(*driverID):
		return fmt.Errorf("%w: delivery %s belongs to another driver", ErrInvalidState, d.id)
	}

	at := now.UTC()
	d.status = newStatus
	d.driverPosition = &position
	d.assignedAt = &at
	return nil
}

// AcceptedEvent describes the delivery after Accept for the deliveries.accepted topic.
func (d *Delivery) AcceptedEvent() AcceptedEvent {
	e := AcceptedEvent{
		DeliveryID: d.id.String(),
		OrderID:    d.orderID.String(),
	}
	if d.driverID != nil {
		e.DriverID = d.driverID.String()
	}
	if d.driverPosition != nil {
		e.DriverLatitude = d.driverPosition.Latitude()
		e.DriverLongitude = d.driverPosition.Longitude()
	}
	if d.assignedAt != nil {
		e.AssignedAt = *d.assignedAt
	}
	return e
}

func (d *Delivery) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return errs.NewValueIsRequiredErrorWithCause("deliveryId", err)
	}
	d.id = id
	return nil
}

func (d *Delivery) setOrderID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return errs.NewValueIsRequiredErrorWithCause("orderId", err)
	}
	d.orderID = id
	return nil
}

func (d *Delivery) setDriverID(id *kernel.UUID) error {
	if id == nil {
		return nil
	}
	if err := id.Validate(); err != nil {
		return errs.NewValueIsInvalidErrorWithCause("driverId", err)
	}
	v := *id
	d.driverID = &v
	return nil
}
