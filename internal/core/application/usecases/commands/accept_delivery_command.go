package commands

import (
	"errors"

	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/pkg/errs"
	"marketplace/internal/pkg/guard"
)

var ErrAcceptDeliveryCommandIsNotConstructed = errors.New(
	"AcceptDeliveryCommand must be created via NewAcceptDeliveryCommand constructor",
)

// AcceptDeliveryCommand records a driver accepting a delivery from a position.
type AcceptDeliveryCommand struct { //nolint:recvcheck //using for validation
	deliveryID     kernel.UUID
	driverID       *kernel.UUID
	driverPosition kernel.GeoPoint

	guard guard.ConstructorGuard
}

// NewAcceptDeliveryCommand validates the request. driverID is optional here;
// the delivery decides whether it is needed.
func NewAcceptDeliveryCommand(
	deliveryID kernel.UUID,
	driverLatitude, driverLongitude *float64,
	driverID *kernel.UUID,
) (AcceptDeliveryCommand, error) {
	cmd := AcceptDeliveryCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setDeliveryID(deliveryID),
		cmd.setDriverPosition(driverLatitude, driverLongitude),
		cmd.setDriverID(driverID),
	); err != nil {
		return AcceptDeliveryCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c AcceptDeliveryCommand) Validate() error {
	return c.guard.Validate(ErrAcceptDeliveryCommandIsNotConstructed)
}

func (c AcceptDeliveryCommand) DeliveryID() kernel.UUID         { return c.deliveryID }
func (c AcceptDeliveryCommand) DriverID() *kernel.UUID          { return c.driverID }
func (c AcceptDeliveryCommand) DriverPosition() kernel.GeoPoint { return c.driverPosition }

func (c *AcceptDeliveryCommand) setDeliveryID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return errs.NewValueIsRequiredErrorWithCause("deliveryId", err)
	}
	c.deliveryID = id
	return nil
}

func (c *AcceptDeliveryCommand) setDriverPosition(latitude, longitude *float64) error {
	var missing []error
	if latitude == nil {
		missing = append(missing, errs.NewValueIsRequiredError("driverLatitude"))
	}
	if longitude == nil {
		missing = append(missing, errs.NewValueIsRequiredError("driverLongitude"))
	}
	if len(missing) > 0 {
		return errors.Join(missing...)
	}

	p, err := kernel.NewGeoPoint(*latitude, *longitude)
	if err != nil {
		return err
	}
	c.driverPosition = p
	return nil
}

func (c *AcceptDeliveryCommand) setDriverID(id *kernel.UUID) error {
	if id == nil {
		return nil
	}
	if err := id.Validate(); err != nil {
		return errs.NewValueIsInvalidErrorWithCause("driverId", err)
	}
	v := *id
	c.driverID = &v
	return nil
}
