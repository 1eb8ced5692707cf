package commands

import (
	"errors"

	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/pkg/errs"
	"marketplace/internal/pkg/guard"
)

var ErrCreateDeliveryCommandIsNotConstructed = errors.New(
	"CreateDeliveryCommand must be created via NewCreateDeliveryCommand constructor",
)

// CreateDeliveryCommand opens an unassigned delivery for an existing order,
// optionally pre-associated with a driver.
type CreateDeliveryCommand struct { //nolint:recvcheck //using for validation
	orderID  kernel.UUID
	driverID *kernel.UUID

	guard guard.ConstructorGuard
}

// NewCreateDeliveryCommand validates the request.
func NewCreateDeliveryCommand(orderID kernel.UUID, driverID *kernel.UUID) (CreateDeliveryCommand, error) {
	cmd := CreateDeliveryCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := orderID.Validate(); err != nil {
		return CreateDeliveryCommand{}, errs.NewValueIsRequiredErrorWithCause("orderId", err)
	}
	cmd.orderID = orderID

	if driverID != nil {
		if err := driverID.Validate(); err != nil {
			return CreateDeliveryCommand{}, errs.NewValueIsInvalidErrorWithCause("driverId", err)
		}
		v := *driverID
		cmd.driverID = &v
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c CreateDeliveryCommand) Validate() error {
	return c.guard.Validate(ErrCreateDeliveryCommandIsNotConstructed)
}

// OrderID returns the order to deliver.
func (c CreateDeliveryCommand) OrderID() kernel.UUID {
	return c.orderID
}

// DriverID returns the pre-associated driver or nil.
func (c CreateDeliveryCommand) DriverID() *kernel.UUID {
	return c.driverID
}
