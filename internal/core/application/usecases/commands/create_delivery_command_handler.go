package commands

import (
	"context"
	"errors"

	"marketplace/internal/core/domain/model/delivery"
	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/pkg/errs"
)

// CreateDeliveryCommandHandler is the intake point for deliveries. It checks
// that the order exists and relies on the storage rule that an order has at
// most one active delivery.
type CreateDeliveryCommandHandler struct {
	uowFactory DeliveryUoWFactory
	clock      Clock
}

// NewCreateDeliveryCommandHandler creates the handler. A nil clock uses time.Now.
func NewCreateDeliveryCommandHandler(uowFactory DeliveryUoWFactory, clock Clock) CreateDeliveryCommandHandler {
	return CreateDeliveryCommandHandler{
		uowFactory: uowFactory,
		clock:      clock,
	}
}

// Handle creates the delivery and returns its id.
//
// Returns:
//   - errs.ObjectNotFoundError when the order does not exist
//   - ErrDeliveryAlreadyActive when the order already has an active delivery
//   - ErrDeliveryCreationFailed wrapping any storage failure
func (h *CreateDeliveryCommandHandler) Handle(ctx context.Context, cmd CreateDeliveryCommand) (kernel.UUID, error) {
	if err := cmd.Validate(); err != nil {
		return kernel.UUID{}, err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return kernel.UUID{}, wrap(ErrDeliveryCreationFailed, err)
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	if _, err := uow.OrderRepository().Get(ctx, cmd.OrderID()); err != nil {
		if errors.Is(err, errs.ErrObjectNotFound) {
			return kernel.UUID{}, err
		}
		return kernel.UUID{}, wrap(ErrDeliveryCreationFailed, err)
	}

	d, err := delivery.NewDelivery(kernel.NewUUID(), cmd.OrderID(), cmd.DriverID(), h.clock.now())
	if err != nil {
		return kernel.UUID{}, err
	}

	if err = uow.DeliveryRepository().Add(ctx, d); err != nil {
		if errors.Is(err, ErrDeliveryAlreadyActive) || errors.Is(err, errs.ErrObjectNotFound) {
			return kernel.UUID{}, err
		}
		return kernel.UUID{}, wrap(ErrDeliveryCreationFailed, err)
	}

	if err = uow.Commit(ctx); err != nil {
		return kernel.UUID{}, wrap(ErrDeliveryCreationFailed, err)
	}

	return d.ID(), nil
}
