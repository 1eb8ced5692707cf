package commands

import (
	"context"
	"errors"

	"marketplace/internal/core/domain/model/outbox"
	"marketplace/internal/pkg/errs"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

// AcceptDeliveryCommandHandler advances a delivery to Accepted.
//
// The delivery row is locked for the duration of the transaction, so two
// drivers racing for the same delivery are serialised and the second one sees
// the first one's driver.
type AcceptDeliveryCommandHandler struct {
	uowFactory DeliveryUoWFactory
	clock      Clock
}

// NewAcceptDeliveryCommandHandler creates the handler. A nil clock uses time.Now.
func NewAcceptDeliveryCommandHandler(uowFactory DeliveryUoWFactory, clock Clock) AcceptDeliveryCommandHandler {
	return AcceptDeliveryCommandHandler{
		uowFactory: uowFactory,
		clock:      clock,
	}
}

// Handle accepts the delivery.
//
// Returns:
//   - errs.ObjectNotFoundError when the delivery does not exist
//   - errs.ValueIsRequiredError when no driver is known and none was given
//   - delivery.ErrInvalidState for terminal deliveries or a foreign driver
//   - ErrAssignmentFailed wrapping any storage failure
func (h *AcceptDeliveryCommandHandler) Handle(ctx context.Context, cmd AcceptDeliveryCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	ctx, span := tracer.Start(ctx, "AcceptDelivery", trace.WithAttributes(
		attribute.String("delivery.id", cmd.DeliveryID().String()),
	))
	defer span.End()

	err := h.handle(ctx, cmd)
	recordError(span, err)
	return err
}

func (h *AcceptDeliveryCommandHandler) handle(ctx context.Context, cmd AcceptDeliveryCommand) error {
	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return wrap(ErrAssignmentFailed, err)
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	repo := uow.DeliveryRepository()
	d, err := repo.GetForUpdate(ctx, cmd.DeliveryID())
	if err != nil {
		if errors.Is(err, errs.ErrObjectNotFound) {
			return err
		}
		return wrap(ErrAssignmentFailed, err)
	}

	now := h.clock.now()
	if err = d.Accept(cmd.DriverID(), cmd.DriverPosition(), now); err != nil {
		return err
	}

	if err = repo.Update(ctx, d); err != nil {
		return wrap(ErrAssignmentFailed, err)
	}

	msg, err := outbox.NewMessage(outbox.TopicDeliveryAccepted, d.AcceptedEvent(), now)
	if err != nil {
		return wrap(ErrAssignmentFailed, err)
	}
	if err = uow.OutboxRepository().Add(ctx, msg); err != nil {
		return wrap(ErrAssignmentFailed, err)
	}

	if err = uow.Commit(ctx); err != nil {
		return wrap(ErrAssignmentFailed, err)
	}

	return nil
}
