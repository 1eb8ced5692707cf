package commands

import (
	"context"
	"errors"
	"log/slog"

	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/core/domain/model/order"
	"marketplace/internal/core/domain/model/outbox"
	"marketplace/internal/core/ports"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

// PlaceOrderCommandHandler is the order ledger: it turns a cart snapshot into a
// persisted order and clears the cart in one transaction.
//
// Example:
//
//	handler := NewPlaceOrderCommandHandler(uowFactory, idempotencyStore, nil, logger)
//	orderID, err := handler.Handle(ctx, cmd)
//	switch {
//	case errors.Is(err, ErrEmptyCart):
//	    // 400
//	case errors.Is(err, ErrOrderPlacementFailed):
//	    // 500, nothing was written
//	}
type PlaceOrderCommandHandler struct {
	uowFactory  PlaceOrderUoWFactory
	idempotency ports.IdempotencyStore
	clock       Clock
	logger      *slog.Logger
}

// completeAttempts is how often binding a key to a committed order is tried.
const completeAttempts = 3

// NewPlaceOrderCommandHandler creates the handler. idempotency may be nil, in
// which case Idempotency-Key values are ignored. A nil clock uses time.Now and
// a nil logger uses slog.Default.
func NewPlaceOrderCommandHandler(
	uowFactory PlaceOrderUoWFactory,
	idempotency ports.IdempotencyStore,
	clock Clock,
	logger *slog.Logger,
) PlaceOrderCommandHandler {
	if logger == nil {
		logger = slog.Default()
	}
	return PlaceOrderCommandHandler{
		uowFactory:  uowFactory,
		idempotency: idempotency,
		clock:       clock,
		logger:      logger.With("component", "place_order"),
	}
}

// Handle places the order and returns its id.
//
// Algorithm:
//  1. reserve the idempotency key, if any (a completed replay returns the stored id)
//  2. begin a unit of work; every exit without commit rolls it back
//  3. read and lock the cart snapshot; an empty cart fails with ErrEmptyCart
//  4. build the order, insert it with its items, clear the snapshotted rows
//  5. write the orders.placed outbox message and commit
//
// Storage failures are wrapped in ErrOrderPlacementFailed and are not retried.
func (h *PlaceOrderCommandHandler) Handle(ctx context.Context, cmd PlaceOrderCommand) (kernel.UUID, error) {
	if err := cmd.Validate(); err != nil {
		return kernel.UUID{}, err
	}

	ctx, span := tracer.Start(ctx, "PlaceOrder", trace.WithAttributes(
		attribute.String("user.id", cmd.UserID().String()),
		attribute.Bool("idempotency.key_present", cmd.IdempotencyKey() != ""),
	))
	defer span.End()

	orderID, err := h.handle(ctx, cmd)
	recordError(span, err)
	if err == nil {
		span.SetAttributes(attribute.String("order.id", orderID.String()))
	}
	return orderID, err
}

func (h *PlaceOrderCommandHandler) handle(ctx context.Context, cmd PlaceOrderCommand) (kernel.UUID, error) {
	if h.idempotency == nil || cmd.IdempotencyKey() == "" {
		return h.place(ctx, cmd)
	}

	key := idempotencyKey(cmd)
	reserved, existing, err := h.idempotency.Reserve(ctx, key)
	if err != nil {
		return kernel.UUID{}, wrap(ErrOrderPlacementFailed, err)
	}
	if !reserved {
		if existing != nil {
			return *existing, nil
		}
		return kernel.UUID{}, ErrPlacementInProgress
	}

	// Detached so a cancelled request still settles the key.
	storeCtx := context.WithoutCancel(ctx)

	orderID, err := h.place(ctx, cmd)
	if err != nil {
		if releaseErr := h.idempotency.Release(storeCtx, key); releaseErr != nil {
			h.logger.ErrorContext(ctx, "failed to release idempotency key",
				"operation", "PlaceOrder",
				"user_id", cmd.UserID().String(),
				"idempotency_key", key,
				"error", releaseErr,
			)
		}
		return kernel.UUID{}, err
	}

	h.complete(storeCtx, cmd, key, orderID)
	return orderID, nil
}

// complete binds key to the committed order. The order exists either way, so
// a failure is logged, not returned; the pending reservation then expires
// after the store's short pending TTL.
func (h *PlaceOrderCommandHandler) complete(ctx context.Context, cmd PlaceOrderCommand, key string, orderID kernel.UUID) {
	var err error
	for range completeAttempts {
		if err = h.idempotency.Complete(ctx, key, orderID); err == nil {
			return
		}
	}

	h.logger.ErrorContext(ctx, "failed to complete idempotency key",
		"operation", "PlaceOrder",
		"user_id", cmd.UserID().String(),
		"idempotency_key", key,
		"order_id", orderID.String(),
		"attempts", completeAttempts,
		"error", err,
	)
}

func (h *PlaceOrderCommandHandler) place(ctx context.Context, cmd PlaceOrderCommand) (kernel.UUID, error) {
	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return kernel.UUID{}, wrap(ErrOrderPlacementFailed, err)
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	cartRepo := uow.CartRepository()
	snapshot, err := cartRepo.GetSnapshot(ctx, cmd.UserID())
	if err != nil {
		return kernel.UUID{}, wrap(ErrOrderPlacementFailed, err)
	}
	if snapshot.IsEmpty() {
		return kernel.UUID{}, ErrEmptyCart
	}

	now := h.clock.now()
	o, err := order.NewOrder(kernel.NewUUID(), snapshot, cmd.Destination(), now)
	if err != nil {
		if errors.Is(err, order.ErrNoItems) {
			return kernel.UUID{}, ErrEmptyCart
		}
		return kernel.UUID{}, wrap(ErrOrderPlacementFailed, err)
	}

	if err = uow.OrderRepository().Add(ctx, o); err != nil {
		return kernel.UUID{}, wrap(ErrOrderPlacementFailed, err)
	}

	if err = cartRepo.Clear(ctx, snapshot); err != nil {
		return kernel.UUID{}, wrap(ErrOrderPlacementFailed, err)
	}

	msg, err := outbox.NewMessage(outbox.TopicOrderPlaced, o.PlacedEvent(), now)
	if err != nil {
		return kernel.UUID{}, wrap(ErrOrderPlacementFailed, err)
	}
	if err = uow.OutboxRepository().Add(ctx, msg); err != nil {
		return kernel.UUID{}, wrap(ErrOrderPlacementFailed, err)
	}

	if err = uow.Commit(ctx); err != nil {
		return kernel.UUID{}, wrap(ErrOrderPlacementFailed, err)
	}

	return o.ID(), nil
}

// idempotencyKey scopes the client key to the user so two users cannot
// collide on the same value.
func idempotencyKey(cmd PlaceOrderCommand) string {
	return cmd.UserID().String() + ":" + cmd.IdempotencyKey()
}
