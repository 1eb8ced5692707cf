package commands

import (
	"context"

	"marketplace/internal/core/ports"

	"go.opentelemetry.io/otel/attribute"
)

// RelayOutboxCommandHandler publishes pending outbox messages and marks them
// sent. Messages are delivered at least once: a crash between publish and
// commit republishes them on the next run.
type RelayOutboxCommandHandler struct {
	uowFactory OutboxUoWFactory
	publisher  ports.EventPublisher
	clock      Clock
}

// NewRelayOutboxCommandHandler creates the handler. A nil clock uses time.Now.
func NewRelayOutboxCommandHandler(
	uowFactory OutboxUoWFactory,
	publisher ports.EventPublisher,
	clock Clock,
) RelayOutboxCommandHandler {
	return RelayOutboxCommandHandler{
		uowFactory: uowFactory,
		publisher:  publisher,
		clock:      clock,
	}
}

// Handle publishes one batch in outbox order and returns how many messages
// were sent. The first publish failure stops the batch; messages already
// published are still marked sent, the rest stay pending.
func (h *RelayOutboxCommandHandler) Handle(ctx context.Context, cmd RelayOutboxCommand) (int, error) {
	if err := cmd.Validate(); err != nil {
		return 0, err
	}

	ctx, span := tracer.Start(ctx, "RelayOutbox")
	defer span.End()

	sent, err := h.handle(ctx, cmd)
	span.SetAttributes(attribute.Int("outbox.sent", sent))
	recordError(span, err)
	return sent, err
}

func (h *RelayOutboxCommandHandler) handle(ctx context.Context, cmd RelayOutboxCommand) (int, error) {
	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return 0, wrap(ErrOutboxRelayFailed, err)
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	repo := uow.OutboxRepository()
	pending, err := repo.GetPending(ctx, cmd.BatchSize())
	if err != nil {
		return 0, wrap(ErrOutboxRelayFailed, err)
	}
	if len(pending) == 0 {
		return 0, nil
	}

	sentIDs := make([]int64, 0, len(pending))
	var publishErr error
	for _, m := range pending {
		if publishErr = h.publisher.Publish(ctx, m); publishErr != nil {
			break
		}
		sentIDs = append(sentIDs, m.ID)
	}

	if len(sentIDs) > 0 {
		if err = repo.MarkSent(ctx, sentIDs, h.clock.now()); err != nil {
			return 0, wrap(ErrOutboxRelayFailed, err)
		}
		if err = uow.Commit(ctx); err != nil {
			return 0, wrap(ErrOutboxRelayFailed, err)
		}
	}

	if publishErr != nil {
		return len(sentIDs), wrap(ErrOutboxRelayFailed, publishErr)
	}
	return len(sentIDs), nil
}
