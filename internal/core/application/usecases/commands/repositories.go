// Package commands contains the operations that change marketplace state:
// placing orders, creating and accepting deliveries, and relaying the outbox.
// Every command follows the same pattern: a validated command object, a
// handler that opens its own unit of work, and an explicit commit.
package commands

import (
	"context"
	"time"

	"marketplace/internal/core/ports"
)

// Unit of Work interfaces narrowed to what each handler touches. The
// postgres GormUnitOfWork satisfies all of them.
type (
	// TxManager handles database transaction lifecycle.
	TxManager interface {
		Begin(ctx context.Context) error
		Commit(ctx context.Context) error
		Rollback(ctx context.Context) error
	}

	// CartRepoFactory provides the cart repository within a transaction.
	CartRepoFactory interface {
		CartRepository() ports.CartRepository
	}

	// OrderRepoFactory provides the order repository within a transaction.
	OrderRepoFactory interface {
		OrderRepository() ports.OrderRepository
	}

	// DeliveryRepoFactory provides the delivery repository within a transaction.
	DeliveryRepoFactory interface {
		DeliveryRepository() ports.DeliveryRepository
	}

	// OutboxRepoFactory provides the outbox repository within a transaction.
	OutboxRepoFactory interface {
		OutboxRepository() ports.OutboxRepository
	}

	// PlaceOrderUoW spans the cart read, the order insert, the cart clear and
	// the outbox insert of one placement.
	//
	// Example:
	//   uow := factory.Create()
	//   err := uow.Begin(ctx)
	//   defer uow.Rollback(ctx)
	//
	//   snapshot, err := uow.CartRepository().GetSnapshot(ctx, userID)
	//   err = uow.OrderRepository().Add(ctx, o)
	//   err = uow.CartRepository().Clear(ctx, snapshot)
	//
	//   err = uow.Commit(ctx)
	PlaceOrderUoW interface {
		TxManager
		CartRepoFactory
		OrderRepoFactory
		OutboxRepoFactory
	}

	// PlaceOrderUoWFactory creates new placement units of work.
	PlaceOrderUoWFactory interface {
		Create() PlaceOrderUoW
	}

	// DeliveryUoW manages transactions for delivery commands.
	DeliveryUoW interface {
		TxManager
		OrderRepoFactory
		DeliveryRepoFactory
		OutboxRepoFactory
	}

	// DeliveryUoWFactory creates new delivery units of work.
	DeliveryUoWFactory interface {
		Create() DeliveryUoW
	}

	// OutboxUoW manages transactions for the outbox relay.
	OutboxUoW interface {
		TxManager
		OutboxRepoFactory
	}

	// OutboxUoWFactory creates new outbox units of work.
	OutboxUoWFactory interface {
		Create() OutboxUoW
	}
)

// Clock returns the current time. Handlers take one so tests can pin timestamps.
type Clock func() time.Time

func (c Clock) now() time.Time {
	if c == nil {
		return time.Now().UTC()
	}
	return c().UTC()
}
