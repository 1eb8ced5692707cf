package ports

import (
	"context"
)

// UnitOfWorkFactory creates a fresh UnitOfWork for each command.
type UnitOfWorkFactory interface {
	Create() UnitOfWork
}

// UnitOfWork is a business transaction boundary. Repositories obtained from it
// use the transaction opened by Begin, so their writes become visible only
// after Commit.
type UnitOfWork interface {
	// Begin starts a new database transaction.
	Begin(ctx context.Context) error

	// Commit commits the current transaction.
	Commit(ctx context.Context) error

	// Rollback rolls back the current transaction. After Commit it returns an
	// error and changes nothing, so it is safe to defer.
	Rollback(ctx context.Context) error

	CartRepository() CartRepository
	OrderRepository() OrderRepository
	DeliveryRepository() DeliveryRepository
	OutboxRepository() OutboxRepository
}
