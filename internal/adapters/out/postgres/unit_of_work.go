// Package postgres provides the GORM-based Unit of Work used by every command.
//
// A unit of work wraps one database transaction. Repositories obtained from it
// after Begin run inside that transaction, so the order insert, the cart clear
// and the outbox insert of a placement commit or roll back together.
//
// Usage:
//
//	uow := factory.Create()
//	if err := uow.Begin(ctx); err != nil {
//	    return err
//	}
//	defer func() { _ = uow.Rollback(ctx) }() // no-op after Commit
//
//	snapshot, err := uow.CartRepository().GetSnapshot(ctx, userID)
//	...
//	if err := uow.OrderRepository().Add(ctx, o); err != nil {
//	    return err
//	}
//	return uow.Commit(ctx)
//
// Each UnitOfWork instance belongs to one goroutine. Concurrent requests get
// their own instance from the factory and share only the *gorm.DB pool.
package postgres

import (
	"context"

	"marketplace/internal/adapters/out/postgres/cartrepo"
	"marketplace/internal/adapters/out/postgres/deliveryrepo"
	"marketplace/internal/adapters/out/postgres/orderrepo"
	"marketplace/internal/adapters/out/postgres/outboxrepo"
	"marketplace/internal/core/ports"

	"gorm.io/gorm"
)

// GormUnitOfWorkFactory creates UnitOfWork instances on a shared connection pool.
type GormUnitOfWorkFactory struct {
	db *gorm.DB
}

// NewGormUnitOfWorkFactory creates a factory for GORM-based unit of work instances.
//
// Example:
//
//	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{TranslateError: true})
//	if err != nil {
//	    log.Fatal("failed to connect database")
//	}
//	factory := NewGormUnitOfWorkFactory(db)
func NewGormUnitOfWorkFactory(db *gorm.DB) *GormUnitOfWorkFactory {
	return &GormUnitOfWorkFactory{db: db}
}

// Create produces a fresh UnitOfWork with no open transaction.
func (f *GormUnitOfWorkFactory) Create() ports.UnitOfWork {
	return &GormUnitOfWork{db: f.db}
}

// GormUnitOfWork coordinates one database transaction.
type GormUnitOfWork struct {
	db *gorm.DB
	tx *gorm.DB
}

// Begin opens the transaction. Calling it again while a transaction is open
// does nothing.
func (uow *GormUnitOfWork) Begin(ctx context.Context) error {
	if uow.tx != nil {
		return nil
	}

	tx := uow.db.WithContext(ctx).Begin()
	if tx.Error != nil {
		return tx.Error
	}

	uow.tx = tx
	return nil
}

// Commit makes every change of the transaction visible.
// Returns gorm.ErrInvalidTransaction when no transaction is open.
func (uow *GormUnitOfWork) Commit(_ context.Context) error {
	if uow.tx == nil {
		return gorm.ErrInvalidTransaction
	}

	err := uow.tx.Commit().Error
	uow.tx = nil
	return err
}

// Rollback discards the transaction. After Commit or a previous Rollback it
// returns gorm.ErrInvalidTransaction and changes nothing.
func (uow *GormUnitOfWork) Rollback(_ context.Context) error {
	if uow.tx == nil {
		return gorm.ErrInvalidTransaction
	}

	err := uow.tx.Rollback().Error
	uow.tx = nil
	return err
}

// CartRepository returns a cart repository bound to the open transaction, or
// to the pool when none is open.
func (uow *GormUnitOfWork) CartRepository() ports.CartRepository {
	return cartrepo.NewGormCartRepository(uow.conn())
}

// OrderRepository returns an order repository bound to the open transaction.
func (uow *GormUnitOfWork) OrderRepository() ports.OrderRepository {
	return orderrepo.NewGormOrderRepository(uow.conn())
}

// DeliveryRepository returns a delivery repository bound to the open transaction.
func (uow *GormUnitOfWork) DeliveryRepository() ports.DeliveryRepository {
	return deliveryrepo.NewGormDeliveryRepository(uow.conn())
}

// OutboxRepository returns an outbox repository bound to the open transaction.
func (uow *GormUnitOfWork) OutboxRepository() ports.OutboxRepository {
	return outboxrepo.NewGormOutboxRepository(uow.conn())
}

func (uow *GormUnitOfWork) conn() *gorm.DB {
	if uow.tx != nil {
		return uow.tx
	}
	return uow.db
}
