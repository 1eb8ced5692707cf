package commands_test

import (
	"context"
	"time"

	"marketplace/internal/core/application/usecases/commands"
	"marketplace/internal/core/domain/model/cart"
	"marketplace/internal/core/domain/model/delivery"
	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/core/domain/model/order"
	"marketplace/internal/core/domain/model/outbox"
	"marketplace/internal/core/ports"

	"github.com/stretchr/testify/mock"
)

type MockCartRepository struct{ mock.Mock }

func (m *MockCartRepository) GetSnapshot(ctx context.Context, userID kernel.UUID) (cart.Snapshot, error) {
	args := m.Called(ctx, userID)
	return args.Get(0).(cart.Snapshot), args.Error(1)
}

func (m *MockCartRepository) Clear(ctx context.Context, snapshot cart.Snapshot) error {
	return m.Called(ctx, snapshot).Error(0)
}

type MockOrderRepository struct{ mock.Mock }

func (m *MockOrderRepository) Add(ctx context.Context, o *order.Order) error {
	return m.Called(ctx, o).Error(0)
}

func (m *MockOrderRepository) Get(ctx context.Context, id kernel.UUID) (*order.Order, error) {
	args := m.Called(ctx, id)
	o, _ := args.Get(0).(*order.Order)
	return o, args.Error(1)
}

type MockDeliveryRepository struct{ mock.Mock }

func (m *MockDeliveryRepository) Add(ctx context.Context, d *delivery.Delivery) error {
	return m.Called(ctx, d).Error(0)
}

func (m *MockDeliveryRepository) Update(ctx context.Context, d *delivery.Delivery) error {
	return m.Called(ctx, d).Error(0)
}

func (m *MockDeliveryRepository) GetForUpdate(ctx context.Context, id kernel.UUID) (*delivery.Delivery, error) {
	args := m.Called(ctx, id)
	d, _ := args.Get(0).(*delivery.Delivery)
	return d, args.Error(1)
}

type MockOutboxRepository struct{ mock.Mock }

func (m *MockOutboxRepository) Add(ctx context.Context, msg outbox.Message) error {
	return m.Called(ctx, msg).Error(0)
}

func (m *MockOutboxRepository) GetPending(ctx context.Context, limit int) ([]outbox.Message, error) {
	args := m.Called(ctx, limit)
	msgs, _ := args.Get(0).([]outbox.Message)
	return msgs, args.Error(1)
}

func (m *MockOutboxRepository) MarkSent(ctx context.Context, ids []int64, sentAt time.Time) error {
	return m.Called(ctx, ids, sentAt).Error(0)
}

// MockUoW satisfies every unit of work interface of the commands package.
type MockUoW struct{ mock.Mock }

func (m *MockUoW) Begin(ctx context.Context) error    { return m.Called(ctx).Error(0) }
func (m *MockUoW) Commit(ctx context.Context) error   { return m.Called(ctx).Error(0) }
func (m *MockUoW) Rollback(ctx context.Context) error { return m.Called(ctx).Error(0) }

func (m *MockUoW) CartRepository() ports.CartRepository {
	return m.Called().Get(0).(ports.CartRepository)
}

func (m *MockUoW) OrderRepository() ports.OrderRepository {
	return m.Called().Get(0).(ports.OrderRepository)
}

func (m *MockUoW) DeliveryRepository() ports.DeliveryRepository {
	return m.Called().Get(0).(ports.DeliveryRepository)
}

func (m *MockUoW) OutboxRepository() ports.OutboxRepository {
	return m.Called().Get(0).(ports.OutboxRepository)
}

type MockPlaceOrderUoWFactory struct{ mock.Mock }

func (m *MockPlaceOrderUoWFactory) Create() commands.PlaceOrderUoW {
	return m.Called().Get(0).(commands.PlaceOrderUoW)
}

type MockDeliveryUoWFactory struct{ mock.Mock }

func (m *MockDeliveryUoWFactory) Create() commands.DeliveryUoW {
	return m.Called().Get(0).(commands.DeliveryUoW)
}

type MockOutboxUoWFactory struct{ mock.Mock }

func (m *MockOutboxUoWFactory) Create() commands.OutboxUoW {
	return m.Called().Get(0).(commands.OutboxUoW)
}

type MockIdempotencyStore struct{ mock.Mock }

func (m *MockIdempotencyStore) Reserve(ctx context.Context, key string) (bool, *kernel.UUID, error) {
	args := m.Called(ctx, key)
	id, _ := args.Get(1).(*kernel.UUID)
	return args.Bool(0), id, args.Error(2)
}

func (m *MockIdempotencyStore) Complete(ctx context.Context, key string, orderID kernel.UUID) error {
	return m.Called(ctx, key, orderID).Error(0)
}

func (m *MockIdempotencyStore) Release(ctx context.Context, key string) error {
	return m.Called(ctx, key).Error(0)
}

type MockEventPublisher struct{ mock.Mock }

func (m *MockEventPublisher) Publish(ctx context.Context, msg outbox.Message) error {
	return m.Called(ctx, msg).Error(0)
}

var fixedNow = time.Date(2025, 6, 1, 10, 0, 0, 0, time.UTC)

func fixedClock() time.Time { return fixedNow }

func ptr[T any](v T) *T { return &v }
