// Package mocks provides testify mock implementations of the domain
// repository and service interfaces for unit tests.
package mocks

import (
	"context"
	"time"

	"github.com/stretchr/testify/mock"

	"parcel/internal/domain/entity"
)

// OrderRepository is a mock of repository.OrderRepository.
type OrderRepository struct {
	mock.Mock
}

func (m *OrderRepository) CreateOrder(ctx context.Context, order *entity.DeliveryOrder) error {
	args := m.Called(ctx, order)

	return args.Error(0)
}

func (m *OrderRepository) FindOrderByID(ctx context.Context, id string) (*entity.DeliveryOrder, error) {
	args := m.Called(ctx, id)
	if order, ok := args.Get(0).(*entity.DeliveryOrder); ok {
		return order, args.Error(1)
	}

	return nil, args.Error(1)
}

func (m *OrderRepository) FindOrdersByCustomer(ctx context.Context, customerID string, limit int) ([]*entity.DeliveryOrder, error) {
	args := m.Called(ctx, customerID, limit)
	if orders, ok := args.Get(0).([]*entity.DeliveryOrder); ok {
		return orders, args.Error(1)
	}

	return nil, args.Error(1)
}

func (m *OrderRepository) FindOrdersByDriver(ctx context.Context, driverID string, limit int) ([]*entity.DeliveryOrder, error) {
	args := m.Called(ctx, driverID, limit)
	if orders, ok := args.Get(0).([]*entity.DeliveryOrder); ok {
		return orders, args.Error(1)
	}

	return nil, args.Error(1)
}

func (m *OrderRepository) FindOrdersByStatus(ctx context.Context, status entity.Status, limit int) ([]*entity.DeliveryOrder, error) {
	args := m.Called(ctx, status, limit)
	if orders, ok := args.Get(0).([]*entity.DeliveryOrder); ok {
		return orders, args.Error(1)
	}

	return nil, args.Error(1)
}

func (m *OrderRepository) FindScheduledByCustomer(ctx context.Context, customerID string) ([]*entity.DeliveryOrder, error) {
	args := m.Called(ctx, customerID)
	if orders, ok := args.Get(0).([]*entity.DeliveryOrder); ok {
		return orders, args.Error(1)
	}

	return nil, args.Error(1)
}

func (m *OrderRepository) WatchScheduledByCustomer(ctx context.Context, customerID string) (<-chan []*entity.DeliveryOrder, error) {
	args := m.Called(ctx, customerID)
	if ch, ok := args.Get(0).(<-chan []*entity.DeliveryOrder); ok {
		return ch, args.Error(1)
	}
	if ch, ok := args.Get(0).(chan []*entity.DeliveryOrder); ok {
		return ch, args.Error(1)
	}

	return nil, args.Error(1)
}

func (m *OrderRepository) UpdateOrderStatus(ctx context.Context, id string, to entity.Status) error {
	args := m.Called(ctx, id, to)

	return args.Error(0)
}

func (m *OrderRepository) ActivateScheduled(ctx context.Context, id string) error {
	args := m.Called(ctx, id)

	return args.Error(0)
}

func (m *OrderRepository) RescheduleOrder(ctx context.Context, id string, at time.Time, pin string) error {
	args := m.Called(ctx, id, at, pin)

	return args.Error(0)
}

func (m *OrderRepository) CancelOrder(ctx context.Context, id string, reason string) error {
	args := m.Called(ctx, id, reason)

	return args.Error(0)
}

func (m *OrderRepository) AssignDriver(ctx context.Context, id string, driver *entity.DriverSnapshot) error {
	args := m.Called(ctx, id, driver)

	return args.Error(0)
}

func (m *OrderRepository) RateOrder(ctx context.Context, id string, rating float64) error {
	args := m.Called(ctx, id, rating)

	return args.Error(0)
}
