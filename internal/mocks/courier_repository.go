package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"parcel/internal/domain/entity"
)

// CourierRepository is a mock of repository.CourierRepository.
type CourierRepository struct {
	mock.Mock
}

func (m *CourierRepository) CreateCourier(ctx context.Context, courier *entity.Courier) error {
	args := m.Called(ctx, courier)

	return args.Error(0)
}

func (m *CourierRepository) FindCourierByID(ctx context.Context, id string) (*entity.Courier, error) {
	args := m.Called(ctx, id)
	if courier, ok := args.Get(0).(*entity.Courier); ok {
		return courier, args.Error(1)
	}

	return nil, args.Error(1)
}

func (m *CourierRepository) FindAllCouriers(ctx context.Context) ([]*entity.Courier, error) {
	args := m.Called(ctx)
	if couriers, ok := args.Get(0).([]*entity.Courier); ok {
		return couriers, args.Error(1)
	}

	return nil, args.Error(1)
}

func (m *CourierRepository) FindActiveCouriers(ctx context.Context) ([]*entity.Courier, error) {
	args := m.Called(ctx)
	if couriers, ok := args.Get(0).([]*entity.Courier); ok {
		return couriers, args.Error(1)
	}

	return nil, args.Error(1)
}

func (m *CourierRepository) UpdateCourier(ctx context.Context, courier *entity.Courier) error {
	args := m.Called(ctx, courier)

	return args.Error(0)
}

func (m *CourierRepository) SetCourierActive(ctx context.Context, id string, active bool) error {
	args := m.Called(ctx, id, active)

	return args.Error(0)
}

func (m *CourierRepository) DeleteCourier(ctx context.Context, id string) error {
	args := m.Called(ctx, id)

	return args.Error(0)
}

// DriverRepository is a mock of repository.DriverRepository.
type DriverRepository struct {
	mock.Mock
}

func (m *DriverRepository) CreateDriver(ctx context.Context, driver *entity.Driver) error {
	args := m.Called(ctx, driver)

	return args.Error(0)
}

func (m *DriverRepository) FindDriverByID(ctx context.Context, id string) (*entity.Driver, error) {
	args := m.Called(ctx, id)
	if driver, ok := args.Get(0).(*entity.Driver); ok {
		return driver, args.Error(1)
	}

	return nil, args.Error(1)
}

func (m *DriverRepository) FindDriversByCourier(ctx context.Context, courierID string) ([]*entity.Driver, error) {
	args := m.Called(ctx, courierID)
	if drivers, ok := args.Get(0).([]*entity.Driver); ok {
		return drivers, args.Error(1)
	}

	return nil, args.Error(1)
}

func (m *DriverRepository) FindDriversByStatus(ctx context.Context, status entity.DriverStatus) ([]*entity.Driver, error) {
	args := m.Called(ctx, status)
	if drivers, ok := args.Get(0).([]*entity.Driver); ok {
		return drivers, args.Error(1)
	}

	return nil, args.Error(1)
}

func (m *DriverRepository) UpdateDriver(ctx context.Context, driver *entity.Driver) error {
	args := m.Called(ctx, driver)

	return args.Error(0)
}

func (m *DriverRepository) UpdateDriverStatus(ctx context.Context, id string, status entity.DriverStatus) error {
	args := m.Called(ctx, id, status)

	return args.Error(0)
}

// PricingRepository is a mock of repository.PricingRepository.
type PricingRepository struct {
	mock.Mock
}

func (m *PricingRepository) FindPricingByCourier(ctx context.Context, courierID string) (*entity.CourierPricing, error) {
	args := m.Called(ctx, courierID)
	if pricing, ok := args.Get(0).(*entity.CourierPricing); ok {
		return pricing, args.Error(1)
	}

	return nil, args.Error(1)
}

func (m *PricingRepository) SavePricing(ctx context.Context, pricing *entity.CourierPricing) error {
	args := m.Called(ctx, pricing)

	return args.Error(0)
}
