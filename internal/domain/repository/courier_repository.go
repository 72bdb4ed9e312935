package repository

import (
	"context"

	"parcel/internal/domain/entity"
	"parcel/internal/errors"
)

// Domain-specific errors for courier and driver persistence.
var (
	// ErrCourierNotFound is returned when a courier document does not exist.
	ErrCourierNotFound = errors.New("courier not found")
	// ErrDriverNotFound is returned when a driver document does not exist.
	ErrDriverNotFound = errors.New("driver not found")
	// ErrPricingNotFound is returned when a courier has no pricing document yet.
	ErrPricingNotFound = errors.New("courier pricing not found")
)

// CourierRepository defines document-store operations for courier companies.
type CourierRepository interface {
	// CreateCourier persists a new courier and fills in its generated id.
	CreateCourier(ctx context.Context, courier *entity.Courier) error

	// FindCourierByID retrieves a single courier document.
	FindCourierByID(ctx context.Context, id string) (*entity.Courier, error)

	// FindAllCouriers retrieves every courier, for the admin dashboard.
	FindAllCouriers(ctx context.Context) ([]*entity.Courier, error)

	// FindActiveCouriers retrieves couriers with isActive == true, for
	// the customer selection list.
	FindActiveCouriers(ctx context.Context) ([]*entity.Courier, error)

	// UpdateCourier merge-writes the courier's editable fields.
	UpdateCourier(ctx context.Context, courier *entity.Courier) error

	// SetCourierActive toggles the isActive flag.
	SetCourierActive(ctx context.Context, id string, active bool) error

	// DeleteCourier removes the courier document.
	DeleteCourier(ctx context.Context, id string) error
}

// DriverRepository defines document-store operations for drivers.
type DriverRepository interface {
	// CreateDriver persists a new driver in the pending state.
	CreateDriver(ctx context.Context, driver *entity.Driver) error

	// FindDriverByID retrieves a single driver document.
	FindDriverByID(ctx context.Context, id string) (*entity.Driver, error)

	// FindDriversByCourier retrieves all drivers belonging to a courier.
	FindDriversByCourier(ctx context.Context, courierID string) ([]*entity.Driver, error)

	// FindDriversByStatus retrieves drivers in a given approval state.
	FindDriversByStatus(ctx context.Context, status entity.DriverStatus) ([]*entity.Driver, error)

	// UpdateDriver merge-writes the driver's editable fields.
	UpdateDriver(ctx context.Context, driver *entity.Driver) error

	// UpdateDriverStatus moves the driver between approval states.
	UpdateDriverStatus(ctx context.Context, id string, status entity.DriverStatus) error
}

// PricingRepository defines document-store operations for courier rate
// tables.
type PricingRepository interface {
	// FindPricingByCourier retrieves the courier's rate table.
	// Returns ErrPricingNotFound when none has been created yet.
	FindPricingByCourier(ctx context.Context, courierID string) (*entity.CourierPricing, error)

	// SavePricing creates or merge-updates the courier's rate table.
	SavePricing(ctx context.Context, pricing *entity.CourierPricing) error
}
