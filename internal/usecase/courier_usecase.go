package usecase

import (
	"context"

	"parcel/internal/domain/entity"
)

// CreateCourierInput represents the input for registering a courier company
type CreateCourierInput struct {
	Name         string `json:"name" validate:"required"`
	LogoURL      string `json:"logo_url,omitempty"`
	BranchNumber string `json:"branch_number" validate:"required"`
	Address      string `json:"address" validate:"required"`
	Phone        string `json:"phone,omitempty"`
}

// UpdateCourierInput represents the input for editing a courier company
type UpdateCourierInput struct {
	Name         *string `json:"name,omitempty"`
	LogoURL      *string `json:"logo_url,omitempty"`
	BranchNumber *string `json:"branch_number,omitempty"`
	Address      *string `json:"address,omitempty"`
	Phone        *string `json:"phone,omitempty"`
}

// RegisterDriverInput represents the input for registering a driver
type RegisterDriverInput struct {
	// ID carries the auth provider uid when the driver app registers
	// itself; admin-created drivers leave it empty.
	ID            string `json:"-"`
	CourierID     string `json:"courier_id" validate:"required"`
	Name          string `json:"name" validate:"required"`
	Email         string `json:"email" validate:"required,email"`
	Phone         string `json:"phone" validate:"required"`
	VehicleType   string `json:"vehicle_type" validate:"required"`
	VehicleNumber string `json:"vehicle_number" validate:"required"`
	LicenseNumber string `json:"license_number,omitempty"`
}

// CourierUsecase defines the interface for courier and driver
// management use cases
type CourierUsecase interface {
	// CreateCourier registers a new courier company (active by default).
	CreateCourier(ctx context.Context, input *CreateCourierInput) (*entity.Courier, error)

	// GetCourier returns a single courier.
	GetCourier(ctx context.Context, id string) (*entity.Courier, error)

	// ListCouriers returns all couriers, or only active ones for the
	// customer selection list.
	ListCouriers(ctx context.Context, activeOnly bool) ([]*entity.Courier, error)

	// UpdateCourier applies partial edits to a courier.
	UpdateCourier(ctx context.Context, id string, input *UpdateCourierInput) (*entity.Courier, error)

	// SetCourierActive toggles whether customers can pick the courier.
	SetCourierActive(ctx context.Context, id string, active bool) error

	// DeleteCourier removes a courier.
	DeleteCourier(ctx context.Context, id string) error

	// RegisterDriver creates a driver in the pending approval state.
	RegisterDriver(ctx context.Context, input *RegisterDriverInput) (*entity.Driver, error)

	// GetDriver returns a single driver.
	GetDriver(ctx context.Context, id string) (*entity.Driver, error)

	// ListDriversByCourier returns a courier's drivers.
	ListDriversByCourier(ctx context.Context, courierID string) ([]*entity.Driver, error)

	// ListDriversByStatus returns drivers awaiting approval or in any
	// other approval state.
	ListDriversByStatus(ctx context.Context, status entity.DriverStatus) ([]*entity.Driver, error)

	// ApproveDriver moves a driver to approved.
	ApproveDriver(ctx context.Context, id string) error

	// SuspendDriver moves a driver to suspended.
	SuspendDriver(ctx context.Context, id string) error
}
