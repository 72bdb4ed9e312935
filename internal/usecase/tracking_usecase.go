package usecase

import (
	"context"

	"parcel/internal/domain/entity"
)

// UpdateLocationInput represents a driver's live GPS fix
type UpdateLocationInput struct {
	DriverID  string  `json:"-"`
	OrderID   string  `json:"order_id" validate:"required"`
	Latitude  float64 `json:"latitude" validate:"gte=-90,lte=90"`
	Longitude float64 `json:"longitude" validate:"gte=-180,lte=180"`
	Heading   float64 `json:"heading,omitempty"`
	SpeedKPH  float64 `json:"speed,omitempty"`
}

// TrackingUsecase defines the interface for live driver tracking use cases
type TrackingUsecase interface {
	// UpdateLocation records a fix for the driver's active order.
	UpdateLocation(ctx context.Context, input *UpdateLocationInput) error

	// GetLocation reads the latest fix for an order. Returns nil when
	// the driver has not reported yet.
	GetLocation(ctx context.Context, orderID string) (*entity.DriverLocation, error)
}

// PaymentUsecase defines the interface for stored payment method use cases
type PaymentUsecase interface {
	// AddPaymentMethod stores a payment option for a user.
	AddPaymentMethod(ctx context.Context, method *entity.PaymentMethod) (*entity.PaymentMethod, error)

	// ListPaymentMethods returns a user's stored payment options.
	ListPaymentMethods(ctx context.Context, userID string) ([]*entity.PaymentMethod, error)

	// DeletePaymentMethod removes a stored payment option.
	DeletePaymentMethod(ctx context.Context, userID, methodID string) error
}
