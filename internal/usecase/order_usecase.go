// Package usecase defines the application's use case interfaces.
package usecase

import (
	"context"
	"time"

	"parcel/internal/domain/entity"
	"parcel/internal/domain/status"
)

// PlaceOrderInput represents the input for placing a delivery order
type PlaceOrderInput struct {
	CustomerID  string                `json:"-"`
	CourierID   string                `json:"courier_id" validate:"required"`
	VehicleType string                `json:"vehicle_type" validate:"required"`
	Package     entity.PackageDetails `json:"package_details" validate:"required"`
	// ScheduledAt, when set, makes this a scheduled delivery; the
	// schedule window is validated before any write.
	ScheduledAt     *time.Time `json:"scheduled_at,omitempty"`
	PaymentMethodID string     `json:"payment_method_id,omitempty"`
}

// ConfirmCollectionInput represents the input for confirming a package
// pickup: either the typed PIN or the scanned QR payload.
type ConfirmCollectionInput struct {
	OrderID  string `json:"-"`
	DriverID string `json:"-"`
	PIN      string `json:"pin,omitempty"`
	QRData   string `json:"qr_data,omitempty"`
}

// OrderView is an order with its resolved presentation state.
type OrderView struct {
	*entity.DeliveryOrder
	StatusView status.View `json:"status_view"`
}

// OrderUsecase defines the interface for delivery order use cases
type OrderUsecase interface {
	// PlaceOrder quotes the fare, mints a delivery PIN and persists a
	// new order (immediate or scheduled).
	PlaceOrder(ctx context.Context, input *PlaceOrderInput) (*entity.DeliveryOrder, error)

	// GetOrder returns an order with its resolved status view. Admin
	// surface only; app surfaces go through the caller-scoped variants.
	GetOrder(ctx context.Context, id string) (*OrderView, error)

	// GetCustomerOrder returns the order only to the customer who
	// placed it.
	GetCustomerOrder(ctx context.Context, orderID, customerID string) (*OrderView, error)

	// GetDriverOrder returns the order to its assigned driver, or to
	// any driver while the order is still searching for one.
	GetDriverOrder(ctx context.Context, orderID, driverID string) (*OrderView, error)

	// ListCustomerOrders returns a customer's orders, newest first.
	ListCustomerOrders(ctx context.Context, customerID string, limit int) ([]*OrderView, error)

	// ListDriverOrders returns a driver's assigned orders, newest first.
	ListDriverOrders(ctx context.Context, driverID string, limit int) ([]*OrderView, error)

	// ListOpenOrders returns orders searching for a driver.
	ListOpenOrders(ctx context.Context, limit int) ([]*OrderView, error)

	// ListOrdersByStatus returns orders in a lifecycle state, for the
	// admin dashboard.
	ListOrdersByStatus(ctx context.Context, s entity.Status, limit int) ([]*OrderView, error)

	// AcceptOrder assigns an approved driver to a searching order.
	AcceptOrder(ctx context.Context, orderID, driverID string) error

	// ConfirmCollection verifies the PIN or QR and moves the order to
	// collecting.
	ConfirmCollection(ctx context.Context, input *ConfirmCollectionInput) error

	// StartTransit moves a collected order to in_transit.
	StartTransit(ctx context.Context, orderID, driverID string) error

	// CompleteDelivery moves an in-transit order to delivered and
	// clears the live location fix.
	CompleteDelivery(ctx context.Context, orderID, driverID string) error

	// CancelOrder cancels a non-terminal order. Admin surface only.
	CancelOrder(ctx context.Context, orderID, reason string) error

	// CancelCustomerOrder cancels the order on behalf of the customer
	// who placed it.
	CancelCustomerOrder(ctx context.Context, orderID, customerID, reason string) error

	// RescheduleOrder moves the customer's scheduled order to a new
	// validated slot.
	RescheduleOrder(ctx context.Context, orderID, customerID string, at time.Time) error

	// RateOrder records the customer's one-shot rating of a delivered
	// order.
	RateOrder(ctx context.Context, orderID, customerID string, rating float64) error

	// CollectionQR renders the collection QR code PNG for the
	// customer's own order. The QR encodes the delivery PIN, so it is
	// never handed to another caller.
	CollectionQR(ctx context.Context, orderID, customerID string) ([]byte, error)

	// MonitorSchedules opens the customer's scheduled-order watch.
	MonitorSchedules(ctx context.Context, customerID string) error

	// StopMonitoring detaches the customer's scheduled-order watch.
	StopMonitoring(customerID string)
}
