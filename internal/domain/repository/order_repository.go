// Package repository defines the interfaces for the persistence layer.
package repository

import (
	"context"
	"time"

	"parcel/internal/domain/entity"
	"parcel/internal/errors"
)

// Domain-specific errors for order persistence.
var (
	// ErrOrderNotFound is returned when an order document does not exist.
	ErrOrderNotFound = errors.New("order not found")
	// ErrInvalidTransition is returned when a status update violates the
	// lifecycle transition table.
	ErrInvalidTransition = errors.New("invalid status transition")
)

// OrderRepository defines document-store operations for delivery orders.
type OrderRepository interface {
	// CreateOrder persists a new order and fills in its generated id.
	CreateOrder(ctx context.Context, order *entity.DeliveryOrder) error

	// FindOrderByID retrieves a single order document.
	FindOrderByID(ctx context.Context, id string) (*entity.DeliveryOrder, error)

	// FindOrdersByCustomer retrieves a customer's orders, newest first.
	FindOrdersByCustomer(ctx context.Context, customerID string, limit int) ([]*entity.DeliveryOrder, error)

	// FindOrdersByDriver retrieves a driver's assigned orders, newest first.
	FindOrdersByDriver(ctx context.Context, driverID string, limit int) ([]*entity.DeliveryOrder, error)

	// FindOrdersByStatus retrieves orders in a given lifecycle state,
	// newest first. Used by the admin dashboard and driver search feed.
	FindOrdersByStatus(ctx context.Context, status entity.Status, limit int) ([]*entity.DeliveryOrder, error)

	// FindScheduledByCustomer retrieves a customer's not-yet-activated
	// scheduled orders.
	FindScheduledByCustomer(ctx context.Context, customerID string) ([]*entity.DeliveryOrder, error)

	// WatchScheduledByCustomer subscribes to the customer's scheduled
	// orders. Each push carries the full current result set. The
	// subscription detaches when ctx is cancelled; the channel is then
	// closed.
	WatchScheduledByCustomer(ctx context.Context, customerID string) (<-chan []*entity.DeliveryOrder, error)

	// UpdateOrderStatus merge-writes status and its deliveryStatus
	// mirror after validating the transition table. Re-applying the
	// current status is a no-op write, keeping at-least-once callers
	// safe.
	UpdateOrderStatus(ctx context.Context, id string, to entity.Status) error

	// ActivateScheduled flips a scheduled order to searching and stamps
	// activatedAt. Idempotent: activating an already-searching order
	// leaves it searching.
	ActivateScheduled(ctx context.Context, id string) error

	// RescheduleOrder sets a fresh scheduled instant, resets the order
	// to scheduled and writes the given delivery PIN.
	RescheduleOrder(ctx context.Context, id string, at time.Time, pin string) error

	// CancelOrder moves the order to cancelled and stamps cancellation
	// metadata.
	CancelOrder(ctx context.Context, id string, reason string) error

	// AssignDriver stamps the denormalized driver snapshot and moves
	// the order to accepted.
	AssignDriver(ctx context.Context, id string, driver *entity.DriverSnapshot) error

	// RateOrder records the one-shot customer rating.
	RateOrder(ctx context.Context, id string, rating float64) error
}
