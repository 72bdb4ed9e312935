package repository

import (
	"context"

	"parcel/internal/domain/entity"
)

// OrderEventRepository defines document-store operations for the order
// lifecycle audit trail written by the worker.
type OrderEventRepository interface {
	// RecordEvent appends a lifecycle transition to the audit trail.
	// Recording the same message id twice is a no-op.
	RecordEvent(ctx context.Context, event *entity.OrderEvent) error

	// FindEventsByOrder retrieves an order's transitions, oldest first.
	FindEventsByOrder(ctx context.Context, orderID string) ([]*entity.OrderEvent, error)
}
