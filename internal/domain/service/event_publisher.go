package service

import (
	"context"
	"time"

	"parcel/internal/domain/entity"
)

// OrderEvent describes a lifecycle transition published for downstream
// consumers (analytics, notification fan-out).
type OrderEvent struct {
	RequestID  string        `json:"request_id,omitempty"` // For distributed tracing
	OrderID    string        `json:"order_id"`
	CustomerID string        `json:"customer_id"`
	CourierID  string        `json:"courier_id,omitempty"`
	DriverID   string        `json:"driver_id,omitempty"`
	From       entity.Status `json:"from"`
	To         entity.Status `json:"to"`
	OccurredAt time.Time     `json:"occurred_at"`
}

// EventPublisher defines the interface for publishing order lifecycle
// events to a message queue.
type EventPublisher interface {
	// PublishOrderEvent publishes a lifecycle transition for async processing.
	PublishOrderEvent(ctx context.Context, event *OrderEvent) error

	// Close releases any resources held by the publisher.
	Close() error
}
