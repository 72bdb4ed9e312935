package service

import (
	"context"
	"time"
)

// ScheduleQueue is a durable delay queue keyed by activation time.
// Scheduled deliveries are enqueued at (scheduledAt - activation
// buffer) so a worker can activate them even when no client holds a
// live subscription at the trigger instant.
type ScheduleQueue interface {
	// Enqueue registers an order for activation at the given instant.
	// Re-enqueueing an existing order replaces its activation time.
	Enqueue(ctx context.Context, orderID string, activateAt time.Time) error

	// Remove drops an order from the queue (cancelled or activated).
	Remove(ctx context.Context, orderID string) error

	// PopDue atomically removes and returns the ids of all orders whose
	// activation time is at or before now.
	PopDue(ctx context.Context, now time.Time) ([]string, error)
}
