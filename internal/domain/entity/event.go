package entity

import "time"

// OrderEvent is one recorded lifecycle transition in the audit trail.
// Stored in the "orderEvents" collection, keyed by the broker message
// id so redelivered messages collapse into one document.
type OrderEvent struct {
	MessageID  string    `json:"message_id" firestore:"-"`
	OrderID    string    `json:"order_id" firestore:"orderId"`
	CustomerID string    `json:"customer_id" firestore:"customerId"`
	DriverID   string    `json:"driver_id,omitempty" firestore:"driverId,omitempty"`
	From       Status    `json:"from" firestore:"from"`
	To         Status    `json:"to" firestore:"to"`
	OccurredAt time.Time `json:"occurred_at" firestore:"occurredAt"`
	RecordedAt time.Time `json:"recorded_at" firestore:"recordedAt"`
}
