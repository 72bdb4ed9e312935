// Package entity contains the core business objects of the project.
package entity

import (
	"time"
)

// Status identifies a stage of the delivery order lifecycle.
type Status string

// Lifecycle states of a DeliveryOrder.
const (
	StatusPending    Status = "pending"
	StatusScheduled  Status = "scheduled"
	StatusSearching  Status = "searching"
	StatusAccepted   Status = "accepted"
	StatusCollecting Status = "collecting"
	StatusInTransit  Status = "in_transit"
	StatusDelivered  Status = "delivered"
	StatusCancelled  Status = "cancelled"
)

// transitions is the authoritative transition table for the order
// lifecycle. The legacy deliveryStatus mirror is derived from this
// single state, never reconciled against it.
var transitions = map[Status]map[Status]struct{}{
	StatusPending:    {StatusScheduled: {}, StatusSearching: {}, StatusCancelled: {}},
	StatusScheduled:  {StatusSearching: {}, StatusCancelled: {}},
	StatusSearching:  {StatusAccepted: {}, StatusCancelled: {}},
	StatusAccepted:   {StatusCollecting: {}, StatusCancelled: {}},
	StatusCollecting: {StatusInTransit: {}, StatusCancelled: {}},
	StatusInTransit:  {StatusDelivered: {}, StatusCancelled: {}},
	StatusDelivered:  {},
	StatusCancelled:  {},
}

// CanTransition reports whether an order may move from one status to
// another. Re-applying the current status is always allowed so that
// at-least-once writers stay idempotent.
func CanTransition(from, to Status) bool {
	if from == to {
		return true
	}
	allowed, ok := transitions[from]
	if !ok {
		return false
	}
	_, ok = allowed[to]
	return ok
}

// IsTerminal reports whether a status admits no further transitions.
func IsTerminal(s Status) bool {
	return s == StatusDelivered || s == StatusCancelled
}

// PackageDetails describes the parcel a customer wants moved.
type PackageDetails struct {
	Name            string  `json:"name" firestore:"name"`
	PickupAddress   string  `json:"pickup_address" firestore:"pickupAddress"`
	PickupLat       float64 `json:"pickup_lat" firestore:"pickupLat"`
	PickupLng       float64 `json:"pickup_lng" firestore:"pickupLng"`
	DropoffAddress  string  `json:"dropoff_address" firestore:"dropoffAddress"`
	DropoffLat      float64 `json:"dropoff_lat" firestore:"dropoffLat"`
	DropoffLng      float64 `json:"dropoff_lng" firestore:"dropoffLng"`
	WeightKg        float64 `json:"weight_kg" firestore:"weightKg"`
	Dimensions      string  `json:"dimensions,omitempty" firestore:"dimensions,omitempty"`
	RecipientName   string  `json:"recipient_name,omitempty" firestore:"recipientName,omitempty"`
	RecipientPhone  string  `json:"recipient_phone,omitempty" firestore:"recipientPhone,omitempty"`
	SpecialHandling string  `json:"special_handling,omitempty" firestore:"specialHandling,omitempty"`
}

// DriverSnapshot is the denormalized driver profile copied onto an
// order at acceptance time so customer screens render without a join.
type DriverSnapshot struct {
	ID            string `json:"id" firestore:"id"`
	Name          string `json:"name" firestore:"name"`
	Phone         string `json:"phone" firestore:"phone"`
	VehicleType   string `json:"vehicle_type" firestore:"vehicleType"`
	VehicleNumber string `json:"vehicle_number" firestore:"vehicleNumber"`
	PhotoURL      string `json:"photo_url,omitempty" firestore:"photoUrl,omitempty"`
}

// DeliveryOrder is a single customer shipment request and its
// lifecycle state. Stored in the "rideRequests" collection.
type DeliveryOrder struct {
	ID             string          `json:"id" firestore:"-"`
	CustomerID     string          `json:"customer_id" firestore:"customerId"`
	CourierID      string          `json:"courier_id" firestore:"courierId"`
	Status         Status          `json:"status" firestore:"status"`
	// DeliveryStatus mirrors Status for legacy client builds that read
	// the finer-grained field. Always written together with Status.
	DeliveryStatus Status          `json:"delivery_status" firestore:"deliveryStatus"`
	Package        PackageDetails  `json:"package_details" firestore:"packageDetails"`
	Driver         *DriverSnapshot `json:"driver,omitempty" firestore:"driver,omitempty"`
	VehicleType    string          `json:"vehicle_type" firestore:"vehicleType"`
	DistanceKm     float64         `json:"distance_km" firestore:"distanceKm"`
	Fare           int64           `json:"fare" firestore:"fare"`
	DeliveryPIN    string          `json:"delivery_pin,omitempty" firestore:"deliveryPin"`

	ScheduledAt        *time.Time `json:"scheduled_at,omitempty" firestore:"scheduledDateTime,omitempty"`
	// ScheduledTimestamp carries the same instant as epoch
	// milliseconds. Some stored documents only have this field.
	ScheduledTimestamp int64      `json:"scheduled_timestamp,omitempty" firestore:"scheduledTimestamp,omitempty"`
	ActivatedAt        *time.Time `json:"activated_at,omitempty" firestore:"activatedAt,omitempty"`
	CancelledAt        *time.Time `json:"cancelled_at,omitempty" firestore:"cancelledAt,omitempty"`
	CancelReason       string     `json:"cancel_reason,omitempty" firestore:"cancelReason,omitempty"`
	DeliveredAt        *time.Time `json:"delivered_at,omitempty" firestore:"deliveredAt,omitempty"`

	CustomerRating float64 `json:"customer_rating,omitempty" firestore:"customerRating,omitempty"`
	IsRated        bool    `json:"is_rated" firestore:"isRated"`

	CreatedAt time.Time `json:"created_at" firestore:"createdAt"`
	UpdatedAt time.Time `json:"updated_at" firestore:"updatedAt"`
}

// ScheduledTime resolves the scheduled instant from whichever field the
// stored document carries. Returns false when neither is usable.
func (o *DeliveryOrder) ScheduledTime() (time.Time, bool) {
	if o.ScheduledAt != nil && !o.ScheduledAt.IsZero() {
		return *o.ScheduledAt, true
	}
	if o.ScheduledTimestamp > 0 {
		return time.UnixMilli(o.ScheduledTimestamp), true
	}
	return time.Time{}, false
}

// EffectiveStatus prefers the finer-grained mirror when present,
// falling back to the coarse status. Kept for documents written by
// older clients where the two fields drifted apart.
func (o *DeliveryOrder) EffectiveStatus() Status {
	if o.DeliveryStatus != "" {
		return o.DeliveryStatus
	}
	return o.Status
}
