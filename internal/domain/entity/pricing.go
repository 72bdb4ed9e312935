package entity

import "time"

// VehicleType is a vehicle class key in a courier's rate table.
type VehicleType string

// The fixed set of vehicle classes a courier can price.
const (
	VehicleBike      VehicleType = "bike"
	VehicleTuk       VehicleType = "tuk"
	VehicleCar       VehicleType = "car"
	VehicleMiniLorry VehicleType = "miniLorry"
	VehicleLorry     VehicleType = "lorry"
	VehicleCarrier   VehicleType = "carrier"
)

// VehicleTypes lists every priceable vehicle class in display order.
var VehicleTypes = []VehicleType{
	VehicleBike,
	VehicleTuk,
	VehicleCar,
	VehicleMiniLorry,
	VehicleLorry,
	VehicleCarrier,
}

// CourierPricing holds a courier's per-kilometer rate table and the
// minimum charge floor. One-to-one with Courier, keyed by courier id
// in the "courierPricing" collection.
type CourierPricing struct {
	CourierID     string                `json:"courier_id" firestore:"-"`
	VehicleRates  map[VehicleType]int64 `json:"vehicle_rates" firestore:"vehicleRates"`
	MinimumCharge int64                 `json:"minimum_charge" firestore:"minimumCharge"`
	UpdatedAt     time.Time             `json:"updated_at" firestore:"updatedAt"`
}
