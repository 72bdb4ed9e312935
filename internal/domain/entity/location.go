package entity

import "time"

// DriverLocation is a live GPS fix written by the driver app to the
// realtime store under driverLocations/{orderId}/{driverId}.
type DriverLocation struct {
	DriverID  string  `json:"driver_id"`
	OrderID   string  `json:"order_id"`
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
	Heading   float64 `json:"heading"`
	SpeedKPH  float64 `json:"speed"`
	Timestamp int64   `json:"timestamp"` // epoch milliseconds
}

// Time returns the fix instant.
func (l *DriverLocation) Time() time.Time {
	return time.UnixMilli(l.Timestamp)
}
