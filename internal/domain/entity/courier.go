package entity

import "time"

// Courier is a company entity that employs drivers and owns a pricing
// table. Stored in the "couriers" collection.
type Courier struct {
	ID           string    `json:"id" firestore:"-"`
	Name         string    `json:"name" firestore:"name"`
	LogoURL      string    `json:"logo_url,omitempty" firestore:"logoUrl,omitempty"`
	BranchNumber string    `json:"branch_number" firestore:"branchNumber"`
	Address      string    `json:"address" firestore:"address"`
	Phone        string    `json:"phone,omitempty" firestore:"phone,omitempty"`
	IsActive     bool      `json:"is_active" firestore:"isActive"`
	CreatedAt    time.Time `json:"created_at" firestore:"createdAt"`
	UpdatedAt    time.Time `json:"updated_at" firestore:"updatedAt"`
}

// DriverStatus identifies a driver's approval state.
type DriverStatus string

// Approval states of a Driver.
const (
	DriverPending   DriverStatus = "pending"
	DriverApproved  DriverStatus = "approved"
	DriverSuspended DriverStatus = "suspended"
)

// Driver belongs to a Courier. Stored in the "drivers" collection.
type Driver struct {
	ID            string       `json:"id" firestore:"-"`
	CourierID     string       `json:"courier_id" firestore:"courierId"`
	Name          string       `json:"name" firestore:"name"`
	Email         string       `json:"email" firestore:"email"`
	Phone         string       `json:"phone" firestore:"phone"`
	Status        DriverStatus `json:"status" firestore:"status"`
	VehicleType   string       `json:"vehicle_type" firestore:"vehicleType"`
	VehicleNumber string       `json:"vehicle_number" firestore:"vehicleNumber"`
	LicenseNumber string       `json:"license_number,omitempty" firestore:"licenseNumber,omitempty"`
	PhotoURL      string       `json:"photo_url,omitempty" firestore:"photoUrl,omitempty"`
	CreatedAt     time.Time    `json:"created_at" firestore:"createdAt"`
	UpdatedAt     time.Time    `json:"updated_at" firestore:"updatedAt"`
}

// Snapshot produces the denormalized copy embedded into an accepted
// order.
func (d *Driver) Snapshot() *DriverSnapshot {
	return &DriverSnapshot{
		ID:            d.ID,
		Name:          d.Name,
		Phone:         d.Phone,
		VehicleType:   d.VehicleType,
		VehicleNumber: d.VehicleNumber,
		PhotoURL:      d.PhotoURL,
	}
}
