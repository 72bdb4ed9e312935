package realtime

import (
	"context"
	"fmt"

	"firebase.google.com/go/v4/db"
	"github.com/pkg/errors"

	"parcel/internal/domain/entity"
	"parcel/internal/domain/repository"
)

// rtdbLocation is the wire form of a driver fix in the realtime store.
type rtdbLocation struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
	Heading   float64 `json:"heading"`
	SpeedKPH  float64 `json:"speed"`
	Timestamp int64   `json:"timestamp"`
}

// locationRepository implements repository.LocationRepository under
// driverLocations/{orderId}/{driverId}.
type locationRepository struct {
	realtime *db.Client
}

// NewLocationRepository is the constructor for locationRepository.
func NewLocationRepository(realtime *db.Client) repository.LocationRepository {
	return &locationRepository{realtime: realtime}
}

func (repo *locationRepository) ref(orderID, driverID string) *db.Ref {
	return repo.realtime.NewRef(fmt.Sprintf("driverLocations/%s/%s", orderID, driverID))
}

// SetDriverLocation overwrites the driver's current fix for an order.
func (repo *locationRepository) SetDriverLocation(ctx context.Context, loc *entity.DriverLocation) error {
	err := repo.ref(loc.OrderID, loc.DriverID).Set(ctx, &rtdbLocation{
		Latitude:  loc.Latitude,
		Longitude: loc.Longitude,
		Heading:   loc.Heading,
		SpeedKPH:  loc.SpeedKPH,
		Timestamp: loc.Timestamp,
	})
	if err != nil {
		return errors.Wrap(err, "failed to set driver location")
	}

	return nil
}

// GetDriverLocation reads the driver's latest fix for an order.
// Returns nil without error when no fix has been written yet.
func (repo *locationRepository) GetDriverLocation(ctx context.Context, orderID, driverID string) (*entity.DriverLocation, error) {
	var raw *rtdbLocation
	if err := repo.ref(orderID, driverID).Get(ctx, &raw); err != nil {
		return nil, errors.Wrap(err, "failed to get driver location")
	}
	if raw == nil || raw.Timestamp == 0 {
		return nil, nil
	}

	return &entity.DriverLocation{
		DriverID:  driverID,
		OrderID:   orderID,
		Latitude:  raw.Latitude,
		Longitude: raw.Longitude,
		Heading:   raw.Heading,
		SpeedKPH:  raw.SpeedKPH,
		Timestamp: raw.Timestamp,
	}, nil
}

// ClearDriverLocation removes the fix once a delivery terminates.
func (repo *locationRepository) ClearDriverLocation(ctx context.Context, orderID, driverID string) error {
	if err := repo.ref(orderID, driverID).Delete(ctx); err != nil {
		return errors.Wrap(err, "failed to clear driver location")
	}

	return nil
}
