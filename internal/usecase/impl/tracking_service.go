package impl

import (
	"context"
	"time"

	"parcel/internal/domain/entity"
	domainerrors "parcel/internal/domain/errors"
	"parcel/internal/domain/repository"
	"parcel/internal/usecase"
)

type trackingService struct {
	orders    repository.OrderRepository
	locations repository.LocationRepository
	now       func() time.Time
}

// NewTrackingService creates a new tracking service instance
func NewTrackingService(orders repository.OrderRepository, locations repository.LocationRepository) usecase.TrackingUsecase {
	return &trackingService{
		orders:    orders,
		locations: locations,
		now:       time.Now,
	}
}

// UpdateLocation records a fix for the driver's active order. Only the
// assigned driver of an in-flight order may report.
func (s *trackingService) UpdateLocation(ctx context.Context, input *usecase.UpdateLocationInput) error {
	order, err := s.orders.FindOrderByID(ctx, input.OrderID)
	if err != nil {
		return err
	}
	if order.Driver == nil || order.Driver.ID != input.DriverID {
		return domainerrors.ErrOrderNotFound
	}
	if entity.IsTerminal(order.Status) {
		return domainerrors.ErrInvalidTransition.WithDetails("order is no longer in flight")
	}

	return s.locations.SetDriverLocation(ctx, &entity.DriverLocation{
		DriverID:  input.DriverID,
		OrderID:   input.OrderID,
		Latitude:  input.Latitude,
		Longitude: input.Longitude,
		Heading:   input.Heading,
		SpeedKPH:  input.SpeedKPH,
		Timestamp: s.now().UnixMilli(),
	})
}

// GetLocation reads the latest fix for an order. Returns nil when the
// driver has not reported yet or no driver is assigned.
func (s *trackingService) GetLocation(ctx context.Context, orderID string) (*entity.DriverLocation, error) {
	order, err := s.orders.FindOrderByID(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if order.Driver == nil {
		return nil, nil
	}

	return s.locations.GetDriverLocation(ctx, orderID, order.Driver.ID)
}
