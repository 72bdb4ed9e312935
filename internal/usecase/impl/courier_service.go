package impl

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"parcel/internal/domain/entity"
	"parcel/internal/domain/repository"
	"parcel/internal/usecase"
)

type courierService struct {
	couriers repository.CourierRepository
	drivers  repository.DriverRepository
	logger   *slog.Logger
	now      func() time.Time
}

// NewCourierService creates a new courier service instance
func NewCourierService(
	couriers repository.CourierRepository,
	drivers repository.DriverRepository,
	logger *slog.Logger,
) usecase.CourierUsecase {
	return &courierService{
		couriers: couriers,
		drivers:  drivers,
		logger:   logger,
		now:      time.Now,
	}
}

// CreateCourier registers a new courier company (active by default).
func (s *courierService) CreateCourier(ctx context.Context, input *usecase.CreateCourierInput) (*entity.Courier, error) {
	now := s.now().UTC()
	courier := &entity.Courier{
		Name:         input.Name,
		LogoURL:      input.LogoURL,
		BranchNumber: input.BranchNumber,
		Address:      input.Address,
		Phone:        input.Phone,
		IsActive:     true,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	if err := s.couriers.CreateCourier(ctx, courier); err != nil {
		return nil, fmt.Errorf("failed to create courier: %w", err)
	}

	s.logger.InfoContext(ctx, "courier created",
		slog.String("courier_id", courier.ID),
		slog.String("name", courier.Name))

	return courier, nil
}

// GetCourier returns a single courier.
func (s *courierService) GetCourier(ctx context.Context, id string) (*entity.Courier, error) {
	return s.couriers.FindCourierByID(ctx, id)
}

// ListCouriers returns all couriers, or only active ones for the
// customer selection list.
func (s *courierService) ListCouriers(ctx context.Context, activeOnly bool) ([]*entity.Courier, error) {
	if activeOnly {
		return s.couriers.FindActiveCouriers(ctx)
	}

	return s.couriers.FindAllCouriers(ctx)
}

// UpdateCourier applies partial edits to a courier.
func (s *courierService) UpdateCourier(ctx context.Context, id string, input *usecase.UpdateCourierInput) (*entity.Courier, error) {
	courier, err := s.couriers.FindCourierByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if input.Name != nil {
		courier.Name = *input.Name
	}
	if input.LogoURL != nil {
		courier.LogoURL = *input.LogoURL
	}
	if input.BranchNumber != nil {
		courier.BranchNumber = *input.BranchNumber
	}
	if input.Address != nil {
		courier.Address = *input.Address
	}
	if input.Phone != nil {
		courier.Phone = *input.Phone
	}
	courier.UpdatedAt = s.now().UTC()

	if err := s.couriers.UpdateCourier(ctx, courier); err != nil {
		return nil, fmt.Errorf("failed to update courier: %w", err)
	}

	return courier, nil
}

// SetCourierActive toggles whether customers can pick the courier.
func (s *courierService) SetCourierActive(ctx context.Context, id string, active bool) error {
	if _, err := s.couriers.FindCourierByID(ctx, id); err != nil {
		return err
	}

	if err := s.couriers.SetCourierActive(ctx, id, active); err != nil {
		return fmt.Errorf("failed to set courier active state: %w", err)
	}

	s.logger.InfoContext(ctx, "courier active state changed",
		slog.String("courier_id", id),
		slog.Bool("active", active))

	return nil
}

// DeleteCourier removes a courier.
func (s *courierService) DeleteCourier(ctx context.Context, id string) error {
	if _, err := s.couriers.FindCourierByID(ctx, id); err != nil {
		return err
	}

	return s.couriers.DeleteCourier(ctx, id)
}

// RegisterDriver creates a driver in the pending approval state.
func (s *courierService) RegisterDriver(ctx context.Context, input *usecase.RegisterDriverInput) (*entity.Driver, error) {
	if _, err := s.couriers.FindCourierByID(ctx, input.CourierID); err != nil {
		return nil, err
	}

	now := s.now().UTC()
	driver := &entity.Driver{
		ID:            input.ID,
		CourierID:     input.CourierID,
		Name:          input.Name,
		Email:         input.Email,
		Phone:         input.Phone,
		Status:        entity.DriverPending,
		VehicleType:   input.VehicleType,
		VehicleNumber: input.VehicleNumber,
		LicenseNumber: input.LicenseNumber,
		CreatedAt:     now,
		UpdatedAt:     now,
	}

	if err := s.drivers.CreateDriver(ctx, driver); err != nil {
		return nil, fmt.Errorf("failed to register driver: %w", err)
	}

	s.logger.InfoContext(ctx, "driver registered",
		slog.String("driver_id", driver.ID),
		slog.String("courier_id", driver.CourierID))

	return driver, nil
}

// GetDriver returns a single driver.
func (s *courierService) GetDriver(ctx context.Context, id string) (*entity.Driver, error) {
	return s.drivers.FindDriverByID(ctx, id)
}

// ListDriversByCourier returns a courier's drivers.
func (s *courierService) ListDriversByCourier(ctx context.Context, courierID string) ([]*entity.Driver, error) {
	return s.drivers.FindDriversByCourier(ctx, courierID)
}

// ListDriversByStatus returns drivers in a given approval state.
func (s *courierService) ListDriversByStatus(ctx context.Context, status entity.DriverStatus) ([]*entity.Driver, error) {
	return s.drivers.FindDriversByStatus(ctx, status)
}

// ApproveDriver moves a driver to approved.
func (s *courierService) ApproveDriver(ctx context.Context, id string) error {
	return s.setDriverStatus(ctx, id, entity.DriverApproved)
}

// SuspendDriver moves a driver to suspended.
func (s *courierService) SuspendDriver(ctx context.Context, id string) error {
	return s.setDriverStatus(ctx, id, entity.DriverSuspended)
}

func (s *courierService) setDriverStatus(ctx context.Context, id string, status entity.DriverStatus) error {
	if _, err := s.drivers.FindDriverByID(ctx, id); err != nil {
		return err
	}

	if err := s.drivers.UpdateDriverStatus(ctx, id, status); err != nil {
		return fmt.Errorf("failed to update driver status: %w", err)
	}

	s.logger.InfoContext(ctx, "driver status updated",
		slog.String("driver_id", id),
		slog.String("status", string(status)))

	return nil
}
