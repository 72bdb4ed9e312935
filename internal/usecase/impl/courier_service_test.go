package impl

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"parcel/internal/domain/entity"
	"parcel/internal/domain/repository"
	"parcel/internal/mocks"
	"parcel/internal/usecase"
)

func newCourierService(t *testing.T) (usecase.CourierUsecase, *mocks.CourierRepository, *mocks.DriverRepository) {
	t.Helper()

	couriers := new(mocks.CourierRepository)
	drivers := new(mocks.DriverRepository)

	return NewCourierService(couriers, drivers, discardLogger()), couriers, drivers
}

func TestCreateCourier_ActiveByDefault(t *testing.T) {
	svc, couriers, _ := newCourierService(t)

	couriers.On("CreateCourier", mock.Anything, mock.MatchedBy(func(c *entity.Courier) bool {
		return c.Name == "Speedy Lanka" && c.IsActive
	})).Return(nil)

	courier, err := svc.CreateCourier(context.Background(), &usecase.CreateCourierInput{
		Name:    "Speedy Lanka",
		Phone:   "+94112223344",
		Address: "12 Galle Rd, Colombo",
	})
	require.NoError(t, err)
	assert.True(t, courier.IsActive)
	assert.False(t, courier.CreatedAt.IsZero())
	couriers.AssertExpectations(t)
}

func TestListCouriers_ActiveOnlyUsesActiveFinder(t *testing.T) {
	svc, couriers, _ := newCourierService(t)

	couriers.On("FindActiveCouriers", mock.Anything).
		Return([]*entity.Courier{{ID: "courier-1", IsActive: true}}, nil)

	listed, err := svc.ListCouriers(context.Background(), true)
	require.NoError(t, err)
	assert.Len(t, listed, 1)
	couriers.AssertNotCalled(t, "FindAllCouriers", mock.Anything)
}

func TestUpdateCourier_PatchesOnlyGivenFields(t *testing.T) {
	svc, couriers, _ := newCourierService(t)

	couriers.On("FindCourierByID", mock.Anything, "courier-1").Return(&entity.Courier{
		ID:    "courier-1",
		Name:  "Speedy Lanka",
		Phone: "+94112223344",
	}, nil)
	couriers.On("UpdateCourier", mock.Anything, mock.MatchedBy(func(c *entity.Courier) bool {
		return c.Name == "Speedy Lanka PLC" && c.Phone == "+94112223344"
	})).Return(nil)

	name := "Speedy Lanka PLC"
	updated, err := svc.UpdateCourier(context.Background(), "courier-1", &usecase.UpdateCourierInput{Name: &name})
	require.NoError(t, err)
	assert.Equal(t, "Speedy Lanka PLC", updated.Name)
	assert.Equal(t, "+94112223344", updated.Phone)
}

func TestSetCourierActive_UnknownCourier(t *testing.T) {
	svc, couriers, _ := newCourierService(t)

	couriers.On("FindCourierByID", mock.Anything, "ghost").
		Return(nil, repository.ErrCourierNotFound)

	err := svc.SetCourierActive(context.Background(), "ghost", false)
	assert.ErrorIs(t, err, repository.ErrCourierNotFound)
	couriers.AssertNotCalled(t, "SetCourierActive", mock.Anything, mock.Anything, mock.Anything)
}

func TestRegisterDriver_StartsPending(t *testing.T) {
	svc, couriers, drivers := newCourierService(t)

	couriers.On("FindCourierByID", mock.Anything, "courier-1").
		Return(&entity.Courier{ID: "courier-1", IsActive: true}, nil)
	drivers.On("CreateDriver", mock.Anything, mock.MatchedBy(func(d *entity.Driver) bool {
		return d.ID == "uid-9" && d.Status == entity.DriverPending
	})).Return(nil)

	driver, err := svc.RegisterDriver(context.Background(), &usecase.RegisterDriverInput{
		ID:            "uid-9",
		CourierID:     "courier-1",
		Name:          "Kasun",
		VehicleType:   "bike",
		VehicleNumber: "WP-1234",
	})
	require.NoError(t, err)
	assert.Equal(t, entity.DriverPending, driver.Status)
}

func TestRegisterDriver_UnknownCourier(t *testing.T) {
	svc, couriers, drivers := newCourierService(t)

	couriers.On("FindCourierByID", mock.Anything, "ghost").
		Return(nil, repository.ErrCourierNotFound)

	_, err := svc.RegisterDriver(context.Background(), &usecase.RegisterDriverInput{
		ID:        "uid-9",
		CourierID: "ghost",
	})
	assert.ErrorIs(t, err, repository.ErrCourierNotFound)
	drivers.AssertNotCalled(t, "CreateDriver", mock.Anything, mock.Anything)
}

func TestApproveDriver_UpdatesStatus(t *testing.T) {
	svc, _, drivers := newCourierService(t)

	drivers.On("FindDriverByID", mock.Anything, "driver-1").
		Return(&entity.Driver{ID: "driver-1", Status: entity.DriverPending}, nil)
	drivers.On("UpdateDriverStatus", mock.Anything, "driver-1", entity.DriverApproved).Return(nil)

	require.NoError(t, svc.ApproveDriver(context.Background(), "driver-1"))
	drivers.AssertExpectations(t)
}

func TestSuspendDriver_UnknownDriver(t *testing.T) {
	svc, _, drivers := newCourierService(t)

	drivers.On("FindDriverByID", mock.Anything, "ghost").
		Return(nil, repository.ErrDriverNotFound)

	err := svc.SuspendDriver(context.Background(), "ghost")
	assert.ErrorIs(t, err, repository.ErrDriverNotFound)
	drivers.AssertNotCalled(t, "UpdateDriverStatus", mock.Anything, mock.Anything, mock.Anything)
}
