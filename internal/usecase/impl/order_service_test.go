package impl

import (
	"context"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"parcel/internal/domain/entity"
	domainerrors "parcel/internal/domain/errors"
	"parcel/internal/domain/pricing"
	"parcel/internal/domain/repository"
	"parcel/internal/domain/service"
	"parcel/internal/mocks"
	"parcel/internal/scheduler"
	"parcel/internal/usecase"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.DiscardHandler)
}

type orderServiceMocks struct {
	orders    *mocks.OrderRepository
	couriers  *mocks.CourierRepository
	drivers   *mocks.DriverRepository
	pricings  *mocks.PricingRepository
	users     *mocks.UserRepository
	locations *mocks.LocationRepository
	maps      *mocks.MapsService
	qr        *mocks.QRCodeService
	publisher *mocks.EventPublisher
	notifier  *mocks.NotificationService
	queue     *mocks.ScheduleQueue
}

func newOrderService(t *testing.T) (*orderService, *orderServiceMocks) {
	t.Helper()

	m := &orderServiceMocks{
		orders:    new(mocks.OrderRepository),
		couriers:  new(mocks.CourierRepository),
		drivers:   new(mocks.DriverRepository),
		pricings:  new(mocks.PricingRepository),
		users:     new(mocks.UserRepository),
		locations: new(mocks.LocationRepository),
		maps:      new(mocks.MapsService),
		qr:        new(mocks.QRCodeService),
		publisher: new(mocks.EventPublisher),
		notifier:  new(mocks.NotificationService),
		queue:     new(mocks.ScheduleQueue),
	}

	logger := discardLogger()
	activator := scheduler.NewActivator(m.orders, m.queue, logger, 0)

	svc := NewOrderService(
		m.orders, m.couriers, m.drivers, m.pricings, m.users, m.locations,
		m.maps, m.qr, m.publisher, m.notifier, activator, logger,
	).(*orderService)

	return svc, m
}

func activeCourier(id string) *entity.Courier {
	return &entity.Courier{ID: id, Name: "Swift Couriers", IsActive: true}
}

func placeInput() *usecase.PlaceOrderInput {
	return &usecase.PlaceOrderInput{
		CustomerID:  "cust-1",
		CourierID:   "courier-1",
		VehicleType: "bike",
		Package: entity.PackageDetails{
			Name:           "Documents",
			PickupAddress:  "12 Main St",
			PickupLat:      6.9344,
			PickupLng:      79.8428,
			DropoffAddress: "90 Beach Rd",
			DropoffLat:     6.8390,
			DropoffLng:     79.8653,
		},
	}
}

func TestPlaceOrder_QuotesFareFromRoute(t *testing.T) {
	svc, m := newOrderService(t)
	ctx := context.Background()

	m.couriers.On("FindCourierByID", mock.Anything, "courier-1").Return(activeCourier("courier-1"), nil)
	m.maps.On("Directions", mock.Anything, 6.9344, 79.8428, 6.8390, 79.8653).
		Return(&service.Route{DistanceKm: 10, DurationS: 1200}, nil)
	m.pricings.On("FindPricingByCourier", mock.Anything, "courier-1").Return(&entity.CourierPricing{
		CourierID:     "courier-1",
		VehicleRates:  map[entity.VehicleType]int64{entity.VehicleBike: 50},
		MinimumCharge: 100,
	}, nil)
	m.orders.On("CreateOrder", mock.Anything, mock.AnythingOfType("*entity.DeliveryOrder")).
		Run(func(args mock.Arguments) {
			args.Get(1).(*entity.DeliveryOrder).ID = "order-1"
		}).Return(nil)
	m.publisher.On("PublishOrderEvent", mock.Anything, mock.AnythingOfType("*service.OrderEvent")).Return(nil)

	order, err := svc.PlaceOrder(ctx, placeInput())
	require.NoError(t, err)

	assert.Equal(t, entity.StatusSearching, order.Status)
	assert.Equal(t, 10.0, order.DistanceKm)
	assert.Equal(t, int64(500), order.Fare)
	assert.Len(t, order.DeliveryPIN, 4)
	m.queue.AssertNotCalled(t, "Enqueue", mock.Anything, mock.Anything, mock.Anything)
}

func TestPlaceOrder_RouteFailureFallsBackToDefaultDistance(t *testing.T) {
	svc, m := newOrderService(t)
	ctx := context.Background()

	m.couriers.On("FindCourierByID", mock.Anything, "courier-1").Return(activeCourier("courier-1"), nil)
	m.maps.On("Directions", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything).
		Return(nil, assert.AnError)
	m.pricings.On("FindPricingByCourier", mock.Anything, "courier-1").
		Return(nil, repository.ErrPricingNotFound)
	m.orders.On("CreateOrder", mock.Anything, mock.Anything).Return(nil)
	m.publisher.On("PublishOrderEvent", mock.Anything, mock.Anything).Return(nil)

	order, err := svc.PlaceOrder(ctx, placeInput())
	require.NoError(t, err)

	assert.Equal(t, pricing.DefaultDistanceKm, order.DistanceKm)
	assert.Equal(t, pricing.Quote(entity.VehicleBike, pricing.DefaultDistanceKm, nil), order.Fare)
}

func TestPlaceOrder_InactiveCourierRejected(t *testing.T) {
	svc, m := newOrderService(t)

	courier := activeCourier("courier-1")
	courier.IsActive = false
	m.couriers.On("FindCourierByID", mock.Anything, "courier-1").Return(courier, nil)

	_, err := svc.PlaceOrder(context.Background(), placeInput())
	assert.ErrorIs(t, err, domainerrors.ErrCourierInactive)
	m.orders.AssertNotCalled(t, "CreateOrder", mock.Anything, mock.Anything)
}

func TestPlaceOrder_ScheduledEnqueuesWithBuffer(t *testing.T) {
	svc, m := newOrderService(t)
	now := time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC)
	svc.now = func() time.Time { return now }

	scheduledAt := now.Add(3 * time.Hour)
	input := placeInput()
	input.ScheduledAt = &scheduledAt

	m.couriers.On("FindCourierByID", mock.Anything, "courier-1").Return(activeCourier("courier-1"), nil)
	m.maps.On("Directions", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything).
		Return(&service.Route{DistanceKm: 5}, nil)
	m.pricings.On("FindPricingByCourier", mock.Anything, "courier-1").
		Return(nil, repository.ErrPricingNotFound)
	m.orders.On("CreateOrder", mock.Anything, mock.Anything).
		Run(func(args mock.Arguments) {
			args.Get(1).(*entity.DeliveryOrder).ID = "order-2"
		}).Return(nil)
	m.queue.On("Enqueue", mock.Anything, "order-2", mock.AnythingOfType("time.Time")).Return(nil)
	m.publisher.On("PublishOrderEvent", mock.Anything, mock.Anything).Return(nil)

	order, err := svc.PlaceOrder(context.Background(), input)
	require.NoError(t, err)

	assert.Equal(t, entity.StatusScheduled, order.Status)
	require.NotNil(t, order.ScheduledAt)
	assert.Equal(t, scheduledAt.UnixMilli(), order.ScheduledTimestamp)
	m.queue.AssertCalled(t, "Enqueue", mock.Anything, "order-2", mock.Anything)
}

func TestPlaceOrder_ScheduleTooSoonRejected(t *testing.T) {
	svc, m := newOrderService(t)
	now := time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC)
	svc.now = func() time.Time { return now }

	scheduledAt := now.Add(20 * time.Minute)
	input := placeInput()
	input.ScheduledAt = &scheduledAt

	m.couriers.On("FindCourierByID", mock.Anything, "courier-1").Return(activeCourier("courier-1"), nil)

	_, err := svc.PlaceOrder(context.Background(), input)
	assert.ErrorIs(t, err, domainerrors.ErrScheduleTooSoon)
}

func TestAcceptOrder_UnapprovedDriverRejected(t *testing.T) {
	svc, m := newOrderService(t)

	m.drivers.On("FindDriverByID", mock.Anything, "driver-1").
		Return(&entity.Driver{ID: "driver-1", Status: entity.DriverPending}, nil)

	err := svc.AcceptOrder(context.Background(), "order-1", "driver-1")
	assert.ErrorIs(t, err, domainerrors.ErrDriverNotApproved)
	m.orders.AssertNotCalled(t, "AssignDriver", mock.Anything, mock.Anything, mock.Anything)
}

func TestAcceptOrder_AssignsSnapshot(t *testing.T) {
	svc, m := newOrderService(t)

	driver := &entity.Driver{
		ID:            "driver-1",
		Name:          "Nimal",
		Phone:         "+9477000000",
		Status:        entity.DriverApproved,
		VehicleType:   "bike",
		VehicleNumber: "WP-1234",
	}
	m.drivers.On("FindDriverByID", mock.Anything, "driver-1").Return(driver, nil)
	m.orders.On("FindOrderByID", mock.Anything, "order-1").
		Return(&entity.DeliveryOrder{ID: "order-1", CustomerID: "cust-1", Status: entity.StatusSearching}, nil)
	m.orders.On("AssignDriver", mock.Anything, "order-1", mock.MatchedBy(func(s *entity.DriverSnapshot) bool {
		return s.ID == "driver-1" && s.VehicleNumber == "WP-1234"
	})).Return(nil)
	m.publisher.On("PublishOrderEvent", mock.Anything, mock.Anything).Return(nil)
	m.users.On("FindProfileByID", mock.Anything, "cust-1").
		Return(nil, repository.ErrProfileNotFound)

	err := svc.AcceptOrder(context.Background(), "order-1", "driver-1")
	assert.NoError(t, err)
}

func assignedOrder() *entity.DeliveryOrder {
	return &entity.DeliveryOrder{
		ID:          "order-1",
		CustomerID:  "cust-1",
		Status:      entity.StatusAccepted,
		DeliveryPIN: "4321",
		Driver:      &entity.DriverSnapshot{ID: "driver-1", Name: "Nimal"},
	}
}

func TestConfirmCollection_CorrectPIN(t *testing.T) {
	svc, m := newOrderService(t)

	m.orders.On("FindOrderByID", mock.Anything, "order-1").Return(assignedOrder(), nil)
	m.orders.On("UpdateOrderStatus", mock.Anything, "order-1", entity.StatusCollecting).Return(nil)
	m.publisher.On("PublishOrderEvent", mock.Anything, mock.Anything).Return(nil)
	m.users.On("FindProfileByID", mock.Anything, "cust-1").Return(nil, repository.ErrProfileNotFound)

	err := svc.ConfirmCollection(context.Background(), &usecase.ConfirmCollectionInput{
		OrderID:  "order-1",
		DriverID: "driver-1",
		PIN:      "4321",
	})
	assert.NoError(t, err)
}

func TestConfirmCollection_WrongPIN(t *testing.T) {
	svc, m := newOrderService(t)

	m.orders.On("FindOrderByID", mock.Anything, "order-1").Return(assignedOrder(), nil)

	err := svc.ConfirmCollection(context.Background(), &usecase.ConfirmCollectionInput{
		OrderID:  "order-1",
		DriverID: "driver-1",
		PIN:      "0000",
	})
	assert.ErrorIs(t, err, domainerrors.ErrInvalidPIN)
	m.orders.AssertNotCalled(t, "UpdateOrderStatus", mock.Anything, mock.Anything, mock.Anything)
}

func TestConfirmCollection_QRForDifferentOrderRejected(t *testing.T) {
	svc, m := newOrderService(t)

	m.orders.On("FindOrderByID", mock.Anything, "order-1").Return(assignedOrder(), nil)
	m.qr.On("ParseCollectionQR", "scanned-data").
		Return(&service.CollectionCode{OrderID: "other-order", PIN: "4321"}, nil)

	err := svc.ConfirmCollection(context.Background(), &usecase.ConfirmCollectionInput{
		OrderID:  "order-1",
		DriverID: "driver-1",
		QRData:   "scanned-data",
	})
	assert.ErrorIs(t, err, domainerrors.ErrInvalidPIN)
}

func TestConfirmCollection_QRCarriesPIN(t *testing.T) {
	svc, m := newOrderService(t)

	m.orders.On("FindOrderByID", mock.Anything, "order-1").Return(assignedOrder(), nil)
	m.qr.On("ParseCollectionQR", "scanned-data").
		Return(&service.CollectionCode{OrderID: "order-1", PIN: "4321"}, nil)
	m.orders.On("UpdateOrderStatus", mock.Anything, "order-1", entity.StatusCollecting).Return(nil)
	m.publisher.On("PublishOrderEvent", mock.Anything, mock.Anything).Return(nil)
	m.users.On("FindProfileByID", mock.Anything, "cust-1").Return(nil, repository.ErrProfileNotFound)

	err := svc.ConfirmCollection(context.Background(), &usecase.ConfirmCollectionInput{
		OrderID:  "order-1",
		DriverID: "driver-1",
		QRData:   "scanned-data",
	})
	assert.NoError(t, err)
}

func TestStartTransit_ForeignDriverRejected(t *testing.T) {
	svc, m := newOrderService(t)

	m.orders.On("FindOrderByID", mock.Anything, "order-1").Return(assignedOrder(), nil)

	err := svc.StartTransit(context.Background(), "order-1", "driver-2")
	assert.ErrorIs(t, err, repository.ErrOrderNotFound)
}

func TestCompleteDelivery_ClearsLocation(t *testing.T) {
	svc, m := newOrderService(t)

	order := assignedOrder()
	order.Status = entity.StatusInTransit
	m.orders.On("FindOrderByID", mock.Anything, "order-1").Return(order, nil)
	m.orders.On("UpdateOrderStatus", mock.Anything, "order-1", entity.StatusDelivered).Return(nil)
	m.locations.On("ClearDriverLocation", mock.Anything, "order-1", "driver-1").Return(nil)
	m.publisher.On("PublishOrderEvent", mock.Anything, mock.Anything).Return(nil)
	m.users.On("FindProfileByID", mock.Anything, "cust-1").Return(nil, repository.ErrProfileNotFound)

	err := svc.CompleteDelivery(context.Background(), "order-1", "driver-1")
	assert.NoError(t, err)
	m.locations.AssertExpectations(t)
}

func TestCancelOrder_RemovesQueueEntry(t *testing.T) {
	svc, m := newOrderService(t)

	order := &entity.DeliveryOrder{ID: "order-1", CustomerID: "cust-1", Status: entity.StatusScheduled}
	m.orders.On("FindOrderByID", mock.Anything, "order-1").Return(order, nil)
	m.orders.On("CancelOrder", mock.Anything, "order-1", "changed my mind").Return(nil)
	m.queue.On("Remove", mock.Anything, "order-1").Return(nil)
	m.publisher.On("PublishOrderEvent", mock.Anything, mock.Anything).Return(nil)

	err := svc.CancelOrder(context.Background(), "order-1", "changed my mind")
	assert.NoError(t, err)
	m.queue.AssertExpectations(t)
}

func TestRateOrder_OwnershipEnforced(t *testing.T) {
	svc, m := newOrderService(t)

	m.orders.On("FindOrderByID", mock.Anything, "order-1").
		Return(&entity.DeliveryOrder{ID: "order-1", CustomerID: "cust-1"}, nil)

	err := svc.RateOrder(context.Background(), "order-1", "cust-2", 4)
	assert.ErrorIs(t, err, repository.ErrOrderNotFound)
}

func TestRateOrder_RangeEnforced(t *testing.T) {
	svc, _ := newOrderService(t)

	assert.Error(t, svc.RateOrder(context.Background(), "order-1", "cust-1", 0))
	assert.Error(t, svc.RateOrder(context.Background(), "order-1", "cust-1", 5.5))
}

func TestCollectionQR_RendersFromOrderPIN(t *testing.T) {
	svc, m := newOrderService(t)

	m.orders.On("FindOrderByID", mock.Anything, "order-1").Return(assignedOrder(), nil)
	m.qr.On("GenerateCollectionQR", "order-1", "4321").Return([]byte{0x89, 'P', 'N', 'G'}, nil)

	png, err := svc.CollectionQR(context.Background(), "order-1", "cust-1")
	require.NoError(t, err)
	assert.NotEmpty(t, png)
}

func TestCollectionQR_ForeignCustomerRejected(t *testing.T) {
	svc, m := newOrderService(t)

	m.orders.On("FindOrderByID", mock.Anything, "order-1").Return(assignedOrder(), nil)

	_, err := svc.CollectionQR(context.Background(), "order-1", "cust-2")
	assert.ErrorIs(t, err, repository.ErrOrderNotFound)
	m.qr.AssertNotCalled(t, "GenerateCollectionQR", mock.Anything, mock.Anything)
}

func TestCancelCustomerOrder_ForeignCustomerRejected(t *testing.T) {
	svc, m := newOrderService(t)

	m.orders.On("FindOrderByID", mock.Anything, "order-1").Return(assignedOrder(), nil)

	err := svc.CancelCustomerOrder(context.Background(), "order-1", "cust-2", "not mine")
	assert.ErrorIs(t, err, repository.ErrOrderNotFound)
	m.orders.AssertNotCalled(t, "CancelOrder", mock.Anything, mock.Anything, mock.Anything)
}

func TestRescheduleOrder_ForeignCustomerRejected(t *testing.T) {
	svc, m := newOrderService(t)

	m.orders.On("FindOrderByID", mock.Anything, "order-1").Return(assignedOrder(), nil)

	err := svc.RescheduleOrder(context.Background(), "order-1", "cust-2", time.Now().Add(2*time.Hour))
	assert.ErrorIs(t, err, repository.ErrOrderNotFound)
}

func TestGetCustomerOrder_ForeignCustomerRejected(t *testing.T) {
	svc, m := newOrderService(t)

	m.orders.On("FindOrderByID", mock.Anything, "order-1").Return(assignedOrder(), nil)

	_, err := svc.GetCustomerOrder(context.Background(), "order-1", "cust-2")
	assert.ErrorIs(t, err, repository.ErrOrderNotFound)
}

func TestGetOrder_EpochOnlyScheduledTimeResolvesReadiness(t *testing.T) {
	svc, m := newOrderService(t)

	// Documents written by older clients carry only the epoch form of
	// the scheduled instant. 10 minutes out is inside the 30-minute
	// activation buffer, so the view must report ready.
	order := &entity.DeliveryOrder{
		ID:                 "order-1",
		CustomerID:         "cust-1",
		Status:             entity.StatusScheduled,
		ScheduledTimestamp: time.Now().Add(10 * time.Minute).UnixMilli(),
	}
	m.orders.On("FindOrderByID", mock.Anything, "order-1").Return(order, nil)

	view, err := svc.GetOrder(context.Background(), "order-1")
	require.NoError(t, err)
	assert.True(t, view.StatusView.IsReady)
	assert.NotEqual(t, "Scheduled", view.StatusView.Text)
}

func TestGetDriverOrder_OpenOrderVisible(t *testing.T) {
	svc, m := newOrderService(t)

	open := &entity.DeliveryOrder{ID: "order-2", CustomerID: "cust-1", Status: entity.StatusSearching}
	m.orders.On("FindOrderByID", mock.Anything, "order-2").Return(open, nil)

	view, err := svc.GetDriverOrder(context.Background(), "order-2", "driver-9")
	require.NoError(t, err)
	assert.Equal(t, "order-2", view.ID)
}

func TestGetDriverOrder_ForeignAssignedOrderHidden(t *testing.T) {
	svc, m := newOrderService(t)

	m.orders.On("FindOrderByID", mock.Anything, "order-1").Return(assignedOrder(), nil)

	_, err := svc.GetDriverOrder(context.Background(), "order-1", "driver-9")
	assert.ErrorIs(t, err, repository.ErrOrderNotFound)
}
