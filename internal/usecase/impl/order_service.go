// Package impl contains the concrete implementations of the usecase
// interfaces.
package impl

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"parcel/internal/domain/entity"
	domainerrors "parcel/internal/domain/errors"
	"parcel/internal/domain/pricing"
	"parcel/internal/domain/repository"
	"parcel/internal/domain/service"
	"parcel/internal/domain/status"
	"parcel/internal/scheduler"
	"parcel/internal/usecase"
)

type orderService struct {
	orders    repository.OrderRepository
	couriers  repository.CourierRepository
	drivers   repository.DriverRepository
	pricings  repository.PricingRepository
	users     repository.UserRepository
	locations repository.LocationRepository

	maps      service.MapsService
	qr        service.QRCodeService
	publisher service.EventPublisher
	notifier  service.NotificationService
	activator *scheduler.Activator

	logger *slog.Logger
	now    func() time.Time
}

// NewOrderService creates a new order service instance
func NewOrderService(
	orders repository.OrderRepository,
	couriers repository.CourierRepository,
	drivers repository.DriverRepository,
	pricings repository.PricingRepository,
	users repository.UserRepository,
	locations repository.LocationRepository,
	maps service.MapsService,
	qr service.QRCodeService,
	publisher service.EventPublisher,
	notifier service.NotificationService,
	activator *scheduler.Activator,
	logger *slog.Logger,
) usecase.OrderUsecase {
	return &orderService{
		orders:    orders,
		couriers:  couriers,
		drivers:   drivers,
		pricings:  pricings,
		users:     users,
		locations: locations,
		maps:      maps,
		qr:        qr,
		publisher: publisher,
		notifier:  notifier,
		activator: activator,
		logger:    logger,
		now:       time.Now,
	}
}

// PlaceOrder quotes the fare, mints a delivery PIN and persists a new
// order.
func (s *orderService) PlaceOrder(ctx context.Context, input *usecase.PlaceOrderInput) (*entity.DeliveryOrder, error) {
	courier, err := s.couriers.FindCourierByID(ctx, input.CourierID)
	if err != nil {
		return nil, err
	}
	if !courier.IsActive {
		return nil, domainerrors.ErrCourierInactive
	}

	if input.ScheduledAt != nil {
		if err := scheduler.ValidateScheduleTime(*input.ScheduledAt, s.now()); err != nil {
			return nil, err
		}
	}

	distanceKm := s.routeDistance(ctx, &input.Package)
	fare, err := s.quote(ctx, input.CourierID, entity.VehicleType(input.VehicleType), distanceKm)
	if err != nil {
		return nil, err
	}

	order := &entity.DeliveryOrder{
		CustomerID:  input.CustomerID,
		CourierID:   input.CourierID,
		Package:     input.Package,
		VehicleType: input.VehicleType,
		DistanceKm:  distanceKm,
		Fare:        fare,
		DeliveryPIN: scheduler.MintPIN(),
		Status:      entity.StatusSearching,
	}
	if input.ScheduledAt != nil {
		order.Status = entity.StatusScheduled
		scheduledAt := input.ScheduledAt.UTC()
		order.ScheduledAt = &scheduledAt
		order.ScheduledTimestamp = scheduledAt.UnixMilli()
	}

	if err := s.orders.CreateOrder(ctx, order); err != nil {
		return nil, fmt.Errorf("failed to create order: %w", err)
	}

	if order.Status == entity.StatusScheduled {
		if err := s.activator.Enqueue(ctx, order.ID, *order.ScheduledAt); err != nil {
			// The live watch still covers activation; the drain loop
			// just loses its backstop for this order.
			s.logger.Error("failed to enqueue scheduled order",
				slog.String("order_id", order.ID),
				slog.Any("error", err),
			)
		}
	}

	s.publish(ctx, order, entity.StatusPending, order.Status)

	return order, nil
}

// GetOrder returns an order with its resolved status view.
func (s *orderService) GetOrder(ctx context.Context, id string) (*usecase.OrderView, error) {
	order, err := s.orders.FindOrderByID(ctx, id)
	if err != nil {
		return nil, err
	}

	return s.view(order), nil
}

// GetCustomerOrder returns the order only to the customer who placed
// it. Foreign orders are indistinguishable from missing ones.
func (s *orderService) GetCustomerOrder(ctx context.Context, orderID, customerID string) (*usecase.OrderView, error) {
	order, err := s.requireCustomerOrder(ctx, orderID, customerID)
	if err != nil {
		return nil, err
	}

	return s.view(order), nil
}

// GetDriverOrder returns the order to its assigned driver, or to any
// driver while the order is still searching for one.
func (s *orderService) GetDriverOrder(ctx context.Context, orderID, driverID string) (*usecase.OrderView, error) {
	order, err := s.orders.FindOrderByID(ctx, orderID)
	if err != nil {
		return nil, err
	}
	assigned := order.Driver != nil && order.Driver.ID == driverID
	if !assigned && order.EffectiveStatus() != entity.StatusSearching {
		return nil, repository.ErrOrderNotFound
	}

	return s.view(order), nil
}

// ListCustomerOrders returns a customer's orders, newest first.
func (s *orderService) ListCustomerOrders(ctx context.Context, customerID string, limit int) ([]*usecase.OrderView, error) {
	orders, err := s.orders.FindOrdersByCustomer(ctx, customerID, limit)
	if err != nil {
		return nil, err
	}

	return s.views(orders), nil
}

// ListDriverOrders returns a driver's assigned orders, newest first.
func (s *orderService) ListDriverOrders(ctx context.Context, driverID string, limit int) ([]*usecase.OrderView, error) {
	orders, err := s.orders.FindOrdersByDriver(ctx, driverID, limit)
	if err != nil {
		return nil, err
	}

	return s.views(orders), nil
}

// ListOpenOrders returns orders searching for a driver.
func (s *orderService) ListOpenOrders(ctx context.Context, limit int) ([]*usecase.OrderView, error) {
	orders, err := s.orders.FindOrdersByStatus(ctx, entity.StatusSearching, limit)
	if err != nil {
		return nil, err
	}

	return s.views(orders), nil
}

// ListOrdersByStatus returns orders in a lifecycle state.
func (s *orderService) ListOrdersByStatus(ctx context.Context, st entity.Status, limit int) ([]*usecase.OrderView, error) {
	orders, err := s.orders.FindOrdersByStatus(ctx, st, limit)
	if err != nil {
		return nil, err
	}

	return s.views(orders), nil
}

// AcceptOrder assigns an approved driver to a searching order.
func (s *orderService) AcceptOrder(ctx context.Context, orderID, driverID string) error {
	driver, err := s.drivers.FindDriverByID(ctx, driverID)
	if err != nil {
		return err
	}
	if driver.Status != entity.DriverApproved {
		return domainerrors.ErrDriverNotApproved
	}

	order, err := s.orders.FindOrderByID(ctx, orderID)
	if err != nil {
		return err
	}

	if err := s.orders.AssignDriver(ctx, orderID, driver.Snapshot()); err != nil {
		return err
	}

	order.Driver = driver.Snapshot()
	s.publish(ctx, order, entity.StatusSearching, entity.StatusAccepted)
	s.notifyCustomer(ctx, order, "Driver assigned",
		fmt.Sprintf("%s is on the way to collect your package", driver.Name))

	return nil
}

// ConfirmCollection verifies the PIN or QR and moves the order to
// collecting.
func (s *orderService) ConfirmCollection(ctx context.Context, input *usecase.ConfirmCollectionInput) error {
	order, err := s.requireAssignedDriver(ctx, input.OrderID, input.DriverID)
	if err != nil {
		return err
	}

	pin := input.PIN
	if input.QRData != "" {
		code, err := s.qr.ParseCollectionQR(input.QRData)
		if err != nil || code.OrderID != order.ID {
			return domainerrors.ErrInvalidPIN
		}
		pin = code.PIN
	}
	if pin == "" || pin != order.DeliveryPIN {
		return domainerrors.ErrInvalidPIN
	}

	if err := s.orders.UpdateOrderStatus(ctx, order.ID, entity.StatusCollecting); err != nil {
		return err
	}

	s.publish(ctx, order, entity.StatusAccepted, entity.StatusCollecting)
	s.notifyCustomer(ctx, order, "Package collected", "Your package has been collected by the driver")

	return nil
}

// StartTransit moves a collected order to in_transit.
func (s *orderService) StartTransit(ctx context.Context, orderID, driverID string) error {
	order, err := s.requireAssignedDriver(ctx, orderID, driverID)
	if err != nil {
		return err
	}

	if err := s.orders.UpdateOrderStatus(ctx, orderID, entity.StatusInTransit); err != nil {
		return err
	}

	s.publish(ctx, order, entity.StatusCollecting, entity.StatusInTransit)
	s.notifyCustomer(ctx, order, "Package in transit", "Your package is on its way")

	return nil
}

// CompleteDelivery moves an in-transit order to delivered and clears
// the live location fix.
func (s *orderService) CompleteDelivery(ctx context.Context, orderID, driverID string) error {
	order, err := s.requireAssignedDriver(ctx, orderID, driverID)
	if err != nil {
		return err
	}

	if err := s.orders.UpdateOrderStatus(ctx, orderID, entity.StatusDelivered); err != nil {
		return err
	}

	if err := s.locations.ClearDriverLocation(ctx, orderID, driverID); err != nil {
		s.logger.Warn("failed to clear driver location",
			slog.String("order_id", orderID),
			slog.Any("error", err),
		)
	}

	s.publish(ctx, order, entity.StatusInTransit, entity.StatusDelivered)
	s.notifyCustomer(ctx, order, "Delivered", "Your package has been delivered")

	return nil
}

// CancelOrder cancels a non-terminal order.
func (s *orderService) CancelOrder(ctx context.Context, orderID, reason string) error {
	order, err := s.orders.FindOrderByID(ctx, orderID)
	if err != nil {
		return err
	}

	if err := s.activator.Cancel(ctx, orderID, reason); err != nil {
		return err
	}

	if order.Driver != nil {
		if err := s.locations.ClearDriverLocation(ctx, orderID, order.Driver.ID); err != nil {
			s.logger.Warn("failed to clear driver location",
				slog.String("order_id", orderID),
				slog.Any("error", err),
			)
		}
	}

	s.publish(ctx, order, order.EffectiveStatus(), entity.StatusCancelled)

	return nil
}

// CancelCustomerOrder cancels the order on behalf of the customer who
// placed it.
func (s *orderService) CancelCustomerOrder(ctx context.Context, orderID, customerID, reason string) error {
	if _, err := s.requireCustomerOrder(ctx, orderID, customerID); err != nil {
		return err
	}

	return s.CancelOrder(ctx, orderID, reason)
}

// RescheduleOrder moves the customer's scheduled order to a new
// validated slot.
func (s *orderService) RescheduleOrder(ctx context.Context, orderID, customerID string, at time.Time) error {
	if _, err := s.requireCustomerOrder(ctx, orderID, customerID); err != nil {
		return err
	}
	if err := scheduler.ValidateScheduleTime(at, s.now()); err != nil {
		return err
	}

	return s.activator.Reschedule(ctx, orderID, at)
}

// RateOrder records the customer's one-shot rating.
func (s *orderService) RateOrder(ctx context.Context, orderID, customerID string, rating float64) error {
	if rating < 1 || rating > 5 {
		return fmt.Errorf("rating must be between 1 and 5")
	}

	if _, err := s.requireCustomerOrder(ctx, orderID, customerID); err != nil {
		return err
	}

	return s.orders.RateOrder(ctx, orderID, rating)
}

// CollectionQR renders the collection QR code PNG for the customer's
// own order. The QR encodes the delivery PIN.
func (s *orderService) CollectionQR(ctx context.Context, orderID, customerID string) ([]byte, error) {
	order, err := s.requireCustomerOrder(ctx, orderID, customerID)
	if err != nil {
		return nil, err
	}
	if order.DeliveryPIN == "" {
		return nil, fmt.Errorf("order has no delivery PIN")
	}

	return s.qr.GenerateCollectionQR(order.ID, order.DeliveryPIN)
}

// MonitorSchedules opens the customer's scheduled-order watch.
func (s *orderService) MonitorSchedules(ctx context.Context, customerID string) error {
	return s.activator.StartMonitoring(ctx, customerID)
}

// StopMonitoring detaches the customer's scheduled-order watch.
func (s *orderService) StopMonitoring(customerID string) {
	s.activator.StopMonitoring(customerID)
}

// requireCustomerOrder loads the order and checks the caller placed
// it. Foreign orders surface as not-found so ids cannot be probed.
func (s *orderService) requireCustomerOrder(ctx context.Context, orderID, customerID string) (*entity.DeliveryOrder, error) {
	order, err := s.orders.FindOrderByID(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if order.CustomerID != customerID {
		return nil, repository.ErrOrderNotFound
	}

	return order, nil
}

// requireAssignedDriver loads the order and checks the caller is its
// assigned driver.
func (s *orderService) requireAssignedDriver(ctx context.Context, orderID, driverID string) (*entity.DeliveryOrder, error) {
	order, err := s.orders.FindOrderByID(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if order.Driver == nil || order.Driver.ID != driverID {
		return nil, repository.ErrOrderNotFound
	}

	return order, nil
}

// routeDistance asks the directions API for the driving distance,
// falling back to the flat policy default when it cannot answer.
func (s *orderService) routeDistance(ctx context.Context, pkg *entity.PackageDetails) float64 {
	route, err := s.maps.Directions(ctx, pkg.PickupLat, pkg.PickupLng, pkg.DropoffLat, pkg.DropoffLng)
	if err != nil || route == nil || route.DistanceKm <= 0 {
		return pricing.DefaultDistanceKm
	}

	return route.DistanceKm
}

func (s *orderService) quote(ctx context.Context, courierID string, vehicle entity.VehicleType, distanceKm float64) (int64, error) {
	rates, err := s.pricings.FindPricingByCourier(ctx, courierID)
	if err != nil {
		if errors.Is(err, repository.ErrPricingNotFound) {
			rates = nil
		} else {
			return 0, err
		}
	}

	return pricing.Quote(vehicle, distanceKm, rates), nil
}

func (s *orderService) view(order *entity.DeliveryOrder) *usecase.OrderView {
	// Resolve the scheduled instant from whichever field the stored
	// document carries, not just the timestamp form.
	var scheduledAt *time.Time
	if at, ok := order.ScheduledTime(); ok {
		scheduledAt = &at
	}

	return &usecase.OrderView{
		DeliveryOrder: order,
		StatusView:    status.Resolve(order.Status, order.DeliveryStatus, scheduledAt, s.now()),
	}
}

func (s *orderService) views(orders []*entity.DeliveryOrder) []*usecase.OrderView {
	views := make([]*usecase.OrderView, 0, len(orders))
	for _, order := range orders {
		views = append(views, s.view(order))
	}

	return views
}

// publish emits a lifecycle event; failures are logged, never
// propagated into the request path.
func (s *orderService) publish(ctx context.Context, order *entity.DeliveryOrder, from, to entity.Status) {
	event := &service.OrderEvent{
		OrderID:    order.ID,
		CustomerID: order.CustomerID,
		CourierID:  order.CourierID,
		From:       from,
		To:         to,
		OccurredAt: s.now().UTC(),
	}
	if order.Driver != nil {
		event.DriverID = order.Driver.ID
	}

	if err := s.publisher.PublishOrderEvent(ctx, event); err != nil {
		s.logger.Error("failed to publish order event",
			slog.String("order_id", order.ID),
			slog.String("to", string(to)),
			slog.Any("error", err),
		)
	}
}

// notifyCustomer pushes a status update to the customer's device when
// a token is registered. Push failures never fail the transition.
func (s *orderService) notifyCustomer(ctx context.Context, order *entity.DeliveryOrder, title, body string) {
	profile, err := s.users.FindProfileByID(ctx, order.CustomerID)
	if err != nil || profile.FCMToken == "" {
		return
	}

	data := map[string]string{
		"order_id": order.ID,
		"type":     "order_status",
	}
	if err := s.notifier.SendSingleNotification(ctx, profile.FCMToken, title, body, data); err != nil {
		s.logger.Warn("failed to send status push",
			slog.String("order_id", order.ID),
			slog.Any("error", err),
		)
	}
}
