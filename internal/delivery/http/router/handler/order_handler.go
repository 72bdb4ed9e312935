package handler

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"parcel/internal/delivery/http/middleware"
	"parcel/internal/delivery/http/response"
	"parcel/internal/domain/entity"
	"parcel/internal/usecase"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
)

const defaultOrderPageSize = 20

// OrderHandler holds dependencies for delivery order handlers.
type OrderHandler struct {
	orders usecase.OrderUsecase
}

// NewOrderHandler is the constructor for OrderHandler, injected by Fx.
func NewOrderHandler(orders usecase.OrderUsecase) *OrderHandler {
	return &OrderHandler{orders: orders}
}

// PlaceOrder creates a new delivery order for the calling customer.
func (h *OrderHandler) PlaceOrder(c echo.Context) error {
	var input *usecase.PlaceOrderInput
	if err := c.Bind(&input); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid order input")
	}
	input.CustomerID = middleware.CallerID(c)
	if err := c.Validate(input); err != nil {
		return err
	}

	order, err := h.orders.PlaceOrder(c.Request().Context(), input)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusCreated, order, "Order placed")
}

// GetOrder returns an order with its resolved status view. Admin
// dashboard only.
func (h *OrderHandler) GetOrder(c echo.Context) error {
	order, err := h.orders.GetOrder(c.Request().Context(), c.Param("id"))
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, order, "")
}

// GetOwnOrder returns one of the calling customer's orders.
func (h *OrderHandler) GetOwnOrder(c echo.Context) error {
	order, err := h.orders.GetCustomerOrder(c.Request().Context(), c.Param("id"), middleware.CallerID(c))
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, order, "")
}

// GetDriverOrder returns an order the calling driver is assigned to,
// or an open order from the searching feed.
func (h *OrderHandler) GetDriverOrder(c echo.Context) error {
	order, err := h.orders.GetDriverOrder(c.Request().Context(), c.Param("id"), middleware.CallerID(c))
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, order, "")
}

// ListOwnOrders returns the calling customer's orders.
func (h *OrderHandler) ListOwnOrders(c echo.Context) error {
	orders, err := h.orders.ListCustomerOrders(c.Request().Context(), middleware.CallerID(c), pageSize(c))
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, orders, "")
}

// ListAssignedOrders returns the calling driver's orders.
func (h *OrderHandler) ListAssignedOrders(c echo.Context) error {
	orders, err := h.orders.ListDriverOrders(c.Request().Context(), middleware.CallerID(c), pageSize(c))
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, orders, "")
}

// ListOpenOrders returns the driver feed of orders searching for a
// driver.
func (h *OrderHandler) ListOpenOrders(c echo.Context) error {
	orders, err := h.orders.ListOpenOrders(c.Request().Context(), pageSize(c))
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, orders, "")
}

// ListOrders returns orders for the dashboard, optionally filtered by
// lifecycle state.
func (h *OrderHandler) ListOrders(c echo.Context) error {
	status := entity.Status(c.QueryParam("status"))
	if status == "" {
		status = entity.StatusSearching
	}

	orders, err := h.orders.ListOrdersByStatus(c.Request().Context(), status, pageSize(c))
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, orders, "")
}

// AcceptOrder assigns the calling driver to an order.
func (h *OrderHandler) AcceptOrder(c echo.Context) error {
	if err := h.orders.AcceptOrder(c.Request().Context(), c.Param("id"), middleware.CallerID(c)); err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, nil, "Order accepted")
}

// ConfirmCollection verifies the PIN or scanned QR and marks the
// package as collected.
func (h *OrderHandler) ConfirmCollection(c echo.Context) error {
	var input *usecase.ConfirmCollectionInput
	if err := c.Bind(&input); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid collection input")
	}
	input.OrderID = c.Param("id")
	input.DriverID = middleware.CallerID(c)

	if err := h.orders.ConfirmCollection(c.Request().Context(), input); err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, nil, "Package collected")
}

// StartTransit marks the package as on its way.
func (h *OrderHandler) StartTransit(c echo.Context) error {
	if err := h.orders.StartTransit(c.Request().Context(), c.Param("id"), middleware.CallerID(c)); err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, nil, "Order in transit")
}

// CompleteDelivery marks the package as delivered.
func (h *OrderHandler) CompleteDelivery(c echo.Context) error {
	if err := h.orders.CompleteDelivery(c.Request().Context(), c.Param("id"), middleware.CallerID(c)); err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, nil, "Order delivered")
}

type cancelInput struct {
	Reason string `json:"reason"`
}

// CancelOrder cancels a non-terminal order. Admin dashboard only.
func (h *OrderHandler) CancelOrder(c echo.Context) error {
	var input cancelInput
	if err := c.Bind(&input); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid cancel input")
	}

	if err := h.orders.CancelOrder(c.Request().Context(), c.Param("id"), input.Reason); err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, nil, "Order cancelled")
}

// CancelOwnOrder cancels one of the calling customer's orders.
func (h *OrderHandler) CancelOwnOrder(c echo.Context) error {
	var input cancelInput
	if err := c.Bind(&input); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid cancel input")
	}

	if err := h.orders.CancelCustomerOrder(c.Request().Context(), c.Param("id"), middleware.CallerID(c), input.Reason); err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, nil, "Order cancelled")
}

type rescheduleInput struct {
	ScheduledAt time.Time `json:"scheduled_at" validate:"required"`
}

// RescheduleOrder moves a scheduled order to a new slot.
func (h *OrderHandler) RescheduleOrder(c echo.Context) error {
	var input rescheduleInput
	if err := c.Bind(&input); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid reschedule input")
	}
	if err := c.Validate(&input); err != nil {
		return err
	}

	if err := h.orders.RescheduleOrder(c.Request().Context(), c.Param("id"), middleware.CallerID(c), input.ScheduledAt); err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, nil, "Order rescheduled")
}

type rateInput struct {
	Rating float64 `json:"rating" validate:"required,gte=1,lte=5"`
}

// RateOrder records the customer's rating for a delivered order.
func (h *OrderHandler) RateOrder(c echo.Context) error {
	var input rateInput
	if err := c.Bind(&input); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid rating input")
	}
	if err := c.Validate(&input); err != nil {
		return err
	}

	if err := h.orders.RateOrder(c.Request().Context(), c.Param("id"), middleware.CallerID(c), input.Rating); err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, nil, "Rating recorded")
}

// CollectionQR renders the order's collection QR code as a PNG.
func (h *OrderHandler) CollectionQR(c echo.Context) error {
	png, err := h.orders.CollectionQR(c.Request().Context(), c.Param("id"), middleware.CallerID(c))
	if err != nil {
		return errors.WithStack(err)
	}

	return c.Blob(http.StatusOK, "image/png", png)
}

// MonitorSchedules opens the calling customer's scheduled-order watch.
// The watch outlives this request, so its context is detached from the
// request's cancellation.
func (h *OrderHandler) MonitorSchedules(c echo.Context) error {
	ctx := context.WithoutCancel(c.Request().Context())
	if err := h.orders.MonitorSchedules(ctx, middleware.CallerID(c)); err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, nil, "Monitoring started")
}

// StopMonitoring detaches the calling customer's scheduled-order watch.
func (h *OrderHandler) StopMonitoring(c echo.Context) error {
	h.orders.StopMonitoring(middleware.CallerID(c))

	return response.Success(c, http.StatusOK, nil, "Monitoring stopped")
}

func pageSize(c echo.Context) int {
	limit, err := strconv.Atoi(c.QueryParam("limit"))
	if err != nil || limit <= 0 || limit > 100 {
		return defaultOrderPageSize
	}

	return limit
}
