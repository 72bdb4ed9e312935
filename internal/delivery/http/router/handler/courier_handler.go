package handler

import (
	"net/http"

	"parcel/internal/delivery/http/middleware"
	"parcel/internal/delivery/http/response"
	"parcel/internal/domain/entity"
	"parcel/internal/usecase"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
)

// CourierHandler holds dependencies for courier and driver management
// handlers.
type CourierHandler struct {
	couriers usecase.CourierUsecase
}

// NewCourierHandler is the constructor for CourierHandler, injected by Fx.
func NewCourierHandler(couriers usecase.CourierUsecase) *CourierHandler {
	return &CourierHandler{couriers: couriers}
}

// CreateCourier registers a new courier company.
func (h *CourierHandler) CreateCourier(c echo.Context) error {
	var input *usecase.CreateCourierInput
	if err := c.Bind(&input); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid courier input")
	}
	if err := c.Validate(input); err != nil {
		return err
	}

	courier, err := h.couriers.CreateCourier(c.Request().Context(), input)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusCreated, courier, "Courier created")
}

// GetCourier returns a single courier.
func (h *CourierHandler) GetCourier(c echo.Context) error {
	courier, err := h.couriers.GetCourier(c.Request().Context(), c.Param("id"))
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, courier, "")
}

// ListCouriers returns every courier for the dashboard.
func (h *CourierHandler) ListCouriers(c echo.Context) error {
	couriers, err := h.couriers.ListCouriers(c.Request().Context(), false)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, couriers, "")
}

// ListActiveCouriers returns the customer-facing courier picker list.
func (h *CourierHandler) ListActiveCouriers(c echo.Context) error {
	couriers, err := h.couriers.ListCouriers(c.Request().Context(), true)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, couriers, "")
}

// UpdateCourier applies partial edits to a courier.
func (h *CourierHandler) UpdateCourier(c echo.Context) error {
	var input *usecase.UpdateCourierInput
	if err := c.Bind(&input); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid courier input")
	}

	courier, err := h.couriers.UpdateCourier(c.Request().Context(), c.Param("id"), input)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, courier, "Courier updated")
}

type setActiveInput struct {
	Active bool `json:"active"`
}

// SetCourierActive toggles the courier's availability to customers.
func (h *CourierHandler) SetCourierActive(c echo.Context) error {
	var input setActiveInput
	if err := c.Bind(&input); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid input")
	}

	if err := h.couriers.SetCourierActive(c.Request().Context(), c.Param("id"), input.Active); err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, nil, "Courier updated")
}

// DeleteCourier removes a courier.
func (h *CourierHandler) DeleteCourier(c echo.Context) error {
	if err := h.couriers.DeleteCourier(c.Request().Context(), c.Param("id")); err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, nil, "Courier deleted")
}

// RegisterDriver creates a driver from the admin dashboard.
func (h *CourierHandler) RegisterDriver(c echo.Context) error {
	var input *usecase.RegisterDriverInput
	if err := c.Bind(&input); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid driver input")
	}
	if err := c.Validate(input); err != nil {
		return err
	}

	driver, err := h.couriers.RegisterDriver(c.Request().Context(), input)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusCreated, driver, "Driver registered")
}

// RegisterSelf creates the calling driver's own record, pending admin
// approval. The record is keyed by the auth provider uid.
func (h *CourierHandler) RegisterSelf(c echo.Context) error {
	var input *usecase.RegisterDriverInput
	if err := c.Bind(&input); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid driver input")
	}
	input.ID = middleware.CallerID(c)
	if err := c.Validate(input); err != nil {
		return err
	}

	driver, err := h.couriers.RegisterDriver(c.Request().Context(), input)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusCreated, driver, "Registration submitted for approval")
}

// GetDriver returns a single driver.
func (h *CourierHandler) GetDriver(c echo.Context) error {
	driver, err := h.couriers.GetDriver(c.Request().Context(), c.Param("id"))
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, driver, "")
}

// GetOwnDriver returns the calling driver's own record.
func (h *CourierHandler) GetOwnDriver(c echo.Context) error {
	driver, err := h.couriers.GetDriver(c.Request().Context(), middleware.CallerID(c))
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, driver, "")
}

// ListDrivers returns drivers for a courier, or drivers in an approval
// state when the status query parameter is set.
func (h *CourierHandler) ListDrivers(c echo.Context) error {
	ctx := c.Request().Context()

	if status := c.QueryParam("status"); status != "" {
		drivers, err := h.couriers.ListDriversByStatus(ctx, entity.DriverStatus(status))
		if err != nil {
			return errors.WithStack(err)
		}

		return response.Success(c, http.StatusOK, drivers, "")
	}

	courierID := c.QueryParam("courier_id")
	if courierID == "" {
		return response.BadRequest(c, "INVALID_INPUT", "courier_id or status query parameter required")
	}

	drivers, err := h.couriers.ListDriversByCourier(ctx, courierID)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, drivers, "")
}

// ApproveDriver moves a driver to approved.
func (h *CourierHandler) ApproveDriver(c echo.Context) error {
	if err := h.couriers.ApproveDriver(c.Request().Context(), c.Param("id")); err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, nil, "Driver approved")
}

// SuspendDriver moves a driver to suspended.
func (h *CourierHandler) SuspendDriver(c echo.Context) error {
	if err := h.couriers.SuspendDriver(c.Request().Context(), c.Param("id")); err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, nil, "Driver suspended")
}
