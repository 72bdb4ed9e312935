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

// ProfileHandler holds dependencies for profile and payment method
// handlers.
type ProfileHandler struct {
	profiles usecase.ProfileUsecase
	payments usecase.PaymentUsecase
}

// NewProfileHandler is the constructor for ProfileHandler, injected by Fx.
func NewProfileHandler(profiles usecase.ProfileUsecase, payments usecase.PaymentUsecase) *ProfileHandler {
	return &ProfileHandler{profiles: profiles, payments: payments}
}

// GetProfile returns the caller's profile.
func (h *ProfileHandler) GetProfile(c echo.Context) error {
	profile, err := h.profiles.GetProfile(c.Request().Context(), middleware.CallerID(c))
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, profile, "")
}

// UpdateProfile applies partial edits to the caller's profile.
func (h *ProfileHandler) UpdateProfile(c echo.Context) error {
	var input *usecase.UpdateProfileInput
	if err := c.Bind(&input); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid profile input")
	}
	input.UserID = middleware.CallerID(c)

	profile, err := h.profiles.UpdateProfile(c.Request().Context(), input)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, profile, "Profile updated")
}

// AddPaymentMethod stores a payment option for the caller.
func (h *ProfileHandler) AddPaymentMethod(c echo.Context) error {
	var method *entity.PaymentMethod
	if err := c.Bind(&method); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid payment method input")
	}
	method.UserID = middleware.CallerID(c)

	saved, err := h.payments.AddPaymentMethod(c.Request().Context(), method)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusCreated, saved, "Payment method added")
}

// ListPaymentMethods returns the caller's stored payment options.
func (h *ProfileHandler) ListPaymentMethods(c echo.Context) error {
	methods, err := h.payments.ListPaymentMethods(c.Request().Context(), middleware.CallerID(c))
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, methods, "")
}

// DeletePaymentMethod removes one of the caller's payment options.
func (h *ProfileHandler) DeletePaymentMethod(c echo.Context) error {
	if err := h.payments.DeletePaymentMethod(c.Request().Context(), middleware.CallerID(c), c.Param("id")); err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, nil, "Payment method deleted")
}
