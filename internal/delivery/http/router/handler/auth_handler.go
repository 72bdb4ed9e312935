package handler

import (
	"log/slog"
	"net/http"

	"parcel/internal/delivery/http/middleware"
	"parcel/internal/delivery/http/response"
	"parcel/internal/domain/entity"
	"parcel/internal/usecase"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
)

// AuthHandler holds dependencies for authentication handlers.
type AuthHandler struct {
	profiles usecase.ProfileUsecase
	logger   *slog.Logger
}

// NewAuthHandler is the constructor for AuthHandler, injected by Fx.
func NewAuthHandler(profiles usecase.ProfileUsecase, logger *slog.Logger) *AuthHandler {
	return &AuthHandler{profiles: profiles, logger: logger}
}

type adminLoginInput struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// AdminLogin handles the dashboard login request.
func (h *AuthHandler) AdminLogin(c echo.Context) error {
	var input adminLoginInput
	if err := c.Bind(&input); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid login input")
	}
	if err := c.Validate(&input); err != nil {
		return err
	}

	tokens, err := h.profiles.AdminLogin(c.Request().Context(), input.Email, input.Password)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, tokens, "Login successful")
}

type refreshInput struct {
	RefreshToken string `json:"refresh_token" validate:"required"`
}

// AdminRefresh rotates the dashboard session pair.
func (h *AuthHandler) AdminRefresh(c echo.Context) error {
	var input refreshInput
	if err := c.Bind(&input); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid refresh input")
	}
	if err := c.Validate(&input); err != nil {
		return err
	}

	tokens, err := h.profiles.AdminRefresh(c.Request().Context(), input.RefreshToken)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, tokens, "Token refreshed successfully")
}

// AdminRegister creates a new dashboard account.
func (h *AuthHandler) AdminRegister(c echo.Context) error {
	var input *usecase.AdminRegisterInput
	if err := c.Bind(&input); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid registration input")
	}
	if err := c.Validate(input); err != nil {
		return err
	}

	admin, err := h.profiles.AdminRegister(c.Request().Context(), input)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusCreated, admin, "Admin account created")
}

type idTokenLoginInput struct {
	IDToken string `json:"id_token" validate:"required"`
}

// CustomerLogin verifies an ID token and upserts the customer profile.
func (h *AuthHandler) CustomerLogin(c echo.Context) error {
	return h.appLogin(c, entity.RoleCustomer)
}

// DriverLogin verifies an ID token and upserts the driver profile.
func (h *AuthHandler) DriverLogin(c echo.Context) error {
	return h.appLogin(c, entity.RoleDriver)
}

func (h *AuthHandler) appLogin(c echo.Context, role entity.Role) error {
	var input idTokenLoginInput
	if err := c.Bind(&input); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid login input")
	}
	if err := c.Validate(&input); err != nil {
		return err
	}

	profile, err := h.profiles.LoginWithIDToken(c.Request().Context(), input.IDToken, role)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, profile, "Login successful")
}

// Me returns the authenticated caller's profile.
func (h *AuthHandler) Me(c echo.Context) error {
	profile, err := h.profiles.GetProfile(c.Request().Context(), middleware.CallerID(c))
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, profile, "")
}
