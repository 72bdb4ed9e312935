package handler

import (
	"net/http"
	"strconv"

	"parcel/internal/delivery/http/response"
	"parcel/internal/usecase"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
)

// PricingHandler holds dependencies for fare quoting and rate table
// handlers.
type PricingHandler struct {
	pricing usecase.PricingUsecase
}

// NewPricingHandler is the constructor for PricingHandler, injected by Fx.
func NewPricingHandler(pricing usecase.PricingUsecase) *PricingHandler {
	return &PricingHandler{pricing: pricing}
}

// QuoteFares returns per-vehicle fare quotes for a courier over the
// requested distance.
func (h *PricingHandler) QuoteFares(c echo.Context) error {
	distanceKm, err := strconv.ParseFloat(c.QueryParam("distance_km"), 64)
	if err != nil || distanceKm < 0 {
		return response.BadRequest(c, "INVALID_INPUT", "distance_km query parameter required")
	}

	quotes, err := h.pricing.QuoteAllFares(c.Request().Context(), c.Param("id"), distanceKm)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, quotes, "")
}

// GetCourierPricing returns the courier's rate table.
func (h *PricingHandler) GetCourierPricing(c echo.Context) error {
	table, err := h.pricing.GetCourierPricing(c.Request().Context(), c.Param("id"))
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, table, "")
}

// SaveCourierPricing creates or updates the courier's rate table.
func (h *PricingHandler) SaveCourierPricing(c echo.Context) error {
	var input *usecase.SavePricingInput
	if err := c.Bind(&input); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid pricing input")
	}
	input.CourierID = c.Param("id")
	if err := c.Validate(input); err != nil {
		return err
	}

	table, err := h.pricing.SaveCourierPricing(c.Request().Context(), input)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, table, "Pricing saved")
}
