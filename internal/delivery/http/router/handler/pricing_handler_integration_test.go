package handler

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"parcel/internal/domain/entity"
	"parcel/internal/mocks"
	"parcel/internal/usecase/impl"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

func TestPricingHandler_QuoteFares_Integration(t *testing.T) {
	// Wire the real pricing usecase over mocked repositories
	pricings := new(mocks.PricingRepository)
	couriers := new(mocks.CourierRepository)
	pricings.On("FindPricingByCourier", mock.Anything, "courier-1").Return(&entity.CourierPricing{
		CourierID: "courier-1",
		VehicleRates: map[entity.VehicleType]int64{
			entity.VehicleBike: 50,
			entity.VehicleTuk:  80,
		},
		MinimumCharge: 300,
	}, nil)

	h := NewPricingHandler(impl.NewPricingService(pricings, couriers))

	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/customer/couriers/courier-1/quotes?distance_km=10", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetParamNames("id")
	c.SetParamValues("courier-1")

	err := h.QuoteFares(c)
	assert.NoError(t, err)
	assert.Equal(t, http.StatusOK, rec.Code)

	body := rec.Body.String()
	assert.Contains(t, body, `"success":true`)
	assert.Contains(t, body, `"bike"`)
	assert.Contains(t, body, "500")
	assert.Contains(t, body, "800")
}

func TestPricingHandler_QuoteFares_MissingDistance(t *testing.T) {
	h := NewPricingHandler(impl.NewPricingService(new(mocks.PricingRepository), new(mocks.CourierRepository)))

	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/customer/couriers/courier-1/quotes", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetParamNames("id")
	c.SetParamValues("courier-1")

	err := h.QuoteFares(c)
	assert.NoError(t, err)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "INVALID_INPUT")
}
