package impl

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"parcel/internal/domain/entity"
	"parcel/internal/domain/pricing"
	"parcel/internal/domain/repository"
	"parcel/internal/mocks"
	"parcel/internal/usecase"
)

func newPricingService(t *testing.T) (usecase.PricingUsecase, *mocks.PricingRepository, *mocks.CourierRepository) {
	t.Helper()

	pricings := new(mocks.PricingRepository)
	couriers := new(mocks.CourierRepository)

	return NewPricingService(pricings, couriers), pricings, couriers
}

func TestQuoteFare_UsesCourierRates(t *testing.T) {
	svc, pricings, _ := newPricingService(t)

	pricings.On("FindPricingByCourier", mock.Anything, "courier-1").Return(&entity.CourierPricing{
		CourierID:     "courier-1",
		VehicleRates:  map[entity.VehicleType]int64{entity.VehicleTuk: 80},
		MinimumCharge: 200,
	}, nil)

	fare, err := svc.QuoteFare(context.Background(), "courier-1", entity.VehicleTuk, 5)
	require.NoError(t, err)
	assert.Equal(t, int64(400), fare)
}

func TestQuoteFare_NoRateTableUsesDefaults(t *testing.T) {
	svc, pricings, _ := newPricingService(t)

	pricings.On("FindPricingByCourier", mock.Anything, "courier-1").
		Return(nil, repository.ErrPricingNotFound)

	fare, err := svc.QuoteFare(context.Background(), "courier-1", entity.VehicleBike, 3)
	require.NoError(t, err)
	assert.Equal(t, pricing.Quote(entity.VehicleBike, 3, nil), fare)
}

func TestQuoteAllFares_CoversEveryVehicleInOrder(t *testing.T) {
	svc, pricings, _ := newPricingService(t)

	pricings.On("FindPricingByCourier", mock.Anything, "courier-1").
		Return(nil, repository.ErrPricingNotFound)

	quotes, err := svc.QuoteAllFares(context.Background(), "courier-1", 4)
	require.NoError(t, err)
	require.Len(t, quotes, len(entity.VehicleTypes))
	for i, q := range quotes {
		assert.Equal(t, entity.VehicleTypes[i], q.VehicleType)
		assert.Positive(t, q.Fare)
	}
}

func TestGetCourierPricing_FallsBackToDefaults(t *testing.T) {
	svc, pricings, couriers := newPricingService(t)

	couriers.On("FindCourierByID", mock.Anything, "courier-1").
		Return(&entity.Courier{ID: "courier-1"}, nil)
	pricings.On("FindPricingByCourier", mock.Anything, "courier-1").
		Return(nil, repository.ErrPricingNotFound)

	table, err := svc.GetCourierPricing(context.Background(), "courier-1")
	require.NoError(t, err)
	assert.Equal(t, "courier-1", table.CourierID)
	assert.Len(t, table.VehicleRates, len(entity.VehicleTypes))
}

func TestSaveCourierPricing_RejectsUnknownVehicle(t *testing.T) {
	svc, pricings, couriers := newPricingService(t)

	couriers.On("FindCourierByID", mock.Anything, "courier-1").
		Return(&entity.Courier{ID: "courier-1"}, nil)

	_, err := svc.SaveCourierPricing(context.Background(), &usecase.SavePricingInput{
		CourierID:    "courier-1",
		VehicleRates: map[string]int64{"spaceship": 9000},
	})
	assert.Error(t, err)
	pricings.AssertNotCalled(t, "SavePricing", mock.Anything, mock.Anything)
}

func TestSaveCourierPricing_RejectsNonPositiveRate(t *testing.T) {
	svc, _, couriers := newPricingService(t)

	couriers.On("FindCourierByID", mock.Anything, "courier-1").
		Return(&entity.Courier{ID: "courier-1"}, nil)

	_, err := svc.SaveCourierPricing(context.Background(), &usecase.SavePricingInput{
		CourierID:    "courier-1",
		VehicleRates: map[string]int64{"bike": 0},
	})
	assert.Error(t, err)
}

func TestSaveCourierPricing_DefaultsMinimumCharge(t *testing.T) {
	svc, pricings, couriers := newPricingService(t)

	couriers.On("FindCourierByID", mock.Anything, "courier-1").
		Return(&entity.Courier{ID: "courier-1"}, nil)
	pricings.On("SavePricing", mock.Anything, mock.MatchedBy(func(p *entity.CourierPricing) bool {
		return p.MinimumCharge == pricing.DefaultMinimumCharge
	})).Return(nil)

	table, err := svc.SaveCourierPricing(context.Background(), &usecase.SavePricingInput{
		CourierID:    "courier-1",
		VehicleRates: map[string]int64{"bike": 50, "car": 120},
	})
	require.NoError(t, err)
	assert.Equal(t, int64(50), table.VehicleRates[entity.VehicleBike])
}
