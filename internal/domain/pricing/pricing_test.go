package pricing

import (
	"testing"

	"parcel/internal/domain/entity"

	"github.com/stretchr/testify/assert"
)

func TestQuote_RateTimesDistance(t *testing.T) {
	p := &entity.CourierPricing{
		VehicleRates:  map[entity.VehicleType]int64{entity.VehicleBike: 50},
		MinimumCharge: 300,
	}

	// 10 km * 50 = 500, above the floor.
	assert.Equal(t, int64(500), Quote(entity.VehicleBike, 10, p))
}

func TestQuote_MinimumChargeApplies(t *testing.T) {
	p := &entity.CourierPricing{
		VehicleRates:  map[entity.VehicleType]int64{entity.VehicleBike: 50},
		MinimumCharge: 300,
	}

	// 2 km * 50 = 100, clamped to 300.
	assert.Equal(t, int64(300), Quote(entity.VehicleBike, 2, p))
}

func TestQuote_MissingRateFallsBackToDefault(t *testing.T) {
	p := &entity.CourierPricing{
		VehicleRates:  map[entity.VehicleType]int64{entity.VehicleBike: 50},
		MinimumCharge: 100,
	}

	// Lorry is not in the table; the hard-coded 150/km default applies.
	assert.Equal(t, int64(1500), Quote(entity.VehicleLorry, 10, p))
}

func TestQuote_NilPricingUsesAllDefaults(t *testing.T) {
	for _, vehicle := range entity.VehicleTypes {
		got := Quote(vehicle, 10, nil)
		want := DefaultRates[vehicle] * 10
		if want < DefaultMinimumCharge {
			want = DefaultMinimumCharge
		}
		assert.Equal(t, want, got, "vehicle %s", vehicle)
	}
}

func TestQuote_NegativeDistanceTreatedAsZero(t *testing.T) {
	assert.Equal(t, DefaultMinimumCharge, Quote(entity.VehicleBike, -5, nil))
}

func TestQuote_Rounding(t *testing.T) {
	p := &entity.CourierPricing{
		VehicleRates:  map[entity.VehicleType]int64{entity.VehicleCar: 80},
		MinimumCharge: 1,
	}

	// 3.3 km * 80 = 264.0; 3.14 km * 80 = 251.2 -> 251.
	assert.Equal(t, int64(264), Quote(entity.VehicleCar, 3.3, p))
	assert.Equal(t, int64(251), Quote(entity.VehicleCar, 3.14, p))
}

func TestQuoteAll_CoversEveryVehicle(t *testing.T) {
	quotes := QuoteAll(10, nil)

	assert.Len(t, quotes, len(entity.VehicleTypes))
	for _, vehicle := range entity.VehicleTypes {
		assert.Contains(t, quotes, vehicle)
		assert.GreaterOrEqual(t, quotes[vehicle], DefaultMinimumCharge)
	}
}

func TestDefaults_SeedsFullTable(t *testing.T) {
	p := Defaults("courier-1")

	assert.Equal(t, "courier-1", p.CourierID)
	assert.Equal(t, DefaultMinimumCharge, p.MinimumCharge)
	assert.Len(t, p.VehicleRates, len(entity.VehicleTypes))
}
