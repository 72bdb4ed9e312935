// Package pricing converts travel distance and courier rate tables
// into per-vehicle price quotes.
package pricing

import (
	"math"

	"parcel/internal/domain/entity"
)

// DefaultMinimumCharge applies when a courier has no pricing document.
const DefaultMinimumCharge int64 = 300

// DefaultDistanceKm substitutes for an unresolvable distance. Two
// kilometers mirrors the historical client behavior; callers that can
// compute a real distance should never rely on it.
const DefaultDistanceKm = 2.0

// DefaultRates is the hard-coded fallback rate table (per-km, currency
// units) used when a courier's pricing document omits a vehicle key.
var DefaultRates = map[entity.VehicleType]int64{
	entity.VehicleBike:      50,
	entity.VehicleTuk:       60,
	entity.VehicleCar:       80,
	entity.VehicleMiniLorry: 100,
	entity.VehicleLorry:     150,
	entity.VehicleCarrier:   200,
}

// Quote computes the price for one vehicle class:
// max(rate * distanceKm, minimumCharge), rounded to the nearest
// currency unit. A negative distance is treated as zero.
func Quote(vehicle entity.VehicleType, distanceKm float64, p *entity.CourierPricing) int64 {
	if distanceKm < 0 {
		distanceKm = 0
	}
	rate := rateFor(vehicle, p)
	minimum := DefaultMinimumCharge
	if p != nil && p.MinimumCharge > 0 {
		minimum = p.MinimumCharge
	}

	price := int64(math.Round(float64(rate) * distanceKm))
	if price < minimum {
		return minimum
	}
	return price
}

// QuoteAll prices every vehicle class in the fixed enumeration.
func QuoteAll(distanceKm float64, p *entity.CourierPricing) map[entity.VehicleType]int64 {
	quotes := make(map[entity.VehicleType]int64, len(entity.VehicleTypes))
	for _, vehicle := range entity.VehicleTypes {
		quotes[vehicle] = Quote(vehicle, distanceKm, p)
	}
	return quotes
}

func rateFor(vehicle entity.VehicleType, p *entity.CourierPricing) int64 {
	if p != nil {
		if rate, ok := p.VehicleRates[vehicle]; ok && rate > 0 {
			return rate
		}
	}
	return DefaultRates[vehicle]
}

// Defaults builds a pricing document seeded from the fallback table,
// used to lazily create a courier's pricing record.
func Defaults(courierID string) *entity.CourierPricing {
	rates := make(map[entity.VehicleType]int64, len(DefaultRates))
	for vehicle, rate := range DefaultRates {
		rates[vehicle] = rate
	}
	return &entity.CourierPricing{
		CourierID:     courierID,
		VehicleRates:  rates,
		MinimumCharge: DefaultMinimumCharge,
	}
}
