package usecase

import (
	"context"

	"parcel/internal/domain/entity"
)

// SavePricingInput represents the input for saving a courier rate table
type SavePricingInput struct {
	CourierID     string           `json:"-"`
	VehicleRates  map[string]int64 `json:"vehicle_rates" validate:"required"`
	MinimumCharge int64            `json:"minimum_charge" validate:"gte=0"`
}

// FareQuote is a single vehicle's quoted fare.
type FareQuote struct {
	VehicleType entity.VehicleType `json:"vehicle_type"`
	Fare        int64              `json:"fare"`
}

// PricingUsecase defines the interface for fare quoting and rate table
// management use cases
type PricingUsecase interface {
	// QuoteFare quotes one vehicle class for a courier over a distance.
	QuoteFare(ctx context.Context, courierID string, vehicle entity.VehicleType, distanceKm float64) (int64, error)

	// QuoteAllFares quotes every vehicle class for the customer's
	// vehicle picker.
	QuoteAllFares(ctx context.Context, courierID string, distanceKm float64) ([]FareQuote, error)

	// GetCourierPricing returns the courier's rate table, falling back
	// to defaults when none has been saved yet.
	GetCourierPricing(ctx context.Context, courierID string) (*entity.CourierPricing, error)

	// SaveCourierPricing creates or updates the courier's rate table.
	SaveCourierPricing(ctx context.Context, input *SavePricingInput) (*entity.CourierPricing, error)
}
