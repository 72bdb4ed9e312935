package impl

import (
	"context"
	"errors"
	"fmt"

	"parcel/internal/domain/entity"
	"parcel/internal/domain/pricing"
	"parcel/internal/domain/repository"
	"parcel/internal/usecase"
)

type pricingService struct {
	pricings repository.PricingRepository
	couriers repository.CourierRepository
}

// NewPricingService creates a new pricing service instance
func NewPricingService(pricings repository.PricingRepository, couriers repository.CourierRepository) usecase.PricingUsecase {
	return &pricingService{
		pricings: pricings,
		couriers: couriers,
	}
}

// QuoteFare quotes one vehicle class for a courier over a distance.
func (s *pricingService) QuoteFare(ctx context.Context, courierID string, vehicle entity.VehicleType, distanceKm float64) (int64, error) {
	rates, err := s.ratesOrNil(ctx, courierID)
	if err != nil {
		return 0, err
	}

	return pricing.Quote(vehicle, distanceKm, rates), nil
}

// QuoteAllFares quotes every vehicle class in display order.
func (s *pricingService) QuoteAllFares(ctx context.Context, courierID string, distanceKm float64) ([]usecase.FareQuote, error) {
	rates, err := s.ratesOrNil(ctx, courierID)
	if err != nil {
		return nil, err
	}

	all := pricing.QuoteAll(distanceKm, rates)
	quotes := make([]usecase.FareQuote, 0, len(entity.VehicleTypes))
	for _, vehicle := range entity.VehicleTypes {
		quotes = append(quotes, usecase.FareQuote{
			VehicleType: vehicle,
			Fare:        all[vehicle],
		})
	}

	return quotes, nil
}

// GetCourierPricing returns the courier's rate table, falling back to
// defaults when none has been saved yet.
func (s *pricingService) GetCourierPricing(ctx context.Context, courierID string) (*entity.CourierPricing, error) {
	if _, err := s.couriers.FindCourierByID(ctx, courierID); err != nil {
		return nil, err
	}

	rates, err := s.pricings.FindPricingByCourier(ctx, courierID)
	if err != nil {
		if errors.Is(err, repository.ErrPricingNotFound) {
			return pricing.Defaults(courierID), nil
		}

		return nil, err
	}

	return rates, nil
}

// SaveCourierPricing creates or updates the courier's rate table.
func (s *pricingService) SaveCourierPricing(ctx context.Context, input *usecase.SavePricingInput) (*entity.CourierPricing, error) {
	if _, err := s.couriers.FindCourierByID(ctx, input.CourierID); err != nil {
		return nil, err
	}

	rates := make(map[entity.VehicleType]int64, len(input.VehicleRates))
	for raw, rate := range input.VehicleRates {
		vehicle := entity.VehicleType(raw)
		if !validVehicle(vehicle) {
			return nil, fmt.Errorf("unknown vehicle type: %s", raw)
		}
		if rate <= 0 {
			return nil, fmt.Errorf("rate for %s must be positive", raw)
		}
		rates[vehicle] = rate
	}

	minimum := input.MinimumCharge
	if minimum <= 0 {
		minimum = pricing.DefaultMinimumCharge
	}

	table := &entity.CourierPricing{
		CourierID:     input.CourierID,
		VehicleRates:  rates,
		MinimumCharge: minimum,
	}

	if err := s.pricings.SavePricing(ctx, table); err != nil {
		return nil, fmt.Errorf("failed to save pricing: %w", err)
	}

	return table, nil
}

func (s *pricingService) ratesOrNil(ctx context.Context, courierID string) (*entity.CourierPricing, error) {
	rates, err := s.pricings.FindPricingByCourier(ctx, courierID)
	if err != nil {
		if errors.Is(err, repository.ErrPricingNotFound) {
			return nil, nil
		}

		return nil, err
	}

	return rates, nil
}

func validVehicle(v entity.VehicleType) bool {
	for _, known := range entity.VehicleTypes {
		if v == known {
			return true
		}
	}

	return false
}
