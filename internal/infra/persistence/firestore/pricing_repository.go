package firestore

import (
	"context"
	"time"

	"cloud.google.com/go/firestore"
	"github.com/pkg/errors"

	"parcel/internal/domain/entity"
	"parcel/internal/domain/repository"
)

// pricingRepository implements repository.PricingRepository on the
// "courierPricing" collection, keyed by courier id.
type pricingRepository struct {
	client *firestore.Client
}

// NewPricingRepository is the constructor for pricingRepository.
func NewPricingRepository(client *firestore.Client) repository.PricingRepository {
	return &pricingRepository{client: client}
}

// FindPricingByCourier retrieves the courier's rate table.
func (repo *pricingRepository) FindPricingByCourier(ctx context.Context, courierID string) (*entity.CourierPricing, error) {
	snap, err := repo.client.Collection(collectionPricing).Doc(courierID).Get(ctx)
	if err != nil {
		if isNotFound(err) {
			return nil, repository.ErrPricingNotFound
		}

		return nil, errors.Wrap(err, "failed to find courier pricing")
	}

	pricing := new(entity.CourierPricing)
	if err := snap.DataTo(pricing); err != nil {
		return nil, errors.Wrap(err, "failed to decode courier pricing")
	}
	pricing.CourierID = snap.Ref.ID

	return pricing, nil
}

// SavePricing creates or merge-updates the courier's rate table.
func (repo *pricingRepository) SavePricing(ctx context.Context, pricing *entity.CourierPricing) error {
	rates := make(map[string]int64, len(pricing.VehicleRates))
	for vehicle, rate := range pricing.VehicleRates {
		rates[string(vehicle)] = rate
	}

	updates := map[string]any{
		"vehicleRates":  rates,
		"minimumCharge": pricing.MinimumCharge,
		"updatedAt":     time.Now().UTC(),
	}

	ref := repo.client.Collection(collectionPricing).Doc(pricing.CourierID)
	if _, err := ref.Set(ctx, updates, firestore.MergeAll); err != nil {
		return errors.Wrap(err, "failed to save courier pricing")
	}

	return nil
}
