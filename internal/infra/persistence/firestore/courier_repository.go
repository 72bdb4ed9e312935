package firestore

import (
	"context"
	"time"

	"cloud.google.com/go/firestore"
	"github.com/pkg/errors"
	"google.golang.org/api/iterator"

	"parcel/internal/domain/entity"
	"parcel/internal/domain/repository"
)

// courierRepository implements repository.CourierRepository on the
// "couriers" collection.
type courierRepository struct {
	client *firestore.Client
}

// NewCourierRepository is the constructor for courierRepository.
func NewCourierRepository(client *firestore.Client) repository.CourierRepository {
	return &courierRepository{client: client}
}

func (repo *courierRepository) couriers() *firestore.CollectionRef {
	return repo.client.Collection(collectionCouriers)
}

// CreateCourier persists a new courier and fills in its generated id.
func (repo *courierRepository) CreateCourier(ctx context.Context, courier *entity.Courier) error {
	ref := repo.couriers().NewDoc()

	now := time.Now().UTC()
	courier.ID = ref.ID
	courier.CreatedAt = now
	courier.UpdatedAt = now

	if _, err := ref.Create(ctx, courier); err != nil {
		return errors.Wrap(err, "failed to create courier")
	}

	return nil
}

// FindCourierByID retrieves a single courier document.
func (repo *courierRepository) FindCourierByID(ctx context.Context, id string) (*entity.Courier, error) {
	snap, err := repo.couriers().Doc(id).Get(ctx)
	if err != nil {
		if isNotFound(err) {
			return nil, repository.ErrCourierNotFound
		}

		return nil, errors.Wrap(err, "failed to find courier by id")
	}

	return decodeCourier(snap)
}

// FindAllCouriers retrieves every courier, for the admin dashboard.
func (repo *courierRepository) FindAllCouriers(ctx context.Context) ([]*entity.Courier, error) {
	return decodeCouriers(repo.couriers().OrderBy("name", firestore.Asc).Documents(ctx))
}

// FindActiveCouriers retrieves couriers with isActive == true, for the
// customer selection list.
func (repo *courierRepository) FindActiveCouriers(ctx context.Context) ([]*entity.Courier, error) {
	return decodeCouriers(repo.couriers().Where("isActive", "==", true).Documents(ctx))
}

// UpdateCourier merge-writes the courier's editable fields.
func (repo *courierRepository) UpdateCourier(ctx context.Context, courier *entity.Courier) error {
	updates := map[string]any{
		"name":         courier.Name,
		"logoUrl":      courier.LogoURL,
		"branchNumber": courier.BranchNumber,
		"address":      courier.Address,
		"phone":        courier.Phone,
		"updatedAt":    time.Now().UTC(),
	}

	if _, err := repo.couriers().Doc(courier.ID).Set(ctx, updates, firestore.MergeAll); err != nil {
		if isNotFound(err) {
			return repository.ErrCourierNotFound
		}

		return errors.Wrap(err, "failed to update courier")
	}

	return nil
}

// SetCourierActive toggles the isActive flag.
func (repo *courierRepository) SetCourierActive(ctx context.Context, id string, active bool) error {
	_, err := repo.couriers().Doc(id).Update(ctx, []firestore.Update{
		{Path: "isActive", Value: active},
		{Path: "updatedAt", Value: time.Now().UTC()},
	})
	if err != nil {
		if isNotFound(err) {
			return repository.ErrCourierNotFound
		}

		return errors.Wrap(err, "failed to set courier active flag")
	}

	return nil
}

// DeleteCourier removes the courier document.
func (repo *courierRepository) DeleteCourier(ctx context.Context, id string) error {
	if _, err := repo.couriers().Doc(id).Delete(ctx); err != nil {
		return errors.Wrap(err, "failed to delete courier")
	}

	return nil
}

func decodeCourier(snap *firestore.DocumentSnapshot) (*entity.Courier, error) {
	courier := new(entity.Courier)
	if err := snap.DataTo(courier); err != nil {
		return nil, errors.Wrap(err, "failed to decode courier")
	}
	courier.ID = snap.Ref.ID

	return courier, nil
}

func decodeCouriers(docs *firestore.DocumentIterator) ([]*entity.Courier, error) {
	defer docs.Stop()

	var couriers []*entity.Courier
	for {
		snap, err := docs.Next()
		if errors.Is(err, iterator.Done) {
			break
		}
		if err != nil {
			return nil, errors.Wrap(err, "failed to iterate couriers")
		}

		courier, err := decodeCourier(snap)
		if err != nil {
			return nil, err
		}
		couriers = append(couriers, courier)
	}

	return couriers, nil
}
