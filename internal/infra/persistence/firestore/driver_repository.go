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

// driverRepository implements repository.DriverRepository on the
// "drivers" collection.
type driverRepository struct {
	client *firestore.Client
}

// NewDriverRepository is the constructor for driverRepository.
func NewDriverRepository(client *firestore.Client) repository.DriverRepository {
	return &driverRepository{client: client}
}

func (repo *driverRepository) drivers() *firestore.CollectionRef {
	return repo.client.Collection(collectionDrivers)
}

// CreateDriver persists a new driver in the pending state.
func (repo *driverRepository) CreateDriver(ctx context.Context, driver *entity.Driver) error {
	// Drivers keep their auth provider uid as document id when the
	// driver app registered them; admin-created drivers get a fresh id.
	ref := repo.drivers().NewDoc()
	if driver.ID != "" {
		ref = repo.drivers().Doc(driver.ID)
	}

	now := time.Now().UTC()
	driver.ID = ref.ID
	driver.Status = entity.DriverPending
	driver.CreatedAt = now
	driver.UpdatedAt = now

	if _, err := ref.Create(ctx, driver); err != nil {
		return errors.Wrap(err, "failed to create driver")
	}

	return nil
}

// FindDriverByID retrieves a single driver document.
func (repo *driverRepository) FindDriverByID(ctx context.Context, id string) (*entity.Driver, error) {
	snap, err := repo.drivers().Doc(id).Get(ctx)
	if err != nil {
		if isNotFound(err) {
			return nil, repository.ErrDriverNotFound
		}

		return nil, errors.Wrap(err, "failed to find driver by id")
	}

	return decodeDriver(snap)
}

// FindDriversByCourier retrieves all drivers belonging to a courier.
func (repo *driverRepository) FindDriversByCourier(ctx context.Context, courierID string) ([]*entity.Driver, error) {
	return decodeDrivers(repo.drivers().Where("courierId", "==", courierID).Documents(ctx))
}

// FindDriversByStatus retrieves drivers in a given approval state.
func (repo *driverRepository) FindDriversByStatus(ctx context.Context, status entity.DriverStatus) ([]*entity.Driver, error) {
	return decodeDrivers(repo.drivers().Where("status", "==", string(status)).Documents(ctx))
}

// UpdateDriver merge-writes the driver's editable fields.
func (repo *driverRepository) UpdateDriver(ctx context.Context, driver *entity.Driver) error {
	updates := map[string]any{
		"name":          driver.Name,
		"phone":         driver.Phone,
		"vehicleType":   driver.VehicleType,
		"vehicleNumber": driver.VehicleNumber,
		"licenseNumber": driver.LicenseNumber,
		"photoUrl":      driver.PhotoURL,
		"updatedAt":     time.Now().UTC(),
	}

	if _, err := repo.drivers().Doc(driver.ID).Set(ctx, updates, firestore.MergeAll); err != nil {
		if isNotFound(err) {
			return repository.ErrDriverNotFound
		}

		return errors.Wrap(err, "failed to update driver")
	}

	return nil
}

// UpdateDriverStatus moves the driver between approval states.
func (repo *driverRepository) UpdateDriverStatus(ctx context.Context, id string, status entity.DriverStatus) error {
	_, err := repo.drivers().Doc(id).Update(ctx, []firestore.Update{
		{Path: "status", Value: string(status)},
		{Path: "updatedAt", Value: time.Now().UTC()},
	})
	if err != nil {
		if isNotFound(err) {
			return repository.ErrDriverNotFound
		}

		return errors.Wrap(err, "failed to update driver status")
	}

	return nil
}

func decodeDriver(snap *firestore.DocumentSnapshot) (*entity.Driver, error) {
	driver := new(entity.Driver)
	if err := snap.DataTo(driver); err != nil {
		return nil, errors.Wrap(err, "failed to decode driver")
	}
	driver.ID = snap.Ref.ID

	return driver, nil
}

func decodeDrivers(docs *firestore.DocumentIterator) ([]*entity.Driver, error) {
	defer docs.Stop()

	var drivers []*entity.Driver
	for {
		snap, err := docs.Next()
		if errors.Is(err, iterator.Done) {
			break
		}
		if err != nil {
			return nil, errors.Wrap(err, "failed to iterate drivers")
		}

		driver, err := decodeDriver(snap)
		if err != nil {
			return nil, err
		}
		drivers = append(drivers, driver)
	}

	return drivers, nil
}
