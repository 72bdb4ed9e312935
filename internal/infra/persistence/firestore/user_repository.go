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

// userRepository implements repository.UserRepository on the "users"
// and "adminAccounts" collections.
type userRepository struct {
	client *firestore.Client
}

// NewUserRepository is the constructor for userRepository.
func NewUserRepository(client *firestore.Client) repository.UserRepository {
	return &userRepository{client: client}
}

// UpsertProfile creates or merge-updates a profile keyed by the auth
// provider uid.
func (repo *userRepository) UpsertProfile(ctx context.Context, profile *entity.UserProfile) error {
	updates := map[string]any{
		"role":      string(profile.Role),
		"name":      profile.Name,
		"email":     profile.Email,
		"phone":     profile.Phone,
		"updatedAt": time.Now().UTC(),
	}
	if profile.FCMToken != "" {
		updates["fcmToken"] = profile.FCMToken
	}
	// Exactly one of the photo fields is kept per profile.
	if profile.PhotoData != "" {
		updates["photoData"] = profile.PhotoData
		updates["photoUrl"] = firestore.Delete
	} else if profile.PhotoURL != "" {
		updates["photoUrl"] = profile.PhotoURL
		updates["photoData"] = firestore.Delete
	}

	ref := repo.client.Collection(collectionUsers).Doc(profile.ID)

	snap, err := ref.Get(ctx)
	exists, err := docExists(snap, err)
	if err != nil {
		return errors.Wrap(err, "failed to read profile")
	}
	if !exists {
		updates["createdAt"] = time.Now().UTC()
	}

	if _, err := ref.Set(ctx, updates, firestore.MergeAll); err != nil {
		return errors.Wrap(err, "failed to upsert profile")
	}

	return nil
}

// FindProfileByID retrieves a profile document.
func (repo *userRepository) FindProfileByID(ctx context.Context, id string) (*entity.UserProfile, error) {
	snap, err := repo.client.Collection(collectionUsers).Doc(id).Get(ctx)
	if err != nil {
		if isNotFound(err) {
			return nil, repository.ErrProfileNotFound
		}

		return nil, errors.Wrap(err, "failed to find profile by id")
	}

	profile := new(entity.UserProfile)
	if err := snap.DataTo(profile); err != nil {
		return nil, errors.Wrap(err, "failed to decode profile")
	}
	profile.ID = snap.Ref.ID

	return profile, nil
}

// FindAdminByEmail retrieves an admin account for dashboard login.
func (repo *userRepository) FindAdminByEmail(ctx context.Context, email string) (*entity.AdminAccount, error) {
	docs := repo.client.Collection(collectionAdmins).
		Where("email", "==", email).
		Limit(1).
		Documents(ctx)
	defer docs.Stop()

	snap, err := docs.Next()
	if errors.Is(err, iterator.Done) {
		return nil, repository.ErrAdminNotFound
	}
	if err != nil {
		return nil, errors.Wrap(err, "failed to find admin by email")
	}

	admin := new(entity.AdminAccount)
	if err := snap.DataTo(admin); err != nil {
		return nil, errors.Wrap(err, "failed to decode admin account")
	}
	admin.ID = snap.Ref.ID

	return admin, nil
}

// CreateAdmin persists a new admin account.
func (repo *userRepository) CreateAdmin(ctx context.Context, admin *entity.AdminAccount) error {
	ref := repo.client.Collection(collectionAdmins).NewDoc()
	admin.ID = ref.ID
	admin.CreatedAt = time.Now().UTC()

	if _, err := ref.Create(ctx, admin); err != nil {
		return errors.Wrap(err, "failed to create admin account")
	}

	return nil
}

// paymentMethodRepository implements repository.PaymentMethodRepository
// on the "paymentMethods" collection.
type paymentMethodRepository struct {
	client *firestore.Client
}

// NewPaymentMethodRepository is the constructor for paymentMethodRepository.
func NewPaymentMethodRepository(client *firestore.Client) repository.PaymentMethodRepository {
	return &paymentMethodRepository{client: client}
}

// CreatePaymentMethod persists a new payment method for a user.
func (repo *paymentMethodRepository) CreatePaymentMethod(ctx context.Context, method *entity.PaymentMethod) error {
	ref := repo.client.Collection(collectionPaymentMethods).NewDoc()
	method.ID = ref.ID
	method.CreatedAt = time.Now().UTC()

	if _, err := ref.Create(ctx, method); err != nil {
		return errors.Wrap(err, "failed to create payment method")
	}

	return nil
}

// FindPaymentMethodsByUser retrieves a user's payment methods.
func (repo *paymentMethodRepository) FindPaymentMethodsByUser(ctx context.Context, userID string) ([]*entity.PaymentMethod, error) {
	docs := repo.client.Collection(collectionPaymentMethods).
		Where("userId", "==", userID).
		Documents(ctx)
	defer docs.Stop()

	var methods []*entity.PaymentMethod
	for {
		snap, err := docs.Next()
		if errors.Is(err, iterator.Done) {
			break
		}
		if err != nil {
			return nil, errors.Wrap(err, "failed to iterate payment methods")
		}

		method := new(entity.PaymentMethod)
		if err := snap.DataTo(method); err != nil {
			return nil, errors.Wrap(err, "failed to decode payment method")
		}
		method.ID = snap.Ref.ID
		methods = append(methods, method)
	}

	return methods, nil
}

// DeletePaymentMethod removes a payment method document.
func (repo *paymentMethodRepository) DeletePaymentMethod(ctx context.Context, id string) error {
	if _, err := repo.client.Collection(collectionPaymentMethods).Doc(id).Delete(ctx); err != nil {
		return errors.Wrap(err, "failed to delete payment method")
	}

	return nil
}
