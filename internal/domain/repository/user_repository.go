package repository

import (
	"context"

	"parcel/internal/domain/entity"
	"parcel/internal/errors"
)

// Domain-specific errors for user persistence.
var (
	// ErrProfileNotFound is returned when a profile document does not exist.
	ErrProfileNotFound = errors.New("user profile not found")
	// ErrAdminNotFound is returned when no admin account matches the email.
	ErrAdminNotFound = errors.New("admin account not found")
	// ErrPaymentMethodNotFound is returned when a payment method does not exist.
	ErrPaymentMethodNotFound = errors.New("payment method not found")
)

// UserRepository defines document-store operations for profiles and
// admin accounts.
type UserRepository interface {
	// UpsertProfile creates or merge-updates a profile keyed by the
	// auth provider uid.
	UpsertProfile(ctx context.Context, profile *entity.UserProfile) error

	// FindProfileByID retrieves a profile document.
	FindProfileByID(ctx context.Context, id string) (*entity.UserProfile, error)

	// FindAdminByEmail retrieves an admin account for dashboard login.
	FindAdminByEmail(ctx context.Context, email string) (*entity.AdminAccount, error)

	// CreateAdmin persists a new admin account.
	CreateAdmin(ctx context.Context, admin *entity.AdminAccount) error
}

// PaymentMethodRepository defines document-store operations for stored
// payment options.
type PaymentMethodRepository interface {
	// CreatePaymentMethod persists a new payment method for a user.
	CreatePaymentMethod(ctx context.Context, method *entity.PaymentMethod) error

	// FindPaymentMethodsByUser retrieves a user's payment methods.
	FindPaymentMethodsByUser(ctx context.Context, userID string) ([]*entity.PaymentMethod, error)

	// DeletePaymentMethod removes a payment method document.
	DeletePaymentMethod(ctx context.Context, id string) error
}
