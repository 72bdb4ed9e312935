package usecase

import (
	"context"

	"parcel/internal/domain/entity"
)

// UpdateProfileInput represents the input for updating a user profile
type UpdateProfileInput struct {
	UserID string  `json:"-"`
	Name   *string `json:"name,omitempty"`
	Phone  *string `json:"phone,omitempty"`
	// PhotoDataURI is a base64 data URI; small images stay inline on
	// the profile document, larger ones go to the blob store.
	PhotoDataURI *string `json:"photo_data_uri,omitempty"`
	FCMToken     *string `json:"fcm_token,omitempty"`
}

// AdminTokens is the admin dashboard session pair.
type AdminTokens struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
}

// AdminRegisterInput represents the input for creating an admin account
type AdminRegisterInput struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=8"`
	Name     string `json:"name" validate:"required"`
}

// ProfileUsecase defines the interface for identity and profile use cases
type ProfileUsecase interface {
	// LoginWithIDToken verifies a provider ID token and upserts the
	// caller's profile in the given role.
	LoginWithIDToken(ctx context.Context, idToken string, role entity.Role) (*entity.UserProfile, error)

	// GetProfile returns a user's profile.
	GetProfile(ctx context.Context, userID string) (*entity.UserProfile, error)

	// UpdateProfile applies partial edits, routing oversized photos to
	// the blob store.
	UpdateProfile(ctx context.Context, input *UpdateProfileInput) (*entity.UserProfile, error)

	// AdminLogin checks dashboard credentials and issues session tokens.
	AdminLogin(ctx context.Context, email, password string) (*AdminTokens, error)

	// AdminRefresh rotates the session pair from a refresh token.
	AdminRefresh(ctx context.Context, refreshToken string) (*AdminTokens, error)

	// AdminRegister creates a new dashboard account.
	AdminRegister(ctx context.Context, input *AdminRegisterInput) (*entity.AdminAccount, error)
}
