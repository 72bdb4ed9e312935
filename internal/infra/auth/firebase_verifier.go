package auth

import (
	"context"

	firebase "firebase.google.com/go/v4"
	fbauth "firebase.google.com/go/v4/auth"

	domainerrors "parcel/internal/domain/errors"
	"parcel/internal/domain/service"
	"parcel/internal/errors"
)

// firebaseVerifier validates provider-issued ID tokens for the
// customer and driver apps.
type firebaseVerifier struct {
	client *fbauth.Client
}

// NewFirebaseVerifier creates an AuthVerifier backed by the Firebase
// Auth admin client.
func NewFirebaseVerifier(ctx context.Context, app *firebase.App) (service.AuthVerifier, error) {
	client, err := app.Auth(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "get firebase auth client")
	}

	return &firebaseVerifier{client: client}, nil
}

// VerifyIDToken verifies a bearer ID token and returns the caller identity.
func (v *firebaseVerifier) VerifyIDToken(ctx context.Context, idToken string) (*service.Identity, error) {
	token, err := v.client.VerifyIDToken(ctx, idToken)
	if err != nil {
		return nil, domainerrors.ErrIDTokenInvalid
	}

	identity := &service.Identity{UID: token.UID}
	if email, ok := token.Claims["email"].(string); ok {
		identity.Email = email
	}
	if verified, ok := token.Claims["email_verified"].(bool); ok {
		identity.EmailVerified = verified
	}
	if name, ok := token.Claims["name"].(string); ok {
		identity.Name = name
	}

	return identity, nil
}
