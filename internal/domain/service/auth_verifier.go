package service

import (
	"context"
)

// Identity is the verified caller identity extracted from an auth
// provider ID token.
type Identity struct {
	UID           string // provider-assigned user id
	Email         string
	EmailVerified bool
	Name          string
}

// AuthVerifier defines the interface for verifying ID tokens issued by
// the managed auth provider to the mobile apps.
type AuthVerifier interface {
	// VerifyIDToken verifies a bearer ID token and returns the caller identity.
	VerifyIDToken(ctx context.Context, idToken string) (*Identity, error)
}
