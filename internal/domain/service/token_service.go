package service

import (
	"time"
)

// Claims carries the identity baked into an admin session token.
type Claims struct {
	AccountID string
	Roles     []string
	Type      string // access or refresh
}

// TokenService defines the interface for generating and validating the
// admin dashboard's session JWTs. Customer and driver surfaces
// authenticate through the backend auth provider instead (see
// AuthVerifier).
type TokenService interface {
	// GenerateTokens creates a new access token and refresh token for an account.
	GenerateTokens(accountID string, roles []string) (accessToken string, refreshToken string, err error)

	// ValidateAccessToken checks an access token and returns its claims.
	ValidateAccessToken(tokenString string) (*Claims, error)

	// ValidateRefreshToken checks a refresh token and returns its claims.
	ValidateRefreshToken(tokenString string) (*Claims, error)

	// GetRefreshTokenDuration returns the configured duration for refresh tokens.
	GetRefreshTokenDuration() time.Duration
}
