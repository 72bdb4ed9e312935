// Package middleware holds the HTTP server's echo middleware.
package middleware

import (
	"slices"
	"strings"

	"parcel/internal/delivery/http/response"
	"parcel/internal/domain/entity"
	"parcel/internal/domain/service"

	"github.com/labstack/echo/v4"
)

// Context keys set by the authentication middleware.
const (
	keyCallerID = "callerID"
	keyRoles    = "roles"
)

// AuthMiddleware authenticates the three app surfaces: dashboard
// admins carry a session JWT, customers and drivers carry an auth
// provider ID token.
type AuthMiddleware struct {
	tokenSvc service.TokenService
	verifier service.AuthVerifier
}

// NewAuthMiddleware is the constructor for AuthMiddleware.
func NewAuthMiddleware(tokenSvc service.TokenService, verifier service.AuthVerifier) *AuthMiddleware {
	return &AuthMiddleware{tokenSvc: tokenSvc, verifier: verifier}
}

// AuthenticateAdmin validates the dashboard's JWT access token.
func (m *AuthMiddleware) AuthenticateAdmin(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		tokenString, ok := bearerToken(c)
		if !ok {
			return response.Unauthorized(c, "MISSING_TOKEN", "Authorization header is missing or malformed")
		}

		claims, err := m.tokenSvc.ValidateAccessToken(tokenString)
		if err != nil {
			return response.Unauthorized(c, "INVALID_TOKEN", "Invalid or expired token")
		}

		c.Set(keyCallerID, claims.AccountID)
		c.Set(keyRoles, claims.Roles)

		return next(c)
	}
}

// AuthenticateUser validates an auth provider ID token and tags the
// request with the caller's uid and surface role.
func (m *AuthMiddleware) AuthenticateUser(role entity.Role) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			tokenString, ok := bearerToken(c)
			if !ok {
				return response.Unauthorized(c, "MISSING_TOKEN", "Authorization header is missing or malformed")
			}

			identity, err := m.verifier.VerifyIDToken(c.Request().Context(), tokenString)
			if err != nil {
				return response.Unauthorized(c, "INVALID_TOKEN", "Invalid or expired ID token")
			}

			c.Set(keyCallerID, identity.UID)
			c.Set(keyRoles, []string{string(role)})

			return next(c)
		}
	}
}

// RequireRole checks the caller carries a specific role. It must be
// used AFTER one of the Authenticate middlewares.
func (m *AuthMiddleware) RequireRole(requiredRole string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			roles, ok := c.Get(keyRoles).([]string)
			if !ok || !slices.Contains(roles, requiredRole) {
				return response.Forbidden(c, "FORBIDDEN", "Permission denied: require '"+requiredRole+"' role")
			}

			return next(c)
		}
	}
}

// CallerID returns the authenticated caller's identifier.
func CallerID(c echo.Context) string {
	id, _ := c.Get(keyCallerID).(string)

	return id
}

func bearerToken(c echo.Context) (string, bool) {
	authHeader := c.Request().Header.Get("Authorization")
	if authHeader == "" {
		return "", false
	}

	tokenString := strings.TrimPrefix(authHeader, "Bearer ")
	if tokenString == authHeader || tokenString == "" {
		return "", false
	}

	return tokenString, true
}
