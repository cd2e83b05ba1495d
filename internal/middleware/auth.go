package middleware

import (
	"context"
	"errors"
	"strings"

	"teahouse/internal/apperrors"
	"teahouse/internal/services"

	"github.com/gofiber/fiber/v2"
)

const claimsKey = "claims"

// TokenValidator is implemented by *services.AuthService.
type TokenValidator interface {
	ValidateToken(tokenString string) (*services.Claims, error)
}

// AuthRequired is a Fiber middleware to check for a valid JWT token. The claims
// are stored in the request locals for later handlers.
func AuthRequired(auth TokenValidator) fiber.Handler {
	return func(c *fiber.Ctx) error {
		authHeader := c.Get(fiber.HeaderAuthorization)
		if authHeader == "" {
			return apperrors.ErrUnauthorized.WithDetails("Authorization header is required")
		}

		// Expected format: "Bearer <token>"
		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || parts[0] != "Bearer" || parts[1] == "" {
			return apperrors.ErrUnauthorized.WithDetails("Authorization header format must be 'Bearer <token>'")
		}

		claims, err := auth.ValidateToken(parts[1])
		if err != nil {
			return err
		}

		c.Locals(claimsKey, claims)
		return c.Next()
	}
}

// ClaimsFrom returns the claims stored by AuthRequired.
func ClaimsFrom(c *fiber.Ctx) (*services.Claims, bool) {
	claims, ok := c.Locals(claimsKey).(*services.Claims)
	return claims, ok && claims != nil
}

// AdminRequired lets only admins through. It must run after AuthRequired.
func AdminRequired() fiber.Handler {
	return func(c *fiber.Ctx) error {
		claims, ok := ClaimsFrom(c)
		if !ok {
			return apperrors.ErrUnauthorized
		}
		if !claims.IsAdmin() {
			return apperrors.ErrForbidden.WithDetails("admin role required")
		}
		return c.Next()
	}
}

// KeyResolver maps an id taken from a path, storage key or logical id, to the
// storage key of the record. *services.UserService implements it.
type KeyResolver interface {
	ResolveKey(ctx context.Context, id string) (string, error)
}

// SelfOrAdmin lets through admins and the user whose id is in the named path
// parameter. When resolver is set, a path id that is not the caller's storage
// key is resolved first, so a user may address their own record by its logical
// id. It must run after AuthRequired.
func SelfOrAdmin(param string, resolver KeyResolver) fiber.Handler {
	return func(c *fiber.Ctx) error {
		claims, ok := ClaimsFrom(c)
		if !ok {
			return apperrors.ErrUnauthorized
		}
		id := c.Params(param)
		if claims.IsAdmin() || claims.ID == id {
			return c.Next()
		}
		if resolver != nil {
			key, err := resolver.ResolveKey(c.UserContext(), id)
			switch {
			case err == nil && key == claims.ID:
				return c.Next()
			case err != nil && !errors.Is(err, apperrors.ErrNotFound):
				return err
			}
		}
		return apperrors.ErrForbidden.WithDetails("users may only modify their own account")
	}
}
