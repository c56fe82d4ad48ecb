package middleware

import (
	"context"
	"strings"

	"github.com/gofiber/fiber/v3"

	"cyco-backend/internal/models"
	"cyco-backend/internal/token"
)

// UserEmailKey is the request-locals key holding the authenticated email.
const UserEmailKey = "userEmail"

// RoleLookup loads the stored user for the admin gate.
type RoleLookup interface {
	FindByEmail(ctx context.Context, email string) (*models.User, error)
}

// RequireAuth verifies the bearer token and stores the email claim in the
// request locals. Missing or bad tokens end the request with 401.
func RequireAuth(tokens *token.Service) fiber.Handler {
	return func(c fiber.Ctx) error {
		header := c.Get("Authorization")
		if header == "" {
			return ErrorResponse(c, fiber.StatusUnauthorized, CodeUnauthenticated, "missing authorization header")
		}

		raw, ok := strings.CutPrefix(header, "Bearer ")
		if !ok {
			return ErrorResponse(c, fiber.StatusUnauthorized, CodeUnauthenticated, "authorization header must be a bearer token")
		}

		email, err := tokens.Verify(raw)
		if err != nil {
			return ErrorResponse(c, fiber.StatusUnauthorized, CodeUnauthenticated, "invalid or expired token")
		}

		c.Locals(UserEmailKey, email)
		return c.Next()
	}
}

// RequireAdmin checks the caller's stored role. Must run after RequireAuth.
func RequireAdmin(users RoleLookup) fiber.Handler {
	return func(c fiber.Ctx) error {
		email, _ := c.Locals(UserEmailKey).(string)
		if email == "" {
			return ErrorResponse(c, fiber.StatusUnauthorized, CodeUnauthenticated, "authentication required")
		}

		user, err := users.FindByEmail(c.Context(), email)
		if err != nil || user.Role != models.RoleAdmin {
			return ErrorResponse(c, fiber.StatusForbidden, CodeForbidden, "admin access required")
		}

		return c.Next()
	}
}

// AuthedEmail returns the email set by RequireAuth.
func AuthedEmail(c fiber.Ctx) string {
	email, _ := c.Locals(UserEmailKey).(string)
	return email
}
