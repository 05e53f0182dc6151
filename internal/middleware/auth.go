package middleware

import (
	"context"
	"strings"

	"github.com/gofiber/fiber/v2"

	"store-it/internal/models"
	"store-it/internal/utils"
)

// UserLocal is the fiber.Ctx locals key carrying the authenticated user.
const UserLocal = "user"

// SessionValidator resolves a bearer token to its (password-scrubbed) user.
type SessionValidator interface {
	Validate(ctx context.Context, token string) (*models.User, error)
}

// BearerToken extracts the token from "Authorization: Bearer <token>".
func BearerToken(c *fiber.Ctx) string {
	auth := c.Get("Authorization")
	if auth == "" {
		return ""
	}
	parts := strings.SplitN(auth, "Bearer ", 2)
	if len(parts) != 2 {
		return ""
	}
	return parts[1]
}

// RequireAuth gates every route in a protected group: no handler logic
// runs without a valid session. The resolved user lands in c.Locals.
func RequireAuth(sessions SessionValidator) fiber.Handler {
	return func(c *fiber.Ctx) error {
		token := BearerToken(c)
		if token == "" {
			return utils.JSONError(c, fiber.StatusUnauthorized, "Missing token")
		}
		user, err := sessions.Validate(c.Context(), token)
		if err != nil {
			return utils.JSONError(c, fiber.StatusUnauthorized, "Invalid or expired token")
		}
		c.Locals(UserLocal, user)
		return c.Next()
	}
}

// UserFromCtx returns the user injected by RequireAuth.
func UserFromCtx(c *fiber.Ctx) *models.User {
	u, _ := c.Locals(UserLocal).(*models.User)
	return u
}
