package middleware

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/example/ruchitara/internal/config"
	"github.com/example/ruchitara/internal/utils"
)

const userContextKey = "currentUserPhone"

// AuthMiddleware validates JWT tokens and loads the authenticated phone
// number into context.
func AuthMiddleware(cfg *config.Config) fiber.Handler {
	return func(c *fiber.Ctx) error {
		authHeader := c.Get("Authorization")
		if authHeader == "" {
			return fiber.NewError(fiber.StatusUnauthorized, "missing authorization header")
		}

		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
			return fiber.NewError(fiber.StatusUnauthorized, "invalid authorization header")
		}

		phone, err := utils.ParseToken(cfg.JWTSecret, parts[1])
		if err != nil {
			return fiber.NewError(fiber.StatusUnauthorized, "invalid token")
		}

		c.Locals(userContextKey, phone)
		return c.Next()
	}
}

// GetCurrentPhone extracts the authenticated phone number from context.
func GetCurrentPhone(c *fiber.Ctx) (string, bool) {
	value := c.Locals(userContextKey)
	if value == nil {
		return "", false
	}

	if phone, ok := value.(string); ok {
		return phone, true
	}

	return "", false
}
