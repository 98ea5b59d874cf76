package auth

import (
	"database/sql"

	"github.com/gofiber/fiber/v2"

	"github.com/itzpere/budget-wishlist/app/database"
)

// APIAuth gates the external JSON API. A request is authorized when the
// api_enabled setting is on, a secret is configured, and the request
// carries it in either the Authorization or the X-API-Secret header.
// Browser-facing pages and forms are never gated.
func APIAuth(db *sql.DB, secret string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		enabled, err := database.GetAPIEnabled(db)
		if err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to check API status"})
		}
		if !enabled {
			return c.Status(fiber.StatusForbidden).JSON(fiber.Map{"error": "API is disabled"})
		}
		if secret == "" {
			return c.Status(fiber.StatusForbidden).JSON(fiber.Map{"error": "API secret not configured"})
		}

		if c.Get("Authorization") == "Bearer "+secret || c.Get("X-API-Secret") == secret {
			return c.Next()
		}
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Invalid API credentials"})
	}
}
