package icons

import (
	"github.com/gofiber/fiber/v2"

	"github.com/itzpere/budget-wishlist/app/services"
)

func SetupIconsRoutes(app *fiber.App, svc *services.IconService, apiAuth fiber.Handler) {
	// Used by the item dialogs in the browser
	app.Post("/icons/save", func(c *fiber.Ctx) error { return SaveIcon(c, svc) })
	app.Post("/icons/upload", func(c *fiber.Ctx) error { return UploadIcon(c, svc) })

	api := app.Group("/api/icons")
	api.Use(apiAuth)
	api.Post("/cleanup", func(c *fiber.Ctx) error { return CleanupIcons(c, svc) })
}
