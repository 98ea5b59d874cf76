package settings

import (
	"database/sql"

	"github.com/gofiber/fiber/v2"
)

func SetupSettingsRoutes(app *fiber.App, db *sql.DB) {
	app.Get("/settings", SettingsPageHandler(db))
	app.Post("/settings", func(c *fiber.Ctx) error { return UpdateSettings(c, db) })
}
