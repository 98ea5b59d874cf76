package backup

import (
	"database/sql"

	"github.com/gofiber/fiber/v2"
)

func SetupBackupRoutes(app *fiber.App, db *sql.DB, apiAuth fiber.Handler) {
	// Browser download/upload from the settings page
	app.Get("/settings/export", func(c *fiber.Ctx) error { return ExportHandler(c, db) })
	app.Post("/settings/import", func(c *fiber.Ctx) error { return ImportHandler(c, db) })

	// Same operations for API clients
	api := app.Group("/api/backup")
	api.Use(apiAuth)
	api.Get("/export", func(c *fiber.Ctx) error { return ExportHandler(c, db) })
	api.Post("/import", func(c *fiber.Ctx) error { return ImportHandler(c, db) })
}
