package history

import (
	"database/sql"

	"github.com/gofiber/fiber/v2"
)

func SetupHistoryRoutes(app *fiber.App, db *sql.DB, apiAuth fiber.Handler) {
	app.Get("/history", HistoryPageHandler(db))

	api := app.Group("/api/history")
	api.Use(apiAuth)
	api.Get("/", func(c *fiber.Ctx) error { return GetHistory(c, db) })
}
