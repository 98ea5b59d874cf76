package wishlists

import (
	"database/sql"

	"github.com/gofiber/fiber/v2"

	"github.com/itzpere/budget-wishlist/app/ledger"
)

func SetupWishlistsRoutes(app *fiber.App, db *sql.DB, led *ledger.Ledger) {
	app.Get("/", IndexPageHandler(db))
	app.Get("/wishlist/:id", DetailPageHandler(db))

	app.Post("/wishlists", func(c *fiber.Ctx) error { return CreateWishlist(c, led) })
	app.Post("/wishlists/:id/delete", func(c *fiber.Ctx) error { return DeleteWishlist(c, led) })
	app.Post("/wishlists/:id/budget", func(c *fiber.Ctx) error { return UpdateBudget(c, led) })
}
