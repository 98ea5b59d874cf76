package items

import (
	"github.com/gofiber/fiber/v2"

	"github.com/itzpere/budget-wishlist/app/ledger"
	"github.com/itzpere/budget-wishlist/app/services"
)

func SetupItemsRoutes(app *fiber.App, led *ledger.Ledger, icons *services.IconService) {
	app.Post("/wishlist/:id/items", func(c *fiber.Ctx) error { return AddItem(c, led) })

	app.Post("/items/:id/update", func(c *fiber.Ctx) error { return UpdateItem(c, led) })
	app.Post("/items/:id/delete", func(c *fiber.Ctx) error { return DeleteItem(c, led, icons) })
	app.Post("/items/:id/purchase", func(c *fiber.Ctx) error { return PurchaseItem(c, led) })
	app.Post("/items/:id/unpurchase", func(c *fiber.Ctx) error { return UnpurchaseItem(c, led) })
}
