package wishlists

import (
	"database/sql"

	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"

	"github.com/itzpere/budget-wishlist/app/database"
	"github.com/itzpere/budget-wishlist/app/models"
)

func IndexPageHandler(db *sql.DB) fiber.Handler {
	return func(c *fiber.Ctx) error {
		summaries, err := GetAllWishlists(db)
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Failed to load wishlists: "+err.Error())
		}

		currency, err := database.GetCurrency(db)
		if err != nil {
			currency = "$"
		}

		return c.Render("index", fiber.Map{
			"Title":       "Budget Wishlist",
			"CurrentPage": "home",
			"Wishlists":   summaries,
			"Currency":    currency,
		})
	}
}

func DetailPageHandler(db *sql.DB) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id := c.Params("id")

		w, err := GetWishlistByID(db, id)
		if err == sql.ErrNoRows {
			return fiber.NewError(fiber.StatusNotFound, "Wishlist not found")
		}
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Failed to load wishlist: "+err.Error())
		}

		items, err := GetItemsByWishlist(db, id)
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Failed to load items: "+err.Error())
		}

		currency, err := database.GetCurrency(db)
		if err != nil {
			currency = "$"
		}

		pendingTotal := decimal.Zero
		purchasedTotal := decimal.Zero
		for _, item := range items {
			if item.Status == models.StatusPurchased {
				purchasedTotal = purchasedTotal.Add(item.Price)
			} else {
				pendingTotal = pendingTotal.Add(item.Price)
			}
		}

		return c.Render("wishlist/detail", fiber.Map{
			"Title":          w.Name + " - Budget Wishlist",
			"CurrentPage":    "wishlist",
			"Wishlist":       w,
			"Items":          items,
			"Currency":       currency,
			"PendingTotal":   pendingTotal,
			"PurchasedTotal": purchasedTotal,
		})
	}
}
