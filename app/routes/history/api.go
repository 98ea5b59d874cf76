package history

import (
	"database/sql"

	"github.com/gofiber/fiber/v2"

	"github.com/itzpere/budget-wishlist/app/database"
	"github.com/itzpere/budget-wishlist/app/routes/wishlists"
)

// maxEntries caps every history read
const maxEntries = 100

// GetHistory serves the external JSON history feed, optionally filtered to
// the entries concerning one wishlist.
func GetHistory(c *fiber.Ctx, db *sql.DB) error {
	wishlistID := c.Query("wishlistId")
	if wishlistID == "" {
		entries, err := GetRecent(db, maxEntries)
		if err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to fetch history"})
		}
		return c.JSON(entries)
	}

	w, err := wishlists.GetWishlistByID(db, wishlistID)
	if err == sql.ErrNoRows {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Wishlist not found"})
	}
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to fetch history"})
	}

	entries, err := GetRecentForWishlist(db, w.ID, w.Name, maxEntries)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to fetch history"})
	}
	return c.JSON(entries)
}

// HistoryPageHandler renders the audit log for the browser.
func HistoryPageHandler(db *sql.DB) fiber.Handler {
	return func(c *fiber.Ctx) error {
		entries, err := GetRecent(db, maxEntries)
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Failed to load history: "+err.Error())
		}

		currency, err := database.GetCurrency(db)
		if err != nil {
			currency = "$"
		}

		return c.Render("history/index", fiber.Map{
			"Title":       "History - Budget Wishlist",
			"CurrentPage": "history",
			"Entries":     entries,
			"Currency":    currency,
		})
	}
}
