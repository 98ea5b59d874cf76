package settings

import (
	"database/sql"

	"github.com/gofiber/fiber/v2"

	"github.com/itzpere/budget-wishlist/app/database"
	"github.com/itzpere/budget-wishlist/app/models"
)

func SettingsPageHandler(db *sql.DB) fiber.Handler {
	return func(c *fiber.Ctx) error {
		currency, err := database.GetCurrency(db)
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Failed to load settings: "+err.Error())
		}

		apiEnabled, err := database.GetAPIEnabled(db)
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Failed to load settings: "+err.Error())
		}

		return c.Render("settings/index", fiber.Map{
			"Title":       "Settings - Budget Wishlist",
			"CurrentPage": "settings",
			"Currency":    currency,
			"APIEnabled":  apiEnabled,
		})
	}
}

func UpdateSettings(c *fiber.Ctx, db *sql.DB) error {
	if currency := c.FormValue("currency"); currency != "" {
		if err := database.SetSetting(db, models.SettingCurrency, currency); err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Failed to save settings: "+err.Error())
		}
	}

	apiEnabled := c.FormValue("apiEnabled") == "true"
	if err := database.SetAPIEnabled(db, apiEnabled); err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "Failed to save settings: "+err.Error())
	}

	return c.Redirect("/settings")
}
