package wishlists

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"

	"github.com/itzpere/budget-wishlist/app/ledger"
)

// CreateWishlist handles the new-wishlist form. An unparsable budget falls
// back to zero rather than failing the submission.
func CreateWishlist(c *fiber.Ctx, led *ledger.Ledger) error {
	name := c.FormValue("name")
	if name == "" {
		return fiber.NewError(fiber.StatusBadRequest, "Wishlist name is required")
	}

	budget, err := decimal.NewFromString(c.FormValue("budgetLimit"))
	if err != nil {
		budget = decimal.Zero
	}

	if _, err := led.CreateWishlist(name, c.FormValue("description"), budget); err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "Failed to create wishlist: "+err.Error())
	}
	return c.Redirect("/")
}

func DeleteWishlist(c *fiber.Ctx, led *ledger.Ledger) error {
	err := led.DeleteWishlist(c.Params("id"))
	if errors.Is(err, ledger.ErrNotFound) {
		return fiber.NewError(fiber.StatusNotFound, "Wishlist not found")
	}
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "Failed to delete wishlist: "+err.Error())
	}
	return c.Redirect("/")
}

func UpdateBudget(c *fiber.Ctx, led *ledger.Ledger) error {
	id := c.Params("id")

	amount, err := decimal.NewFromString(c.FormValue("amount"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid amount")
	}

	_, err = led.UpdateBudget(id, amount, c.FormValue("operation"))
	if errors.Is(err, ledger.ErrInvalidOperation) {
		return fiber.NewError(fiber.StatusBadRequest, err.Error())
	}
	if errors.Is(err, ledger.ErrNotFound) {
		return fiber.NewError(fiber.StatusNotFound, "Wishlist not found")
	}
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "Failed to update budget: "+err.Error())
	}
	return c.Redirect("/wishlist/" + id)
}
