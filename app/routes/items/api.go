package items

import (
	"errors"
	"strconv"

	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"

	"github.com/itzpere/budget-wishlist/app/ledger"
	"github.com/itzpere/budget-wishlist/app/services"
)

func parseItemFields(c *fiber.Ctx) ledger.ItemFields {
	price, err := decimal.NewFromString(c.FormValue("price"))
	if err != nil {
		price = decimal.Zero
	}
	priority, err := strconv.Atoi(c.FormValue("priority"))
	if err != nil {
		priority = 0
	}

	return ledger.ItemFields{
		Name:        c.FormValue("name"),
		Description: c.FormValue("description"),
		Price:       price,
		Priority:    priority,
		Link:        c.FormValue("link"),
		ImageURL:    c.FormValue("imageUrl"),
	}
}

func AddItem(c *fiber.Ctx, led *ledger.Ledger) error {
	wishlistID := c.Params("id")

	fields := parseItemFields(c)
	if fields.Name == "" {
		return fiber.NewError(fiber.StatusBadRequest, "Item name is required")
	}

	_, err := led.AddItem(wishlistID, fields)
	if errors.Is(err, ledger.ErrNotFound) {
		return fiber.NewError(fiber.StatusNotFound, "Wishlist not found")
	}
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "Failed to add item: "+err.Error())
	}
	return c.Redirect("/wishlist/" + wishlistID)
}

func UpdateItem(c *fiber.Ctx, led *ledger.Ledger) error {
	item, err := led.UpdateItem(c.Params("id"), parseItemFields(c))
	if errors.Is(err, ledger.ErrNotFound) {
		return fiber.NewError(fiber.StatusNotFound, "Item not found")
	}
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "Failed to update item: "+err.Error())
	}
	return c.Redirect("/wishlist/" + item.WishlistID)
}

// DeleteItem removes the item and kicks off a best-effort cleanup of
// icons that no longer back any item.
func DeleteItem(c *fiber.Ctx, led *ledger.Ledger, icons *services.IconService) error {
	item, err := led.DeleteItem(c.Params("id"))
	if errors.Is(err, ledger.ErrNotFound) {
		return fiber.NewError(fiber.StatusNotFound, "Item not found")
	}
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "Failed to delete item: "+err.Error())
	}

	icons.CleanupAsync()
	return c.Redirect("/wishlist/" + item.WishlistID)
}

func PurchaseItem(c *fiber.Ctx, led *ledger.Ledger) error {
	deduct := c.FormValue("deductFromBudget") == "true"

	item, err := led.PurchaseItem(c.Params("id"), deduct)
	if errors.Is(err, ledger.ErrNotFound) {
		return fiber.NewError(fiber.StatusNotFound, "Item not found")
	}
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "Failed to purchase item: "+err.Error())
	}
	return c.Redirect("/wishlist/" + item.WishlistID)
}

func UnpurchaseItem(c *fiber.Ctx, led *ledger.Ledger) error {
	addBack := c.FormValue("addBackToBudget") == "true"

	item, err := led.UnpurchaseItem(c.Params("id"), addBack)
	if errors.Is(err, ledger.ErrNotFound) {
		return fiber.NewError(fiber.StatusNotFound, "Item not found")
	}
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "Failed to unpurchase item: "+err.Error())
	}
	return c.Redirect("/wishlist/" + item.WishlistID)
}
