package icons

import (
	"errors"
	"fmt"
	"io"

	"github.com/gofiber/fiber/v2"

	"github.com/itzpere/budget-wishlist/app/ledger"
	"github.com/itzpere/budget-wishlist/app/services"
)

// SaveIcon caches a remote image as a local icon for an item.
func SaveIcon(c *fiber.Ctx, svc *services.IconService) error {
	var req struct {
		ItemID   string `json:"itemId"`
		ImageURL string `json:"imageUrl"`
	}
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body"})
	}
	if req.ItemID == "" || req.ImageURL == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Item ID and image URL are required"})
	}

	localPath, err := svc.SaveFromURL(req.ItemID, req.ImageURL)
	if errors.Is(err, ledger.ErrNotFound) {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Item not found"})
	}
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to save icon: " + err.Error()})
	}

	return c.JSON(fiber.Map{
		"success":       true,
		"localIconPath": localPath,
		"message":       "Icon saved successfully",
	})
}

// UploadIcon accepts a multipart image upload as an item's icon.
func UploadIcon(c *fiber.Ctx, svc *services.IconService) error {
	itemID := c.FormValue("itemId")
	fileHeader, err := c.FormFile("file")
	if err != nil || itemID == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "File and item ID are required"})
	}

	f, err := fileHeader.Open()
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Failed to read uploaded file"})
	}
	defer f.Close()

	data, err := io.ReadAll(f)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Failed to read uploaded file"})
	}

	localPath, err := svc.SaveUpload(itemID, data)
	if errors.Is(err, ledger.ErrNotFound) {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Item not found"})
	}
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to upload icon: " + err.Error()})
	}

	return c.JSON(fiber.Map{
		"success":       true,
		"localIconPath": localPath,
		"message":       "Icon uploaded successfully",
	})
}

// CleanupIcons deletes icon files no item references anymore.
func CleanupIcons(c *fiber.Ctx, svc *services.IconService) error {
	deleted, err := svc.Cleanup()
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to clean up icons"})
	}

	return c.JSON(fiber.Map{
		"success":      true,
		"deletedCount": deleted,
		"message":      fmt.Sprintf("Cleaned up %d unused icon(s)", deleted),
	})
}
