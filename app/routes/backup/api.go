package backup

import (
	"database/sql"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/gofiber/fiber/v2"
)

// ExportHandler serves the full dataset as a downloadable JSON document.
func ExportHandler(c *fiber.Ctx, db *sql.DB) error {
	doc, err := Export(db)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to export data"})
	}

	filename := fmt.Sprintf("wishlist-backup-%s.json", time.Now().Format("2006-01-02"))
	c.Set(fiber.HeaderContentDisposition, `attachment; filename="`+filename+`"`)
	return c.JSON(doc)
}

// ImportHandler replaces the store with an uploaded backup. Failures come
// back as a structured success/error body instead of an error page.
func ImportHandler(c *fiber.Ctx, db *sql.DB) error {
	data, err := importBody(c)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"success": false, "error": "No backup file provided"})
	}

	if err := Import(db, data); err != nil {
		status := fiber.StatusInternalServerError
		if errors.Is(err, ErrInvalidFormat) {
			status = fiber.StatusBadRequest
		}
		return c.Status(status).JSON(fiber.Map{"success": false, "error": err.Error()})
	}
	return c.JSON(fiber.Map{"success": true})
}

// importBody accepts either a multipart "file" upload (settings page) or a
// raw JSON body (external API).
func importBody(c *fiber.Ctx) ([]byte, error) {
	if fileHeader, err := c.FormFile("file"); err == nil {
		f, err := fileHeader.Open()
		if err != nil {
			return nil, err
		}
		defer f.Close()
		return io.ReadAll(f)
	}

	body := c.Body()
	if len(body) == 0 {
		return nil, errors.New("empty request body")
	}
	return body, nil
}
