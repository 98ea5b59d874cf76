package backup

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/itzpere/budget-wishlist/app/models"
)

// ErrInvalidFormat marks a document that is not a usable backup.
var ErrInvalidFormat = errors.New("invalid backup file format")

// Export snapshots the entire store into one document.
func Export(db *sql.DB) (*models.Backup, error) {
	wishlists, err := exportWishlists(db)
	if err != nil {
		return nil, fmt.Errorf("failed to export wishlists: %w", err)
	}
	items, err := exportItems(db)
	if err != nil {
		return nil, fmt.Errorf("failed to export items: %w", err)
	}
	history, err := exportHistory(db)
	if err != nil {
		return nil, fmt.Errorf("failed to export history: %w", err)
	}
	settings, err := exportSettings(db)
	if err != nil {
		return nil, fmt.Errorf("failed to export settings: %w", err)
	}

	return &models.Backup{
		Version:    models.BackupVersion,
		ExportDate: time.Now().UTC(),
		Wishlists:  wishlists,
		Items:      items,
		History:    history,
		Settings:   settings,
	}, nil
}

// Import replaces the whole store with the contents of a backup document.
// The delete and insert steps run inside one transaction, so a failed
// import leaves the previous data untouched.
func Import(db *sql.DB, data []byte) error {
	var doc models.Backup
	if err := json.Unmarshal(data, &doc); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidFormat, err)
	}
	if doc.Version == "" || doc.Wishlists == nil || doc.Items == nil {
		return ErrInvalidFormat
	}

	tx, err := db.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	// Clear existing data in dependency order
	for _, table := range []string{"items", "history", "wishlists", "settings"} {
		if _, err := tx.Exec(`DELETE FROM ` + table); err != nil {
			return fmt.Errorf("failed to clear %s: %w", table, err)
		}
	}

	for _, w := range doc.Wishlists {
		_, err := tx.Exec(`INSERT INTO wishlists (id, name, description, budget_limit, created_at) VALUES ($1, $2, $3, $4, $5)`,
			w.ID, w.Name, w.Description, w.BudgetLimit, w.CreatedAt)
		if err != nil {
			return fmt.Errorf("failed to import wishlist %s: %w", w.ID, err)
		}
	}
	for _, item := range doc.Items {
		_, err := tx.Exec(`INSERT INTO items (id, wishlist_id, name, description, price, status, priority, link, image_url, local_icon_path, created_at) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`,
			item.ID, item.WishlistID, item.Name, item.Description, item.Price,
			item.Status, item.Priority, item.Link, item.ImageURL, item.LocalIconPath, item.CreatedAt)
		if err != nil {
			return fmt.Errorf("failed to import item %s: %w", item.ID, err)
		}
	}
	for _, e := range doc.History {
		_, err := tx.Exec(`INSERT INTO history (id, timestamp, type, amount, description, wishlist_id, item_id) VALUES ($1, $2, $3, $4, $5, $6, $7)`,
			e.ID, e.Timestamp, e.Type, e.Amount, e.Description, nullableID(e.WishlistID), nullableID(e.ItemID))
		if err != nil {
			return fmt.Errorf("failed to import history entry %s: %w", e.ID, err)
		}
	}
	for _, s := range doc.Settings {
		_, err := tx.Exec(`INSERT INTO settings (id, key, value, updated_at) VALUES ($1, $2, $3, $4)`,
			s.ID, s.Key, s.Value, s.UpdatedAt)
		if err != nil {
			return fmt.Errorf("failed to import setting %s: %w", s.Key, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit import: %w", err)
	}
	return nil
}

func exportWishlists(db *sql.DB) ([]models.Wishlist, error) {
	rows, err := db.Query(`SELECT id, name, COALESCE(description, ''), budget_limit, created_at FROM wishlists ORDER BY created_at ASC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	wishlists := []models.Wishlist{}
	for rows.Next() {
		var w models.Wishlist
		if err := rows.Scan(&w.ID, &w.Name, &w.Description, &w.BudgetLimit, &w.CreatedAt); err != nil {
			return nil, err
		}
		wishlists = append(wishlists, w)
	}
	return wishlists, rows.Err()
}

func exportItems(db *sql.DB) ([]models.Item, error) {
	rows, err := db.Query(`SELECT id, wishlist_id, name, COALESCE(description, ''), price, status, priority, COALESCE(link, ''), COALESCE(image_url, ''), COALESCE(local_icon_path, ''), created_at FROM items ORDER BY created_at ASC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	items := []models.Item{}
	for rows.Next() {
		var item models.Item
		err := rows.Scan(&item.ID, &item.WishlistID, &item.Name, &item.Description, &item.Price,
			&item.Status, &item.Priority, &item.Link, &item.ImageURL, &item.LocalIconPath, &item.CreatedAt)
		if err != nil {
			return nil, err
		}
		items = append(items, item)
	}
	return items, rows.Err()
}

func exportHistory(db *sql.DB) ([]models.HistoryEntry, error) {
	rows, err := db.Query(`SELECT id, timestamp, type, amount, description, COALESCE(wishlist_id::text, ''), COALESCE(item_id::text, '') FROM history ORDER BY timestamp ASC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	entries := []models.HistoryEntry{}
	for rows.Next() {
		var e models.HistoryEntry
		err := rows.Scan(&e.ID, &e.Timestamp, &e.Type, &e.Amount, &e.Description, &e.WishlistID, &e.ItemID)
		if err != nil {
			return nil, err
		}
		entries = append(entries, e)
	}
	return entries, rows.Err()
}

func exportSettings(db *sql.DB) ([]models.Setting, error) {
	rows, err := db.Query(`SELECT id, key, value, updated_at FROM settings ORDER BY key ASC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	settings := []models.Setting{}
	for rows.Next() {
		var s models.Setting
		if err := rows.Scan(&s.ID, &s.Key, &s.Value, &s.UpdatedAt); err != nil {
			return nil, err
		}
		settings = append(settings, s)
	}
	return settings, rows.Err()
}

func nullableID(id string) sql.NullString {
	return sql.NullString{String: id, Valid: id != ""}
}
