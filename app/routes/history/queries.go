package history

import (
	"database/sql"

	"github.com/itzpere/budget-wishlist/app/models"
)

const selectColumns = `SELECT id, timestamp, type, amount, description, COALESCE(wishlist_id::text, ''), COALESCE(item_id::text, '') FROM history`

// GetRecent returns the newest entries, capped at limit.
func GetRecent(db *sql.DB, limit int) ([]*models.HistoryEntry, error) {
	rows, err := db.Query(selectColumns+` ORDER BY timestamp DESC LIMIT $1`, limit)
	if err != nil {
		return nil, err
	}
	return scanEntries(rows)
}

// GetRecentForWishlist returns the newest entries concerning one wishlist.
// The structural wishlist_id reference is authoritative; matching the
// wishlist name inside the description is kept as a fallback for entries
// written before the reference existed.
func GetRecentForWishlist(db *sql.DB, wishlistID, wishlistName string, limit int) ([]*models.HistoryEntry, error) {
	rows, err := db.Query(selectColumns+` WHERE wishlist_id = $1 OR description LIKE '%' || $2 || '%' ORDER BY timestamp DESC LIMIT $3`,
		wishlistID, wishlistName, limit)
	if err != nil {
		return nil, err
	}
	return scanEntries(rows)
}

func scanEntries(rows *sql.Rows) ([]*models.HistoryEntry, error) {
	defer rows.Close()

	entries := []*models.HistoryEntry{}
	for rows.Next() {
		e := &models.HistoryEntry{}
		err := rows.Scan(&e.ID, &e.Timestamp, &e.Type, &e.Amount, &e.Description, &e.WishlistID, &e.ItemID)
		if err != nil {
			return nil, err
		}
		entries = append(entries, e)
	}
	return entries, rows.Err()
}
