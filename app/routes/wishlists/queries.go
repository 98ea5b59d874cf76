package wishlists

import (
	"database/sql"

	"github.com/shopspring/decimal"

	"github.com/itzpere/budget-wishlist/app/models"
)

// Summary is a wishlist with the item counts and pending total shown on
// the index page.
type Summary struct {
	models.Wishlist
	ItemCount      int             `json:"item_count"`
	PurchasedCount int             `json:"purchased_count"`
	PendingTotal   decimal.Decimal `json:"pending_total"`
}

func GetAllWishlists(db *sql.DB) ([]*Summary, error) {
	query := `SELECT w.id, w.name, COALESCE(w.description, ''), w.budget_limit, w.created_at,
			  COUNT(i.id),
			  COUNT(i.id) FILTER (WHERE i.status = 'purchased'),
			  COALESCE(SUM(i.price) FILTER (WHERE i.status = 'pending'), 0)
			  FROM wishlists w
			  LEFT JOIN items i ON i.wishlist_id = w.id
			  GROUP BY w.id
			  ORDER BY w.created_at ASC`

	rows, err := db.Query(query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	summaries := []*Summary{}
	for rows.Next() {
		s := &Summary{}
		err := rows.Scan(
			&s.ID, &s.Name, &s.Description, &s.BudgetLimit, &s.CreatedAt,
			&s.ItemCount, &s.PurchasedCount, &s.PendingTotal,
		)
		if err != nil {
			return nil, err
		}
		summaries = append(summaries, s)
	}
	return summaries, rows.Err()
}

func GetWishlistByID(db *sql.DB, id string) (*models.Wishlist, error) {
	w := &models.Wishlist{}
	query := `SELECT id, name, COALESCE(description, ''), budget_limit, created_at
			  FROM wishlists WHERE id = $1`

	err := db.QueryRow(query, id).Scan(&w.ID, &w.Name, &w.Description, &w.BudgetLimit, &w.CreatedAt)
	if err != nil {
		return nil, err
	}
	return w, nil
}

// GetItemsByWishlist returns a wishlist's items for display: pending before
// purchased, most important first, newest first within a priority.
func GetItemsByWishlist(db *sql.DB, wishlistID string) ([]*models.Item, error) {
	query := `SELECT id, wishlist_id, name, COALESCE(description, ''), price, status, priority,
			  COALESCE(link, ''), COALESCE(image_url, ''), COALESCE(local_icon_path, ''), created_at
			  FROM items
			  WHERE wishlist_id = $1
			  ORDER BY (status = 'purchased') ASC, priority DESC, created_at DESC`

	rows, err := db.Query(query, wishlistID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	items := []*models.Item{}
	for rows.Next() {
		item := &models.Item{}
		err := rows.Scan(
			&item.ID, &item.WishlistID, &item.Name, &item.Description, &item.Price,
			&item.Status, &item.Priority, &item.Link, &item.ImageURL, &item.LocalIconPath, &item.CreatedAt,
		)
		if err != nil {
			return nil, err
		}
		items = append(items, item)
	}
	return items, rows.Err()
}
