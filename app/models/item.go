package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Item status values
const (
	StatusPending   = "pending"
	StatusPurchased = "purchased"
)

// Item represents a purchasable thing on a wishlist
type Item struct {
	ID            string          `json:"id"`
	WishlistID    string          `json:"wishlist_id"`
	Name          string          `json:"name"`
	Description   string          `json:"description,omitempty"`
	Price         decimal.Decimal `json:"price"`
	Status        string          `json:"status"`
	Priority      int             `json:"priority"`
	Link          string          `json:"link,omitempty"`
	ImageURL      string          `json:"image_url,omitempty"`
	LocalIconPath string          `json:"local_icon_path,omitempty"`
	CreatedAt     time.Time       `json:"created_at"`
}
