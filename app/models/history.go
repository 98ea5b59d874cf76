package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// History entry types
const (
	HistoryBudgetChange = "budget_change"
	HistoryItemAdd      = "item_add"
	HistoryItemUpdate   = "item_update"
	HistoryItemDelete   = "item_delete"
	HistoryPurchase     = "purchase"
)

// HistoryEntry is an immutable audit record of a budget- or item-affecting
// action. WishlistID and ItemID are resolved at write time but carry no
// foreign key, so entries outlive whatever they describe.
type HistoryEntry struct {
	ID          string              `json:"id"`
	Timestamp   time.Time           `json:"timestamp"`
	Type        string              `json:"type"`
	Amount      decimal.NullDecimal `json:"amount"`
	Description string              `json:"description"`
	WishlistID  string              `json:"wishlist_id,omitempty"`
	ItemID      string              `json:"item_id,omitempty"`
}
