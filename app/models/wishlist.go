package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Wishlist is a named collection of items sharing one budget limit.
// The budget is informational, not a hard cap.
type Wishlist struct {
	ID          string          `json:"id"`
	Name        string          `json:"name"`
	Description string          `json:"description,omitempty"`
	BudgetLimit decimal.Decimal `json:"budget_limit"`
	CreatedAt   time.Time       `json:"created_at"`
}
