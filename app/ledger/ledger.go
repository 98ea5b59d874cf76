package ledger

import (
	"database/sql"
	"fmt"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"

	"github.com/itzpere/budget-wishlist/app/metrics"
	"github.com/itzpere/budget-wishlist/app/models"
)

// Budget update operations
const (
	OpAdd       = "add"
	OpRemove    = "remove"
	OpOverwrite = "overwrite"
)

// ItemFields carries the caller-editable fields of an item.
type ItemFields struct {
	Name        string
	Description string
	Price       decimal.Decimal
	Priority    int
	Link        string
	ImageURL    string
}

// Ledger performs every budget-affecting state transition and appends a
// matching history entry for each. Each operation runs in a single
// transaction, so the history row and the rows it describes commit together.
type Ledger struct {
	db     *sql.DB
	logger *logrus.Logger
}

// New creates a Ledger around an already-open database handle.
func New(db *sql.DB, logger *logrus.Logger) *Ledger {
	return &Ledger{db: db, logger: logger}
}

// CreateWishlist inserts a wishlist with the given budget limit and logs a
// budget_change entry for the initial amount.
func (l *Ledger) CreateWishlist(name, description string, budgetLimit decimal.Decimal) (*models.Wishlist, error) {
	tx, err := l.db.Begin()
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	w := &models.Wishlist{
		ID:          uuid.New().String(),
		Name:        name,
		Description: description,
		BudgetLimit: budgetLimit,
	}
	err = tx.QueryRow(`INSERT INTO wishlists (id, name, description, budget_limit) VALUES ($1, $2, $3, $4) RETURNING created_at`,
		w.ID, w.Name, w.Description, w.BudgetLimit).Scan(&w.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("failed to create wishlist: %w", err)
	}

	desc := fmt.Sprintf("Created wishlist %q with budget $%s", name, budgetLimit.StringFixed(2))
	if err := appendHistory(tx, models.HistoryBudgetChange, amount(budgetLimit), desc, w.ID, ""); err != nil {
		return nil, err
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit: %w", err)
	}
	metrics.LedgerOps.WithLabelValues("create_wishlist").Inc()
	return w, nil
}

// AddItem inserts a pending item on an existing wishlist and logs an
// item_add entry with the item's price.
func (l *Ledger) AddItem(wishlistID string, fields ItemFields) (*models.Item, error) {
	tx, err := l.db.Begin()
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	w, err := getWishlist(tx, wishlistID)
	if err != nil {
		return nil, err
	}

	item := &models.Item{
		ID:          uuid.New().String(),
		WishlistID:  wishlistID,
		Name:        fields.Name,
		Description: fields.Description,
		Price:       fields.Price,
		Status:      models.StatusPending,
		Priority:    fields.Priority,
		Link:        fields.Link,
		ImageURL:    fields.ImageURL,
	}
	err = tx.QueryRow(`INSERT INTO items (id, wishlist_id, name, description, price, status, priority, link, image_url) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9) RETURNING created_at`,
		item.ID, item.WishlistID, item.Name, item.Description, item.Price, item.Status, item.Priority, item.Link, item.ImageURL).Scan(&item.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("failed to create item: %w", err)
	}

	desc := fmt.Sprintf("Added item %q ($%s) to wishlist %q", item.Name, item.Price.StringFixed(2), w.Name)
	if err := appendHistory(tx, models.HistoryItemAdd, amount(item.Price), desc, w.ID, item.ID); err != nil {
		return nil, err
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit: %w", err)
	}
	metrics.LedgerOps.WithLabelValues("add_item").Inc()
	return item, nil
}

// UpdateBudget applies an add, remove or overwrite operation to a
// wishlist's budget. Remove clamps at zero; overwrite does not, so a
// negative overwrite sticks. The history entry records the signed delta.
func (l *Ledger) UpdateBudget(wishlistID string, amt decimal.Decimal, operation string) (*models.Wishlist, error) {
	tx, err := l.db.Begin()
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	old, err := getWishlist(tx, wishlistID)
	if err != nil {
		return nil, err
	}

	var newBudget decimal.Decimal
	var desc string
	switch operation {
	case OpAdd:
		newBudget = old.BudgetLimit.Add(amt)
		desc = fmt.Sprintf("Added $%s to %q budget (from $%s to $%s)",
			amt.StringFixed(2), old.Name, old.BudgetLimit.StringFixed(2), newBudget.StringFixed(2))
	case OpRemove:
		newBudget = old.BudgetLimit.Sub(amt)
		if newBudget.IsNegative() {
			newBudget = decimal.Zero
		}
		desc = fmt.Sprintf("Removed $%s from %q budget (from $%s to $%s)",
			amt.StringFixed(2), old.Name, old.BudgetLimit.StringFixed(2), newBudget.StringFixed(2))
	case OpOverwrite:
		newBudget = amt
		desc = fmt.Sprintf("Overwrite budget for %q from $%s to $%s",
			old.Name, old.BudgetLimit.StringFixed(2), newBudget.StringFixed(2))
	default:
		return nil, fmt.Errorf("%q: %w", operation, ErrInvalidOperation)
	}

	if err := setBudget(tx, wishlistID, newBudget); err != nil {
		return nil, err
	}

	delta := newBudget.Sub(old.BudgetLimit)
	if err := appendHistory(tx, models.HistoryBudgetChange, amount(delta), desc, old.ID, ""); err != nil {
		return nil, err
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit: %w", err)
	}
	metrics.LedgerOps.WithLabelValues("update_budget").Inc()

	old.BudgetLimit = newBudget
	return old, nil
}

// PurchaseItem marks an item purchased, optionally deducting its price
// from the owning wishlist's budget. The deduction does not clamp, so the
// budget may go negative. Purchasing an already-purchased item is a no-op.
func (l *Ledger) PurchaseItem(itemID string, deductFromBudget bool) (*models.Item, error) {
	tx, err := l.db.Begin()
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	item, err := getItem(tx, itemID)
	if err != nil {
		return nil, err
	}
	if item.Status == models.StatusPurchased {
		return item, nil
	}

	if err := setStatus(tx, itemID, models.StatusPurchased); err != nil {
		return nil, err
	}

	w, err := getWishlist(tx, item.WishlistID)
	if err != nil {
		return nil, err
	}

	desc := fmt.Sprintf("Purchased %q ($%s) from wishlist %q", item.Name, item.Price.StringFixed(2), w.Name)
	if deductFromBudget {
		newBudget := w.BudgetLimit.Sub(item.Price)
		if err := setBudget(tx, w.ID, newBudget); err != nil {
			return nil, err
		}
		if newBudget.IsNegative() {
			l.logger.Warnf("Wishlist %q budget went negative after purchase of %q", w.Name, item.Name)
		}
		desc += " and deducted from budget"
	}
	if err := appendHistory(tx, models.HistoryPurchase, amount(item.Price), desc, w.ID, item.ID); err != nil {
		return nil, err
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit: %w", err)
	}
	metrics.LedgerOps.WithLabelValues("purchase_item").Inc()

	item.Status = models.StatusPurchased
	return item, nil
}

// UnpurchaseItem is the mirror of PurchaseItem: the item goes back to
// pending and the price is optionally added back to the budget. The history
// amount is negative, so a purchase/unpurchase pair sums to zero.
func (l *Ledger) UnpurchaseItem(itemID string, addBackToBudget bool) (*models.Item, error) {
	tx, err := l.db.Begin()
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	item, err := getItem(tx, itemID)
	if err != nil {
		return nil, err
	}
	if item.Status != models.StatusPurchased {
		return item, nil
	}

	if err := setStatus(tx, itemID, models.StatusPending); err != nil {
		return nil, err
	}

	w, err := getWishlist(tx, item.WishlistID)
	if err != nil {
		return nil, err
	}

	desc := fmt.Sprintf("Unpurchased %q ($%s) from wishlist %q", item.Name, item.Price.StringFixed(2), w.Name)
	if addBackToBudget {
		if err := setBudget(tx, w.ID, w.BudgetLimit.Add(item.Price)); err != nil {
			return nil, err
		}
		desc += " and added back to budget"
	}
	if err := appendHistory(tx, models.HistoryPurchase, amount(item.Price.Neg()), desc, w.ID, item.ID); err != nil {
		return nil, err
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit: %w", err)
	}
	metrics.LedgerOps.WithLabelValues("unpurchase_item").Inc()

	item.Status = models.StatusPending
	return item, nil
}

// UpdateItem overwrites an item's editable fields and logs an item_update
// entry. A changed price is never reconciled against a budget that was
// already deducted; history records the new price only.
func (l *Ledger) UpdateItem(itemID string, fields ItemFields) (*models.Item, error) {
	tx, err := l.db.Begin()
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	old, err := getItem(tx, itemID)
	if err != nil {
		return nil, err
	}

	_, err = tx.Exec(`UPDATE items SET name = $1, description = $2, price = $3, priority = $4, link = $5, image_url = $6 WHERE id = $7`,
		fields.Name, fields.Description, fields.Price, fields.Priority, fields.Link, fields.ImageURL, itemID)
	if err != nil {
		return nil, fmt.Errorf("failed to update item: %w", err)
	}

	w, err := getWishlist(tx, old.WishlistID)
	if err != nil {
		return nil, err
	}

	desc := fmt.Sprintf("Updated item %q to %q ($%s) in wishlist %q",
		old.Name, fields.Name, fields.Price.StringFixed(2), w.Name)
	if err := appendHistory(tx, models.HistoryItemUpdate, amount(decimal.Zero), desc, w.ID, old.ID); err != nil {
		return nil, err
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit: %w", err)
	}
	metrics.LedgerOps.WithLabelValues("update_item").Inc()

	old.Name = fields.Name
	old.Description = fields.Description
	old.Price = fields.Price
	old.Priority = fields.Priority
	old.Link = fields.Link
	old.ImageURL = fields.ImageURL
	return old, nil
}

// DeleteItem removes an item and logs an item_delete entry with the
// negated price. A budget deducted at purchase time is not restored.
func (l *Ledger) DeleteItem(itemID string) (*models.Item, error) {
	tx, err := l.db.Begin()
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	item, err := getItem(tx, itemID)
	if err != nil {
		return nil, err
	}

	w, err := getWishlist(tx, item.WishlistID)
	if err != nil {
		return nil, err
	}

	if _, err := tx.Exec(`DELETE FROM items WHERE id = $1`, itemID); err != nil {
		return nil, fmt.Errorf("failed to delete item: %w", err)
	}

	desc := fmt.Sprintf("Deleted item %q ($%s) from wishlist %q", item.Name, item.Price.StringFixed(2), w.Name)
	if err := appendHistory(tx, models.HistoryItemDelete, amount(item.Price.Neg()), desc, w.ID, item.ID); err != nil {
		return nil, err
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit: %w", err)
	}
	metrics.LedgerOps.WithLabelValues("delete_item").Inc()
	return item, nil
}

// DeleteWishlist removes a wishlist and, through the store's cascade, all
// of its items. History rows naming the wishlist or its items stay behind.
func (l *Ledger) DeleteWishlist(wishlistID string) error {
	tx, err := l.db.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	w, err := getWishlist(tx, wishlistID)
	if err != nil {
		return err
	}

	var itemCount int
	if err := tx.QueryRow(`SELECT COUNT(*) FROM items WHERE wishlist_id = $1`, wishlistID).Scan(&itemCount); err != nil {
		return fmt.Errorf("failed to count items: %w", err)
	}

	if _, err := tx.Exec(`DELETE FROM wishlists WHERE id = $1`, wishlistID); err != nil {
		return fmt.Errorf("failed to delete wishlist: %w", err)
	}

	desc := fmt.Sprintf("Deleted wishlist %q with %d item(s)", w.Name, itemCount)
	if err := appendHistory(tx, models.HistoryBudgetChange, amount(w.BudgetLimit.Neg()), desc, w.ID, ""); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit: %w", err)
	}
	metrics.LedgerOps.WithLabelValues("delete_wishlist").Inc()
	return nil
}

func getWishlist(tx *sql.Tx, id string) (*models.Wishlist, error) {
	w := &models.Wishlist{}
	err := tx.QueryRow(`SELECT id, name, COALESCE(description, ''), budget_limit, created_at FROM wishlists WHERE id = $1`, id).Scan(
		&w.ID, &w.Name, &w.Description, &w.BudgetLimit, &w.CreatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("wishlist %s: %w", id, ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get wishlist: %w", err)
	}
	return w, nil
}

func getItem(tx *sql.Tx, id string) (*models.Item, error) {
	item := &models.Item{}
	err := tx.QueryRow(`SELECT id, wishlist_id, name, COALESCE(description, ''), price, status, priority, COALESCE(link, ''), COALESCE(image_url, ''), COALESCE(local_icon_path, ''), created_at FROM items WHERE id = $1`, id).Scan(
		&item.ID, &item.WishlistID, &item.Name, &item.Description, &item.Price,
		&item.Status, &item.Priority, &item.Link, &item.ImageURL, &item.LocalIconPath, &item.CreatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("item %s: %w", id, ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get item: %w", err)
	}
	return item, nil
}

func setBudget(tx *sql.Tx, wishlistID string, budget decimal.Decimal) error {
	if _, err := tx.Exec(`UPDATE wishlists SET budget_limit = $1 WHERE id = $2`, budget, wishlistID); err != nil {
		return fmt.Errorf("failed to update budget: %w", err)
	}
	return nil
}

func setStatus(tx *sql.Tx, itemID, status string) error {
	if _, err := tx.Exec(`UPDATE items SET status = $1 WHERE id = $2`, status, itemID); err != nil {
		return fmt.Errorf("failed to update item status: %w", err)
	}
	return nil
}

func appendHistory(tx *sql.Tx, entryType string, amt decimal.NullDecimal, description, wishlistID, itemID string) error {
	_, err := tx.Exec(`INSERT INTO history (id, type, amount, description, wishlist_id, item_id) VALUES ($1, $2, $3, $4, $5, $6)`,
		uuid.New().String(), entryType, amt, description, nullableID(wishlistID), nullableID(itemID))
	if err != nil {
		return fmt.Errorf("failed to append history: %w", err)
	}
	return nil
}

func amount(d decimal.Decimal) decimal.NullDecimal {
	return decimal.NullDecimal{Decimal: d, Valid: true}
}

func nullableID(id string) sql.NullString {
	return sql.NullString{String: id, Valid: id != ""}
}
