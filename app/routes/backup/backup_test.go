package backup

import (
	"database/sql"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/itzpere/budget-wishlist/app/models"
)

func newMockDB(t *testing.T) (*sql.DB, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	require.NoError(t, err)
	return db, mock
}

func TestImport_RejectsInvalidDocuments(t *testing.T) {
	db, _ := newMockDB(t)
	defer db.Close()

	tests := []struct {
		name string
		data string
	}{
		{name: "not json", data: `{{{`},
		{name: "missing version", data: `{"wishlists": [], "items": []}`},
		{name: "missing wishlists", data: `{"version": "1.0", "items": []}`},
		{name: "missing items", data: `{"version": "1.0", "wishlists": []}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := Import(db, []byte(tt.data))
			assert.True(t, errors.Is(err, ErrInvalidFormat))
		})
	}
}

func TestImport_ReplacesAllTablesInOneTransaction(t *testing.T) {
	db, mock := newMockDB(t)
	defer db.Close()

	data := []byte(`{
		"version": "1.0",
		"exportDate": "2025-06-01T12:00:00Z",
		"wishlists": [{"id": "w1", "name": "Gadgets", "budget_limit": "500", "created_at": "2025-01-01T00:00:00Z"}],
		"items": [{"id": "i1", "wishlist_id": "w1", "name": "Keyboard", "price": "120", "status": "pending", "priority": 4, "created_at": "2025-01-02T00:00:00Z"}],
		"history": [{"id": "h1", "timestamp": "2025-01-01T00:00:00Z", "type": "budget_change", "amount": "500", "description": "Created wishlist \"Gadgets\" with budget $500.00", "wishlist_id": "w1"}],
		"settings": [{"id": "s1", "key": "currency", "value": "$", "updated_at": "2025-01-01T00:00:00Z"}]
	}`)

	mock.ExpectBegin()
	mock.ExpectExec(`DELETE FROM items`).WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(`DELETE FROM history`).WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(`DELETE FROM wishlists`).WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(`DELETE FROM settings`).WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(`INSERT INTO wishlists`).
		WithArgs("w1", "Gadgets", "", sqlmock.AnyArg(), sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(`INSERT INTO items`).
		WithArgs("i1", "w1", "Keyboard", "", sqlmock.AnyArg(), "pending", 4, "", "", "", sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(`INSERT INTO history`).
		WithArgs("h1", sqlmock.AnyArg(), "budget_change", sqlmock.AnyArg(),
			`Created wishlist "Gadgets" with budget $500.00`, "w1", nil).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(`INSERT INTO settings`).
		WithArgs("s1", "currency", "$", sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	require.NoError(t, Import(db, data))
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestImport_FailureRollsBack(t *testing.T) {
	db, mock := newMockDB(t)
	defer db.Close()

	data := []byte(`{"version": "1.0", "wishlists": [], "items": []}`)

	mock.ExpectBegin()
	mock.ExpectExec(`DELETE FROM items`).WillReturnError(errors.New("db is down"))
	mock.ExpectRollback()

	err := Import(db, data)
	require.Error(t, err)
	assert.False(t, errors.Is(err, ErrInvalidFormat))
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestExport(t *testing.T) {
	db, mock := newMockDB(t)
	defer db.Close()

	now := time.Now()
	mock.ExpectQuery(`SELECT .* FROM wishlists`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "name", "description", "budget_limit", "created_at"}).
			AddRow("w1", "Gadgets", "", "500", now))
	mock.ExpectQuery(`SELECT .* FROM items`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "wishlist_id", "name", "description", "price", "status", "priority", "link", "image_url", "local_icon_path", "created_at"}).
			AddRow("i1", "w1", "Keyboard", "", "120", "pending", 4, "", "", "", now))
	mock.ExpectQuery(`SELECT .* FROM history`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "timestamp", "type", "amount", "description", "wishlist_id", "item_id"}).
			AddRow("h1", now, "budget_change", "500", `Created wishlist "Gadgets" with budget $500.00`, "w1", ""))
	mock.ExpectQuery(`SELECT .* FROM settings`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "key", "value", "updated_at"}).
			AddRow("s1", "currency", "$", now))

	doc, err := Export(db)
	require.NoError(t, err)
	assert.Equal(t, models.BackupVersion, doc.Version)
	assert.Len(t, doc.Wishlists, 1)
	assert.Len(t, doc.Items, 1)
	assert.Len(t, doc.History, 1)
	assert.Len(t, doc.Settings, 1)
	assert.Equal(t, "Gadgets", doc.Wishlists[0].Name)
	assert.False(t, doc.ExportDate.IsZero())
}

func TestExportedDocumentImportsBack(t *testing.T) {
	db, mock := newMockDB(t)
	defer db.Close()

	now := time.Now()
	mock.ExpectQuery(`SELECT .* FROM wishlists`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "name", "description", "budget_limit", "created_at"}).
			AddRow("w1", "Gadgets", "", "500", now))
	mock.ExpectQuery(`SELECT .* FROM items`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "wishlist_id", "name", "description", "price", "status", "priority", "link", "image_url", "local_icon_path", "created_at"}))
	mock.ExpectQuery(`SELECT .* FROM history`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "timestamp", "type", "amount", "description", "wishlist_id", "item_id"}))
	mock.ExpectQuery(`SELECT .* FROM settings`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "key", "value", "updated_at"}))

	doc, err := Export(db)
	require.NoError(t, err)

	data, err := json.Marshal(doc)
	require.NoError(t, err)

	mock.ExpectBegin()
	mock.ExpectExec(`DELETE FROM items`).WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectExec(`DELETE FROM history`).WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectExec(`DELETE FROM wishlists`).WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectExec(`DELETE FROM settings`).WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectExec(`INSERT INTO wishlists`).
		WithArgs("w1", "Gadgets", "", sqlmock.AnyArg(), sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	require.NoError(t, Import(db, data))
	require.NoError(t, mock.ExpectationsWereMet())
}
