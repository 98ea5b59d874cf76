package database

import (
	"database/sql"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newMockDB(t *testing.T) (*sql.DB, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	require.NoError(t, err)
	return db, mock
}

func TestGetSetting_ReturnsStoredValue(t *testing.T) {
	db, mock := newMockDB(t)
	defer db.Close()

	mock.ExpectQuery(`SELECT value FROM settings WHERE key`).
		WithArgs("currency").
		WillReturnRows(sqlmock.NewRows([]string{"value"}).AddRow("€"))

	value, err := GetSetting(db, "currency", "$")
	require.NoError(t, err)
	assert.Equal(t, "€", value)
}

func TestGetSetting_DefaultWhenAbsent(t *testing.T) {
	db, mock := newMockDB(t)
	defer db.Close()

	mock.ExpectQuery(`SELECT value FROM settings WHERE key`).
		WithArgs("currency").
		WillReturnError(sql.ErrNoRows)

	value, err := GetSetting(db, "currency", "$")
	require.NoError(t, err)
	assert.Equal(t, "$", value)
}

func TestSetSetting_UpdatesExistingRow(t *testing.T) {
	db, mock := newMockDB(t)
	defer db.Close()

	mock.ExpectExec(`UPDATE settings SET value`).
		WithArgs("€", "currency").
		WillReturnResult(sqlmock.NewResult(0, 1))

	require.NoError(t, SetSetting(db, "currency", "€"))
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestSetSetting_InsertsWhenAbsent(t *testing.T) {
	db, mock := newMockDB(t)
	defer db.Close()

	mock.ExpectExec(`UPDATE settings SET value`).
		WithArgs("€", "currency").
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectExec(`INSERT INTO settings`).
		WithArgs(sqlmock.AnyArg(), "currency", "€").
		WillReturnResult(sqlmock.NewResult(0, 1))

	require.NoError(t, SetSetting(db, "currency", "€"))
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestGetAPIEnabled(t *testing.T) {
	tests := []struct {
		name   string
		stored string
		absent bool
		want   bool
	}{
		{name: "enabled", stored: "true", want: true},
		{name: "disabled", stored: "false", want: false},
		{name: "garbage is off", stored: "yes", want: false},
		{name: "default off", absent: true, want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			db, mock := newMockDB(t)
			defer db.Close()

			q := mock.ExpectQuery(`SELECT value FROM settings WHERE key`).WithArgs("api_enabled")
			if tt.absent {
				q.WillReturnError(sql.ErrNoRows)
			} else {
				q.WillReturnRows(sqlmock.NewRows([]string{"value"}).AddRow(tt.stored))
			}

			enabled, err := GetAPIEnabled(db)
			require.NoError(t, err)
			assert.Equal(t, tt.want, enabled)
		})
	}
}

func TestSetAPIEnabled_EncodesBoolean(t *testing.T) {
	db, mock := newMockDB(t)
	defer db.Close()

	mock.ExpectExec(`UPDATE settings SET value`).
		WithArgs("true", "api_enabled").
		WillReturnResult(sqlmock.NewResult(0, 1))

	require.NoError(t, SetAPIEnabled(db, true))
	require.NoError(t, mock.ExpectationsWereMet())
}
