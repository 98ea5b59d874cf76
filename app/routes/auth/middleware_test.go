package auth

import (
	"database/sql"
	"net/http/httptest"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newGatedApp(t *testing.T, secret string) (*fiber.App, sqlmock.Sqlmock, *sql.DB) {
	t.Helper()
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	require.NoError(t, err)

	app := fiber.New()
	app.Get("/api/test", APIAuth(db, secret), func(c *fiber.Ctx) error {
		return c.SendString("ok")
	})
	return app, mock, db
}

func expectAPIEnabled(mock sqlmock.Sqlmock, value string) {
	mock.ExpectQuery(`SELECT value FROM settings WHERE key`).
		WithArgs("api_enabled").
		WillReturnRows(sqlmock.NewRows([]string{"value"}).AddRow(value))
}

func TestAPIAuth_DisabledAPI(t *testing.T) {
	app, mock, db := newGatedApp(t, "s3cret")
	defer db.Close()

	expectAPIEnabled(mock, "false")

	resp, err := app.Test(httptest.NewRequest("GET", "/api/test", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusForbidden, resp.StatusCode)
}

func TestAPIAuth_SecretNotConfigured(t *testing.T) {
	app, mock, db := newGatedApp(t, "")
	defer db.Close()

	expectAPIEnabled(mock, "true")

	resp, err := app.Test(httptest.NewRequest("GET", "/api/test", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusForbidden, resp.StatusCode)
}

func TestAPIAuth_MissingCredentials(t *testing.T) {
	app, mock, db := newGatedApp(t, "s3cret")
	defer db.Close()

	expectAPIEnabled(mock, "true")

	resp, err := app.Test(httptest.NewRequest("GET", "/api/test", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
}

func TestAPIAuth_WrongSecret(t *testing.T) {
	app, mock, db := newGatedApp(t, "s3cret")
	defer db.Close()

	expectAPIEnabled(mock, "true")

	req := httptest.NewRequest("GET", "/api/test", nil)
	req.Header.Set("X-API-Secret", "wrong")
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
}

func TestAPIAuth_BearerToken(t *testing.T) {
	app, mock, db := newGatedApp(t, "s3cret")
	defer db.Close()

	expectAPIEnabled(mock, "true")

	req := httptest.NewRequest("GET", "/api/test", nil)
	req.Header.Set("Authorization", "Bearer s3cret")
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
}

func TestAPIAuth_SecretHeader(t *testing.T) {
	app, mock, db := newGatedApp(t, "s3cret")
	defer db.Close()

	expectAPIEnabled(mock, "true")

	req := httptest.NewRequest("GET", "/api/test", nil)
	req.Header.Set("X-API-Secret", "s3cret")
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
}
