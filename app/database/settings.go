package database

import (
	"database/sql"
	"fmt"

	"github.com/google/uuid"

	"github.com/itzpere/budget-wishlist/app/models"
)

// GetSetting returns the stored value for key, or defaultValue if absent.
func GetSetting(db *sql.DB, key, defaultValue string) (string, error) {
	var value string
	err := db.QueryRow(`SELECT value FROM settings WHERE key = $1`, key).Scan(&value)
	if err == sql.ErrNoRows {
		return defaultValue, nil
	}
	if err != nil {
		return "", fmt.Errorf("failed to get setting %q: %w", key, err)
	}
	return value, nil
}

// SetSetting stores value under key, inserting the row if it does not
// exist and refreshing updated_at when it does.
func SetSetting(db *sql.DB, key, value string) error {
	result, err := db.Exec(`UPDATE settings SET value = $1, updated_at = NOW() WHERE key = $2`, value, key)
	if err != nil {
		return fmt.Errorf("failed to update setting %q: %w", key, err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check setting update %q: %w", key, err)
	}
	if affected > 0 {
		return nil
	}

	_, err = db.Exec(`INSERT INTO settings (id, key, value) VALUES ($1, $2, $3)`,
		uuid.New().String(), key, value)
	if err != nil {
		return fmt.Errorf("failed to insert setting %q: %w", key, err)
	}
	return nil
}

// GetCurrency returns the display currency symbol, defaulting to "$".
func GetCurrency(db *sql.DB) (string, error) {
	return GetSetting(db, models.SettingCurrency, "$")
}

// GetAPIEnabled reports whether the external API is switched on.
func GetAPIEnabled(db *sql.DB) (bool, error) {
	value, err := GetSetting(db, models.SettingAPIEnabled, "false")
	if err != nil {
		return false, err
	}
	return value == "true", nil
}

// SetAPIEnabled switches the external API on or off.
func SetAPIEnabled(db *sql.DB, enabled bool) error {
	value := "false"
	if enabled {
		value = "true"
	}
	return SetSetting(db, models.SettingAPIEnabled, value)
}
