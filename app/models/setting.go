package models

import "time"

// Setting is a persistent string key/value pair
type Setting struct {
	ID        string    `json:"id"`
	Key       string    `json:"key"`
	Value     string    `json:"value"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Well-known setting keys
const (
	SettingCurrency   = "currency"
	SettingAPIEnabled = "api_enabled"
)
