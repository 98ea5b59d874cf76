package models

import "time"

// BackupVersion tags every exported document; import rejects files without it.
const BackupVersion = "1.0"

// Backup is a full snapshot of the store as one JSON document
type Backup struct {
	Version    string         `json:"version"`
	ExportDate time.Time      `json:"exportDate"`
	Wishlists  []Wishlist     `json:"wishlists"`
	Items      []Item         `json:"items"`
	History    []HistoryEntry `json:"history"`
	Settings   []Setting      `json:"settings"`
}
