package services

import (
	"bytes"
	"crypto/md5"
	"database/sql"
	"encoding/hex"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"github.com/disintegration/imaging"
	"github.com/sirupsen/logrus"

	"github.com/itzpere/budget-wishlist/app/ledger"
)

// Icons are bounded to 400x400 and stored as lossy JPEG.
const (
	iconMaxSize     = 400
	iconJPEGQuality = 80
	iconFetchLimit  = 10 << 20 // refuse remote images over 10 MB
)

// IconService normalizes item images into small local icons and keeps the
// icons directory free of files no item references anymore.
type IconService struct {
	db      *sql.DB
	dataDir string
	logger  *logrus.Logger
	client  *http.Client
}

func NewIconService(db *sql.DB, dataDir string, logger *logrus.Logger) *IconService {
	return &IconService{
		db:      db,
		dataDir: dataDir,
		logger:  logger,
		client:  &http.Client{Timeout: 15 * time.Second},
	}
}

// Dir returns the directory all icons are written to.
func (s *IconService) Dir() string {
	return filepath.Join(s.dataDir, "icons")
}

// SaveFromURL fetches a remote image, normalizes it and stores it as the
// item's icon. The filename is derived from the URL, so re-fetching the
// same URL overwrites in place.
func (s *IconService) SaveFromURL(itemID, imageURL string) (string, error) {
	resp, err := s.client.Get(imageURL)
	if err != nil {
		return "", fmt.Errorf("failed to fetch image: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("failed to fetch image: status %d", resp.StatusCode)
	}

	data, err := io.ReadAll(io.LimitReader(resp.Body, iconFetchLimit))
	if err != nil {
		return "", fmt.Errorf("failed to read image: %w", err)
	}

	return s.save(itemID, data, hashName([]byte(imageURL)))
}

// SaveUpload normalizes uploaded image bytes and stores them as the item's
// icon, named after the content hash.
func (s *IconService) SaveUpload(itemID string, data []byte) (string, error) {
	return s.save(itemID, data, hashName(data))
}

func (s *IconService) save(itemID string, data []byte, filename string) (string, error) {
	img, err := imaging.Decode(bytes.NewReader(data))
	if err != nil {
		return "", fmt.Errorf("failed to decode image: %w", err)
	}

	// Fit scales down to the bounding box and never enlarges
	img = imaging.Fit(img, iconMaxSize, iconMaxSize, imaging.Lanczos)

	if err := os.MkdirAll(s.Dir(), 0o755); err != nil {
		return "", fmt.Errorf("failed to create icons directory: %w", err)
	}
	if err := imaging.Save(img, filepath.Join(s.Dir(), filename), imaging.JPEGQuality(iconJPEGQuality)); err != nil {
		return "", fmt.Errorf("failed to save icon: %w", err)
	}

	localPath := "/icons/" + filename
	result, err := s.db.Exec(`UPDATE items SET local_icon_path = $1 WHERE id = $2`, localPath, itemID)
	if err != nil {
		return "", fmt.Errorf("failed to store icon path: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return "", fmt.Errorf("failed to store icon path: %w", err)
	}
	if affected == 0 {
		return "", fmt.Errorf("item %s: %w", itemID, ledger.ErrNotFound)
	}
	return localPath, nil
}

// Cleanup deletes icon files not referenced by any item and reports how
// many were removed. A missing icons directory is not an error.
func (s *IconService) Cleanup() (int, error) {
	entries, err := os.ReadDir(s.Dir())
	if os.IsNotExist(err) {
		return 0, nil
	}
	if err != nil {
		return 0, fmt.Errorf("failed to read icons directory: %w", err)
	}

	rows, err := s.db.Query(`SELECT local_icon_path FROM items WHERE local_icon_path IS NOT NULL`)
	if err != nil {
		return 0, fmt.Errorf("failed to query icon paths: %w", err)
	}
	defer rows.Close()

	used := map[string]bool{}
	for rows.Next() {
		var path string
		if err := rows.Scan(&path); err != nil {
			return 0, fmt.Errorf("failed to scan icon path: %w", err)
		}
		used[filepath.Base(path)] = true
	}
	if err := rows.Err(); err != nil {
		return 0, fmt.Errorf("failed to query icon paths: %w", err)
	}

	deleted := 0
	for _, entry := range entries {
		if entry.IsDir() || used[entry.Name()] {
			continue
		}
		if err := os.Remove(filepath.Join(s.Dir(), entry.Name())); err != nil {
			s.logger.Warnf("Failed to delete unused icon %s: %v", entry.Name(), err)
			continue
		}
		deleted++
	}
	return deleted, nil
}

// CleanupAsync runs Cleanup in the background; failures are only logged.
func (s *IconService) CleanupAsync() {
	go func() {
		deleted, err := s.Cleanup()
		if err != nil {
			s.logger.Errorf("Icon cleanup failed: %v", err)
			return
		}
		if deleted > 0 {
			s.logger.Infof("Cleaned up %d unused icon(s)", deleted)
		}
	}()
}

func hashName(data []byte) string {
	sum := md5.Sum(data)
	return hex.EncodeToString(sum[:]) + ".jpg"
}
