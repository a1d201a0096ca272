// internal/store/local/local.go

// Package local is the guest-mode persistence backend: a per-key ordered
// collection store on an embedded SQLite file. Each key holds one whole
// collection as a JSON array, the way browser storage holds it, so reads and
// writes are always full-collection and synchronous.
package local

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
	"gorm.io/gorm/logger"
)

// entry is one stored collection. Value is the raw JSON array.
type entry struct {
	Key   string `gorm:"primaryKey;size:128"`
	Value []byte
}

func (entry) TableName() string { return "collections" }

// Store is a durable key/value collection store. Durability is best effort:
// writes are fire-and-forget from the caller's point of view and a corrupted
// value falls back to defaults instead of surfacing a parse error.
type Store struct {
	db *gorm.DB
}

// Open opens (or creates) the SQLite file at path and prepares the schema.
func Open(path string) (*Store, error) {
	if path == "" {
		path = "school-planner.db"
	}
	if err := ensureParentDir(path); err != nil {
		return nil, err
	}

	db, err := gorm.Open(sqlite.Open(path), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return nil, fmt.Errorf("open local store: %w", err)
	}
	if err := db.AutoMigrate(&entry{}); err != nil {
		return nil, fmt.Errorf("migrate local store: %w", err)
	}
	return &Store{db: db}, nil
}

// Close releases the underlying database handle.
func (s *Store) Close() error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

// Load unmarshals the collection stored under key into dest, which must be a
// pointer to a slice. It reports whether a stored value was applied: on a
// missing key, an unreadable row or malformed JSON it leaves dest untouched
// so the caller's pre-filled default collection survives.
func (s *Store) Load(key string, dest any) bool {
	var e entry
	if err := s.db.First(&e, "key = ?", key).Error; err != nil {
		if err != gorm.ErrRecordNotFound {
			slog.Warn("local store read failed, using defaults", "key", key, "error", err)
		}
		return false
	}
	if err := json.Unmarshal(e.Value, dest); err != nil {
		slog.Warn("local store value malformed, using defaults", "key", key, "error", err)
		return false
	}
	return true
}

// Save persists the whole collection under key, replacing any prior value.
func (s *Store) Save(key string, value any) error {
	raw, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("encode collection %q: %w", key, err)
	}
	err = s.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "key"}},
		DoUpdates: clause.AssignmentColumns([]string{"value"}),
	}).Create(&entry{Key: key, Value: raw}).Error
	if err != nil {
		return fmt.Errorf("write collection %q: %w", key, err)
	}
	return nil
}

// Delete removes a stored collection. Deleting an absent key is a no-op.
func (s *Store) Delete(key string) error {
	return s.db.Delete(&entry{}, "key = ?", key).Error
}

// ensureParentDir creates the directory that will hold the SQLite file.
// In-memory DSNs have no parent to create.
func ensureParentDir(dsn string) error {
	if strings.Contains(dsn, ":memory:") || strings.Contains(dsn, "mode=memory") {
		return nil
	}
	clean := strings.TrimPrefix(dsn, "file:")
	clean = strings.Split(clean, "?")[0]
	dir := filepath.Dir(clean)
	if dir == "." || dir == "" {
		return nil
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create local store dir %q: %w", dir, err)
	}
	return nil
}
