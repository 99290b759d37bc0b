package repositories

import (
	"database/sql"
	"encoding/json"
	"fmt"

	"github.com/charmbracelet/log"
)

// KV is the synchronous string-keyed storage the stores persist into, the
// local analogue of a browser's localStorage.
type KV interface {
	// Get returns the value for key and whether it was present.
	Get(key string) (string, bool, error)
	// Set writes value under key, replacing any prior value.
	Set(key, value string) error
	// Delete removes key. Deleting an absent key is not an error.
	Delete(key string) error
}

// ScopedKey derives the storage key for a collection prefix under an identity
// scope. An empty scope id is the anonymous scope.
func ScopedKey(prefix, scopeID string) string {
	if scopeID == "" {
		return prefix
	}
	return prefix + "_" + scopeID
}

// SQLiteKV implements [KV] over the kv table.
type SQLiteKV struct {
	db *sql.DB
}

// NewSQLiteKV creates a [SQLiteKV] with the given database connection.
func NewSQLiteKV(db *sql.DB) *SQLiteKV {
	return &SQLiteKV{db: db}
}

// Get returns the value for key and whether it was present.
func (s *SQLiteKV) Get(key string) (string, bool, error) {
	var value string
	err := s.db.QueryRow("SELECT value FROM kv WHERE key = ?", key).Scan(&value)
	if err == sql.ErrNoRows {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("failed to read key %s: %w", key, err)
	}
	return value, true, nil
}

// Set writes value under key, replacing any prior value.
func (s *SQLiteKV) Set(key, value string) error {
	query := `
		INSERT INTO kv (key, value, updated_at) VALUES (?, ?, CURRENT_TIMESTAMP)
		ON CONFLICT(key) DO UPDATE SET value = excluded.value, updated_at = CURRENT_TIMESTAMP
	`
	if _, err := s.db.Exec(query, key, value); err != nil {
		return fmt.Errorf("failed to write key %s: %w", key, err)
	}
	return nil
}

// Delete removes key.
func (s *SQLiteKV) Delete(key string) error {
	if _, err := s.db.Exec("DELETE FROM kv WHERE key = ?", key); err != nil {
		return fmt.Errorf("failed to delete key %s: %w", key, err)
	}
	return nil
}

// loadCollection reads and parses the collection stored under key. Absence,
// read failures, and parse failures all degrade to the fallback; failures are
// logged, never returned.
func loadCollection[T any](kv KV, logger *log.Logger, key string, fallback T) T {
	raw, ok, err := kv.Get(key)
	if err != nil {
		logger.Error("failed to load collection", "key", key, "error", err)
		return fallback
	}
	if !ok {
		return fallback
	}

	var value T
	if err := json.Unmarshal([]byte(raw), &value); err != nil {
		logger.Error("failed to parse stored collection", "key", key, "error", err)
		return fallback
	}
	return value
}

// saveCollection serializes and writes the whole collection under key. A
// write failure is logged and does not roll back the in-memory state; memory
// and storage may diverge until the next successful write.
func saveCollection[T any](kv KV, logger *log.Logger, key string, value T) {
	data, err := json.Marshal(value)
	if err != nil {
		logger.Error("failed to serialize collection", "key", key, "error", err)
		return
	}
	if err := kv.Set(key, string(data)); err != nil {
		logger.Error("failed to persist collection", "key", key, "error", err)
	}
}
