package database

import (
	"database/sql"
	"errors"
	"fmt"
)

// KVStore implements storage.KV on top of the kv_store table.
type KVStore struct {
	db *sql.DB
}

// NewKVStore creates a new KVStore. Migrate must have been run on db.
func NewKVStore(db *sql.DB) *KVStore {
	return &KVStore{db: db}
}

// Get returns the value stored under key.
func (s *KVStore) Get(key string) ([]byte, bool, error) {
	var value []byte
	err := s.db.QueryRow("SELECT value FROM kv_store WHERE key = ?", key).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("kv get %q: %w", key, err)
	}
	return value, true, nil
}

// Set replaces the value stored under key.
func (s *KVStore) Set(key string, value []byte) error {
	stmt, err := s.db.Prepare(`
		INSERT INTO kv_store (key, value, updated_at) VALUES (?, ?, CURRENT_TIMESTAMP)
		ON CONFLICT(key) DO UPDATE SET value = excluded.value, updated_at = CURRENT_TIMESTAMP
	`)
	if err != nil {
		return fmt.Errorf("kv set %q: %w", key, err)
	}
	defer stmt.Close()

	if _, err := stmt.Exec(key, value); err != nil {
		return fmt.Errorf("kv set %q: %w", key, err)
	}
	return nil
}
