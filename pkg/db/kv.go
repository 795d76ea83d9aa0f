package db

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/shunichi-ikebuchi/sales-journal/pkg/store"
)

// KVMedium is a store.Medium backed by the kv_store table.
type KVMedium struct {
	conn *Connection
}

// NewKVMedium creates a new KVMedium instance.
func NewKVMedium(conn *Connection) *KVMedium {
	return &KVMedium{conn: conn}
}

// Get retrieves the value stored under key.
// It returns store.ErrKeyNotFound when the key is absent.
func (m *KVMedium) Get(key string) ([]byte, error) {
	var value []byte
	err := m.conn.QueryRow(`SELECT value FROM kv_store WHERE key = ?`, key).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, store.ErrKeyNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get %s: %w", key, err)
	}

	return value, nil
}

// Put stores value under key, replacing any previous value.
func (m *KVMedium) Put(key string, value []byte) error {
	query := `
		INSERT INTO kv_store (key, value, updated_at)
		VALUES (?, ?, CURRENT_TIMESTAMP)
		ON CONFLICT(key) DO UPDATE SET
			value = excluded.value,
			updated_at = CURRENT_TIMESTAMP
	`

	if _, err := m.conn.Exec(query, key, value); err != nil {
		return fmt.Errorf("failed to put %s: %w", key, err)
	}

	return nil
}

// Delete removes key.
func (m *KVMedium) Delete(key string) error {
	if _, err := m.conn.Exec(`DELETE FROM kv_store WHERE key = ?`, key); err != nil {
		return fmt.Errorf("failed to delete %s: %w", key, err)
	}
	return nil
}
