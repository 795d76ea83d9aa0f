package store

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	bolt "go.etcd.io/bbolt"
)

// BucketJournal is the bbolt bucket holding the journal keys.
const BucketJournal = "journal"

// BoltMedium is a Medium backed by a bbolt database file.
type BoltMedium struct {
	db   *bolt.DB
	path string
}

// OpenBolt opens (or creates) a bbolt file and initializes the journal bucket.
// bbolt locks the file exclusively; timeout bounds the wait for another process.
func OpenBolt(dbPath string, timeout time.Duration) (*BoltMedium, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0755); err != nil {
		return nil, fmt.Errorf("%w: failed to create database directory: %w", ErrStorageUnavailable, err)
	}

	db, err := bolt.Open(dbPath, 0o600, &bolt.Options{Timeout: timeout})
	if err != nil {
		return nil, fmt.Errorf("%w: failed to open database: %w", ErrStorageUnavailable, err)
	}

	err = db.Update(func(tx *bolt.Tx) error {
		if _, err := tx.CreateBucketIfNotExists([]byte(BucketJournal)); err != nil {
			return fmt.Errorf("failed to create bucket %s: %w", BucketJournal, err)
		}
		return nil
	})
	if err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("%w: %w", ErrStorageUnavailable, err)
	}

	return &BoltMedium{db: db, path: dbPath}, nil
}

// Close closes the database.
func (m *BoltMedium) Close() error {
	return m.db.Close()
}

// Path returns the database file path.
func (m *BoltMedium) Path() string {
	return m.path
}

// Get retrieves the value stored under key.
func (m *BoltMedium) Get(key string) ([]byte, error) {
	var value []byte
	err := m.db.View(func(tx *bolt.Tx) error {
		b := tx.Bucket([]byte(BucketJournal))
		if b == nil {
			return fmt.Errorf("bucket %s not found", BucketJournal)
		}

		data := b.Get([]byte(key))
		if data == nil {
			return ErrKeyNotFound
		}

		// Copy the value since it's only valid during the transaction.
		value = make([]byte, len(data))
		copy(value, data)
		return nil
	})
	return value, err
}

// Put stores value under key.
func (m *BoltMedium) Put(key string, value []byte) error {
	return m.db.Update(func(tx *bolt.Tx) error {
		b := tx.Bucket([]byte(BucketJournal))
		if b == nil {
			return fmt.Errorf("bucket %s not found", BucketJournal)
		}

		return b.Put([]byte(key), value)
	})
}

// Delete removes key.
func (m *BoltMedium) Delete(key string) error {
	return m.db.Update(func(tx *bolt.Tx) error {
		b := tx.Bucket([]byte(BucketJournal))
		if b == nil {
			return fmt.Errorf("bucket %s not found", BucketJournal)
		}

		return b.Delete([]byte(key))
	})
}
