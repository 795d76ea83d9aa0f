// Package store persists the sales journal as a single JSON list under one key.
package store

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/shunichi-ikebuchi/sales-journal/pkg/sales"
)

var (
	// ErrStorageUnavailable is returned when the medium cannot be read or written.
	ErrStorageUnavailable = errors.New("storage unavailable")

	// ErrStorageCorrupt is returned when the stored list cannot be decoded.
	ErrStorageCorrupt = errors.New("storage corrupt")
)

// Key is the storage key holding the transaction list.
const Key = "sales_app_v1"

// Store defines the persistence operations of the journal.
type Store interface {
	// ReadAll returns every record, newest first, seeding an empty store
	ReadAll() ([]sales.Transaction, error)

	// Append prepends a record and writes the list back
	Append(tx sales.Transaction) error

	// DeleteByID removes the record with the given id, if any
	DeleteByID(id int64) error

	// Clear removes the list entirely
	Clear() error
}

// ListStore is a Store that keeps the whole list as one JSON blob in a Medium.
type ListStore struct {
	medium Medium
	key    string
	seed   []sales.Transaction
}

// Option configures a ListStore.
type Option func(*ListStore)

// WithKey overrides the storage key.
func WithKey(key string) Option {
	return func(s *ListStore) {
		s.key = key
	}
}

// WithSeed overrides the records written on first read.
func WithSeed(seed []sales.Transaction) Option {
	return func(s *ListStore) {
		s.seed = seed
	}
}

// New creates a ListStore on top of the given medium.
func New(medium Medium, opts ...Option) *ListStore {
	s := &ListStore{
		medium: medium,
		key:    Key,
		seed:   SeedData(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// ReadAll returns every record, newest first.
// When the key is absent the seed dataset is written and returned.
func (s *ListStore) ReadAll() ([]sales.Transaction, error) {
	data, err := s.medium.Get(s.key)
	if errors.Is(err, ErrKeyNotFound) {
		seed := make([]sales.Transaction, len(s.seed))
		copy(seed, s.seed)
		if err := s.write(seed); err != nil {
			return nil, err
		}
		return seed, nil
	}
	if err != nil {
		return nil, fmt.Errorf("%w: failed to read %s: %w", ErrStorageUnavailable, s.key, err)
	}

	var txns []sales.Transaction
	if err := json.Unmarshal(data, &txns); err != nil {
		return nil, fmt.Errorf("%w: failed to decode %s: %w", ErrStorageCorrupt, s.key, err)
	}
	if txns == nil {
		txns = []sales.Transaction{}
	}

	return txns, nil
}

// Append prepends tx to the stored list.
func (s *ListStore) Append(tx sales.Transaction) error {
	current, err := s.ReadAll()
	if err != nil {
		return err
	}

	next := make([]sales.Transaction, 0, len(current)+1)
	next = append(next, tx)
	next = append(next, current...)

	return s.write(next)
}

// DeleteByID removes the record with the given id.
// A missing id is not an error.
func (s *ListStore) DeleteByID(id int64) error {
	current, err := s.ReadAll()
	if err != nil {
		return err
	}

	next := make([]sales.Transaction, 0, len(current))
	for _, tx := range current {
		if tx.ID != id {
			next = append(next, tx)
		}
	}

	if len(next) == len(current) {
		return nil
	}

	return s.write(next)
}

// Clear removes the stored list. The next ReadAll seeds it again.
func (s *ListStore) Clear() error {
	if err := s.medium.Delete(s.key); err != nil {
		return fmt.Errorf("%w: failed to clear %s: %w", ErrStorageUnavailable, s.key, err)
	}
	return nil
}

func (s *ListStore) write(txns []sales.Transaction) error {
	data, err := json.Marshal(txns)
	if err != nil {
		return fmt.Errorf("failed to encode transactions: %w", err)
	}

	if err := s.medium.Put(s.key, data); err != nil {
		return fmt.Errorf("%w: failed to write %s: %w", ErrStorageUnavailable, s.key, err)
	}

	return nil
}
