// Package storetest provides a contract suite run against every store medium.
package storetest

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shunichi-ikebuchi/sales-journal/pkg/sales"
	"github.com/shunichi-ikebuchi/sales-journal/pkg/store"
)

// OpenFunc returns a fresh, empty medium for one subtest.
type OpenFunc func(t *testing.T) store.Medium

// RunContract exercises a ListStore over the medium returned by open.
func RunContract(t *testing.T, open OpenFunc) {
	t.Helper()

	t.Run("first read seeds and persists", func(t *testing.T) {
		m := open(t)
		s := store.New(m)

		txns, err := s.ReadAll()
		require.NoError(t, err)
		assert.Equal(t, store.SeedData(), txns)

		_, err = m.Get(store.Key)
		require.NoError(t, err, "seed should be written to the medium")
	})

	t.Run("read is idempotent", func(t *testing.T) {
		s := store.New(open(t))

		first, err := s.ReadAll()
		require.NoError(t, err)
		second, err := s.ReadAll()
		require.NoError(t, err)
		assert.Equal(t, first, second)
	})

	t.Run("append puts record at head", func(t *testing.T) {
		s := store.New(open(t))

		before, err := s.ReadAll()
		require.NoError(t, err)

		tx := sales.Transaction{ID: 1737331200000, ProductID: 101, ProductName: "Espresso Shot", Category: "Coffee", Qty: 2, Date: "2025-01-21", Total: 120}
		require.NoError(t, s.Append(tx))

		after, err := s.ReadAll()
		require.NoError(t, err)
		require.Len(t, after, len(before)+1)
		assert.Equal(t, tx, after[0])
		assert.Equal(t, before, after[1:])
	})

	t.Run("delete removes matching id", func(t *testing.T) {
		s := store.New(open(t))

		before, err := s.ReadAll()
		require.NoError(t, err)

		require.NoError(t, s.DeleteByID(3))

		after, err := s.ReadAll()
		require.NoError(t, err)
		assert.Len(t, after, len(before)-1)
		for _, tx := range after {
			assert.NotEqual(t, int64(3), tx.ID)
		}
	})

	t.Run("delete of missing id is a no-op", func(t *testing.T) {
		s := store.New(open(t))

		before, err := s.ReadAll()
		require.NoError(t, err)

		require.NoError(t, s.DeleteByID(999))

		after, err := s.ReadAll()
		require.NoError(t, err)
		assert.Equal(t, before, after)
	})

	t.Run("delete of every record leaves an empty list", func(t *testing.T) {
		s := store.New(open(t))

		txns, err := s.ReadAll()
		require.NoError(t, err)
		for _, tx := range txns {
			require.NoError(t, s.DeleteByID(tx.ID))
		}

		after, err := s.ReadAll()
		require.NoError(t, err)
		assert.Empty(t, after)
		assert.NotNil(t, after)
	})

	t.Run("clear reseeds on next read", func(t *testing.T) {
		m := open(t)
		s := store.New(m)

		require.NoError(t, s.Append(sales.Transaction{ID: 42, ProductID: 101, ProductName: "Espresso Shot", Category: "Coffee", Qty: 1, Date: "2025-01-21", Total: 60}))
		require.NoError(t, s.Clear())

		_, err := m.Get(store.Key)
		assert.True(t, errors.Is(err, store.ErrKeyNotFound))

		txns, err := s.ReadAll()
		require.NoError(t, err)
		assert.Equal(t, store.SeedData(), txns)
	})

	t.Run("corrupt blob is reported", func(t *testing.T) {
		m := open(t)
		require.NoError(t, m.Put(store.Key, []byte("{not json")))

		s := store.New(m)
		_, err := s.ReadAll()
		require.Error(t, err)
		assert.ErrorIs(t, err, store.ErrStorageCorrupt)

		err = s.Append(sales.Transaction{ID: 1})
		assert.ErrorIs(t, err, store.ErrStorageCorrupt)
	})
	t.Run("out of range quantity is reported as corrupt", func(t *testing.T) {
		m := open(t)
		require.NoError(t, m.Put(store.Key, []byte(`[{"id":1,"productId":101,"qty":1e20,"date":"2025-01-21","total":60}]`)))

		_, err := store.New(m).ReadAll()
		assert.ErrorIs(t, err, store.ErrStorageCorrupt)
	})
}
