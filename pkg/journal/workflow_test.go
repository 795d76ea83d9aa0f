package journal

import (
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shunichi-ikebuchi/sales-journal/pkg/catalog"
	"github.com/shunichi-ikebuchi/sales-journal/pkg/sales"
	"github.com/shunichi-ikebuchi/sales-journal/pkg/store"
)

var fixedNow = time.Date(2025, 1, 21, 10, 30, 0, 0, time.UTC)

func newTestWorkflow(t *testing.T, st store.Store) *Workflow {
	t.Helper()

	cat, err := catalog.Default()
	require.NoError(t, err)

	w, err := New(st, cat,
		WithClock(func() time.Time { return fixedNow }),
		WithLogger(slog.New(slog.NewTextHandler(io.Discard, nil))),
	)
	require.NoError(t, err)
	return w
}

func TestEndToEndScenario(t *testing.T) {
	st := store.New(store.NewMemoryMedium())
	w := newTestWorkflow(t, st)

	// Empty store is seeded on first load
	assert.Equal(t, store.SeedData(), w.Transactions())

	w.SelectProduct(101) // Espresso Shot, 60
	w.SetQty(2)
	assert.Equal(t, 120.0, w.EstimatedTotal())
	assert.True(t, w.CanSubmit())

	res, err := w.Submit()
	require.NoError(t, err)
	require.True(t, res.Committed())
	assert.Equal(t, None, res.Blocked)
	assert.Equal(t, 120.0, res.Record.Total)
	assert.Equal(t, fixedNow.UnixMilli(), res.Record.ID)
	assert.Equal(t, "Espresso Shot", res.Record.ProductName)
	assert.Equal(t, "Coffee", res.Record.Category)
	assert.Equal(t, "2025-01-21", res.Record.Date)

	txns, err := st.ReadAll()
	require.NoError(t, err)
	require.Len(t, txns, 6)
	assert.Equal(t, *res.Record, txns[0])
	assert.Equal(t, txns, w.Transactions())

	// Over-request: 120 on hand, 4 sold
	w.SelectProduct(101)
	w.SetQty(117)
	assert.Equal(t, InsufficientStock, w.Check())
	assert.False(t, w.CanSubmit())

	res, err = w.Submit()
	require.NoError(t, err)
	assert.False(t, res.Committed())
	assert.Equal(t, InsufficientStock, res.Blocked)

	txns, err = st.ReadAll()
	require.NoError(t, err)
	assert.Len(t, txns, 6)

	w.SetQty(116)
	assert.True(t, w.CanSubmit())
}

func TestSubmitResetsForm(t *testing.T) {
	w := newTestWorkflow(t, store.New(store.NewMemoryMedium()))

	w.SelectProduct(104)
	w.SetQty(3)
	w.SetDate("2025-01-19")
	w.SetCategoryOverride("  Staff Meal ")

	res, err := w.Submit()
	require.NoError(t, err)
	require.True(t, res.Committed())
	assert.Equal(t, "Staff Meal", res.Record.Category)
	assert.Equal(t, "2025-01-19", res.Record.Date)

	assert.Equal(t, Form{Qty: 1, Date: "2025-01-19"}, w.Form())
	assert.Equal(t, Editing, w.State())
}

func TestSubmitGuards(t *testing.T) {
	tests := []struct {
		name  string
		setup func(w *Workflow)
		want  Violation
	}{
		{"nothing selected", func(w *Workflow) {}, NoProductSelected},
		{"unknown product", func(w *Workflow) { w.SelectProduct(999) }, NoProductSelected},
		{"zero quantity", func(w *Workflow) { w.SelectProduct(101); w.SetQty(0) }, InvalidQuantity},
		{"bad date", func(w *Workflow) { w.SelectProduct(101); w.SetDate("21/01/2025") }, InvalidDate},
		{"over stock", func(w *Workflow) { w.SelectProduct(106); w.SetQty(20) }, InsufficientStock},
		{"exactly remaining", func(w *Workflow) { w.SelectProduct(106); w.SetQty(19) }, None},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			st := store.New(store.NewMemoryMedium())
			w := newTestWorkflow(t, st)
			tt.setup(w)

			assert.Equal(t, tt.want, w.Check())
			assert.Equal(t, tt.want == None, w.CanSubmit())

			before := w.Form()
			res, err := w.Submit()
			require.NoError(t, err)

			if tt.want == None {
				assert.True(t, res.Committed())
				return
			}

			assert.Equal(t, tt.want, res.Blocked)
			assert.NotEmpty(t, res.Blocked.Message())
			assert.Equal(t, before, w.Form())

			txns, err := st.ReadAll()
			require.NoError(t, err)
			assert.Len(t, txns, 5)
		})
	}
}

func TestTotalIsFrozenAfterCatalogChange(t *testing.T) {
	st := store.New(store.NewMemoryMedium())

	cat, err := catalog.New([]sales.Product{{ID: 1, Name: "Latte", Price: 50, Category: "Coffee", Inventory: 100}})
	require.NoError(t, err)
	w, err := New(st, cat, WithClock(func() time.Time { return fixedNow }))
	require.NoError(t, err)

	w.SelectProduct(1)
	w.SetQty(2)
	res, err := w.Submit()
	require.NoError(t, err)
	require.True(t, res.Committed())

	// Same store, new catalog with a different price and name
	repriced, err := catalog.New([]sales.Product{{ID: 1, Name: "Big Latte", Price: 80, Category: "Drinks", Inventory: 100}})
	require.NoError(t, err)
	w2, err := New(st, repriced)
	require.NoError(t, err)

	got := w2.Transactions()[0]
	assert.Equal(t, 100.0, got.Total)
	assert.Equal(t, "Latte", got.ProductName)
	assert.Equal(t, "Coffee", got.Category)
}

func TestIDsStayUnique(t *testing.T) {
	w := newTestWorkflow(t, store.New(store.NewMemoryMedium()))

	seen := make(map[int64]bool)
	for i := 0; i < 3; i++ {
		w.SelectProduct(102)
		res, err := w.Submit()
		require.NoError(t, err)
		require.True(t, res.Committed())
		assert.False(t, seen[res.Record.ID], "duplicate id %d", res.Record.ID)
		seen[res.Record.ID] = true
	}

	txns := w.Transactions()
	assert.Greater(t, txns[0].ID, txns[1].ID)
	assert.Greater(t, txns[1].ID, txns[2].ID)
}

func TestRemainingFollowsList(t *testing.T) {
	w := newTestWorkflow(t, store.New(store.NewMemoryMedium()))

	_, ok := w.Remaining()
	assert.False(t, ok)

	w.SelectProduct(107) // Croissant: 40 on hand, 10 sold in seed
	remaining, ok := w.Remaining()
	require.True(t, ok)
	assert.Equal(t, 30, remaining)

	w.SetQty(5)
	_, err := w.Submit()
	require.NoError(t, err)

	w.SelectProduct(107)
	remaining, _ = w.Remaining()
	assert.Equal(t, 25, remaining)
}

func TestDeleteAndReset(t *testing.T) {
	st := store.New(store.NewMemoryMedium())
	w := newTestWorkflow(t, st)

	require.NoError(t, w.Delete(3))
	assert.Len(t, w.Transactions(), 4)

	require.NoError(t, w.Delete(12345))
	assert.Len(t, w.Transactions(), 4)

	w.SelectProduct(101)
	require.NoError(t, w.Reset())
	assert.Equal(t, store.SeedData(), w.Transactions())
	assert.Equal(t, Form{Qty: 1, Date: "2025-01-21"}, w.Form())
}

type brokenStore struct {
	store.Store
	appendErr error
	readErr   error
	reads     int
}

func (b *brokenStore) ReadAll() ([]sales.Transaction, error) {
	b.reads++
	if b.readErr != nil && b.reads > 1 {
		return nil, b.readErr
	}
	return b.Store.ReadAll()
}

func (b *brokenStore) Append(tx sales.Transaction) error {
	if b.appendErr != nil {
		return b.appendErr
	}
	return b.Store.Append(tx)
}

func TestSubmitStorageFailure(t *testing.T) {
	bs := &brokenStore{
		Store:     store.New(store.NewMemoryMedium()),
		appendErr: store.ErrStorageUnavailable,
	}
	w := newTestWorkflow(t, bs)

	w.SelectProduct(101)
	w.SetQty(2)

	res, err := w.Submit()
	require.Error(t, err)
	assert.True(t, errors.Is(err, store.ErrStorageUnavailable))
	assert.False(t, res.Committed())
	assert.Equal(t, Editing, w.State())
	assert.Equal(t, int64(101), w.Form().ProductID)
	assert.Equal(t, 2, w.Form().Qty)
}

func TestSubmitRefreshFailureStillReportsRecord(t *testing.T) {
	bs := &brokenStore{
		Store:   store.New(store.NewMemoryMedium()),
		readErr: store.ErrStorageCorrupt,
	}
	w := newTestWorkflow(t, bs)

	w.SelectProduct(101)
	res, err := w.Submit()
	require.Error(t, err)
	assert.ErrorIs(t, err, store.ErrStorageCorrupt)
	require.True(t, res.Committed())
	assert.Equal(t, Form{Qty: 1, Date: "2025-01-21"}, w.Form())
}

func TestStateString(t *testing.T) {
	assert.Equal(t, "editing", Editing.String())
	assert.Equal(t, "committing", Committing.String())
	assert.Equal(t, "insufficient_stock", InsufficientStock.String())
}
