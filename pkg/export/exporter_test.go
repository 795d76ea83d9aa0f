package export

import (
	"bytes"
	"io"
	"log/slog"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shunichi-ikebuchi/sales-journal/pkg/beancount"
	"github.com/shunichi-ikebuchi/sales-journal/pkg/converter"
	"github.com/shunichi-ikebuchi/sales-journal/pkg/db"
	"github.com/shunichi-ikebuchi/sales-journal/pkg/pathutil"
	"github.com/shunichi-ikebuchi/sales-journal/pkg/sales"
	"github.com/shunichi-ikebuchi/sales-journal/pkg/store"
)

type fixture struct {
	exporter *Exporter
	repo     *beancount.FileSystemRepository
	history  *db.ExportHistory
}

func newFixture(t *testing.T) fixture {
	t.Helper()

	resolver := pathutil.New(pathutil.Config{DataRoot: t.TempDir()})

	conn, err := db.Open(resolver.GetHistoryPath())
	require.NoError(t, err)
	t.Cleanup(func() {
		_ = conn.Close()
	})

	repo := beancount.NewFileSystemRepository(resolver)
	history := db.NewExportHistory(conn)
	cvtr := converter.NewConverter(converter.DefaultMapper(), "THB")
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	return fixture{
		exporter: NewExporter(cvtr, repo, history, resolver, logger),
		repo:     repo,
		history:  history,
	}
}

func TestExportIsIdempotent(t *testing.T) {
	f := newFixture(t)
	txns := store.SeedData()

	summary, err := f.exporter.Export(txns, Options{})
	require.NoError(t, err)
	assert.Equal(t, 5, summary.Exported)
	assert.Equal(t, 0, summary.Skipped)
	require.Len(t, summary.Files, 1)
	assert.Equal(t, "2025-01.beancount", filepath.Base(summary.Files[0]))

	content, err := f.repo.ReadMonth("2025-01")
	require.NoError(t, err)
	assert.Equal(t, 5, strings.Count(content, "#sale-"))

	// Oldest first
	assert.Less(t, strings.Index(content, "#sale-5"), strings.Index(content, "#sale-4"))
	assert.Less(t, strings.Index(content, "#sale-1"), strings.Index(content, "#sale-2"))

	summary, err = f.exporter.Export(txns, Options{})
	require.NoError(t, err)
	assert.Equal(t, 0, summary.Exported)
	assert.Equal(t, 5, summary.Skipped)
	assert.Empty(t, summary.Created)

	content, err = f.repo.ReadMonth("2025-01")
	require.NoError(t, err)
	assert.Equal(t, 5, strings.Count(content, "#sale-"))

	stats, err := f.history.GetStats()
	require.NoError(t, err)
	assert.Equal(t, 5, stats.TotalExported)
	assert.Equal(t, 1790.0, stats.TotalRevenue)
}

func TestExportDateRangeAndMonths(t *testing.T) {
	f := newFixture(t)
	txns := []sales.Transaction{
		{ID: 10, ProductID: 1, ProductName: "A", Category: "Coffee", Qty: 1, Date: "2025-01-31", Total: 10},
		{ID: 11, ProductID: 1, ProductName: "A", Category: "Coffee", Qty: 1, Date: "2025-02-01", Total: 10},
		{ID: 12, ProductID: 1, ProductName: "A", Category: "Coffee", Qty: 1, Date: "2025-03-15", Total: 10},
	}

	summary, err := f.exporter.Export(txns, Options{From: "2025-01-15", To: "2025-02-28"})
	require.NoError(t, err)
	assert.Equal(t, 2, summary.Exported)
	assert.Len(t, summary.Files, 2)
	assert.Equal(t, []string{"2025-01", "2025-02"}, summary.Created)

	assert.True(t, f.repo.HasMonth("2025-02"))
	assert.False(t, f.repo.HasMonth("2025-03"))
}

func TestExportDryRunWritesNothing(t *testing.T) {
	f := newFixture(t)

	var out bytes.Buffer
	summary, err := f.exporter.Export(store.SeedData(), Options{DryRun: true, Out: &out})
	require.NoError(t, err)
	assert.Equal(t, 5, summary.Exported)
	assert.Empty(t, summary.Files)
	assert.Equal(t, []string{"2025-01"}, summary.Created)
	assert.Contains(t, out.String(), "[DRY RUN] Would append to")
	assert.Contains(t, out.String(), `"10 x Croissant"`)

	assert.False(t, f.repo.HasMonth("2025-01"))

	ids, err := f.history.GetExportedIDs()
	require.NoError(t, err)
	assert.Empty(t, ids)
}

func TestExportCountsBadDates(t *testing.T) {
	f := newFixture(t)
	txns := []sales.Transaction{
		{ID: 20, ProductID: 1, ProductName: "A", Category: "Coffee", Qty: 1, Date: "legacy", Total: 10},
	}

	summary, err := f.exporter.Export(txns, Options{})
	require.NoError(t, err)
	assert.Equal(t, 1, summary.Failed)
	assert.Equal(t, 0, summary.Exported)
}

func TestExportRejectsMalformedBounds(t *testing.T) {
	txns := []sales.Transaction{
		{ID: 30, ProductID: 1, ProductName: "A", Category: "Coffee", Qty: 1, Date: "2025-01-15", Total: 10},
	}

	tests := []struct {
		name string
		opts Options
	}{
		{"unpadded from", Options{From: "2025-1-1", DryRun: true}},
		{"slash to", Options{To: "2025/01/31", DryRun: true}},
		{"from after to", Options{From: "2025-02-01", To: "2025-01-01", DryRun: true}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t)
			summary, err := f.exporter.Export(txns, tt.opts)
			require.Error(t, err)
			assert.Nil(t, summary)
		})
	}
}
