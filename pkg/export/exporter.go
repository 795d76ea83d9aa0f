// Package export writes journal sales into monthly Beancount ledgers.
package export

import (
	"fmt"
	"io"
	"log/slog"
	"sort"
	"time"

	"github.com/shunichi-ikebuchi/sales-journal/pkg/beancount"
	"github.com/shunichi-ikebuchi/sales-journal/pkg/converter"
	"github.com/shunichi-ikebuchi/sales-journal/pkg/db"
	"github.com/shunichi-ikebuchi/sales-journal/pkg/pathutil"
	"github.com/shunichi-ikebuchi/sales-journal/pkg/sales"
)

// Exporter appends sales that have not been exported yet to ledger files.
type Exporter struct {
	converter    *converter.Converter
	repo         beancount.Repository
	history      *db.ExportHistory
	pathResolver *pathutil.PathResolver
	logger       *slog.Logger
}

// NewExporter creates a new Exporter.
func NewExporter(cvtr *converter.Converter, repo beancount.Repository, history *db.ExportHistory, pathResolver *pathutil.PathResolver, logger *slog.Logger) *Exporter {
	if logger == nil {
		logger = slog.Default()
	}
	return &Exporter{
		converter:    cvtr,
		repo:         repo,
		history:      history,
		pathResolver: pathResolver,
		logger:       logger,
	}
}

// Options controls one export run.
type Options struct {
	From   string // inclusive YYYY-MM-DD, empty for no lower bound
	To     string // inclusive YYYY-MM-DD, empty for no upper bound
	DryRun bool
	Out    io.Writer // receives formatted entries in dry-run mode
}

// Summary reports what an export run did.
type Summary struct {
	Exported int
	Skipped  int
	Failed   int
	Files    []string // ledger files written to
	Created  []string // months whose ledger file is new, YYYY-MM
}

// Export writes every sale in range that is not yet in the export history.
// Sales are written oldest first so ledger files read chronologically.
func (e *Exporter) Export(txns []sales.Transaction, opts Options) (*Summary, error) {
	if err := opts.validate(); err != nil {
		return nil, err
	}

	exportedIDs, err := e.history.GetExportedIDs()
	if err != nil {
		return nil, fmt.Errorf("failed to get exported IDs: %w", err)
	}

	done := make(map[int64]bool, len(exportedIDs))
	for _, id := range exportedIDs {
		done[id] = true
	}

	summary := &Summary{}
	var pending []sales.Transaction
	for _, tx := range txns {
		if !inRange(tx.Date, opts.From, opts.To) {
			continue
		}
		if done[tx.ID] {
			summary.Skipped++
			continue
		}
		pending = append(pending, tx)
	}

	sort.SliceStable(pending, func(i, j int) bool {
		if pending[i].Date != pending[j].Date {
			return pending[i].Date < pending[j].Date
		}
		return pending[i].ID < pending[j].ID
	})

	e.logger.Info("Sales to export", "pending", len(pending), "skipped", summary.Skipped, "dry_run", opts.DryRun)

	files := make(map[string]bool)
	created := make(map[string]bool)
	for _, tx := range pending {
		monthKey := monthOf(tx.Date)
		filePath, err := e.pathResolver.GetMonthFilePath(monthKey)
		if err != nil {
			e.logger.Error("Failed to get month file path", "id", tx.ID, "date", tx.Date, "error", err)
			summary.Failed++
			continue
		}

		formatted := e.converter.FormatTransaction(e.converter.ConvertSale(tx))

		if !e.repo.HasMonth(monthKey) && !created[monthKey] {
			created[monthKey] = true
			summary.Created = append(summary.Created, monthKey)
			e.logger.Info("New ledger file", "month", monthKey, "path", filePath, "dry_run", opts.DryRun)
		}

		if opts.DryRun {
			if opts.Out != nil {
				fmt.Fprintf(opts.Out, "[DRY RUN] Would append to %s\n%s\n", filePath, formatted)
			}
			summary.Exported++
			continue
		}

		if err := e.repo.AppendEntry(monthKey, formatted); err != nil {
			e.logger.Error("Failed to append sale", "id", tx.ID, "error", err)
			summary.Failed++
			continue
		}

		if err := e.history.RecordExport(db.ExportRecord{
			TransactionID: tx.ID,
			SaleDate:      tx.Date,
			Total:         tx.Total,
			LedgerFile:    filePath,
		}); err != nil {
			// The entry is in the ledger already; a rerun would duplicate it.
			return summary, fmt.Errorf("failed to record export of sale %d: %w", tx.ID, err)
		}

		summary.Exported++
		if !files[filePath] {
			files[filePath] = true
			summary.Files = append(summary.Files, filePath)
		}
	}

	sort.Strings(summary.Files)
	return summary, nil
}

func (o Options) validate() error {
	for name, bound := range map[string]string{"from": o.From, "to": o.To} {
		if bound == "" {
			continue
		}
		if _, err := time.Parse(sales.DateLayout, bound); err != nil {
			return fmt.Errorf("invalid %s date %q (expected YYYY-MM-DD): %w", name, bound, err)
		}
	}
	if o.From != "" && o.To != "" && o.From > o.To {
		return fmt.Errorf("from date %s is after to date %s", o.From, o.To)
	}
	return nil
}

func inRange(date, from, to string) bool {
	if from != "" && date < from {
		return false
	}
	if to != "" && date > to {
		return false
	}
	return true
}

func monthOf(date string) string {
	if len(date) < 7 {
		return date
	}
	return date[:7]
}
