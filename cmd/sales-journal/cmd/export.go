package cmd

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/shunichi-ikebuchi/sales-journal/pkg/beancount"
	"github.com/shunichi-ikebuchi/sales-journal/pkg/converter"
	"github.com/shunichi-ikebuchi/sales-journal/pkg/db"
	"github.com/shunichi-ikebuchi/sales-journal/pkg/export"
)

var (
	dateFrom string
	dateTo   string
	dryRun   bool
)

// exportCmd represents the export command.
var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export sales to Beancount ledger files",
	Long: `Export recorded sales to monthly Beancount files.

This command:
1. Loads the recorded sales
2. Filters out sales already exported
3. Converts them to Beancount entries (cash debit, category income credit)
4. Appends to monthly ledger files
5. Records export history in SQLite

Example:
  sales-journal export
  sales-journal export --from 2025-01-01 --to 2025-01-31 --dry-run`,
	Run: runExport,
}

func init() {
	exportCmd.Flags().StringVar(&dateFrom, "from", "", "Start date (YYYY-MM-DD)")
	exportCmd.Flags().StringVar(&dateTo, "to", "", "End date (YYYY-MM-DD)")
	exportCmd.Flags().BoolVar(&dryRun, "dry-run", false, "Dry run mode (no file writes)")
}

func runExport(cmd *cobra.Command, args []string) {
	slog.Info("Starting export", "from", dateFrom, "to", dateTo, "dry_run", dryRun)

	a := mustOpenApp()
	defer a.Close()

	err := a.cfg.Validate([]string{"ledger", "currency"}, []string{"ledger", "account_mapping"})
	exitOnError(err, "invalid export configuration")

	txns, err := a.store.ReadAll()
	exitOnError(err, "failed to load transactions")

	historyPath := a.paths.GetHistoryPath()
	slog.Debug("Opening export history", "path", historyPath)
	conn, err := db.Open(historyPath)
	exitOnError(err, "failed to open export history")
	defer conn.Close()

	mapper, err := converter.NewMapper(a.cfg.Ledger.AccountMapping)
	exitOnError(err, "failed to load account mapping")

	exporter := export.NewExporter(
		converter.NewConverter(mapper, a.cfg.Ledger.Currency),
		beancount.NewFileSystemRepository(a.paths),
		db.NewExportHistory(conn),
		a.paths,
		slog.Default(),
	)

	summary, err := exporter.Export(txns, export.Options{
		From:   dateFrom,
		To:     dateTo,
		DryRun: dryRun,
		Out:    os.Stdout,
	})
	exitOnError(err, "export failed")

	for _, f := range summary.Files {
		slog.Info("Updated file", "path", f)
	}
	for _, month := range summary.Created {
		slog.Info("New ledger file", "month", month)
	}

	if summary.Exported == 0 && summary.Failed == 0 {
		fmt.Println("No new sales to export")
	}

	slog.Info("Export completed",
		"exported", summary.Exported,
		"skipped", summary.Skipped,
		"failed", summary.Failed,
		"files_written", len(summary.Files),
	)
}
