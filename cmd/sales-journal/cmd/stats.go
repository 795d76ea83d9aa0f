package cmd

import (
	"fmt"
	"log/slog"
	"strconv"
	"time"

	"github.com/spf13/cobra"

	"github.com/shunichi-ikebuchi/sales-journal/pkg/beancount"
	"github.com/shunichi-ikebuchi/sales-journal/pkg/db"
)

var statsYear string

// statsCmd represents the stats command.
var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Display export statistics",
	Long: `Display statistics about exported sales.

Shows:
- Total number of exported sales and their revenue
- Last export timestamp
- Ledger files written for a year

Example:
  sales-journal stats
  sales-journal stats --year 2025`,
	Run: runStats,
}

func init() {
	statsCmd.Flags().StringVar(&statsYear, "year", strconv.Itoa(time.Now().Year()), "Year to list ledger files for")
}

func runStats(cmd *cobra.Command, args []string) {
	a := mustOpenApp()
	defer a.Close()

	historyPath := a.paths.GetHistoryPath()
	slog.Debug("Opening export history", "path", historyPath)

	conn, err := db.Open(historyPath)
	exitOnError(err, "failed to open export history")
	defer conn.Close()

	stats, err := db.NewExportHistory(conn).GetStats()
	exitOnError(err, "failed to get statistics")

	repo := beancount.NewFileSystemRepository(a.paths)
	months, err := repo.Months(statsYear)
	exitOnError(err, "failed to list ledger files")

	fmt.Println("\n=== Export Statistics ===")
	fmt.Printf("Data root:            %s\n", a.paths.GetDataRoot())
	fmt.Printf("History database:     %s\n", conn.Path())
	fmt.Printf("Ledger directory:     %s\n", a.paths.GetLedgerDir())
	fmt.Printf("Total exported sales: %d\n", stats.TotalExported)
	fmt.Printf("Exported revenue:     %s\n", formatMoney(stats.TotalRevenue))

	if stats.LastExport.Valid {
		fmt.Printf("Last export:          %s\n", stats.LastExport.String)
	} else {
		fmt.Printf("Last export:          (never)\n")
	}

	if len(months) == 0 {
		fmt.Printf("Ledger files (%s):   (none)\n", statsYear)
		fmt.Println()
		return
	}

	fmt.Printf("Ledger files (%s):\n", statsYear)
	for _, month := range months {
		content, err := repo.ReadMonth(month)
		exitOnError(err, "failed to read ledger file")
		fmt.Printf("  %s  %d entries\n", month, beancount.CountEntries(content))
	}

	fmt.Println()
}
