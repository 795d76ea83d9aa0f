package cmd

import (
	"fmt"
	"os"
	"strconv"
	"text/tabwriter"

	"github.com/spf13/cobra"
)

var listLimit int

// listCmd represents the list command.
var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List recorded sales, newest first",
	Long: `List recorded sales, newest first.

Example:
  sales-journal list
  sales-journal list --limit 10`,
	Run: runList,
}

func init() {
	listCmd.Flags().IntVar(&listLimit, "limit", 0, "Maximum number of sales to show (0 for all)")
}

func runList(cmd *cobra.Command, args []string) {
	a := mustOpenApp()
	defer a.Close()

	txns, err := a.store.ReadAll()
	exitOnError(err, "failed to load transactions")

	if len(txns) == 0 {
		fmt.Println("No transactions recorded yet.")
		return
	}

	if listLimit > 0 && len(txns) > listLimit {
		txns = txns[:listLimit]
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tDATE\tPRODUCT\tCATEGORY\tQTY\tTOTAL")
	for _, tx := range txns {
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%d\t%s\n",
			strconv.FormatInt(tx.ID, 10),
			tx.Date,
			tx.ProductName,
			tx.Category,
			tx.Qty.Int(),
			formatMoney(tx.Total),
		)
	}
	w.Flush()
}

// formatMoney prints whole amounts without decimals and others with two.
func formatMoney(amount float64) string {
	if amount == float64(int64(amount)) {
		return strconv.FormatInt(int64(amount), 10)
	}
	return strconv.FormatFloat(amount, 'f', 2, 64)
}
