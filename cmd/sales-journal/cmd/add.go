package cmd

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/shunichi-ikebuchi/sales-journal/pkg/journal"
)

var (
	addProductID int64
	addQty       int
	addDate      string
	addCategory  string
)

// addCmd represents the add command.
var addCmd = &cobra.Command{
	Use:   "add",
	Short: "Record a sale",
	Long: `Record a sale of a catalog product.

The sale is rejected when the quantity exceeds the remaining stock.
Product name, category and total are frozen at the time of the sale.

Example:
  sales-journal add --product 101 --qty 2
  sales-journal add --product 107 --qty 1 --date 2025-01-20 --category "Staff Meal"`,
	Run: runAdd,
}

func init() {
	addCmd.Flags().Int64Var(&addProductID, "product", 0, "Product ID (required)")
	addCmd.Flags().IntVar(&addQty, "qty", 1, "Quantity")
	addCmd.Flags().StringVar(&addDate, "date", "", "Sale date (YYYY-MM-DD, default today)")
	addCmd.Flags().StringVar(&addCategory, "category", "", "Category override (default is the product category)")

	addCmd.MarkFlagRequired("product")
}

func runAdd(cmd *cobra.Command, args []string) {
	a := mustOpenApp()
	defer a.Close()

	wf, err := a.workflow()
	exitOnError(err, "failed to load journal")

	wf.SelectProduct(addProductID)
	wf.SetQty(addQty)
	if addDate != "" {
		wf.SetDate(addDate)
	}
	wf.SetCategoryOverride(addCategory)

	if remaining, ok := wf.Remaining(); ok {
		slog.Debug("Stock check", "product_id", addProductID, "remaining", remaining, "requested", addQty)
	}

	res, err := wf.Submit()
	exitOnError(err, "failed to record sale")

	if !res.Committed() {
		msg := res.Blocked.Message()
		if remaining, ok := wf.Remaining(); ok && res.Blocked == journal.InsufficientStock {
			msg = fmt.Sprintf("%s (remaining: %d)", msg, remaining)
		}
		fmt.Fprintf(os.Stderr, "Error: %s\n", msg)
		os.Exit(1)
	}

	tx := res.Record
	fmt.Printf("Recorded sale %d: %d x %s (%s) on %s, total %s\n",
		tx.ID, tx.Qty.Int(), tx.ProductName, tx.Category, tx.Date, formatMoney(tx.Total))
}
