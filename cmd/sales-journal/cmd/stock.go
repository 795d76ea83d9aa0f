package cmd

import (
	"fmt"
	"os"
	"strconv"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/shunichi-ikebuchi/sales-journal/pkg/stock"
)

var lowStockOnly bool

// stockCmd represents the stock command.
var stockCmd = &cobra.Command{
	Use:   "stock",
	Short: "Display remaining stock per product",
	Long: `Display on-hand inventory, lifetime quantity sold and remaining stock.

Remaining stock can be negative when recorded sales exceed the catalog
inventory; such products are reported as out of stock.

Example:
  sales-journal stock
  sales-journal stock --out-of-stock`,
	Run: runStock,
}

func init() {
	stockCmd.Flags().BoolVar(&lowStockOnly, "out-of-stock", false, "Only show products that cannot be sold")
}

func runStock(cmd *cobra.Command, args []string) {
	a := mustOpenApp()
	defer a.Close()

	txns, err := a.store.ReadAll()
	exitOnError(err, "failed to load transactions")

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tNAME\tINVENTORY\tSOLD\tREMAINING")
	for _, l := range stock.Levels(a.catalog.All(), txns) {
		if lowStockOnly && !l.OutOfStock() {
			continue
		}
		fmt.Fprintf(w, "%d\t%s\t%d\t%d\t%s\n",
			l.Product.ID,
			l.Product.Name,
			l.Product.Inventory,
			l.Sold,
			formatRemaining(l.Remaining),
		)
	}
	w.Flush()
}

// formatRemaining shows non-positive stock as out of stock, keeping the raw value.
func formatRemaining(remaining int) string {
	if remaining <= 0 {
		return fmt.Sprintf("out of stock (%d)", remaining)
	}
	return strconv.Itoa(remaining)
}
