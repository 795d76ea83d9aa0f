package cmd

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/shunichi-ikebuchi/sales-journal/pkg/stock"
)

// productsCmd represents the products command.
var productsCmd = &cobra.Command{
	Use:   "products",
	Short: "List the product catalog",
	Long: `List every product in the catalog with its price and remaining stock.

Example:
  sales-journal products`,
	Run: runProducts,
}

func runProducts(cmd *cobra.Command, args []string) {
	a := mustOpenApp()
	defer a.Close()

	txns, err := a.store.ReadAll()
	exitOnError(err, "failed to load transactions")

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tNAME\tCATEGORY\tPRICE\tREMAINING\tDESCRIPTION")
	for _, l := range stock.Levels(a.catalog.All(), txns) {
		fmt.Fprintf(w, "%d\t%s\t%s\t%s\t%s\t%s\n",
			l.Product.ID,
			l.Product.Name,
			l.Product.Category,
			formatMoney(l.Product.Price),
			formatRemaining(l.Remaining),
			l.Product.Description,
		)
	}
	w.Flush()
}
