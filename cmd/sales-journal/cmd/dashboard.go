package cmd

import (
	"fmt"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/shunichi-ikebuchi/sales-journal/pkg/report"
)

var (
	dashboardPeriod string
	dashboardTop    int
)

// dashboardCmd represents the dashboard command.
var dashboardCmd = &cobra.Command{
	Use:   "dashboard",
	Short: "Display revenue trends, category breakdown and best sellers",
	Long: `Display the sales dashboard.

Shows:
- Total revenue and number of orders
- Revenue per day, week (starting Monday) or month
- Revenue per category
- Best sellers by quantity

Example:
  sales-journal dashboard
  sales-journal dashboard --period monthly --top 3`,
	Run: runDashboard,
}

func init() {
	dashboardCmd.Flags().StringVar(&dashboardPeriod, "period", string(report.Daily), "Revenue grouping: daily, weekly or monthly")
	dashboardCmd.Flags().IntVar(&dashboardTop, "top", 0, "Number of best sellers (default SALES_TOP_N)")
}

func runDashboard(cmd *cobra.Command, args []string) {
	period, err := report.ParsePeriod(dashboardPeriod)
	exitOnError(err, "invalid period")

	a := mustOpenApp()
	defer a.Close()

	txns, err := a.store.ReadAll()
	exitOnError(err, "failed to load transactions")

	topN := dashboardTop
	if topN <= 0 {
		topN = a.cfg.TopN
	}

	d := report.Build(txns, period, topN)

	fmt.Println("\n=== Summary ===")
	fmt.Printf("Total revenue: %s\n", formatMoney(d.Summary.Revenue))
	fmt.Printf("Total orders:  %d\n", d.Summary.Orders)

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)

	fmt.Fprintf(w, "\n=== Revenue (%s) ===\n", d.Period)
	fmt.Fprintln(w, "BUCKET\tREVENUE\t")
	for _, p := range d.Revenue {
		fmt.Fprintf(w, "%s\t%s\t%s\n", p.Bucket, formatMoney(p.Total), bar(p.Total, maxRevenue(d.Revenue)))
	}

	fmt.Fprintln(w, "\n=== Revenue by category ===")
	fmt.Fprintln(w, "CATEGORY\tREVENUE\tSHARE")
	for _, s := range d.Categories {
		share := 0.0
		if d.Summary.Revenue > 0 {
			share = s.Total / d.Summary.Revenue * 100
		}
		fmt.Fprintf(w, "%s\t%s\t%.1f%%\n", s.Category, formatMoney(s.Total), share)
	}

	fmt.Fprintf(w, "\n=== Top %d best sellers ===\n", topN)
	fmt.Fprintln(w, "#\tPRODUCT\tQTY")
	for i, s := range d.TopSellers {
		fmt.Fprintf(w, "%d\t%s\t%d\n", i+1, s.ProductName, s.Qty)
	}
	w.Flush()
	fmt.Println()
}

func maxRevenue(points []report.Point) float64 {
	var m float64
	for _, p := range points {
		if p.Total > m {
			m = p.Total
		}
	}
	return m
}

// bar renders a proportional bar of at most 30 cells.
func bar(value, peak float64) string {
	if peak <= 0 || value <= 0 {
		return ""
	}
	return strings.Repeat("#", int(value/peak*30+0.5))
}
