// Package report aggregates the sales journal into dashboard views.
//
// All functions are pure: they take the full transaction list and return a new
// value, so callers recompute after every change instead of invalidating.
package report

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/shunichi-ikebuchi/sales-journal/pkg/sales"
)

// DefaultTopN is the number of best sellers shown on the dashboard.
const DefaultTopN = 5

// Period is the granularity of a revenue series.
type Period string

const (
	Daily   Period = "daily"
	Weekly  Period = "weekly"
	Monthly Period = "monthly"
)

// ParsePeriod converts a user supplied string to a Period.
func ParsePeriod(s string) (Period, error) {
	switch p := Period(strings.ToLower(strings.TrimSpace(s))); p {
	case Daily, Weekly, Monthly:
		return p, nil
	default:
		return "", fmt.Errorf("unknown period %q (expected daily, weekly or monthly)", s)
	}
}

// Point is one bucket of a revenue series.
type Point struct {
	Bucket string
	Total  float64
}

// Slice is the revenue of one category.
type Slice struct {
	Category string
	Total    float64
}

// Seller is a product's cumulative sold quantity.
type Seller struct {
	ProductName string
	Qty         int
}

// Summary holds the dashboard headline figures.
type Summary struct {
	Revenue float64
	Orders  int
}

// BucketKey returns the bucket a date belongs to.
//
//   - daily: the date itself
//   - weekly: the Monday on or before the date (YYYY-MM-DD)
//   - monthly: YYYY-MM
//
// A date that does not parse keeps its raw value as weekly key so its revenue
// still lands in some bucket.
func BucketKey(date string, period Period) string {
	switch period {
	case Weekly:
		return startOfWeek(date)
	case Monthly:
		if len(date) < 7 {
			return date
		}
		return date[:7]
	default:
		return date
	}
}

func startOfWeek(date string) string {
	d, err := time.Parse(sales.DateLayout, date)
	if err != nil {
		return date
	}

	// Sunday belongs to the week that started six days earlier
	back := int(d.Weekday()) - 1
	if d.Weekday() == time.Sunday {
		back = 6
	}

	return d.AddDate(0, 0, -back).Format(sales.DateLayout)
}

// RevenueSeries sums totals per bucket, sorted ascending by bucket key.
// Keys sort lexicographically, which is chronological for these formats.
func RevenueSeries(txns []sales.Transaction, period Period) []Point {
	grouped := make(map[string]float64)
	for _, tx := range txns {
		grouped[BucketKey(tx.Date, period)] += tx.Total
	}

	points := make([]Point, 0, len(grouped))
	for bucket, total := range grouped {
		points = append(points, Point{Bucket: bucket, Total: total})
	}

	sort.Slice(points, func(i, j int) bool {
		return points[i].Bucket < points[j].Bucket
	})

	return points
}

// CategoryRevenue sums totals per category.
// The result is ordered by category name so output is stable.
func CategoryRevenue(txns []sales.Transaction) []Slice {
	grouped := make(map[string]float64)
	for _, tx := range txns {
		grouped[tx.Category] += tx.Total
	}

	slices := make([]Slice, 0, len(grouped))
	for category, total := range grouped {
		slices = append(slices, Slice{Category: category, Total: total})
	}

	sort.Slice(slices, func(i, j int) bool {
		return slices[i].Category < slices[j].Category
	})

	return slices
}

// TopSellers returns the n products with the highest summed quantity.
// Equal quantities are ordered by product name.
func TopSellers(txns []sales.Transaction, n int) []Seller {
	counts := make(map[string]int)
	for _, tx := range txns {
		counts[tx.ProductName] += tx.Qty.Int()
	}

	sellers := make([]Seller, 0, len(counts))
	for name, qty := range counts {
		sellers = append(sellers, Seller{ProductName: name, Qty: qty})
	}

	sort.Slice(sellers, func(i, j int) bool {
		if sellers[i].Qty != sellers[j].Qty {
			return sellers[i].Qty > sellers[j].Qty
		}
		return sellers[i].ProductName < sellers[j].ProductName
	})

	if n >= 0 && len(sellers) > n {
		sellers = sellers[:n]
	}

	return sellers
}

// Summarize returns total revenue and order count.
func Summarize(txns []sales.Transaction) Summary {
	var s Summary
	for _, tx := range txns {
		s.Revenue += tx.Total
	}
	s.Orders = len(txns)
	return s
}

// Dashboard bundles every view for one period.
type Dashboard struct {
	Period     Period
	Summary    Summary
	Revenue    []Point
	Categories []Slice
	TopSellers []Seller
}

// Build computes every dashboard view.
func Build(txns []sales.Transaction, period Period, topN int) Dashboard {
	return Dashboard{
		Period:     period,
		Summary:    Summarize(txns),
		Revenue:    RevenueSeries(txns, period),
		Categories: CategoryRevenue(txns),
		TopSellers: TopSellers(txns, topN),
	}
}
