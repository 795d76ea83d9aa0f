// Package stock derives remaining inventory from the catalog and the sales journal.
//
// Nothing here is cached. Every call walks the transaction list it is given,
// so results always reflect the list the caller currently holds.
package stock

import "github.com/shunichi-ikebuchi/sales-journal/pkg/sales"

// SoldQuantity sums qty over every transaction for productID, regardless of date.
func SoldQuantity(productID int64, txns []sales.Transaction) int {
	sold := 0
	for _, tx := range txns {
		if tx.ProductID == productID {
			sold += tx.Qty.Int()
		}
	}
	return sold
}

// Remaining returns the catalog inventory minus everything sold so far.
// The result is negative when past sales exceeded inventory; it is not clamped.
func Remaining(product sales.Product, txns []sales.Transaction) int {
	return product.Inventory - SoldQuantity(product.ID, txns)
}

// IsOverRequest reports whether requested exceeds the remaining stock.
func IsOverRequest(product sales.Product, txns []sales.Transaction, requested int) bool {
	return requested > Remaining(product, txns)
}

// Level is a stock snapshot for one product.
type Level struct {
	Product   sales.Product
	Sold      int
	Remaining int
}

// OutOfStock reports whether nothing can be sold.
func (l Level) OutOfStock() bool {
	return l.Remaining <= 0
}

// Levels returns a snapshot for each product, in the order given.
func Levels(products []sales.Product, txns []sales.Transaction) []Level {
	sold := make(map[int64]int, len(products))
	for _, tx := range txns {
		sold[tx.ProductID] += tx.Qty.Int()
	}

	levels := make([]Level, 0, len(products))
	for _, p := range products {
		levels = append(levels, Level{
			Product:   p,
			Sold:      sold[p.ID],
			Remaining: p.Inventory - sold[p.ID],
		})
	}
	return levels
}
