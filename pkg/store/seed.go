package store

import "github.com/shunichi-ikebuchi/sales-journal/pkg/sales"

// SeedData returns the sample records written into an empty store
// so the dashboard has something to show on first run.
func SeedData() []sales.Transaction {
	return []sales.Transaction{
		{ID: 1, ProductID: 101, ProductName: "Espresso Shot", Category: "Coffee", Qty: 2, Total: 120, Date: "2025-01-20"},
		{ID: 2, ProductID: 106, ProductName: "Blueberry Cheesecake", Category: "Bakery", Qty: 1, Total: 150, Date: "2025-01-20"},
		{ID: 3, ProductID: 102, ProductName: "Iced Americano", Category: "Coffee", Qty: 5, Total: 400, Date: "2025-01-19"},
		{ID: 4, ProductID: 104, ProductName: "Green Tea Latte", Category: "Tea", Qty: 3, Total: 270, Date: "2025-01-18"},
		{ID: 5, ProductID: 107, ProductName: "Croissant", Category: "Bakery", Qty: 10, Total: 850, Date: "2025-01-15"},
	}
}
