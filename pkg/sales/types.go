// Package sales defines the records shared by the catalog, the store and the reports.
package sales

import (
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"
)

// DateLayout is the calendar date format used by every transaction (YYYY-MM-DD).
const DateLayout = "2006-01-02"

// Product represents a sellable catalog item.
// Products are loaded once and never written back by the journal.
type Product struct {
	ID          int64   `json:"id"`
	Name        string  `json:"name"`
	Price       float64 `json:"price"`
	Category    string  `json:"category"`
	Inventory   int     `json:"inventory"`
	Description string  `json:"description"`
}

// Transaction represents one recorded sale.
//
// ProductName and Category are copied from the catalog when the sale is
// created and Total is computed at the same moment. None of them follow
// later catalog edits.
type Transaction struct {
	ID          int64    `json:"id" validate:"required"`
	ProductID   int64    `json:"productId" validate:"required"`
	ProductName string   `json:"productName" validate:"required"`
	Category    string   `json:"category"`
	Qty         Quantity `json:"qty" validate:"gt=0"`
	Date        string   `json:"date" validate:"required,datetime=2006-01-02"`
	Total       float64  `json:"total" validate:"gte=0"`
}

// Quantity is a unit count.
// It decodes from JSON numbers and numeric strings; fractions are truncated
// toward zero so legacy records with "2.7" or "3" still load.
type Quantity int

// UnmarshalJSON implements json.Unmarshaler.
func (q *Quantity) UnmarshalJSON(data []byte) error {
	raw := strings.TrimSpace(string(data))
	if raw == "null" {
		*q = 0
		return nil
	}

	if strings.HasPrefix(raw, `"`) {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return fmt.Errorf("invalid quantity %s: %w", raw, err)
		}
		raw = strings.TrimSpace(s)
	}

	f, err := strconv.ParseFloat(raw, 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		return fmt.Errorf("invalid quantity: %s", raw)
	}

	f = math.Trunc(f)
	if f > math.MaxInt32 || f < math.MinInt32 {
		return fmt.Errorf("quantity out of range: %s", raw)
	}

	*q = Quantity(f)
	return nil
}

// Int returns the quantity as a plain int.
func (q Quantity) Int() int {
	return int(q)
}
