package journal

import "fmt"

// Violation is a reason the entry form cannot be submitted.
// Violations are values the front end inspects, not errors.
type Violation int

const (
	None Violation = iota
	NoProductSelected
	InvalidQuantity
	InvalidDate
	InsufficientStock
)

func (v Violation) String() string {
	switch v {
	case None:
		return "none"
	case NoProductSelected:
		return "no_product_selected"
	case InvalidQuantity:
		return "invalid_quantity"
	case InvalidDate:
		return "invalid_date"
	case InsufficientStock:
		return "insufficient_stock"
	default:
		return fmt.Sprintf("Violation(%d)", int(v))
	}
}

// Message returns the inline message shown to the user.
func (v Violation) Message() string {
	switch v {
	case NoProductSelected:
		return "Please select a product"
	case InvalidQuantity:
		return "Quantity must be at least 1"
	case InvalidDate:
		return "Date must be in YYYY-MM-DD format"
	case InsufficientStock:
		return "Not enough stock for this quantity"
	default:
		return ""
	}
}
