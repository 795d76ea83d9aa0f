package converter

import (
	"fmt"
	"math"
	"sort"
	"strconv"
	"strings"

	"github.com/shunichi-ikebuchi/sales-journal/pkg/beancount"
	"github.com/shunichi-ikebuchi/sales-journal/pkg/sales"
)

// Converter converts journal sales to Beancount transactions.
type Converter struct {
	mapper   *Mapper
	currency string
}

// NewConverter creates a new Converter.
func NewConverter(mapper *Mapper, currency string) *Converter {
	if currency == "" {
		currency = "THB"
	}
	return &Converter{
		mapper:   mapper,
		currency: currency,
	}
}

// ConvertSale converts a sale to a balanced two-posting transaction:
// cash is debited, the category's income account is credited.
func (c *Converter) ConvertSale(tx sales.Transaction) beancount.Transaction {
	return beancount.Transaction{
		Date:      tx.Date,
		Narration: fmt.Sprintf("%d x %s", tx.Qty.Int(), tx.ProductName),
		Tags:      []string{SaleTag(tx.ID)},
		Metadata: map[string]string{
			"product_id": strconv.FormatInt(tx.ProductID, 10),
			"category":   tx.Category,
		},
		Postings: []beancount.Posting{
			{
				Account:  c.mapper.GetCashAccount(),
				Amount:   tx.Total,
				Currency: c.currency,
			},
			{
				Account:  c.mapper.GetIncomeAccount(tx.Category),
				Amount:   -tx.Total,
				Currency: c.currency,
				Comment:  tx.Category,
			},
		},
	}
}

// SaleTag returns the tag linking a ledger entry back to its sale.
func SaleTag(id int64) string {
	return fmt.Sprintf("sale-%d", id)
}

// FormatTransaction formats a Beancount transaction as a string.
func (c *Converter) FormatTransaction(txn beancount.Transaction) string {
	var sb strings.Builder

	// Transaction header
	sb.WriteString(txn.Date)
	sb.WriteString(" *")
	if txn.Payee != "" {
		sb.WriteString(fmt.Sprintf(" %q", txn.Payee))
	}
	sb.WriteString(fmt.Sprintf(" %q", txn.Narration))
	if len(txn.Tags) > 0 {
		sb.WriteString(" #")
		sb.WriteString(strings.Join(txn.Tags, " #"))
	}
	sb.WriteString("\n")

	// Metadata, sorted for stable output
	keys := make([]string, 0, len(txn.Metadata))
	for k := range txn.Metadata {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		sb.WriteString(fmt.Sprintf("  %s: %q\n", k, txn.Metadata[k]))
	}

	// Postings
	for _, posting := range txn.Postings {
		sb.WriteString("  ")
		sb.WriteString(posting.Account)

		// Right-align amount (typical Beancount style)
		spaces := int(math.Max(1, 50-float64(len(posting.Account))))
		sb.WriteString(strings.Repeat(" ", spaces))

		sb.WriteString(fmt.Sprintf("%s %s", formatAmount(posting.Amount), posting.Currency))

		if posting.Comment != "" {
			sb.WriteString(fmt.Sprintf(" ; %s", posting.Comment))
		}

		sb.WriteString("\n")
	}

	return sb.String()
}

// formatAmount prints whole amounts without decimals and others with two.
func formatAmount(amount float64) string {
	if amount == math.Trunc(amount) {
		return strconv.FormatFloat(amount, 'f', 0, 64)
	}
	return strconv.FormatFloat(amount, 'f', 2, 64)
}
