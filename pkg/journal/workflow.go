// Package journal implements the sale entry workflow on top of a store and a catalog.
package journal

import (
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/shunichi-ikebuchi/sales-journal/pkg/catalog"
	"github.com/shunichi-ikebuchi/sales-journal/pkg/sales"
	"github.com/shunichi-ikebuchi/sales-journal/pkg/stock"
	"github.com/shunichi-ikebuchi/sales-journal/pkg/store"
)

// State is the workflow state.
type State int

const (
	Editing State = iota
	Committing
)

func (s State) String() string {
	switch s {
	case Editing:
		return "editing"
	case Committing:
		return "committing"
	default:
		return fmt.Sprintf("State(%d)", int(s))
	}
}

// Form holds the fields of the entry form.
type Form struct {
	ProductID        int64 // 0 means nothing selected
	Qty              int
	Date             string
	CategoryOverride string
}

// Result describes the outcome of Submit.
// Exactly one of Record and Blocked is set.
type Result struct {
	Record  *sales.Transaction
	Blocked Violation
}

// Committed reports whether a record was written.
func (r Result) Committed() bool {
	return r.Record != nil
}

// Workflow records sales against a catalog and keeps the current list in memory.
type Workflow struct {
	store   store.Store
	catalog *catalog.Catalog
	now     func() time.Time
	logger  *slog.Logger

	state State
	form  Form
	txns  []sales.Transaction
}

// Option configures a Workflow.
type Option func(*Workflow)

// WithClock sets the time source used for ids and the default date.
func WithClock(now func() time.Time) Option {
	return func(w *Workflow) {
		w.now = now
	}
}

// WithLogger sets the logger.
func WithLogger(logger *slog.Logger) Option {
	return func(w *Workflow) {
		w.logger = logger
	}
}

// New creates a Workflow and loads the current transaction list.
func New(st store.Store, cat *catalog.Catalog, opts ...Option) (*Workflow, error) {
	w := &Workflow{
		store:   st,
		catalog: cat,
		now:     time.Now,
		logger:  slog.Default(),
		state:   Editing,
	}
	for _, opt := range opts {
		opt(w)
	}

	w.form = w.defaultForm(w.today())

	if err := w.Refresh(); err != nil {
		return nil, err
	}

	return w, nil
}

// State returns the current state.
func (w *Workflow) State() State {
	return w.state
}

// Form returns the current form fields.
func (w *Workflow) Form() Form {
	return w.form
}

// Transactions returns the in-memory list, newest first.
func (w *Workflow) Transactions() []sales.Transaction {
	out := make([]sales.Transaction, len(w.txns))
	copy(out, w.txns)
	return out
}

// SelectProduct selects a catalog product. Zero clears the selection.
func (w *Workflow) SelectProduct(id int64) {
	w.form.ProductID = id
}

// SetQty sets the requested quantity.
func (w *Workflow) SetQty(qty int) {
	w.form.Qty = qty
}

// SetDate sets the sale date (YYYY-MM-DD).
func (w *Workflow) SetDate(date string) {
	w.form.Date = date
}

// SetCategoryOverride sets a category that replaces the product's default.
func (w *Workflow) SetCategoryOverride(category string) {
	w.form.CategoryOverride = category
}

// SelectedProduct returns the product currently selected, if any.
func (w *Workflow) SelectedProduct() (sales.Product, bool) {
	if w.form.ProductID == 0 {
		return sales.Product{}, false
	}
	return w.catalog.FindByID(w.form.ProductID)
}

// EstimatedTotal returns price * qty for the current selection, or 0.
func (w *Workflow) EstimatedTotal() float64 {
	p, ok := w.SelectedProduct()
	if !ok {
		return 0
	}
	return p.Price * float64(w.form.Qty)
}

// Remaining returns the remaining stock of the selected product.
// ok is false when nothing is selected.
func (w *Workflow) Remaining() (remaining int, ok bool) {
	p, ok := w.SelectedProduct()
	if !ok {
		return 0, false
	}
	return stock.Remaining(p, w.txns), true
}

// Check evaluates the submit guard against the current form and list.
func (w *Workflow) Check() Violation {
	p, ok := w.SelectedProduct()
	if !ok {
		return NoProductSelected
	}
	if w.form.Qty < 1 {
		return InvalidQuantity
	}
	if _, err := time.Parse(sales.DateLayout, w.form.Date); err != nil {
		return InvalidDate
	}
	if stock.IsOverRequest(p, w.txns, w.form.Qty) {
		return InsufficientStock
	}
	return None
}

// CanSubmit reports whether Submit would commit.
func (w *Workflow) CanSubmit() bool {
	return w.Check() == None
}

// Submit commits the form as a new sale.
//
// A failed guard is reported in Result.Blocked with a nil error and no state
// change. Errors are storage failures only. When the append succeeds but the
// re-read fails, the committed record is still returned with the error.
func (w *Workflow) Submit() (Result, error) {
	if v := w.Check(); v != None {
		w.logger.Debug("Submit blocked", "reason", v.String(), "product_id", w.form.ProductID, "qty", w.form.Qty)
		return Result{Blocked: v}, nil
	}

	w.state = Committing
	defer func() {
		w.state = Editing
	}()

	p, _ := w.SelectedProduct()
	tx := w.buildRecord(p)

	if err := sales.ValidateTransaction(tx); err != nil {
		return Result{}, err
	}

	if err := w.store.Append(tx); err != nil {
		w.logger.Error("Failed to append transaction", "id", tx.ID, "error", err)
		return Result{}, fmt.Errorf("failed to save transaction: %w", err)
	}

	w.logger.Info("Recorded sale",
		"id", tx.ID,
		"product", tx.ProductName,
		"qty", tx.Qty,
		"total", tx.Total,
		"date", tx.Date,
	)

	w.form = w.defaultForm(w.form.Date)

	if err := w.Refresh(); err != nil {
		return Result{Record: &tx}, err
	}

	return Result{Record: &tx}, nil
}

// Delete removes a sale permanently and reloads the list.
// Deleting an unknown id is a no-op.
func (w *Workflow) Delete(id int64) error {
	if err := w.store.DeleteByID(id); err != nil {
		return fmt.Errorf("failed to delete transaction %d: %w", id, err)
	}
	w.logger.Info("Deleted sale", "id", id)
	return w.Refresh()
}

// Reset clears the store and reloads, which re-seeds the sample data.
// This cannot be undone.
func (w *Workflow) Reset() error {
	if err := w.store.Clear(); err != nil {
		return fmt.Errorf("failed to reset storage: %w", err)
	}
	w.logger.Warn("Storage reset")
	w.form = w.defaultForm(w.today())
	return w.Refresh()
}

// Refresh reloads the transaction list from the store.
func (w *Workflow) Refresh() error {
	txns, err := w.store.ReadAll()
	if err != nil {
		return fmt.Errorf("failed to load transactions: %w", err)
	}
	w.txns = txns
	return nil
}

func (w *Workflow) buildRecord(p sales.Product) sales.Transaction {
	category := strings.TrimSpace(w.form.CategoryOverride)
	if category == "" {
		category = p.Category
	}

	return sales.Transaction{
		ID:          w.nextID(),
		ProductID:   p.ID,
		ProductName: p.Name,
		Category:    category,
		Qty:         sales.Quantity(w.form.Qty),
		Date:        w.form.Date,
		Total:       p.Price * float64(w.form.Qty),
	}
}

// nextID returns the creation time in milliseconds, bumped past the largest
// existing id so ids stay unique and increasing.
func (w *Workflow) nextID() int64 {
	id := w.now().UnixMilli()

	var maxID int64
	for _, tx := range w.txns {
		if tx.ID > maxID {
			maxID = tx.ID
		}
	}

	if id <= maxID {
		id = maxID + 1
	}
	return id
}

// defaultForm clears selection and override, qty back to 1, keeping date.
func (w *Workflow) defaultForm(date string) Form {
	return Form{Qty: 1, Date: date}
}

func (w *Workflow) today() string {
	return w.now().Format(sales.DateLayout)
}
