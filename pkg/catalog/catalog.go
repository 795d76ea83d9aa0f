// Package catalog provides the read-only product table the journal sells from.
package catalog

import (
	_ "embed"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/shunichi-ikebuchi/sales-journal/pkg/sales"
)

//go:embed data/products.json
var defaultProducts []byte

// Format identifies the encoding of a catalog file.
type Format string

const (
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
)

// Catalog is an immutable product table.
type Catalog struct {
	products []sales.Product
	byID     map[int64]int
}

// rawProduct accepts both field-name variants found in catalog sources.
type rawProduct struct {
	ID          int64    `json:"id" yaml:"id"`
	Name        string   `json:"name" yaml:"name"`
	ItemName    string   `json:"itemName" yaml:"itemName"`
	Price       *float64 `json:"price" yaml:"price"`
	UnitPrice   *float64 `json:"unitPrice" yaml:"unitPrice"`
	Category    string   `json:"category" yaml:"category"`
	Inventory   int      `json:"inventory" yaml:"inventory"`
	Description string   `json:"description" yaml:"description"`
}

func (r rawProduct) product() sales.Product {
	name := r.Name
	if name == "" {
		name = r.ItemName
	}

	var price float64
	switch {
	case r.Price != nil:
		price = *r.Price
	case r.UnitPrice != nil:
		price = *r.UnitPrice
	}

	return sales.Product{
		ID:          r.ID,
		Name:        strings.TrimSpace(name),
		Price:       price,
		Category:    strings.TrimSpace(r.Category),
		Inventory:   r.Inventory,
		Description: r.Description,
	}
}

// Default returns the catalog bundled with the binary.
func Default() (*Catalog, error) {
	c, err := Parse(defaultProducts, FormatJSON)
	if err != nil {
		return nil, fmt.Errorf("failed to parse bundled catalog: %w", err)
	}
	return c, nil
}

// Load reads a catalog file. The format is chosen by extension:
// .json, or .yaml/.yml.
func Load(path string) (*Catalog, error) {
	var format Format
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		format = FormatJSON
	case ".yaml", ".yml":
		format = FormatYAML
	default:
		return nil, fmt.Errorf("unsupported catalog file extension: %s", path)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read catalog file: %w", err)
	}

	c, err := Parse(data, format)
	if err != nil {
		return nil, fmt.Errorf("failed to load catalog %s: %w", path, err)
	}
	return c, nil
}

// Parse decodes a list of products.
func Parse(data []byte, format Format) (*Catalog, error) {
	var raws []rawProduct

	switch format {
	case FormatJSON:
		if err := json.Unmarshal(data, &raws); err != nil {
			return nil, fmt.Errorf("failed to parse JSON: %w", err)
		}
	case FormatYAML:
		if err := yaml.Unmarshal(data, &raws); err != nil {
			return nil, fmt.Errorf("failed to parse YAML: %w", err)
		}
	default:
		return nil, fmt.Errorf("unknown catalog format: %q", format)
	}

	products := make([]sales.Product, 0, len(raws))
	for _, r := range raws {
		products = append(products, r.product())
	}

	return New(products)
}

// New builds a Catalog from products, rejecting duplicate ids and invalid values.
func New(products []sales.Product) (*Catalog, error) {
	c := &Catalog{
		products: make([]sales.Product, len(products)),
		byID:     make(map[int64]int, len(products)),
	}
	copy(c.products, products)

	for i, p := range c.products {
		if p.ID <= 0 {
			return nil, fmt.Errorf("product %q: id must be positive, got %d", p.Name, p.ID)
		}
		if p.Name == "" {
			return nil, fmt.Errorf("product %d: missing name", p.ID)
		}
		if p.Price < 0 {
			return nil, fmt.Errorf("product %d: negative price %v", p.ID, p.Price)
		}
		if p.Inventory < 0 {
			return nil, fmt.Errorf("product %d: negative inventory %d", p.ID, p.Inventory)
		}
		if _, dup := c.byID[p.ID]; dup {
			return nil, fmt.Errorf("duplicate product id %d", p.ID)
		}
		c.byID[p.ID] = i
	}

	return c, nil
}

// FindByID returns the product with the given id.
func (c *Catalog) FindByID(id int64) (sales.Product, bool) {
	i, ok := c.byID[id]
	if !ok {
		return sales.Product{}, false
	}
	return c.products[i], true
}

// All returns every product in catalog order.
func (c *Catalog) All() []sales.Product {
	out := make([]sales.Product, len(c.products))
	copy(out, c.products)
	return out
}

// Len returns the number of products.
func (c *Catalog) Len() int {
	return len(c.products)
}
