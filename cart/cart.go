// Package cart implements the shopper's in-memory cart. Every mutation is a
// total function over the cart: missing targets are silently ignored.
package cart

import (
	"github.com/Bishesh-P/coffee-alpico-sub000/models"
	"github.com/shopspring/decimal"
)

// Line is one cart entry, identified by product plus optional variant.
type Line struct {
	Product  models.Product  `json:"product"`
	Quantity int             `json:"quantity"`
	Variant  *models.Variant `json:"variant,omitempty"`
	Machine  string          `json:"machine,omitempty"`
}

// VariantID is the variant half of the line key; "" when no variant is set.
func (l Line) VariantID() string {
	if l.Variant == nil {
		return ""
	}
	return l.Variant.ID
}

// UnitPrice is the selected variant price, falling back to the product price.
func (l Line) UnitPrice() decimal.Decimal {
	if l.Variant != nil {
		return l.Variant.Price
	}
	return l.Product.Price
}

// LineTotal is UnitPrice times quantity.
func (l Line) LineTotal() decimal.Decimal {
	return l.UnitPrice().Mul(decimal.NewFromInt(int64(l.Quantity)))
}

// NeedsVariant reports whether the line still lacks a required variant.
func (l Line) NeedsVariant() bool {
	return l.Variant == nil && l.Product.HasVariants()
}

// DisplayName is the product name with the variant name appended.
func (l Line) DisplayName() string {
	if l.Variant == nil {
		return l.Product.Name
	}
	return l.Product.Name + " (" + l.Variant.Name + ")"
}

func (l Line) matches(productID uint, variantID string) bool {
	return l.Product.ID == productID && l.VariantID() == variantID
}

// Cart is an ordered collection of lines. It is not safe for concurrent
// use; callers own it through a session.
type Cart struct {
	lines []Line
}

func New() *Cart {
	return &Cart{}
}

func (c *Cart) indexOf(productID uint, variantID string) int {
	for i, l := range c.lines {
		if l.matches(productID, variantID) {
			return i
		}
	}
	return -1
}

// Add upserts a line keyed by (product, variant). Quantities are summed on
// an existing line and machine is only overwritten when a new one is given.
// A non-positive quantity counts as one.
func (c *Cart) Add(product models.Product, quantity int, machine string, variant *models.Variant) {
	if quantity <= 0 {
		quantity = 1
	}
	variantID := ""
	if variant != nil {
		variantID = variant.ID
		v := *variant
		variant = &v
	}

	if i := c.indexOf(product.ID, variantID); i >= 0 {
		c.lines[i].Quantity += quantity
		if machine != "" {
			c.lines[i].Machine = machine
		}
		return
	}

	c.lines = append(c.lines, Line{
		Product:  product,
		Quantity: quantity,
		Variant:  variant,
		Machine:  machine,
	})
}

// Remove deletes the line matching (productID, variantID).
func (c *Cart) Remove(productID uint, variantID string) {
	if i := c.indexOf(productID, variantID); i >= 0 {
		c.lines = append(c.lines[:i], c.lines[i+1:]...)
	}
}

// UpdateQuantity overwrites a line's quantity; quantity <= 0 removes it.
func (c *Cart) UpdateQuantity(productID uint, quantity int, variantID string) {
	if quantity <= 0 {
		c.Remove(productID, variantID)
		return
	}
	if i := c.indexOf(productID, variantID); i >= 0 {
		c.lines[i].Quantity = quantity
	}
}

// SetVariant fills the variant of the product's line that has none yet.
// Lines with an explicit variant are never overwritten. If a line for the
// chosen variant already exists the two are merged so keys stay unique.
func (c *Cart) SetVariant(productID uint, variant models.Variant) {
	i := c.indexOf(productID, "")
	if i < 0 {
		return
	}
	if j := c.indexOf(productID, variant.ID); j >= 0 {
		c.lines[j].Quantity += c.lines[i].Quantity
		if c.lines[j].Machine == "" {
			c.lines[j].Machine = c.lines[i].Machine
		}
		c.lines = append(c.lines[:i], c.lines[i+1:]...)
		return
	}
	v := variant
	c.lines[i].Variant = &v
}

// SetMachine overwrites the brewing-machine annotation on a line.
func (c *Cart) SetMachine(productID uint, machine string, variantID string) {
	if i := c.indexOf(productID, variantID); i >= 0 {
		c.lines[i].Machine = machine
	}
}

// Total sums UnitPrice * Quantity over all lines.
func (c *Cart) Total() decimal.Decimal {
	total := decimal.Zero
	for _, l := range c.lines {
		total = total.Add(l.LineTotal())
	}
	return total
}

// Count sums quantities over all lines.
func (c *Cart) Count() int {
	n := 0
	for _, l := range c.lines {
		n += l.Quantity
	}
	return n
}

func (c *Cart) Clear() {
	c.lines = nil
}

func (c *Cart) IsEmpty() bool {
	return len(c.lines) == 0
}

// NeedsVariants reports whether any line still lacks a required variant.
func (c *Cart) NeedsVariants() bool {
	for _, l := range c.lines {
		if l.NeedsVariant() {
			return true
		}
	}
	return false
}

// Lines returns a copy of the lines in insertion order.
func (c *Cart) Lines() []Line {
	out := make([]Line, len(c.lines))
	copy(out, c.lines)
	return out
}
