package models

import "github.com/shopspring/decimal"

// Product is a catalog entry. Catalog data is loaded once at startup and
// never mutated afterwards.
type Product struct {
	ID            uint             `yaml:"id" json:"id"`
	Name          string           `yaml:"name" json:"name"`
	Price         decimal.Decimal  `yaml:"price" json:"price"`
	OriginalPrice *decimal.Decimal `yaml:"original_price,omitempty" json:"original_price,omitempty"`
	Category      string           `yaml:"category" json:"category"`
	Description   string           `yaml:"description" json:"description"`
	Images        []string         `yaml:"images" json:"images"`
	Variants      []Variant        `yaml:"variants,omitempty" json:"variants,omitempty"`
	InStock       *bool            `yaml:"in_stock,omitempty" json:"in_stock,omitempty"`
}

// Variant is a purchasable sub-option of a product (size, grind, weight).
type Variant struct {
	ID            string           `yaml:"id" json:"id"` // unique within its product
	Name          string           `yaml:"name" json:"name"`
	Price         decimal.Decimal  `yaml:"price" json:"price"`
	OriginalPrice *decimal.Decimal `yaml:"original_price,omitempty" json:"original_price,omitempty"`
	Image         string           `yaml:"image" json:"image"`
	Size          string           `yaml:"size,omitempty" json:"size,omitempty"`
	Weight        string           `yaml:"weight,omitempty" json:"weight,omitempty"`
	InStock       *bool            `yaml:"in_stock,omitempty" json:"in_stock,omitempty"`
}

// HasVariants reports whether a variant must be chosen before checkout.
func (p Product) HasVariants() bool {
	return len(p.Variants) > 0
}

// Variant looks up a variant by id.
func (p Product) Variant(id string) (Variant, bool) {
	for _, v := range p.Variants {
		if v.ID == id {
			return v, true
		}
	}
	return Variant{}, false
}

// Image returns the first product image, or "" when none is set.
func (p Product) Image() string {
	if len(p.Images) == 0 {
		return ""
	}
	return p.Images[0]
}

// Available treats a missing stock flag as in stock.
func (p Product) Available() bool {
	return p.InStock == nil || *p.InStock
}

func (v Variant) Available() bool {
	return v.InStock == nil || *v.InStock
}
