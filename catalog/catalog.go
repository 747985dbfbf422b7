// Package catalog holds the immutable product catalog loaded at startup.
package catalog

import (
	"errors"
	"fmt"
	"io"
	"os"
	"sort"

	"github.com/Bishesh-P/coffee-alpico-sub000/models"
	"gopkg.in/yaml.v3"
)

var ErrProductNotFound = errors.New("product not found")

type file struct {
	Products []models.Product `yaml:"products"`
}

// Catalog is read-only after Load; it is safe for concurrent use.
type Catalog struct {
	products []models.Product
	byID     map[uint]int
}

// LoadFile reads a YAML catalog from disk.
func LoadFile(path string) (*Catalog, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open catalog: %w", err)
	}
	defer f.Close()
	return Load(f)
}

// Load decodes a YAML catalog and validates product and variant ids.
func Load(r io.Reader) (*Catalog, error) {
	var doc file
	if err := yaml.NewDecoder(r).Decode(&doc); err != nil {
		return nil, fmt.Errorf("decode catalog: %w", err)
	}
	return New(doc.Products)
}

// New builds a catalog from already decoded products.
func New(products []models.Product) (*Catalog, error) {
	c := &Catalog{
		products: make([]models.Product, 0, len(products)),
		byID:     make(map[uint]int, len(products)),
	}
	for _, p := range products {
		if _, dup := c.byID[p.ID]; dup {
			return nil, fmt.Errorf("duplicate product id %d", p.ID)
		}
		seen := make(map[string]struct{}, len(p.Variants))
		for _, v := range p.Variants {
			if v.ID == "" {
				return nil, fmt.Errorf("product %d: variant without id", p.ID)
			}
			if _, dup := seen[v.ID]; dup {
				return nil, fmt.Errorf("product %d: duplicate variant id %q", p.ID, v.ID)
			}
			seen[v.ID] = struct{}{}
		}
		c.byID[p.ID] = len(c.products)
		c.products = append(c.products, p)
	}
	return c, nil
}

// Product returns the product with the given id.
func (c *Catalog) Product(id uint) (models.Product, error) {
	i, ok := c.byID[id]
	if !ok {
		return models.Product{}, ErrProductNotFound
	}
	return c.products[i], nil
}

// All returns every product in file order.
func (c *Catalog) All() []models.Product {
	out := make([]models.Product, len(c.products))
	copy(out, c.products)
	return out
}

// Categories lists the distinct category tags, sorted.
func (c *Catalog) Categories() []string {
	set := map[string]struct{}{}
	for _, p := range c.products {
		if p.Category != "" {
			set[p.Category] = struct{}{}
		}
	}
	out := make([]string, 0, len(set))
	for k := range set {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}
