package catalog

import (
	"sort"
	"strings"

	"github.com/Bishesh-P/coffee-alpico-sub000/models"
)

type field struct {
	weight int
	values func(p models.Product) []string
}

// searchFields is the fixed table of indexed product fields.
var searchFields = []field{
	{weight: 5, values: func(p models.Product) []string { return []string{p.Name} }},
	{weight: 3, values: func(p models.Product) []string { return []string{p.Category} }},
	{weight: 2, values: func(p models.Product) []string {
		names := make([]string, 0, len(p.Variants))
		for _, v := range p.Variants {
			names = append(names, v.Name)
		}
		return names
	}},
	{weight: 1, values: func(p models.Product) []string { return []string{p.Description} }},
}

// Query filters the catalog.
type Query struct {
	Text     string
	Category string
}

// Result is a product with its relevance score.
type Result struct {
	Product models.Product `json:"product"`
	Score   int            `json:"score"`
}

// Search scores products by case-insensitive substring matches of each
// query term against the weighted field table. Every term must match some
// field. An empty text returns all products (in catalog order) that pass
// the category filter.
func (c *Catalog) Search(q Query) []Result {
	terms := strings.Fields(strings.ToLower(q.Text))
	results := make([]Result, 0)

	for _, p := range c.products {
		if q.Category != "" && !strings.EqualFold(p.Category, q.Category) {
			continue
		}
		score, ok := scoreProduct(p, terms)
		if !ok {
			continue
		}
		results = append(results, Result{Product: p, Score: score})
	}

	if len(terms) > 0 {
		sort.SliceStable(results, func(i, j int) bool {
			if results[i].Score != results[j].Score {
				return results[i].Score > results[j].Score
			}
			return results[i].Product.Name < results[j].Product.Name
		})
	}
	return results
}

func scoreProduct(p models.Product, terms []string) (int, bool) {
	total := 0
	for _, term := range terms {
		best := 0
		for _, f := range searchFields {
			for _, v := range f.values(p) {
				if strings.Contains(strings.ToLower(v), term) && f.weight > best {
					best = f.weight
				}
			}
		}
		if best == 0 {
			return 0, false
		}
		total += best
	}
	return total, true
}
