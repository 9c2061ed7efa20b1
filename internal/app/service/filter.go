package service

import (
	"strings"

	"github.com/shajghor/shajghor-backend/internal/app/model"
)

// FilterState is the storefront's filter selection. Zero values mean "no
// constraint": empty category matches all categories, an empty
// subcategory set matches all subcategories, MaxPrice 0 leaves the range
// unbounded above, and an empty search matches everything.
type FilterState struct {
	Category      model.ProductCategory
	Subcategories []string
	MinPrice      float64
	MaxPrice      float64
	Search        string
}

// FilterProducts evaluates a FilterState against a product list. Pure
// function: no I/O, no mutation of the input. The result is a stable
// subsequence — output order is input order, never re-sorted.
//
// Conditions are conjunctive: category equality, subcategory set
// membership, effective price within the inclusive range, and a
// case-insensitive substring search over name, description, and brand.
// Effective price is the minimum variant price when variants exist, else
// the base price.
func FilterProducts(products []model.Product, filter FilterState) []model.Product {
	result := make([]model.Product, 0, len(products))
	for _, p := range products {
		if matchesFilter(&p, &filter) {
			result = append(result, p)
		}
	}
	return result
}

func matchesFilter(p *model.Product, f *FilterState) bool {
	if f.Category != "" && p.Category != f.Category {
		return false
	}

	if len(f.Subcategories) > 0 {
		found := false
		for _, sub := range f.Subcategories {
			if p.Subcategory == sub {
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}

	price := p.EffectivePrice()
	if price < f.MinPrice {
		return false
	}
	if f.MaxPrice > 0 && price > f.MaxPrice {
		return false
	}

	if f.Search != "" {
		query := strings.ToLower(f.Search)
		if !strings.Contains(strings.ToLower(p.Name), query) &&
			!strings.Contains(strings.ToLower(p.Description), query) &&
			!strings.Contains(strings.ToLower(p.Brand), query) {
			return false
		}
	}

	return true
}
