// Package query filters and orders product listings for the browse and home views.
package query

import (
	"slices"
	"sort"
	"strings"

	"unitrade_backend/models"
)

// Apply returns the products matching c, ordered by c.Sort.
// The input slice is never modified; ties keep their input order.
func Apply(products []models.Product, c Criteria) []models.Product {
	out := make([]models.Product, 0, len(products))
	for _, p := range products {
		if matches(p, c) {
			out = append(out, p)
		}
	}
	Sort(out, c.Sort)
	return out
}

func matches(p models.Product, c Criteria) bool {
	if c.Category != nil && p.Category != *c.Category {
		return false
	}
	if len(c.Conditions) > 0 && !slices.Contains(c.Conditions, p.Condition) {
		return false
	}
	if !c.priceRange().Contains(p.Price) {
		return false
	}
	if c.FeaturedOnly && !p.IsFeatured {
		return false
	}
	if c.Search != "" && !matchesText(p, c.Search) {
		return false
	}
	return true
}

func matchesText(p models.Product, search string) bool {
	needle := strings.ToLower(search)
	return strings.Contains(strings.ToLower(p.Title), needle) ||
		strings.Contains(strings.ToLower(p.Description), needle) ||
		strings.Contains(strings.ToLower(string(p.Category)), needle)
}

// Sort orders products in place by key with a stable sort.
func Sort(products []models.Product, key SortKey) {
	var less func(a, b models.Product) bool
	switch key {
	case SortNewest:
		less = func(a, b models.Product) bool { return a.CreatedAt.After(b.CreatedAt) }
	case SortPriceAsc:
		less = func(a, b models.Product) bool { return a.Price < b.Price }
	case SortPriceDesc:
		less = func(a, b models.Product) bool { return a.Price > b.Price }
	case SortMostViewed:
		less = func(a, b models.Product) bool { return a.ViewCount > b.ViewCount }
	default:
		less = func(a, b models.Product) bool { return a.IsFeatured && !b.IsFeatured }
	}
	sort.SliceStable(products, func(i, j int) bool { return less(products[i], products[j]) })
}

// HomeView is the landing page selection.
type HomeView struct {
	Featured []models.Product `json:"featured"`
	Recent   []models.Product `json:"recent"`
}

// Home picks the featured listings in catalog order and the n newest listings.
func Home(products []models.Product, n int) HomeView {
	view := HomeView{
		Featured: Apply(products, Criteria{FeaturedOnly: true, Price: &PriceRange{Low: 0, High: maxPrice(products)}}),
		Recent:   Apply(products, Criteria{Sort: SortNewest, Price: &PriceRange{Low: 0, High: maxPrice(products)}}),
	}
	if n >= 0 && len(view.Recent) > n {
		view.Recent = view.Recent[:n]
	}
	return view
}

func maxPrice(products []models.Product) int64 {
	var hi int64
	for _, p := range products {
		hi = max(hi, p.Price)
	}
	return hi
}
