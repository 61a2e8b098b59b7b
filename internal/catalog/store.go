// Package catalog holds the in-memory product and category reference data.
package catalog

import (
	"unitrade_backend/models"
)

// Store is an ordered, read-only product sequence plus category metadata.
type Store struct {
	products   []models.Product
	categories []models.Category
}

// NewStore copies products and categories; later changes to the arguments are not observed.
func NewStore(products []models.Product, categories []models.Category) *Store {
	return &Store{
		products:   cloneProducts(products),
		categories: append([]models.Category(nil), categories...),
	}
}

// NewFixtureStore returns a store over the fixture listings.
func NewFixtureStore() *Store {
	return NewStore(Products(), Categories())
}

// All returns the catalog in its original order.
func (s *Store) All() []models.Product {
	return cloneProducts(s.products)
}

func (s *Store) Get(id uint) (models.Product, bool) {
	for _, p := range s.products {
		if p.ID == id {
			return cloneProduct(p), true
		}
	}
	return models.Product{}, false
}

// Categories returns the categories with Count recomputed from the products.
func (s *Store) Categories() []models.Category {
	return WithCounts(s.categories, CountByCategory(s.products))
}

// CountByCategory tallies products per category.
func CountByCategory(products []models.Product) map[models.CategoryID]int64 {
	counts := make(map[models.CategoryID]int64)
	for _, p := range products {
		counts[p.Category]++
	}
	return counts
}

// WithCounts copies categories and fills Count from counts; missing keys count zero.
func WithCounts(categories []models.Category, counts map[models.CategoryID]int64) []models.Category {
	out := make([]models.Category, len(categories))
	for i, c := range categories {
		c.Count = counts[c.ID]
		out[i] = c
	}
	return out
}

func cloneProducts(in []models.Product) []models.Product {
	out := make([]models.Product, len(in))
	for i, p := range in {
		out[i] = cloneProduct(p)
	}
	return out
}

func cloneProduct(p models.Product) models.Product {
	p.Images = append([]string(nil), p.Images...)
	if p.CurrentBid != nil {
		v := *p.CurrentBid
		p.CurrentBid = &v
	}
	return p
}
