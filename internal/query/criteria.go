package query

import (
	"net/url"
	"slices"
	"strings"

	"unitrade_backend/internal/money"
	"unitrade_backend/models"
)

// SortKey selects the ordering applied after filtering.
type SortKey string

const (
	SortFeatured   SortKey = "featured"
	SortNewest     SortKey = "newest"
	SortPriceAsc   SortKey = "price-ascending"
	SortPriceDesc  SortKey = "price-descending"
	SortMostViewed SortKey = "most-viewed"
)

var sortAliases = map[string]SortKey{
	"featured":         SortFeatured,
	"newest":           SortNewest,
	"price-ascending":  SortPriceAsc,
	"price-low":        SortPriceAsc,
	"price-descending": SortPriceDesc,
	"price-high":       SortPriceDesc,
	"most-viewed":      SortMostViewed,
	"popular":          SortMostViewed,
}

// ParseSortKey maps a sort name to a key. Unknown names fall back to SortFeatured.
func ParseSortKey(s string) SortKey {
	if key, ok := sortAliases[strings.ToLower(strings.TrimSpace(s))]; ok {
		return key
	}
	return SortFeatured
}

// PriceRange is a closed interval in minor units.
type PriceRange struct {
	Low  int64
	High int64
}

// DefaultPriceRange is $0 to $2000.
var DefaultPriceRange = PriceRange{Low: 0, High: 200000}

func (r PriceRange) Contains(price int64) bool {
	return r.Low <= price && price <= r.High
}

// Criteria is the filter and sort applied to a catalog.
// A nil Category means any category, an empty Conditions set means any
// condition and a nil Price means DefaultPriceRange.
type Criteria struct {
	Category     *models.CategoryID
	Conditions   []models.Condition
	Price        *PriceRange
	Search       string
	FeaturedOnly bool
	Sort         SortKey
}

func (c Criteria) priceRange() PriceRange {
	if c.Price == nil {
		return DefaultPriceRange
	}
	return *c.Price
}

// FromQuery builds criteria from URL query values.
// condition may be repeated, comma separated, or both. Unparseable prices fall back to the default bounds.
func FromQuery(values url.Values) Criteria {
	var c Criteria
	get := values.Get

	if category := strings.TrimSpace(get("category")); category != "" {
		id := models.CategoryID(category)
		c.Category = &id
	}

	for _, list := range values["condition"] {
		for _, raw := range strings.Split(list, ",") {
			if cond := models.Condition(strings.TrimSpace(raw)); cond != "" && !slices.Contains(c.Conditions, cond) {
				c.Conditions = append(c.Conditions, cond)
			}
		}
	}

	minRaw, maxRaw := get("min_price"), get("max_price")
	if minRaw != "" || maxRaw != "" {
		r := DefaultPriceRange
		if v, err := money.Parse(minRaw); err == nil {
			r.Low = v
		}
		if v, err := money.Parse(maxRaw); err == nil {
			r.High = v
		}
		c.Price = &r
	}

	c.Search = get("search")
	if c.Search == "" {
		c.Search = get("q")
	}
	c.FeaturedOnly = get("featured") == "true"
	c.Sort = ParseSortKey(get("sort"))
	return c
}
