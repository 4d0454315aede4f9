package models

import "math"

// TypeAll disables the listing type filter.
const TypeAll PropertyType = "ALL"

// SortOption selects the ordering of a listing query.
type SortOption string

const (
	SortNewest    SortOption = "NEWEST"
	SortOldest    SortOption = "OLDEST"
	SortPriceLow  SortOption = "PRICE_LOW"
	SortPriceHigh SortOption = "PRICE_HIGH"
)

// IsValid reports whether s is a known sort option.
func (s SortOption) IsValid() bool {
	switch s {
	case SortNewest, SortOldest, SortPriceLow, SortPriceHigh:
		return true
	}
	return false
}

// FilterOptions is the ephemeral listing query. A nil Bedrooms means any count.
type FilterOptions struct {
	Type     PropertyType `json:"type"`
	MinPrice float64      `json:"minPrice"`
	MaxPrice float64      `json:"maxPrice"`
	Bedrooms *int         `json:"bedrooms,omitempty"`
	Search   string       `json:"search"`
	Sort     SortOption   `json:"sort"`
}

// NewFilterOptions returns a query that matches every listing, newest first.
func NewFilterOptions() FilterOptions {
	return FilterOptions{
		Type:     TypeAll,
		MinPrice: 0,
		MaxPrice: math.MaxFloat64,
		Sort:     SortNewest,
	}
}
