// Package listing derives ordered views of the property catalogue.
package listing

import (
	"slices"
	"strings"

	"github.com/hongminglow/estate-be/internal/models"
)

// FilterAndSort applies opts to properties and returns a new, stably sorted
// slice. The input is never modified.
//
// Bedrooms is an exact match, not a minimum.
func FilterAndSort(properties []models.Property, opts models.FilterOptions) []models.Property {
	query := strings.ToLower(opts.Search)

	out := make([]models.Property, 0, len(properties))
	for _, p := range properties {
		if opts.Type != "" && opts.Type != models.TypeAll && p.Type != opts.Type {
			continue
		}
		if opts.Bedrooms != nil && p.Bedrooms != *opts.Bedrooms {
			continue
		}
		if query != "" && !matchesSearch(p, query) {
			continue
		}
		if p.Price < opts.MinPrice || p.Price > opts.MaxPrice {
			continue
		}
		out = append(out, p)
	}

	slices.SortStableFunc(out, comparator(opts.Sort))
	return out
}

func matchesSearch(p models.Property, query string) bool {
	return strings.Contains(strings.ToLower(p.Title), query) ||
		strings.Contains(strings.ToLower(p.Location), query) ||
		strings.Contains(strings.ToLower(p.Description), query)
}

func comparator(sort models.SortOption) func(a, b models.Property) int {
	switch sort {
	case models.SortOldest:
		return func(a, b models.Property) int { return a.CreatedAt.Compare(b.CreatedAt) }
	case models.SortPriceLow:
		return func(a, b models.Property) int { return compareFloat(a.Price, b.Price) }
	case models.SortPriceHigh:
		return func(a, b models.Property) int { return compareFloat(b.Price, a.Price) }
	default:
		return func(a, b models.Property) int { return b.CreatedAt.Compare(a.CreatedAt) }
	}
}

func compareFloat(a, b float64) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	}
	return 0
}

// OwnedBy keeps the listings published by ownerID, in collection order.
func OwnedBy(properties []models.Property, ownerID string) []models.Property {
	out := make([]models.Property, 0)
	for _, p := range properties {
		if p.OwnerID == ownerID {
			out = append(out, p)
		}
	}
	return out
}

// InWishlist keeps the listings whose id is saved, in collection order. Ids
// that no longer resolve are skipped.
func InWishlist(properties []models.Property, ids []string) []models.Property {
	out := make([]models.Property, 0, len(ids))
	for _, p := range properties {
		if slices.Contains(ids, p.ID) {
			out = append(out, p)
		}
	}
	return out
}

// Featured returns the first n listings.
func Featured(properties []models.Property, n int) []models.Property {
	if n < 0 {
		n = 0
	}
	if n > len(properties) {
		n = len(properties)
	}
	return slices.Clone(properties[:n])
}
