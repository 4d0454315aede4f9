package listing

import (
	"fmt"
	"net/url"
	"strconv"
	"strings"

	"github.com/hongminglow/estate-be/internal/models"
)

// ParseQuery maps URL query parameters onto FilterOptions. Missing parameters
// keep the match-everything defaults; an unknown sort falls back to newest.
func ParseQuery(values url.Values) (models.FilterOptions, error) {
	opts := models.NewFilterOptions()

	if raw := strings.TrimSpace(values.Get("type")); raw != "" {
		t := models.PropertyType(strings.ToUpper(raw))
		if t != models.TypeAll && !t.IsValid() {
			return opts, fmt.Errorf("unknown type %q", raw)
		}
		opts.Type = t
	}
	if raw := strings.TrimSpace(values.Get("min_price")); raw != "" {
		v, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return opts, fmt.Errorf("invalid min_price %q", raw)
		}
		opts.MinPrice = v
	}
	if raw := strings.TrimSpace(values.Get("max_price")); raw != "" {
		v, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return opts, fmt.Errorf("invalid max_price %q", raw)
		}
		opts.MaxPrice = v
	}
	if raw := strings.TrimSpace(values.Get("bedrooms")); raw != "" && !strings.EqualFold(raw, "all") {
		v, err := strconv.Atoi(raw)
		if err != nil {
			return opts, fmt.Errorf("invalid bedrooms %q", raw)
		}
		opts.Bedrooms = &v
	}
	opts.Search = values.Get("q")
	if raw := strings.TrimSpace(values.Get("sort")); raw != "" {
		if s := models.SortOption(strings.ToUpper(raw)); s.IsValid() {
			opts.Sort = s
		}
	}
	return opts, nil
}
