package ai

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/hongminglow/estate-be/internal/models"
)

var (
	ErrUnconfigured = errors.New("ai: service not configured")
	ErrTransport    = errors.New("ai: request failed")
	ErrParse        = errors.New("ai: unparsable response")
	ErrEmpty        = errors.New("ai: empty response")
)

// MinQueryLength is the shortest query that gets suggestions.
const MinQueryLength = 3

// Client issues the three prompts and reports failures as typed errors.
// A nil generator means no credentials were configured.
type Client struct {
	gen Generator
}

func NewClient(gen Generator) *Client {
	return &Client{gen: gen}
}

// Configured reports whether a generator is available.
func (c *Client) Configured() bool { return c.gen != nil }

// SearchSuggestions returns up to five related search terms. Queries shorter
// than MinQueryLength return nothing and never reach the model.
func (c *Client) SearchSuggestions(ctx context.Context, query string) ([]string, error) {
	if len([]rune(query)) < MinQueryLength {
		return []string{}, nil
	}
	if c.gen == nil {
		return nil, ErrUnconfigured
	}

	text, err := c.gen.Generate(ctx, suggestionsPrompt(query), GenerateOptions{StringList: true})
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrTransport, err)
	}
	if strings.TrimSpace(text) == "" {
		return []string{}, nil
	}

	var out []string
	if err := json.Unmarshal([]byte(text), &out); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrParse, err)
	}
	if out == nil {
		out = []string{}
	}
	return out, nil
}

// PropertyDescription writes marketing copy for a listing.
func (c *Client) PropertyDescription(ctx context.Context, p models.Property) (string, error) {
	return c.text(ctx, descriptionPrompt(p))
}

// NearbyFacilities lists hospitals, schools and transport around a location.
func (c *Client) NearbyFacilities(ctx context.Context, location string) (string, error) {
	return c.text(ctx, facilitiesPrompt(location))
}

func (c *Client) text(ctx context.Context, prompt string) (string, error) {
	if c.gen == nil {
		return "", ErrUnconfigured
	}
	text, err := c.gen.Generate(ctx, prompt, GenerateOptions{})
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrTransport, err)
	}
	if text == "" {
		return "", ErrEmpty
	}
	return text, nil
}

func suggestionsPrompt(query string) string {
	return fmt.Sprintf("Based on the search query \"%s\", suggest 5 real-estate related search terms or areas. Return as a clean JSON list of strings.", query)
}

func descriptionPrompt(p models.Property) string {
	kind := "Room / PG"
	if p.Type == models.TypeFlat {
		kind = "rented flat"
	}
	return fmt.Sprintf(
		"Write a compelling description for a %d BHK %s in %s with %d bathrooms. Highlight the area of %s sqft. This is for student accommodation.",
		p.Bedrooms, kind, p.Location, p.Bathrooms, formatNumber(p.Area),
	)
}

func facilitiesPrompt(location string) string {
	return fmt.Sprintf("List nearby hospitals, schools, and transport hubs in %s.", location)
}

func formatNumber(v float64) string {
	return strings.TrimSuffix(strings.TrimRight(fmt.Sprintf("%.2f", v), "0"), ".")
}
