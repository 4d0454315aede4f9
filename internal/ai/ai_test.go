package ai

import (
	"context"
	"errors"
	"testing"

	"github.com/hongminglow/estate-be/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type fakeGenerator struct {
	text    string
	err     error
	calls   int
	prompts []string
	opts    []GenerateOptions
}

func (f *fakeGenerator) Generate(_ context.Context, prompt string, opts GenerateOptions) (string, error) {
	f.calls++
	f.prompts = append(f.prompts, prompt)
	f.opts = append(f.opts, opts)
	return f.text, f.err
}

func TestShortQueryNeverCallsModel(t *testing.T) {
	gen := &fakeGenerator{text: `["x"]`}
	c := NewClient(gen)

	out, err := c.SearchSuggestions(context.Background(), "ab")
	require.NoError(t, err)
	assert.Empty(t, out)
	assert.Zero(t, gen.calls)

	out, err = c.SearchSuggestions(context.Background(), "")
	require.NoError(t, err)
	assert.Empty(t, out)
	assert.Zero(t, gen.calls)
}

func TestSearchSuggestionsParsesList(t *testing.T) {
	gen := &fakeGenerator{text: `["Bandra West","Powai","Andheri East"]`}
	c := NewClient(gen)

	out, err := c.SearchSuggestions(context.Background(), "mumbai")
	require.NoError(t, err)
	assert.Equal(t, []string{"Bandra West", "Powai", "Andheri East"}, out)
	require.Equal(t, 1, gen.calls)
	assert.True(t, gen.opts[0].StringList)
	assert.Contains(t, gen.prompts[0], `"mumbai"`)
}

func TestSearchSuggestionsErrors(t *testing.T) {
	_, err := NewClient(nil).SearchSuggestions(context.Background(), "mumbai")
	assert.ErrorIs(t, err, ErrUnconfigured)

	_, err = NewClient(&fakeGenerator{text: "not json"}).SearchSuggestions(context.Background(), "mumbai")
	assert.ErrorIs(t, err, ErrParse)

	boom := errors.New("dial tcp: timeout")
	_, err = NewClient(&fakeGenerator{err: boom}).SearchSuggestions(context.Background(), "mumbai")
	assert.ErrorIs(t, err, ErrTransport)
	assert.ErrorIs(t, err, boom)
}

func TestDescriptionPrompt(t *testing.T) {
	p := models.Property{Type: models.TypeFlat, Bedrooms: 3, Bathrooms: 2, Location: "Mumbai, Maharashtra", Area: 1200}
	assert.Equal(t,
		"Write a compelling description for a 3 BHK rented flat in Mumbai, Maharashtra with 2 bathrooms. Highlight the area of 1200 sqft. This is for student accommodation.",
		descriptionPrompt(p))

	p.Type = models.TypeRoomPG
	p.Area = 250.5
	assert.Contains(t, descriptionPrompt(p), "3 BHK Room / PG in")
	assert.Contains(t, descriptionPrompt(p), "area of 250.5 sqft")
}

func TestServiceFallbacks(t *testing.T) {
	ctx := context.Background()
	p := models.Property{ID: "p1", Location: "Goa"}

	unconfigured := NewService(NewClient(nil), zap.NewNop())
	assert.Equal(t, DescriptionUnconfigured, unconfigured.PropertyDescription(ctx, p))
	assert.Equal(t, FacilitiesUnavailable, unconfigured.NearbyFacilities(ctx, "Goa"))
	assert.Empty(t, unconfigured.SearchSuggestions(ctx, "goa beach"))

	failing := NewService(NewClient(&fakeGenerator{err: errors.New("503")}), zap.NewNop())
	assert.Equal(t, DescriptionFailed, failing.PropertyDescription(ctx, p))
	assert.Equal(t, FacilitiesUnavailable, failing.NearbyFacilities(ctx, "Goa"))
	assert.NotNil(t, failing.SearchSuggestions(ctx, "goa beach"))

	empty := NewService(NewClient(&fakeGenerator{}), zap.NewNop())
	assert.Equal(t, DescriptionEmpty, empty.PropertyDescription(ctx, p))
	assert.Equal(t, FacilitiesUnavailable, empty.NearbyFacilities(ctx, "Goa"))

	ok := NewService(NewClient(&fakeGenerator{text: "City Hospital, 2 km"}), zap.NewNop())
	assert.Equal(t, "City Hospital, 2 km", ok.NearbyFacilities(ctx, "Goa"))
}

func TestResolveAPIKey(t *testing.T) {
	key, ok := ResolveAPIKey("", "fallback")
	assert.Equal(t, "fallback", key)
	assert.True(t, ok)

	key, ok = ResolveAPIKey("primary", "fallback")
	assert.Equal(t, "primary", key)
	assert.True(t, ok)

	_, ok = ResolveAPIKey("PLACEHOLDER_API_KEY", "fallback")
	assert.False(t, ok)

	_, ok = ResolveAPIKey("", "")
	assert.False(t, ok)
}
