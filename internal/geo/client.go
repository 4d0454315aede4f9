// Package geo resolves addresses to coordinates and back through a
// Nominatim-compatible geocoding service.
package geo

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/hongminglow/estate-be/internal/models"
)

// DefaultBaseURL is the public OpenStreetMap Nominatim instance.
const DefaultBaseURL = "https://nominatim.openstreetmap.org"

// Place is a geocoding hit with its display name already shortened.
type Place struct {
	Name        string             `json:"name"`
	Coordinates models.Coordinates `json:"coordinates"`
}

type Client struct {
	baseURL    string
	userAgent  string
	httpClient *http.Client
}

func NewClient(baseURL, userAgent string, httpClient *http.Client) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		userAgent:  userAgent,
		httpClient: httpClient,
	}
}

type searchHit struct {
	Lat         string `json:"lat"`
	Lon         string `json:"lon"`
	DisplayName string `json:"display_name"`
}

// Search returns the best match for a free-text address. A blank query or an
// empty result set reports found=false without error.
func (c *Client) Search(ctx context.Context, query string) (Place, bool, error) {
	if strings.TrimSpace(query) == "" {
		return Place{}, false, nil
	}

	params := url.Values{}
	params.Set("format", "json")
	params.Set("q", query)
	params.Set("limit", "1")

	var hits []searchHit
	if err := c.get(ctx, "/search", params, &hits); err != nil {
		return Place{}, false, err
	}
	if len(hits) == 0 {
		return Place{}, false, nil
	}

	lat, err := strconv.ParseFloat(hits[0].Lat, 64)
	if err != nil {
		return Place{}, false, fmt.Errorf("parse latitude %q: %w", hits[0].Lat, err)
	}
	lng, err := strconv.ParseFloat(hits[0].Lon, 64)
	if err != nil {
		return Place{}, false, fmt.Errorf("parse longitude %q: %w", hits[0].Lon, err)
	}
	return Place{
		Name:        ShortName(hits[0].DisplayName),
		Coordinates: models.Coordinates{Lat: lat, Lng: lng},
	}, true, nil
}

// Reverse names the place at the given point. found is false when the service
// has no display name for it.
func (c *Client) Reverse(ctx context.Context, lat, lng float64) (Place, bool, error) {
	params := url.Values{}
	params.Set("format", "json")
	params.Set("lat", strconv.FormatFloat(lat, 'f', -1, 64))
	params.Set("lon", strconv.FormatFloat(lng, 'f', -1, 64))

	var hit struct {
		DisplayName string `json:"display_name"`
	}
	if err := c.get(ctx, "/reverse", params, &hit); err != nil {
		return Place{}, false, err
	}
	if hit.DisplayName == "" {
		return Place{}, false, nil
	}
	return Place{
		Name:        ShortName(hit.DisplayName),
		Coordinates: models.Coordinates{Lat: lat, Lng: lng},
	}, true, nil
}

func (c *Client) get(ctx context.Context, path string, params url.Values, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path+"?"+params.Encode(), nil)
	if err != nil {
		return fmt.Errorf("build geocode request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if c.userAgent != "" {
		req.Header.Set("User-Agent", c.userAgent)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("geocode %s: %w", path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("geocode %s: unexpected status %d", path, resp.StatusCode)
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode geocode %s response: %w", path, err)
	}
	return nil
}

// ShortName keeps the first three comma-separated parts of a display name.
func ShortName(displayName string) string {
	parts := strings.Split(displayName, ",")
	if len(parts) > 3 {
		parts = parts[:3]
	}
	return strings.Join(parts, ",")
}
