// Package wizard implements the four-step listing form: per-step validation,
// step navigation and submission into the store.
package wizard

import (
	"slices"
	"strings"

	"github.com/hongminglow/estate-be/internal/models"
)

// AmenityPresets are the amenities offered as one-tap choices.
var AmenityPresets = []string{
	"Gym", "Pool", "Parking", "Garden", "Beach Access", "Elevator", "Security",
	"Wi-Fi", "AC", "Balcony", "Terrace", "Power Backup", "CCTV", "Clubhouse",
	"Play Area", "Laundry", "Pet Friendly", "Furnished", "Modular Kitchen", "Gated Community",
}

// DefaultCoordinates is where the map picker starts (Mumbai).
var DefaultCoordinates = models.Coordinates{Lat: 19.076, Lng: 72.8777}

// Draft is the form state collected across the wizard steps.
type Draft struct {
	Title       string              `json:"title"`
	Description string              `json:"description"`
	Type        models.PropertyType `json:"type"`
	Price       float64             `json:"price"`
	Bedrooms    int                 `json:"bedrooms"`
	Bathrooms   int                 `json:"bathrooms"`
	Area        float64             `json:"area"`
	Location    string              `json:"location"`
	Coordinates models.Coordinates  `json:"coordinates"`
	Images      []string            `json:"images"`
	Amenities   []string            `json:"amenities"`
}

// NewDraft returns the form as it looks before the user types anything.
func NewDraft() Draft {
	return Draft{
		Type:        models.TypeRoomPG,
		Bedrooms:    2,
		Bathrooms:   1,
		Area:        800,
		Coordinates: DefaultCoordinates,
		Images:      []string{},
		Amenities:   []string{},
	}
}

// DraftFrom pre-fills the form from an existing listing for editing.
func DraftFrom(p models.Property) Draft {
	d := NewDraft()
	d.Title = p.Title
	d.Description = p.Description
	d.Type = p.Type
	d.Price = p.Price
	d.Bedrooms = p.Bedrooms
	d.Bathrooms = p.Bathrooms
	d.Area = p.Area
	d.Location = p.Location
	if p.Coordinates != nil {
		d.Coordinates = *p.Coordinates
	}
	d.Images = slices.Clone(p.Images)
	d.Amenities = slices.Clone(p.Amenities)
	return d
}

// ToggleAmenity adds a when absent, removes it when present.
func (d *Draft) ToggleAmenity(a string) {
	if i := slices.Index(d.Amenities, a); i >= 0 {
		d.Amenities = slices.Delete(d.Amenities, i, i+1)
		return
	}
	d.Amenities = append(d.Amenities, a)
}

// AddAmenity appends a trimmed custom amenity unless it is blank or already present.
func (d *Draft) AddAmenity(a string) bool {
	a = strings.TrimSpace(a)
	if a == "" || slices.Contains(d.Amenities, a) {
		return false
	}
	d.Amenities = append(d.Amenities, a)
	return true
}

// RemoveImage drops the image at idx; out-of-range indexes are ignored.
func (d *Draft) RemoveImage(idx int) {
	if idx < 0 || idx >= len(d.Images) {
		return
	}
	d.Images = slices.Delete(d.Images, idx, idx+1)
}
