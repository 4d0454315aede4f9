package models

import "time"

// PropertyType distinguishes shared rooms from whole flats.
type PropertyType string

const (
	TypeRoomPG PropertyType = "ROOM_PG"
	TypeFlat   PropertyType = "FLAT"
)

// IsValid reports whether t is one of the known listing types.
func (t PropertyType) IsValid() bool {
	return t == TypeRoomPG || t == TypeFlat
}

// Coordinates is a WGS84 point picked on the map.
type Coordinates struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

// Property is a listing. Price is a monthly rent.
type Property struct {
	ID          string       `json:"id"`
	Title       string       `json:"title"`
	Description string       `json:"description"`
	Type        PropertyType `json:"type"`
	Price       float64      `json:"price"`
	Location    string       `json:"location"`
	Coordinates *Coordinates `json:"coordinates,omitempty"`
	Bedrooms    int          `json:"bedrooms"`
	Bathrooms   int          `json:"bathrooms"`
	Area        float64      `json:"area"`
	Images      []string     `json:"images"`
	OwnerID     string       `json:"ownerId"`
	CreatedAt   time.Time    `json:"createdAt"`
	Amenities   []string     `json:"amenities"`
}

// PropertyPatch is a partial update: nil fields are left untouched.
type PropertyPatch struct {
	Title       *string       `json:"title,omitempty"`
	Description *string       `json:"description,omitempty"`
	Type        *PropertyType `json:"type,omitempty"`
	Price       *float64      `json:"price,omitempty"`
	Location    *string       `json:"location,omitempty"`
	Coordinates *Coordinates  `json:"coordinates,omitempty"`
	Bedrooms    *int          `json:"bedrooms,omitempty"`
	Bathrooms   *int          `json:"bathrooms,omitempty"`
	Area        *float64      `json:"area,omitempty"`
	Images      []string      `json:"images,omitempty"`
	OwnerID     *string       `json:"ownerId,omitempty"`
	CreatedAt   *time.Time    `json:"createdAt,omitempty"`
	Amenities   []string      `json:"amenities,omitempty"`
}

// PatchFrom builds a patch that overwrites every field of the target with p's values.
// The ID is not part of a patch.
func PatchFrom(p Property) PropertyPatch {
	patch := PropertyPatch{
		Title:       &p.Title,
		Description: &p.Description,
		Type:        &p.Type,
		Price:       &p.Price,
		Location:    &p.Location,
		Coordinates: p.Coordinates,
		Bedrooms:    &p.Bedrooms,
		Bathrooms:   &p.Bathrooms,
		Area:        &p.Area,
		Images:      cloneStrings(p.Images),
		OwnerID:     &p.OwnerID,
		CreatedAt:   &p.CreatedAt,
		Amenities:   cloneStrings(p.Amenities),
	}
	if patch.Images == nil {
		patch.Images = []string{}
	}
	if patch.Amenities == nil {
		patch.Amenities = []string{}
	}
	return patch
}

// IsEmpty reports whether the patch carries no field at all.
func (pp PropertyPatch) IsEmpty() bool {
	return pp.Title == nil && pp.Description == nil && pp.Type == nil && pp.Price == nil &&
		pp.Location == nil && pp.Coordinates == nil && pp.Bedrooms == nil && pp.Bathrooms == nil &&
		pp.Area == nil && pp.Images == nil && pp.OwnerID == nil && pp.CreatedAt == nil && pp.Amenities == nil
}

// Apply returns a copy of p with every supplied field replaced.
func (pp PropertyPatch) Apply(p Property) Property {
	out := p.Clone()
	if pp.Title != nil {
		out.Title = *pp.Title
	}
	if pp.Description != nil {
		out.Description = *pp.Description
	}
	if pp.Type != nil {
		out.Type = *pp.Type
	}
	if pp.Price != nil {
		out.Price = *pp.Price
	}
	if pp.Location != nil {
		out.Location = *pp.Location
	}
	if pp.Coordinates != nil {
		c := *pp.Coordinates
		out.Coordinates = &c
	}
	if pp.Bedrooms != nil {
		out.Bedrooms = *pp.Bedrooms
	}
	if pp.Bathrooms != nil {
		out.Bathrooms = *pp.Bathrooms
	}
	if pp.Area != nil {
		out.Area = *pp.Area
	}
	if pp.Images != nil {
		out.Images = cloneStrings(pp.Images)
	}
	if pp.OwnerID != nil {
		out.OwnerID = *pp.OwnerID
	}
	if pp.CreatedAt != nil {
		out.CreatedAt = *pp.CreatedAt
	}
	if pp.Amenities != nil {
		out.Amenities = cloneStrings(pp.Amenities)
	}
	return out
}

// Clone deep-copies the slices and coordinates so callers cannot alias store state.
func (p Property) Clone() Property {
	out := p
	out.Images = cloneStrings(p.Images)
	out.Amenities = cloneStrings(p.Amenities)
	if p.Coordinates != nil {
		c := *p.Coordinates
		out.Coordinates = &c
	}
	return out
}

func cloneStrings(in []string) []string {
	if in == nil {
		return nil
	}
	out := make([]string, len(in))
	copy(out, in)
	return out
}
