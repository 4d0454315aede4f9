package store

import (
	"time"

	"github.com/hongminglow/estate-be/internal/models"
)

// SeedProperties is the catalogue a fresh store starts with.
func SeedProperties(now time.Time) []models.Property {
	return []models.Property{
		{
			ID:          "p1",
			Title:       "Luxury Apartment in Downtown",
			Description: "Beautiful modern apartment with skyline views.",
			Type:        models.TypeFlat,
			Price:       45000,
			Location:    "Mumbai, Maharashtra",
			Bedrooms:    3,
			Bathrooms:   2,
			Area:        1200,
			Images:      []string{"https://picsum.photos/seed/p1/800/600", "https://picsum.photos/seed/p1_2/800/600"},
			OwnerID:     "u1",
			CreatedAt:   now,
			Amenities:   []string{"Gym", "Pool", "Parking"},
		},
		{
			ID:          "p2",
			Title:       "Cozy Villa near Beach",
			Description: "Perfect for families seeking tranquility.",
			Type:        models.TypeFlat,
			Price:       15000000,
			Location:    "Goa, India",
			Bedrooms:    4,
			Bathrooms:   3,
			Area:        2500,
			Images:      []string{"https://picsum.photos/seed/p2/800/600", "https://picsum.photos/seed/p2_2/800/600"},
			OwnerID:     "u2",
			CreatedAt:   now.Add(-24 * time.Hour),
			Amenities:   []string{"Garden", "Beach Access"},
		},
	}
}
