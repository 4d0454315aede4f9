package dto

import "github.com/hongminglow/estate-be/internal/models"

type InquiryRequest struct {
	Content string `json:"content"`
}

type WishlistResponse struct {
	IDs        []string          `json:"ids"`
	Properties []models.Property `json:"properties"`
}

type WishlistToggleResponse struct {
	PropertyID string `json:"propertyId"`
	Saved      bool   `json:"saved"`
}

type PropertyInsightsResponse struct {
	Description      string `json:"description"`
	NearbyFacilities string `json:"nearbyFacilities"`
}

type SuggestionsResponse struct {
	Query       string   `json:"query"`
	Suggestions []string `json:"suggestions"`
}

type StepValidationResponse struct {
	Step   int               `json:"step"`
	Valid  bool              `json:"valid"`
	Errors map[string]string `json:"errors,omitempty"`
}

type UploadResponse struct {
	URL string `json:"url"`
}
