package wizard

import (
	"maps"
	"strings"
	"unicode/utf8"
)

// Steps of the wizard.
const (
	StepBasics = iota
	StepDetails
	StepMedia
	StepReview
)

// LastStep is the review step; it has no validation.
const LastStep = StepReview

// StepLabels names each step for display.
var StepLabels = [...]string{"Basic Info", "Details & Map", "Media & Amenities", "Review"}

// FieldErrors maps a form field to its message. An empty map means valid.
type FieldErrors map[string]string

// Valid reports whether no field failed.
func (fe FieldErrors) Valid() bool { return len(fe) == 0 }

// ValidateStep runs the rules of a single step.
func ValidateStep(step int, d Draft) FieldErrors {
	errs := FieldErrors{}
	switch step {
	case StepBasics:
		title := strings.TrimSpace(d.Title)
		switch {
		case title == "":
			errs["title"] = "Title is required"
		case utf8.RuneCountInString(title) < 5:
			errs["title"] = "Title must be at least 5 characters"
		}
		description := strings.TrimSpace(d.Description)
		switch {
		case description == "":
			errs["description"] = "Description is required"
		case utf8.RuneCountInString(description) < 10:
			errs["description"] = "Description must be at least 10 characters"
		}
		if d.Price <= 0 {
			errs["price"] = "Enter a valid price"
		}
	case StepDetails:
		if d.Bedrooms < 0 {
			errs["bedrooms"] = "Invalid"
		}
		if d.Bathrooms < 0 {
			errs["bathrooms"] = "Invalid"
		}
		if d.Area <= 0 {
			errs["area"] = "Invalid area"
		}
		if strings.TrimSpace(d.Location) == "" {
			errs["location"] = "Pick a location on the map or search"
		}
	case StepMedia:
		if len(d.Images) == 0 {
			errs["images"] = "Add at least one image"
		}
	}
	return errs
}

// ValidateAll runs every step that has rules and merges the results.
func ValidateAll(d Draft) FieldErrors {
	errs := FieldErrors{}
	for step := StepBasics; step < StepReview; step++ {
		maps.Copy(errs, ValidateStep(step, d))
	}
	if !d.Type.IsValid() {
		errs["type"] = "Choose Room / PG or Flat"
	}
	return errs
}
