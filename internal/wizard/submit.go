package wizard

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/hongminglow/estate-be/internal/models"
)

// ErrInvalid is returned by Submit when the draft fails validation.
var ErrInvalid = errors.New("listing draft is invalid")

// ValidationError carries the per-field messages of a rejected draft.
type ValidationError struct {
	Fields FieldErrors
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %d field(s)", ErrInvalid, len(e.Fields))
}

func (e *ValidationError) Unwrap() error { return ErrInvalid }

// Repository is the part of the store the wizard writes to.
type Repository interface {
	Property(id string) (models.Property, bool)
	AddProperty(ctx context.Context, p models.Property) error
	UpdateProperty(ctx context.Context, id string, patch models.PropertyPatch) (bool, error)
}

// NewPropertyID mints the id for a fresh listing.
func NewPropertyID(now time.Time) string {
	return fmt.Sprintf("p_%d", now.UnixMilli())
}

// Build turns a draft into the record that will be stored. With an editID the
// existing id and creation time are kept; when the record is gone the creation
// time falls back to now.
func Build(repo Repository, d Draft, owner models.User, editID string, now time.Time) models.Property {
	p := models.Property{
		Title:       strings.TrimSpace(d.Title),
		Description: strings.TrimSpace(d.Description),
		Type:        d.Type,
		Price:       d.Price,
		Location:    strings.TrimSpace(d.Location),
		Bedrooms:    d.Bedrooms,
		Bathrooms:   d.Bathrooms,
		Area:        d.Area,
		Images:      slices.Clone(d.Images),
		Amenities:   slices.Clone(d.Amenities),
		OwnerID:     owner.ID,
		CreatedAt:   now,
	}
	coords := d.Coordinates
	p.Coordinates = &coords
	if p.Images == nil {
		p.Images = []string{}
	}
	if p.Amenities == nil {
		p.Amenities = []string{}
	}

	if editID == "" {
		p.ID = NewPropertyID(now)
		return p
	}
	p.ID = editID
	if existing, ok := repo.Property(editID); ok {
		p.CreatedAt = existing.CreatedAt
		p.OwnerID = existing.OwnerID
	}
	return p
}

// Submit validates every step, then adds the listing or replaces the one
// being edited. It returns the stored record.
func Submit(ctx context.Context, repo Repository, d Draft, owner models.User, editID string, now time.Time) (models.Property, error) {
	if errs := ValidateAll(d); !errs.Valid() {
		return models.Property{}, &ValidationError{Fields: errs}
	}

	p := Build(repo, d, owner, editID, now)
	if editID == "" {
		if err := repo.AddProperty(ctx, p); err != nil {
			return models.Property{}, fmt.Errorf("add listing: %w", err)
		}
		return p, nil
	}

	if _, err := repo.UpdateProperty(ctx, editID, models.PatchFrom(p)); err != nil {
		return models.Property{}, fmt.Errorf("update listing %s: %w", editID, err)
	}
	return p, nil
}
