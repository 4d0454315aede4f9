package ai

import (
	"context"
	"errors"

	"github.com/hongminglow/estate-be/internal/models"
	"go.uber.org/zap"
)

// Placeholder texts shown instead of generated content.
const (
	DescriptionUnconfigured = "AI service not configured."
	DescriptionFailed       = "Error generating AI description."
	DescriptionEmpty        = "No description generated."
	FacilitiesUnavailable   = "Facility information currently unavailable."
)

// Service never fails: every error is logged and replaced by a placeholder.
type Service struct {
	client *Client
	logger *zap.Logger
}

func NewService(client *Client, logger *zap.Logger) *Service {
	return &Service{client: client, logger: logger}
}

func (s *Service) SearchSuggestions(ctx context.Context, query string) []string {
	out, err := s.client.SearchSuggestions(ctx, query)
	if err != nil {
		s.logFailure("search suggestions", err)
		return []string{}
	}
	return out
}

func (s *Service) PropertyDescription(ctx context.Context, p models.Property) string {
	text, err := s.client.PropertyDescription(ctx, p)
	if err == nil {
		return text
	}
	s.logFailure("property description", err, zap.String("property_id", p.ID))
	switch {
	case errors.Is(err, ErrUnconfigured):
		return DescriptionUnconfigured
	case errors.Is(err, ErrEmpty):
		return DescriptionEmpty
	default:
		return DescriptionFailed
	}
}

func (s *Service) NearbyFacilities(ctx context.Context, location string) string {
	text, err := s.client.NearbyFacilities(ctx, location)
	if err != nil {
		s.logFailure("nearby facilities", err, zap.String("location", location))
		return FacilitiesUnavailable
	}
	return text
}

func (s *Service) logFailure(op string, err error, fields ...zap.Field) {
	if errors.Is(err, ErrUnconfigured) {
		s.logger.Debug("ai "+op+" skipped", append(fields, zap.Error(err))...)
		return
	}
	s.logger.Warn("ai "+op+" failed", append(fields, zap.Error(err))...)
}
