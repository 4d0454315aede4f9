package handlers

import (
	"context"
	"net/http"
	"strconv"

	"go.uber.org/zap"

	"github.com/hongminglow/estate-be/internal/geo"
	"github.com/hongminglow/estate-be/internal/http/respond"
)

// Geocoder resolves addresses for the wizard's map step.
type Geocoder interface {
	Search(ctx context.Context, query string) (geo.Place, bool, error)
	Reverse(ctx context.Context, lat, lng float64) (geo.Place, bool, error)
}

type GeoHandler struct {
	geocoder Geocoder
	logger   *zap.Logger
}

func NewGeoHandler(geocoder Geocoder, logger *zap.Logger) *GeoHandler {
	return &GeoHandler{geocoder: geocoder, logger: logger}
}

func (h *GeoHandler) Register(mux *http.ServeMux) {
	mux.HandleFunc("GET /geo/search", h.handleSearch)
	mux.HandleFunc("GET /geo/reverse", h.handleReverse)
}

func (h *GeoHandler) handleSearch(w http.ResponseWriter, r *http.Request) {
	place, found, err := h.geocoder.Search(r.Context(), r.URL.Query().Get("q"))
	h.reply(w, place, found, err)
}

func (h *GeoHandler) handleReverse(w http.ResponseWriter, r *http.Request) {
	lat, errLat := strconv.ParseFloat(r.URL.Query().Get("lat"), 64)
	lng, errLng := strconv.ParseFloat(r.URL.Query().Get("lng"), 64)
	if errLat != nil || errLng != nil || lat < -90 || lat > 90 || lng < -180 || lng > 180 {
		respond.Error(w, http.StatusBadRequest, "lat and lng must be valid coordinates")
		return
	}
	place, found, err := h.geocoder.Reverse(r.Context(), lat, lng)
	h.reply(w, place, found, err)
}

func (h *GeoHandler) reply(w http.ResponseWriter, place geo.Place, found bool, err error) {
	switch {
	case err != nil:
		h.logger.Warn("geocode failed", zap.Error(err))
		respond.Error(w, http.StatusBadGateway, "map service unavailable")
	case !found:
		respond.Error(w, http.StatusNotFound, "no matching place")
	default:
		respond.JSON(w, http.StatusOK, "ok", place)
	}
}
