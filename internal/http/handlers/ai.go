package handlers

import (
	"context"
	"net/http"
	"sync"

	"github.com/hongminglow/estate-be/internal/http/respond"
	"github.com/hongminglow/estate-be/internal/models"
	"github.com/hongminglow/estate-be/internal/models/dto"
	"github.com/hongminglow/estate-be/internal/store"
)

// Assistant produces generated text. Implementations never fail; they fall
// back to placeholder text.
type Assistant interface {
	SearchSuggestions(ctx context.Context, query string) []string
	PropertyDescription(ctx context.Context, p models.Property) string
	NearbyFacilities(ctx context.Context, location string) string
}

type AIHandler struct {
	store     *store.Store
	assistant Assistant
}

func NewAIHandler(st *store.Store, assistant Assistant) *AIHandler {
	return &AIHandler{store: st, assistant: assistant}
}

func (h *AIHandler) Register(mux *http.ServeMux) {
	mux.HandleFunc("GET /ai/suggestions", h.handleSuggestions)
	mux.HandleFunc("GET /properties/{id}/ai", h.handleInsights)
}

func (h *AIHandler) handleSuggestions(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query().Get("q")
	respond.JSON(w, http.StatusOK, "ok", dto.SuggestionsResponse{
		Query:       q,
		Suggestions: h.assistant.SearchSuggestions(r.Context(), q),
	})
}

// handleInsights asks for the description and the facilities at the same time.
func (h *AIHandler) handleInsights(w http.ResponseWriter, r *http.Request) {
	p, ok := h.store.Property(r.PathValue("id"))
	if !ok {
		respond.Error(w, http.StatusNotFound, "property not found")
		return
	}

	var (
		wg   sync.WaitGroup
		resp dto.PropertyInsightsResponse
	)
	wg.Add(2)
	go func() {
		defer wg.Done()
		resp.Description = h.assistant.PropertyDescription(r.Context(), p)
	}()
	go func() {
		defer wg.Done()
		resp.NearbyFacilities = h.assistant.NearbyFacilities(r.Context(), p.Location)
	}()
	wg.Wait()

	if r.Context().Err() != nil {
		return
	}
	respond.JSON(w, http.StatusOK, "ok", resp)
}
