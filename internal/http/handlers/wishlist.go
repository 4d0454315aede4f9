package handlers

import (
	"net/http"

	"go.uber.org/zap"

	"github.com/hongminglow/estate-be/internal/http/respond"
	"github.com/hongminglow/estate-be/internal/listing"
	"github.com/hongminglow/estate-be/internal/models/dto"
	"github.com/hongminglow/estate-be/internal/store"
)

// WishlistHandler serves the saved-listings page. The wishlist belongs to the
// installation, not to an account, so no session is needed.
type WishlistHandler struct {
	store  *store.Store
	logger *zap.Logger
}

func NewWishlistHandler(st *store.Store, logger *zap.Logger) *WishlistHandler {
	return &WishlistHandler{store: st, logger: logger}
}

func (h *WishlistHandler) Register(mux *http.ServeMux) {
	mux.HandleFunc("GET /wishlist", h.handleList)
	mux.HandleFunc("POST /wishlist/{id}", h.handleToggle)
}

func (h *WishlistHandler) handleList(w http.ResponseWriter, r *http.Request) {
	ids := h.store.Wishlist()
	respond.JSON(w, http.StatusOK, "ok", dto.WishlistResponse{
		IDs:        ids,
		Properties: listing.InWishlist(h.store.Properties(), ids),
	})
}

func (h *WishlistHandler) handleToggle(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	saved, err := h.store.ToggleWishlist(r.Context(), id)
	if err != nil {
		h.logger.Error("toggle wishlist failed", zap.String("property_id", id), zap.Error(err))
		respond.Error(w, http.StatusInternalServerError, "failed to update wishlist")
		return
	}
	respond.JSON(w, http.StatusOK, "ok", dto.WishlistToggleResponse{PropertyID: id, Saved: saved})
}
