package handlers

import (
	"errors"
	"net/http"
	"time"

	"go.uber.org/zap"

	"github.com/hongminglow/estate-be/internal/events"
	"github.com/hongminglow/estate-be/internal/http/respond"
	"github.com/hongminglow/estate-be/internal/listing"
	"github.com/hongminglow/estate-be/internal/models"
	"github.com/hongminglow/estate-be/internal/store"
	"github.com/hongminglow/estate-be/internal/wizard"
)

const featuredCount = 3

// PropertyHandler serves browsing, the listing wizard and owner edits.
type PropertyHandler struct {
	store  *store.Store
	events events.Publisher
	logger *zap.Logger
	now    func() time.Time
}

// NewPropertyHandler constructs the handler.
func NewPropertyHandler(st *store.Store, pub events.Publisher, logger *zap.Logger, now func() time.Time) *PropertyHandler {
	if now == nil {
		now = time.Now
	}
	return &PropertyHandler{store: st, events: pub, logger: logger, now: now}
}

// Register attaches property routes to the mux.
func (h *PropertyHandler) Register(mux *http.ServeMux) {
	mux.HandleFunc("GET /properties", h.handleList)
	mux.HandleFunc("GET /properties/featured", h.handleFeatured)
	mux.HandleFunc("GET /properties/{id}", h.handleGet)
	mux.HandleFunc("POST /properties", h.handleCreate)
	mux.HandleFunc("PUT /properties/{id}", h.handleReplace)
	mux.HandleFunc("PATCH /properties/{id}", h.handlePatch)
	mux.HandleFunc("DELETE /properties/{id}", h.handleDelete)
	mux.HandleFunc("GET /me/properties", h.handleMine)
}

func (h *PropertyHandler) handleList(w http.ResponseWriter, r *http.Request) {
	opts, err := listing.ParseQuery(r.URL.Query())
	if err != nil {
		respond.Error(w, http.StatusBadRequest, err.Error())
		return
	}
	respond.JSON(w, http.StatusOK, "ok", listing.FilterAndSort(h.store.Properties(), opts))
}

func (h *PropertyHandler) handleFeatured(w http.ResponseWriter, r *http.Request) {
	respond.JSON(w, http.StatusOK, "ok", listing.Featured(h.store.Properties(), featuredCount))
}

func (h *PropertyHandler) handleGet(w http.ResponseWriter, r *http.Request) {
	p, ok := h.store.Property(r.PathValue("id"))
	if !ok {
		respond.Error(w, http.StatusNotFound, "property not found")
		return
	}
	respond.JSON(w, http.StatusOK, "ok", p)
}

func (h *PropertyHandler) handleMine(w http.ResponseWriter, r *http.Request) {
	user, ok := requireUser(w, r)
	if !ok {
		return
	}
	respond.JSON(w, http.StatusOK, "ok", listing.OwnedBy(h.store.Properties(), user.ID))
}

func (h *PropertyHandler) handleCreate(w http.ResponseWriter, r *http.Request) {
	user, ok := requireUser(w, r)
	if !ok {
		return
	}
	draft := wizard.NewDraft()
	if !decodeJSON(w, r, &draft) {
		return
	}
	created, ok := h.submit(w, r, draft, user, "")
	if !ok {
		return
	}
	h.publish(r, events.SubjectPropertyCreated, created)
	respond.JSON(w, http.StatusCreated, "listing published", created)
}

func (h *PropertyHandler) handleReplace(w http.ResponseWriter, r *http.Request) {
	user, ok := requireUser(w, r)
	if !ok {
		return
	}
	existing, ok := h.authorize(w, r, user)
	if !ok {
		return
	}
	draft := wizard.DraftFrom(existing)
	if !decodeJSON(w, r, &draft) {
		return
	}
	updated, ok := h.submit(w, r, draft, user, existing.ID)
	if !ok {
		return
	}
	h.publish(r, events.SubjectPropertyUpdated, updated)
	respond.JSON(w, http.StatusOK, "listing updated", updated)
}

func (h *PropertyHandler) submit(w http.ResponseWriter, r *http.Request, draft wizard.Draft, user models.User, editID string) (models.Property, bool) {
	p, err := wizard.Submit(r.Context(), h.store, draft, user, editID, h.now())
	if err != nil {
		var verr *wizard.ValidationError
		if errors.As(err, &verr) {
			respond.Invalid(w, "please fix the highlighted fields", verr.Fields)
			return models.Property{}, false
		}
		h.logger.Error("submit listing failed", zap.String("edit_id", editID), zap.Error(err))
		respond.Error(w, http.StatusInternalServerError, "failed to save listing")
		return models.Property{}, false
	}
	return p, true
}

func (h *PropertyHandler) handlePatch(w http.ResponseWriter, r *http.Request) {
	user, ok := requireUser(w, r)
	if !ok {
		return
	}
	existing, ok := h.authorize(w, r, user)
	if !ok {
		return
	}
	var patch models.PropertyPatch
	if !decodeJSON(w, r, &patch) {
		return
	}
	if patch.IsEmpty() {
		respond.Error(w, http.StatusBadRequest, "patch has no fields")
		return
	}
	if patch.Type != nil && !patch.Type.IsValid() {
		respond.Invalid(w, "please fix the highlighted fields", map[string]string{"type": "Choose Room / PG or Flat"})
		return
	}

	if _, err := h.store.UpdateProperty(r.Context(), existing.ID, patch); err != nil {
		h.logger.Error("patch listing failed", zap.String("property_id", existing.ID), zap.Error(err))
		respond.Error(w, http.StatusInternalServerError, "failed to update listing")
		return
	}
	updated, ok := h.store.Property(existing.ID)
	if !ok {
		updated = patch.Apply(existing)
	}
	h.publish(r, events.SubjectPropertyUpdated, updated)
	respond.JSON(w, http.StatusOK, "listing updated", updated)
}

func (h *PropertyHandler) handleDelete(w http.ResponseWriter, r *http.Request) {
	user, ok := requireUser(w, r)
	if !ok {
		return
	}
	existing, ok := h.authorize(w, r, user)
	if !ok {
		return
	}
	if _, err := h.store.DeleteProperty(r.Context(), existing.ID); err != nil {
		h.logger.Error("delete listing failed", zap.String("property_id", existing.ID), zap.Error(err))
		respond.Error(w, http.StatusInternalServerError, "failed to delete listing")
		return
	}
	h.publish(r, events.SubjectPropertyDeleted, map[string]string{"id": existing.ID})
	respond.JSON(w, http.StatusOK, "listing deleted", nil)
}

// authorize loads the listing named in the path and checks that user may edit it.
func (h *PropertyHandler) authorize(w http.ResponseWriter, r *http.Request, user models.User) (models.Property, bool) {
	p, ok := h.store.Property(r.PathValue("id"))
	if !ok {
		respond.Error(w, http.StatusNotFound, "property not found")
		return models.Property{}, false
	}
	if !user.CanManage(p) {
		respond.Error(w, http.StatusForbidden, "only the owner can change this listing")
		return models.Property{}, false
	}
	return p, true
}

func (h *PropertyHandler) publish(r *http.Request, subject string, payload any) {
	if err := h.events.Publish(r.Context(), subject, payload); err != nil {
		h.logger.Warn("publish event failed", zap.String("subject", subject), zap.Error(err))
	}
}
