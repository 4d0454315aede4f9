package handlers

import (
	"net/http"
	"strconv"

	"github.com/hongminglow/estate-be/internal/http/respond"
	"github.com/hongminglow/estate-be/internal/models/dto"
	"github.com/hongminglow/estate-be/internal/wizard"
)

// WizardHandler exposes per-step validation so clients can gate "Next".
type WizardHandler struct{}

func NewWizardHandler() *WizardHandler { return &WizardHandler{} }

func (h *WizardHandler) Register(mux *http.ServeMux) {
	mux.HandleFunc("POST /wizard/validate", h.handleValidate)
	mux.HandleFunc("GET /wizard/amenities", h.handleAmenities)
}

func (h *WizardHandler) handleValidate(w http.ResponseWriter, r *http.Request) {
	step, err := strconv.Atoi(r.URL.Query().Get("step"))
	if err != nil || step < wizard.StepBasics || step > wizard.LastStep {
		respond.Error(w, http.StatusBadRequest, "step must be between 0 and 3")
		return
	}
	draft := wizard.NewDraft()
	if !decodeJSON(w, r, &draft) {
		return
	}

	errs := wizard.ValidateStep(step, draft)
	resp := dto.StepValidationResponse{Step: step, Valid: errs.Valid(), Errors: errs}
	if !resp.Valid {
		respond.JSON(w, http.StatusUnprocessableEntity, "please fix the highlighted fields", resp)
		return
	}
	respond.JSON(w, http.StatusOK, "ok", resp)
}

func (h *WizardHandler) handleAmenities(w http.ResponseWriter, r *http.Request) {
	respond.JSON(w, http.StatusOK, "ok", wizard.AmenityPresets)
}
