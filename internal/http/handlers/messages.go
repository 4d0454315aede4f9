package handlers

import (
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/hongminglow/estate-be/internal/events"
	"github.com/hongminglow/estate-be/internal/http/respond"
	"github.com/hongminglow/estate-be/internal/models"
	"github.com/hongminglow/estate-be/internal/models/dto"
	"github.com/hongminglow/estate-be/internal/store"
)

// MessageHandler serves the contact-agent form and the dashboard inbox.
type MessageHandler struct {
	store  *store.Store
	events events.Publisher
	logger *zap.Logger
	now    func() time.Time
}

func NewMessageHandler(st *store.Store, pub events.Publisher, logger *zap.Logger, now func() time.Time) *MessageHandler {
	if now == nil {
		now = time.Now
	}
	return &MessageHandler{store: st, events: pub, logger: logger, now: now}
}

func (h *MessageHandler) Register(mux *http.ServeMux) {
	mux.HandleFunc("GET /messages", h.handleList)
	mux.HandleFunc("POST /properties/{id}/inquiries", h.handleInquire)
}

func (h *MessageHandler) handleList(w http.ResponseWriter, r *http.Request) {
	user, ok := requireUser(w, r)
	if !ok {
		return
	}
	respond.JSON(w, http.StatusOK, "ok", h.store.Messages(user.ID))
}

func (h *MessageHandler) handleInquire(w http.ResponseWriter, r *http.Request) {
	user, ok := requireUser(w, r)
	if !ok {
		return
	}
	p, ok := h.store.Property(r.PathValue("id"))
	if !ok {
		respond.Error(w, http.StatusNotFound, "property not found")
		return
	}
	var req dto.InquiryRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	if strings.TrimSpace(req.Content) == "" {
		respond.Invalid(w, "message is empty", map[string]string{"content": "Message is required"})
		return
	}

	msg := models.Message{
		ID:          uuid.NewString(),
		SenderID:    user.ID,
		SenderName:  user.Name,
		SenderEmail: user.Email,
		ReceiverID:  p.OwnerID,
		PropertyID:  p.ID,
		Content:     req.Content,
		CreatedAt:   h.now(),
	}
	if err := h.store.AddMessage(r.Context(), msg); err != nil {
		h.logger.Error("save inquiry failed", zap.String("property_id", p.ID), zap.Error(err))
		respond.Error(w, http.StatusInternalServerError, "failed to send message")
		return
	}
	if err := h.events.Publish(r.Context(), events.SubjectInquiryCreated, msg); err != nil {
		h.logger.Warn("publish event failed", zap.String("subject", events.SubjectInquiryCreated), zap.Error(err))
	}
	respond.JSON(w, http.StatusCreated, "message sent", msg)
}
