package handlers

import (
	"context"
	"net/http"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/hongminglow/estate-be/internal/auth"
	"github.com/hongminglow/estate-be/internal/http/respond"
	"github.com/hongminglow/estate-be/internal/middleware"
	"github.com/hongminglow/estate-be/internal/models"
	"github.com/hongminglow/estate-be/internal/models/dto"
	"github.com/hongminglow/estate-be/internal/store"
)

// UserStore is the account side of the persistence store.
type UserStore interface {
	UserByEmail(email string) (models.User, bool)
	SaveUser(ctx context.Context, u models.User) (models.User, error)
}

// AuthHandler owns the mock sign-in flow. There are no passwords: an email
// is enough to get a session.
type AuthHandler struct {
	users   UserStore
	session *store.Session
	tokens  *auth.TokenManager
	logger  *zap.Logger
}

// NewAuthHandler constructs the handler.
func NewAuthHandler(users UserStore, session *store.Session, tokens *auth.TokenManager, logger *zap.Logger) *AuthHandler {
	return &AuthHandler{users: users, session: session, tokens: tokens, logger: logger}
}

// Register attaches auth routes to the mux.
func (h *AuthHandler) Register(mux *http.ServeMux) {
	mux.HandleFunc("POST /auth/signin", h.handleSignIn)
	mux.HandleFunc("POST /auth/signup", h.handleSignUp)
	mux.HandleFunc("POST /auth/signout", h.handleSignOut)
	mux.HandleFunc("GET /auth/me", h.handleMe)
}

func (h *AuthHandler) handleSignIn(w http.ResponseWriter, r *http.Request) {
	var req dto.SignInRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	email := strings.TrimSpace(req.Email)
	if !validEmail(email) {
		respond.Error(w, http.StatusBadRequest, "a valid email is required")
		return
	}

	user, ok := h.users.UserByEmail(email)
	if !ok {
		local, _, _ := strings.Cut(email, "@")
		user = models.User{ID: uuid.NewString(), Name: local, Email: email, Role: models.RoleBuyer}
	}
	h.startSession(w, r, user, "signed in")
}

func (h *AuthHandler) handleSignUp(w http.ResponseWriter, r *http.Request) {
	var req dto.SignUpRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	name := strings.TrimSpace(req.Name)
	email := strings.TrimSpace(req.Email)
	if name == "" || !validEmail(email) {
		respond.Error(w, http.StatusBadRequest, "name and a valid email are required")
		return
	}
	role := req.Role
	if role == "" {
		role = models.RoleBuyer
	}
	if role != models.RoleBuyer && role != models.RoleSeller {
		respond.Error(w, http.StatusBadRequest, "role must be BUYER or SELLER")
		return
	}

	user := models.User{ID: uuid.NewString(), Name: name, Email: email, Role: role}
	h.startSession(w, r, user, "account created")
}

func (h *AuthHandler) startSession(w http.ResponseWriter, r *http.Request, user models.User, message string) {
	saved, err := h.users.SaveUser(r.Context(), user)
	if err != nil {
		h.logger.Error("save user failed", zap.String("email", user.Email), zap.Error(err))
		respond.Error(w, http.StatusInternalServerError, "failed to save user")
		return
	}
	if err := h.session.Set(r.Context(), saved); err != nil {
		h.logger.Error("save session failed", zap.String("user_id", saved.ID), zap.Error(err))
		respond.Error(w, http.StatusInternalServerError, "failed to start session")
		return
	}
	token, err := h.tokens.Generate(saved)
	if err != nil {
		respond.Error(w, http.StatusInternalServerError, "failed to generate token")
		return
	}
	respond.JSON(w, http.StatusOK, message, dto.SessionResponse{Token: token, User: saved})
}

func (h *AuthHandler) handleSignOut(w http.ResponseWriter, r *http.Request) {
	if err := h.session.Clear(r.Context()); err != nil {
		h.logger.Error("clear session failed", zap.Error(err))
		respond.Error(w, http.StatusInternalServerError, "failed to sign out")
		return
	}
	respond.JSON(w, http.StatusOK, "signed out", nil)
}

// handleMe prefers the bearer token and falls back to the stored session.
func (h *AuthHandler) handleMe(w http.ResponseWriter, r *http.Request) {
	if user, ok := middleware.UserFrom(r.Context()); ok {
		respond.JSON(w, http.StatusOK, "ok", user)
		return
	}
	current, err := h.session.Current(r.Context())
	if err != nil {
		h.logger.Error("load session failed", zap.Error(err))
		respond.Error(w, http.StatusInternalServerError, "failed to load session")
		return
	}
	if current == nil {
		respond.Error(w, http.StatusUnauthorized, "not signed in")
		return
	}
	respond.JSON(w, http.StatusOK, "ok", current)
}

func validEmail(email string) bool {
	local, domain, ok := strings.Cut(email, "@")
	return ok && local != "" && domain != "" && !strings.ContainsAny(email, " \t")
}
