package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/hongminglow/estate-be/internal/http/respond"
	"github.com/hongminglow/estate-be/internal/middleware"
	"github.com/hongminglow/estate-be/internal/models"
)

const maxJSONBody = 1 << 20

func decodeJSON(w http.ResponseWriter, r *http.Request, dst any) bool {
	r.Body = http.MaxBytesReader(w, r.Body, maxJSONBody)
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		respond.Error(w, http.StatusBadRequest, "invalid JSON payload")
		return false
	}
	return true
}

// requireUser writes 401 and reports false when the request has no session.
func requireUser(w http.ResponseWriter, r *http.Request) (models.User, bool) {
	user, ok := middleware.UserFrom(r.Context())
	if !ok {
		respond.Error(w, http.StatusUnauthorized, "sign in required")
		return models.User{}, false
	}
	return user, true
}
