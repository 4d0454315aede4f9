package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/hongminglow/estate-be/internal/models"
)

type ctxKey struct{}

// TokenParser turns a bearer token into the user it was issued for.
type TokenParser interface {
	Parse(raw string) (models.User, error)
}

// Session attaches the bearer-token user to the request context. Requests
// without a valid token pass through anonymously.
func Session(tokens TokenParser, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		raw, ok := bearerToken(r.Header.Get("Authorization"))
		if ok {
			if user, err := tokens.Parse(raw); err == nil {
				r = r.WithContext(WithUser(r.Context(), user))
			}
		}
		next.ServeHTTP(w, r)
	})
}

// WithUser stores u in ctx.
func WithUser(ctx context.Context, u models.User) context.Context {
	return context.WithValue(ctx, ctxKey{}, u)
}

// UserFrom returns the signed-in user, if any.
func UserFrom(ctx context.Context) (models.User, bool) {
	u, ok := ctx.Value(ctxKey{}).(models.User)
	return u, ok
}

func bearerToken(header string) (string, bool) {
	scheme, token, found := strings.Cut(strings.TrimSpace(header), " ")
	if !found || !strings.EqualFold(scheme, "Bearer") {
		return "", false
	}
	token = strings.TrimSpace(token)
	return token, token != ""
}
