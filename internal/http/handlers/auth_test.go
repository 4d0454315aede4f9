package handlers

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hongminglow/estate-be/internal/models"
	"github.com/hongminglow/estate-be/internal/models/dto"
)

func TestSignUpThenSignInReusesAccount(t *testing.T) {
	env := newTestEnv(t)

	rec, body := env.do(http.MethodPost, "/auth/signup", "", map[string]string{
		"name": "Asha Rao", "email": "asha@example.com", "role": "SELLER",
	})
	require.Equal(t, http.StatusOK, rec.Code)
	signedUp := decodeData[dto.SessionResponse](t, body)
	assert.NotEmpty(t, signedUp.Token)
	assert.Equal(t, models.RoleSeller, signedUp.User.Role)

	rec, body = env.do(http.MethodPost, "/auth/signin", "", map[string]string{"email": "ASHA@example.com"})
	require.Equal(t, http.StatusOK, rec.Code)
	signedIn := decodeData[dto.SessionResponse](t, body)
	assert.Equal(t, signedUp.User.ID, signedIn.User.ID)
	assert.Equal(t, "Asha Rao", signedIn.User.Name)

	rec, body = env.do(http.MethodGet, "/auth/me", signedIn.Token, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, signedUp.User.ID, decodeData[models.User](t, body).ID)
}

func TestSignInNewEmailCreatesBuyer(t *testing.T) {
	env := newTestEnv(t)

	rec, body := env.do(http.MethodPost, "/auth/signin", "", map[string]string{"email": "ravi.k@example.com"})
	require.Equal(t, http.StatusOK, rec.Code)
	user := decodeData[dto.SessionResponse](t, body).User
	assert.Equal(t, "ravi.k", user.Name)
	assert.Equal(t, models.RoleBuyer, user.Role)
	assert.Len(t, env.store.Users(), 1)
}

func TestSignUpValidation(t *testing.T) {
	env := newTestEnv(t)

	rec, _ := env.do(http.MethodPost, "/auth/signup", "", map[string]string{"name": "", "email": "x@y.z"})
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec, _ = env.do(http.MethodPost, "/auth/signup", "", map[string]string{"name": "Root", "email": "root@y.z", "role": "ADMIN"})
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec, _ = env.do(http.MethodPost, "/auth/signin", "", map[string]string{"email": "not-an-email"})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestSessionFallbackAndSignOut(t *testing.T) {
	env := newTestEnv(t)

	rec, _ := env.do(http.MethodGet, "/auth/me", "", nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	rec, _ = env.do(http.MethodPost, "/auth/signin", "", map[string]string{"email": "meera@example.com"})
	require.Equal(t, http.StatusOK, rec.Code)

	rec, body := env.do(http.MethodGet, "/auth/me", "", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "meera@example.com", decodeData[models.User](t, body).Email)

	rec, _ = env.do(http.MethodPost, "/auth/signout", "", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	rec, _ = env.do(http.MethodGet, "/auth/me", "", nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}
