package httpapi

import (
	"encoding/json"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHealthz(t *testing.T) {
	a := newTestAPI(t)

	rec := a.do(t, http.MethodGet, "/healthz", "", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"status":"ok"}`, rec.Body.String())
}

func TestRegister(t *testing.T) {
	a := newTestAPI(t)

	rec := a.do(t, http.MethodPost, "/auth/register", "", map[string]string{"username": "alice", "password": "pw"})
	require.Equal(t, http.StatusCreated, rec.Code)

	var u userResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &u))
	assert.Equal(t, "alice", u.Username)
	assert.NotEmpty(t, u.ID)
	assert.NotContains(t, rec.Body.String(), "password")

	rec = a.do(t, http.MethodPost, "/auth/register", "", map[string]string{"username": "alice", "password": "other"})
	assert.Equal(t, http.StatusConflict, rec.Code)
	assert.Equal(t, "duplicate_username", decodeError(t, rec).Error)
}

func TestRegister_InvalidBody(t *testing.T) {
	a := newTestAPI(t)

	for name, body := range map[string]any{
		"not json":         "{",
		"missing password": map[string]string{"username": "alice"},
		"missing username": map[string]string{"password": "pw"},
	} {
		t.Run(name, func(t *testing.T) {
			rec := a.do(t, http.MethodPost, "/auth/register", "", body)
			assert.Equal(t, http.StatusBadRequest, rec.Code)
			assert.Equal(t, "invalid_request", decodeError(t, rec).Error)
		})
	}
}

func TestLogin_UniformFailure(t *testing.T) {
	a := newTestAPI(t)
	a.signup(t, "alice")

	wrong := a.do(t, http.MethodPost, "/auth/login", "", map[string]string{"username": "alice", "password": "nope"})
	unknown := a.do(t, http.MethodPost, "/auth/login", "", map[string]string{"username": "mallory", "password": "nope"})

	assert.Equal(t, http.StatusUnauthorized, wrong.Code)
	assert.Equal(t, wrong.Code, unknown.Code)
	assert.Equal(t, wrong.Body.String(), unknown.Body.String())
	assert.Equal(t, "invalid_credentials", decodeError(t, wrong).Error)
}

func TestLogin_ReturnsBearerToken(t *testing.T) {
	a := newTestAPI(t)
	creds := map[string]string{"username": "alice", "password": "pw"}
	a.do(t, http.MethodPost, "/auth/register", "", creds)

	rec := a.do(t, http.MethodPost, "/auth/login", "", creds)
	require.Equal(t, http.StatusOK, rec.Code)

	var lr loginResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &lr))
	assert.Equal(t, "bearer", lr.TokenType)
	assert.Equal(t, "alice", lr.User.Username)
	assert.True(t, lr.ExpiresAt.After(time.Now()))

	subject, err := a.tokens.Validate(lr.AccessToken, time.Now())
	require.NoError(t, err)
	assert.Equal(t, "alice", subject)
}

func TestMe(t *testing.T) {
	a := newTestAPI(t)
	token := a.signup(t, "alice")

	rec := a.do(t, http.MethodGet, "/auth/me", token, nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var u userResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &u))
	assert.Equal(t, "alice", u.Username)
}

func TestProtectedRoutes_AuthFailures(t *testing.T) {
	a := newTestAPI(t)
	token := a.signup(t, "alice")

	tampered := []byte(token)
	tampered[len(tampered)-2] ^= 1

	expired, _, err := a.tokens.Issue("alice", time.Now().Add(-time.Hour))
	require.NoError(t, err)

	ghost, _, err := a.tokens.Issue("ghost", time.Now())
	require.NoError(t, err)

	for name, tc := range map[string]struct {
		token string
		code  string
	}{
		"no token":      {"", "unauthenticated"},
		"garbage":       {"garbage", "token_malformed"},
		"bad signature": {string(tampered), "token_bad_signature"},
		"expired":       {expired, "token_expired"},
		"deleted user":  {ghost, "unknown_subject"},
	} {
		t.Run(name, func(t *testing.T) {
			rec := a.do(t, http.MethodGet, "/auth/me", tc.token, nil)
			assert.Equal(t, http.StatusUnauthorized, rec.Code)
			assert.Equal(t, tc.code, decodeError(t, rec).Error)
		})
	}
}

func TestLogout_IsAdvisory(t *testing.T) {
	a := newTestAPI(t)
	token := a.signup(t, "alice")

	rec := a.do(t, http.MethodPost, "/auth/logout", token, nil)
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = a.do(t, http.MethodGet, "/auth/me", token, nil)
	assert.Equal(t, http.StatusOK, rec.Code, "tokens stay valid until expiry")
}

func TestDeletedUserLosesAccess(t *testing.T) {
	a := newTestAPI(t)
	token := a.signup(t, "alice")

	a.manager.UserStore().Delete(t.Context(), "alice")

	rec := a.do(t, http.MethodGet, "/auth/me", token, nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Equal(t, "unknown_subject", decodeError(t, rec).Error)
}
