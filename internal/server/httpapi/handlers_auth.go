package httpapi

import (
	"net/http"

	"github.com/dmitrijs2005/bookwise/internal/common"
)

const tokenType = "bearer"

func (h *handler) health(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (h *handler) register(w http.ResponseWriter, r *http.Request) {
	var req credentialsRequest
	if err := decode(w, r, &req); err != nil {
		writeError(w, err)
		return
	}

	u, err := h.users.Register(r.Context(), req.Username, req.Password)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, newUserResponse(u))
}

func (h *handler) login(w http.ResponseWriter, r *http.Request) {
	var req credentialsRequest
	if err := decode(w, r, &req); err != nil {
		// same answer as a wrong password
		writeError(w, common.ErrInvalidCredentials)
		return
	}

	s, err := h.users.Login(r.Context(), req.Username, req.Password)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, loginResponse{
		AccessToken: s.AccessToken,
		TokenType:   tokenType,
		ExpiresAt:   s.ExpiresAt,
		User:        newUserResponse(s.User),
	})
}

func (h *handler) me(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, newUserResponse(userFrom(r.Context())))
}

// logout is advisory: tokens stay valid until they expire.
func (h *handler) logout(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, messageResponse{Message: "logged out; discard the access token"})
}
