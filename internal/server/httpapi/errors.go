package httpapi

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/dmitrijs2005/bookwise/internal/common"
)

// ErrorResponse is the body of every non-2xx answer.
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message"`
}

type apiError struct {
	status  int
	code    string
	message string
}

var errorTable = []struct {
	err error
	api apiError
}{
	{common.ErrInvalidInput, apiError{http.StatusBadRequest, "invalid_request", "request is invalid"}},
	{common.ErrDuplicateUsername, apiError{http.StatusConflict, "duplicate_username", "username already taken"}},
	{common.ErrInvalidCredentials, apiError{http.StatusUnauthorized, "invalid_credentials", "incorrect username or password"}},
	{common.ErrTokenMalformed, apiError{http.StatusUnauthorized, "token_malformed", "access token is malformed"}},
	{common.ErrTokenBadSignature, apiError{http.StatusUnauthorized, "token_bad_signature", "access token signature is invalid"}},
	{common.ErrTokenExpired, apiError{http.StatusUnauthorized, "token_expired", "access token has expired"}},
	{common.ErrUnauthenticated, apiError{http.StatusUnauthorized, "unauthenticated", "authentication required"}},
	{common.ErrUnknownSubject, apiError{http.StatusUnauthorized, "unknown_subject", "token subject no longer exists"}},
	{common.ErrInvalidQuery, apiError{http.StatusBadRequest, "invalid_query", "query is empty or invalid"}},
	{common.ErrModelUnavailable, apiError{http.StatusServiceUnavailable, "model_unavailable", "recommendation model is unavailable"}},
	{common.ErrMalformedModelOutput, apiError{http.StatusBadGateway, "malformed_model_output", "recommendation model returned an invalid answer"}},
	{common.ErrorNotFound, apiError{http.StatusNotFound, "not_found", "resource not found"}},
	{common.ErrAlreadySaved, apiError{http.StatusConflict, "already_saved", "book already saved"}},
}

var internalError = apiError{http.StatusInternalServerError, "internal_error", "internal server error"}

func classify(err error) apiError {
	for _, e := range errorTable {
		if errors.Is(err, e.err) {
			return e.api
		}
	}
	return internalError
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, err error) {
	e := classify(err)
	writeJSON(w, e.status, ErrorResponse{Error: e.code, Message: e.message})
}
