// Package common defines shared constants and sentinel errors used across
// client and server layers of Bookwise. Callers should use errors.Is to
// match these values.
package common

import "errors"

var (
	// Repository-level errors.
	ErrorNotFound = errors.New("not found")

	// Service-level errors (generic/internal flow control).
	ErrorInternal   = errors.New("internal error")
	ErrInvalidInput = errors.New("invalid input")

	// Credential errors.
	ErrDuplicateUsername  = errors.New("username already taken")
	ErrInvalidCredentials = errors.New("incorrect username or password")

	// Token errors.
	ErrTokenMalformed    = errors.New("token malformed")
	ErrTokenBadSignature = errors.New("token signature invalid")
	ErrTokenExpired      = errors.New("token expired")

	// Access errors.
	ErrUnauthenticated = errors.New("not authenticated")
	ErrUnknownSubject  = errors.New("token subject not found")

	// Recommendation errors.
	ErrInvalidQuery         = errors.New("invalid query")
	ErrModelUnavailable     = errors.New("model unavailable")
	ErrMalformedModelOutput = errors.New("malformed model output")

	// Saved books.
	ErrAlreadySaved = errors.New("book already saved")
)
