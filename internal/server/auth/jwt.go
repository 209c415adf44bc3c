package auth

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
	"errors"
	"strings"
	"time"

	"github.com/dmitrijs2005/bookwise/internal/common"
	"github.com/golang-jwt/jwt/v5"
)

var tokenEncoding = base64.RawURLEncoding.Strict()

// TokenService issues and validates HS256 access tokens. The secret is
// injected once at construction and never leaves the service.
type TokenService struct {
	secret []byte
	ttl    time.Duration
}

func NewTokenService(secret []byte, ttl time.Duration) *TokenService {
	key := make([]byte, len(secret))
	copy(key, secret)
	return &TokenService{secret: key, ttl: ttl}
}

// TTL is the lifetime of issued tokens.
func (s *TokenService) TTL() time.Duration {
	return s.ttl
}

// Issue signs a token for subject valid from now until now+TTL.
func (s *TokenService) Issue(subject string, now time.Time) (string, time.Time, error) {
	expiresAt := now.Add(s.ttl)
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{
		Subject:   subject,
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(expiresAt),
	})

	signed, err := token.SignedString(s.secret)
	if err != nil {
		return "", time.Time{}, err
	}
	return signed, expiresAt.Truncate(time.Second), nil
}

// Validate returns the subject of token if its signature is intact and
// now is strictly before its expiry. The MAC over everything before the
// last dot is checked before the token is parsed any further, so a token
// altered in any byte is ErrTokenBadSignature, never expired or malformed.
func (s *TokenService) Validate(token string, now time.Time) (string, error) {
	dot := strings.LastIndexByte(token, '.')
	if dot <= 0 {
		return "", common.ErrTokenMalformed
	}
	if !s.signatureValid(token[:dot], token[dot+1:]) {
		return "", common.ErrTokenBadSignature
	}

	claims := &jwt.RegisteredClaims{}
	_, err := jwt.ParseWithClaims(token, claims,
		func(t *jwt.Token) (any, error) { return s.secret, nil },
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithTimeFunc(func() time.Time { return now }),
		jwt.WithExpirationRequired(),
		jwt.WithStrictDecoding(),
	)
	switch {
	case err == nil:
	case errors.Is(err, jwt.ErrTokenExpired):
		return "", common.ErrTokenExpired
	case errors.Is(err, jwt.ErrTokenSignatureInvalid), errors.Is(err, jwt.ErrTokenUnverifiable):
		return "", common.ErrTokenBadSignature
	default:
		return "", common.ErrTokenMalformed
	}

	// jwt accepts now == exp; tokens are valid only while now < exp
	if !now.Before(claims.ExpiresAt.Time) {
		return "", common.ErrTokenExpired
	}
	if claims.Subject == "" {
		return "", common.ErrTokenMalformed
	}
	return claims.Subject, nil
}

// signatureValid recomputes the HS256 MAC of signingInput. A token whose
// header names another algorithm fails here too, since its MAC differs.
func (s *TokenService) signatureValid(signingInput, signature string) bool {
	got, err := tokenEncoding.DecodeString(signature)
	if err != nil {
		return false
	}
	mac := hmac.New(sha256.New, s.secret)
	mac.Write([]byte(signingInput))
	return hmac.Equal(got, mac.Sum(nil))
}
