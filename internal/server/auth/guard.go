package auth

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/dmitrijs2005/bookwise/internal/common"
	"github.com/dmitrijs2005/bookwise/internal/server/models"
)

// UserLookup resolves a username to its stored identity. It returns
// common.ErrorNotFound when no such user exists.
type UserLookup interface {
	GetUserByLogin(ctx context.Context, login string) (*models.User, error)
}

// Guard turns a raw bearer credential into a resolved user.
type Guard struct {
	tokens  *TokenService
	users   UserLookup
	timeout time.Duration
	now     func() time.Time
}

func NewGuard(tokens *TokenService, users UserLookup, lookupTimeout time.Duration) *Guard {
	return &Guard{tokens: tokens, users: users, timeout: lookupTimeout, now: time.Now}
}

// Authorize validates raw and resolves its subject. It returns either a
// non-nil user or one of ErrUnauthenticated, ErrTokenMalformed,
// ErrTokenBadSignature, ErrTokenExpired, ErrUnknownSubject, ErrorInternal.
func (g *Guard) Authorize(ctx context.Context, raw string) (*models.User, error) {
	if raw == "" {
		return nil, common.ErrUnauthenticated
	}

	subject, err := g.tokens.Validate(raw, g.now())
	if err != nil {
		return nil, err
	}

	if g.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, g.timeout)
		defer cancel()
	}

	user, err := g.users.GetUserByLogin(ctx, subject)
	switch {
	case errors.Is(err, common.ErrorNotFound):
		return nil, common.ErrUnknownSubject
	case err != nil:
		return nil, common.ErrorInternal
	case user == nil:
		return nil, common.ErrUnknownSubject
	}
	return user, nil
}

// BearerToken extracts the credential from an Authorization header value.
// It returns "" when the header is absent or uses another scheme.
func BearerToken(header string) string {
	scheme, token, ok := strings.Cut(strings.TrimSpace(header), " ")
	if !ok || !strings.EqualFold(scheme, common.BearerScheme) {
		return ""
	}
	return strings.TrimSpace(token)
}
