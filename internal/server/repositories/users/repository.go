// Package users is the user directory: a keyed store of identities and
// their password digests.
package users

import (
	"context"

	"github.com/dmitrijs2005/bookwise/internal/server/models"
)

// Repository stores users. Create fails with common.ErrDuplicateUsername
// when the username is taken and never overwrites; GetUserByLogin returns
// common.ErrorNotFound for unknown names. Usernames are case-sensitive.
type Repository interface {
	Create(ctx context.Context, user *models.User) (*models.User, error)
	GetUserByLogin(ctx context.Context, login string) (*models.User, error)
}
