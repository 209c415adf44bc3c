// Package savedbooks stores the books users keep from their
// recommendations.
package savedbooks

import (
	"context"

	"github.com/dmitrijs2005/bookwise/internal/server/models"
)

// Repository stores saved books per user. A user can hold a given
// (title, author) pair once; Create reports common.ErrAlreadySaved
// otherwise. Lookups and deletes scoped to another user's book return
// common.ErrorNotFound.
type Repository interface {
	Create(ctx context.Context, book *models.SavedBook) (*models.SavedBook, error)
	ListByUser(ctx context.Context, userID string) ([]*models.SavedBook, error)
	FindByTitleAuthor(ctx context.Context, userID, title, author string) (*models.SavedBook, error)
	Delete(ctx context.Context, userID, id string) error
}
