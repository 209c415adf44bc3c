package savedbooks

import (
	"context"
	"sync"
	"time"

	"github.com/dmitrijs2005/bookwise/internal/common"
	"github.com/dmitrijs2005/bookwise/internal/server/models"
	"github.com/google/uuid"
)

// MemoryRepository keeps saved books in insertion order.
type MemoryRepository struct {
	mu    sync.RWMutex
	books []models.SavedBook
	now   func() time.Time
}

func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{now: time.Now}
}

func (r *MemoryRepository) Create(ctx context.Context, b *models.SavedBook) (*models.SavedBook, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, existing := range r.books {
		if existing.UserID == b.UserID && existing.Title == b.Title && existing.Author == b.Author {
			return nil, common.ErrAlreadySaved
		}
	}

	b.ID = uuid.NewString()
	b.SavedAt = r.now().UTC()
	r.books = append(r.books, *b)
	return b, nil
}

// ListByUser returns newest first; equal timestamps keep reverse insertion
// order.
func (r *MemoryRepository) ListByUser(ctx context.Context, userID string) ([]*models.SavedBook, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	result := []*models.SavedBook{}
	for i := len(r.books) - 1; i >= 0; i-- {
		if r.books[i].UserID == userID {
			b := r.books[i]
			result = append(result, &b)
		}
	}
	return result, nil
}

func (r *MemoryRepository) FindByTitleAuthor(ctx context.Context, userID, title, author string) (*models.SavedBook, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, b := range r.books {
		if b.UserID == userID && b.Title == title && b.Author == author {
			return &b, nil
		}
	}
	return nil, common.ErrorNotFound
}

func (r *MemoryRepository) Delete(ctx context.Context, userID, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for i, b := range r.books {
		if b.ID == id && b.UserID == userID {
			r.books = append(r.books[:i], r.books[i+1:]...)
			return nil
		}
	}
	return common.ErrorNotFound
}
