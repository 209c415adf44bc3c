package services

import (
	"bytes"
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"strings"
	"time"

	"github.com/dmitrijs2005/bookwise/internal/common"
	"github.com/dmitrijs2005/bookwise/internal/dbx"
	"github.com/dmitrijs2005/bookwise/internal/server/models"
	"github.com/dmitrijs2005/bookwise/internal/server/repositories/repomanager"
	"github.com/google/uuid"
)

const exportURLTTL = 15 * time.Minute

// Export describes an uploaded saved-books export.
type Export struct {
	Key string `json:"key"`
	URL string `json:"url"`
}

// SavedBookService manages the books a user keeps from recommendations.
type SavedBookService struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
	store       ObjectStore
	now         func() time.Time
}

func NewSavedBookService(db *sql.DB, m repomanager.RepositoryManager, store ObjectStore) *SavedBookService {
	return &SavedBookService{db: db, repomanager: m, store: store, now: time.Now}
}

// Save stores book for user. Saving the same title and author twice yields
// common.ErrAlreadySaved.
func (s *SavedBookService) Save(ctx context.Context, user *models.User, book models.Book) (*models.SavedBook, error) {
	if !complete(book) {
		return nil, common.ErrInvalidInput
	}

	var saved *models.SavedBook
	err := s.repomanager.WithTx(ctx, s.db, func(ctx context.Context, tx dbx.DBTX) error {
		repo := s.repomanager.SavedBooks(tx)

		_, err := repo.FindByTitleAuthor(ctx, user.ID, book.Title, book.Author)
		if err == nil {
			return common.ErrAlreadySaved
		}
		if !errors.Is(err, common.ErrorNotFound) {
			return err
		}

		saved, err = repo.Create(ctx, &models.SavedBook{UserID: user.ID, Book: book})
		return err
	})
	if err != nil {
		if errors.Is(err, common.ErrAlreadySaved) {
			return nil, common.ErrAlreadySaved
		}
		return nil, common.ErrorInternal
	}
	return saved, nil
}

// List returns user's saved books, newest first.
func (s *SavedBookService) List(ctx context.Context, user *models.User) ([]*models.SavedBook, error) {
	books, err := s.repomanager.SavedBooks(s.db).ListByUser(ctx, user.ID)
	if err != nil {
		return nil, common.ErrorInternal
	}
	return books, nil
}

// Delete removes a saved book of user. Ids that are not UUIDs cannot name a
// saved book and report common.ErrorNotFound.
func (s *SavedBookService) Delete(ctx context.Context, user *models.User, id string) error {
	if _, err := uuid.Parse(id); err != nil {
		return common.ErrorNotFound
	}
	err := s.repomanager.SavedBooks(s.db).Delete(ctx, user.ID, id)
	switch {
	case err == nil:
		return nil
	case errors.Is(err, common.ErrorNotFound):
		return common.ErrorNotFound
	default:
		return common.ErrorInternal
	}
}

// Check reports whether user already saved a book with this title and
// author, and its id if so.
func (s *SavedBookService) Check(ctx context.Context, user *models.User, title, author string) (bool, string, error) {
	b, err := s.repomanager.SavedBooks(s.db).FindByTitleAuthor(ctx, user.ID, title, author)
	switch {
	case err == nil:
		return true, b.ID, nil
	case errors.Is(err, common.ErrorNotFound):
		return false, "", nil
	default:
		return false, "", common.ErrorInternal
	}
}

// Export uploads user's saved books as a JSON document and returns a
// short-lived download URL.
func (s *SavedBookService) Export(ctx context.Context, user *models.User) (*Export, error) {
	books, err := s.List(ctx, user)
	if err != nil {
		return nil, err
	}

	body, err := json.MarshalIndent(books, "", "  ")
	if err != nil {
		return nil, common.ErrorInternal
	}

	key := ExportKey(user.ID, s.now())
	if err := s.store.Put(ctx, key, bytes.NewReader(body), "application/json"); err != nil {
		return nil, common.ErrorInternal
	}

	url, err := s.store.PresignGet(ctx, key, exportURLTTL)
	if err != nil {
		return nil, common.ErrorInternal
	}
	return &Export{Key: key, URL: url}, nil
}

func complete(b models.Book) bool {
	for _, v := range []string{b.Title, b.Author, b.Genre, b.BriefSummary, b.ShortDescription} {
		if strings.TrimSpace(v) == "" {
			return false
		}
	}
	return true
}
