package savedbooks

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/bookwise/internal/common"
	"github.com/dmitrijs2005/bookwise/internal/dbx"
	"github.com/dmitrijs2005/bookwise/internal/server/models"
)

type PostgresRepository struct {
	db dbx.DBTX
}

func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) Create(ctx context.Context, b *models.SavedBook) (*models.SavedBook, error) {
	query :=
		`INSERT INTO saved_books (user_id, title, author, genre, brief_summary, short_description)
		 VALUES ($1, $2, $3, $4, $5, $6)
		 RETURNING id, saved_at
		 `

	err := r.db.QueryRowContext(ctx, query,
		b.UserID, b.Title, b.Author, b.Genre, b.BriefSummary, b.ShortDescription).Scan(&b.ID, &b.SavedAt)
	if err != nil {
		if dbx.IsUniqueViolation(err) {
			return nil, common.ErrAlreadySaved
		}
		return nil, fmt.Errorf("db error: %w", err)
	}
	return b, nil
}

func (r *PostgresRepository) ListByUser(ctx context.Context, userID string) ([]*models.SavedBook, error) {
	query :=
		`SELECT id, user_id, title, author, genre, brief_summary, short_description, saved_at
		 FROM saved_books
		 WHERE user_id = $1
		 ORDER BY saved_at DESC, id DESC
		 `

	rows, err := r.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	result := []*models.SavedBook{}
	for rows.Next() {
		b := &models.SavedBook{}
		if err := rows.Scan(&b.ID, &b.UserID, &b.Title, &b.Author, &b.Genre, &b.BriefSummary, &b.ShortDescription, &b.SavedAt); err != nil {
			return nil, fmt.Errorf("db error: %w", err)
		}
		result = append(result, b)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	return result, nil
}

func (r *PostgresRepository) FindByTitleAuthor(ctx context.Context, userID, title, author string) (*models.SavedBook, error) {
	query :=
		`SELECT id, user_id, title, author, genre, brief_summary, short_description, saved_at
		 FROM saved_books
		 WHERE user_id = $1 AND title = $2 AND author = $3
		 `

	b := &models.SavedBook{}
	err := r.db.QueryRowContext(ctx, query, userID, title, author).
		Scan(&b.ID, &b.UserID, &b.Title, &b.Author, &b.Genre, &b.BriefSummary, &b.ShortDescription, &b.SavedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}
	return b, nil
}

func (r *PostgresRepository) Delete(ctx context.Context, userID, id string) error {
	query := `DELETE FROM saved_books WHERE id = $1 AND user_id = $2`

	res, err := r.db.ExecContext(ctx, query, id, userID)
	if err != nil {
		if dbx.IsInvalidText(err) {
			return common.ErrorNotFound
		}
		return fmt.Errorf("db error: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	if n == 0 {
		return common.ErrorNotFound
	}
	return nil
}
