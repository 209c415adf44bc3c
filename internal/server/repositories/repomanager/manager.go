// Package repomanager vends repository implementations bound to a database
// handle and runs schema migrations.
package repomanager

import (
	"context"
	"database/sql"

	"github.com/dmitrijs2005/bookwise/internal/dbx"
	"github.com/dmitrijs2005/bookwise/internal/server/repositories/savedbooks"
	"github.com/dmitrijs2005/bookwise/internal/server/repositories/users"
)

type RepositoryManager interface {
	RunMigrations(ctx context.Context, db *sql.DB) error
	WithTx(ctx context.Context, db *sql.DB, fn func(ctx context.Context, tx dbx.DBTX) error) error
	Users(db dbx.DBTX) users.Repository
	SavedBooks(db dbx.DBTX) savedbooks.Repository
}
