package repomanager

import (
	"context"
	"database/sql"
	"sync"

	"github.com/dmitrijs2005/bookwise/internal/dbx"
	"github.com/dmitrijs2005/bookwise/internal/server/repositories/savedbooks"
	"github.com/dmitrijs2005/bookwise/internal/server/repositories/users"
)

// MemoryRepositoryManager hands out process-local stores and ignores the
// database handle. WithTx serialises callers; it cannot roll back.
type MemoryRepositoryManager struct {
	users      *users.MemoryRepository
	savedBooks *savedbooks.MemoryRepository
	txMu       sync.Mutex
}

func NewMemoryRepositoryManager() *MemoryRepositoryManager {
	return &MemoryRepositoryManager{
		users:      users.NewMemoryRepository(),
		savedBooks: savedbooks.NewMemoryRepository(),
	}
}

func (m *MemoryRepositoryManager) RunMigrations(context.Context, *sql.DB) error { return nil }

func (m *MemoryRepositoryManager) WithTx(ctx context.Context, _ *sql.DB, fn func(ctx context.Context, tx dbx.DBTX) error) error {
	m.txMu.Lock()
	defer m.txMu.Unlock()
	return fn(ctx, nil)
}

func (m *MemoryRepositoryManager) Users(dbx.DBTX) users.Repository { return m.users }

func (m *MemoryRepositoryManager) SavedBooks(dbx.DBTX) savedbooks.Repository { return m.savedBooks }

// UserStore exposes the concrete user store (tests delete accounts through it).
func (m *MemoryRepositoryManager) UserStore() *users.MemoryRepository { return m.users }
