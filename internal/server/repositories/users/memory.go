package users

import (
	"context"
	"sync"
	"time"

	"github.com/dmitrijs2005/bookwise/internal/common"
	"github.com/dmitrijs2005/bookwise/internal/server/models"
	"github.com/google/uuid"
)

// MemoryRepository keeps users in a map; used when no database is
// configured and in tests.
type MemoryRepository struct {
	mu    sync.RWMutex
	users map[string]models.User
	now   func() time.Time
}

func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{users: make(map[string]models.User), now: time.Now}
}

func (r *MemoryRepository) Create(ctx context.Context, user *models.User) (*models.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, taken := r.users[user.UserName]; taken {
		return nil, common.ErrDuplicateUsername
	}

	user.ID = uuid.NewString()
	user.CreatedAt = r.now().UTC()
	r.users[user.UserName] = *user

	return user, nil
}

func (r *MemoryRepository) GetUserByLogin(ctx context.Context, login string) (*models.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	u, ok := r.users[login]
	if !ok {
		return nil, common.ErrorNotFound
	}
	return &u, nil
}

// Delete removes login; deleting an unknown user is a no-op.
func (r *MemoryRepository) Delete(ctx context.Context, login string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.users, login)
}
