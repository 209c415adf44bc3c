// Package services contains server-side business logic. This file
// implements UserService: registration and login with access tokens.
package services

import (
	"context"
	"database/sql"
	"errors"
	"strings"
	"time"

	"github.com/dmitrijs2005/bookwise/internal/common"
	"github.com/dmitrijs2005/bookwise/internal/server/auth"
	"github.com/dmitrijs2005/bookwise/internal/server/models"
	"github.com/dmitrijs2005/bookwise/internal/server/repositories/repomanager"
)

// Session is the result of a successful login.
type Session struct {
	AccessToken string
	ExpiresAt   time.Time
	User        *models.User
}

// UserService provides authentication-related operations:
//   - Register: create users with a bcrypt password digest
//   - Login: verify credentials and issue an access token
type UserService struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
	hasher      *auth.Hasher
	tokens      *auth.TokenService
	now         func() time.Time

	// dummyDigest is compared against on unknown usernames so both login
	// failures cost one bcrypt comparison.
	dummyDigest string
}

// NewUserService constructs a UserService. It hashes one random password up
// front for the unknown-user path.
func NewUserService(db *sql.DB, m repomanager.RepositoryManager, hasher *auth.Hasher, tokens *auth.TokenService) (*UserService, error) {
	random, err := common.MakeRandHexString(16)
	if err != nil {
		return nil, err
	}
	dummy, err := hasher.Hash(random)
	if err != nil {
		return nil, err
	}
	return &UserService{
		db:          db,
		repomanager: m,
		hasher:      hasher,
		tokens:      tokens,
		now:         time.Now,
		dummyDigest: dummy,
	}, nil
}

// Register creates a user. Only the password digest is stored.
func (s *UserService) Register(ctx context.Context, username, password string) (*models.User, error) {
	if strings.TrimSpace(username) == "" || password == "" {
		return nil, common.ErrInvalidInput
	}

	digest, err := s.hasher.Hash(password)
	if err != nil {
		if errors.Is(err, auth.ErrPasswordTooLong) {
			return nil, common.ErrInvalidInput
		}
		return nil, common.ErrorInternal
	}

	repo := s.repomanager.Users(s.db)
	u, err := repo.Create(ctx, &models.User{UserName: username, PasswordHash: digest})
	if err != nil {
		if errors.Is(err, common.ErrDuplicateUsername) {
			return nil, common.ErrDuplicateUsername
		}
		return nil, common.ErrorInternal
	}
	return u, nil
}

// Login verifies the password and issues an access token. Unknown users
// and wrong passwords both yield ErrInvalidCredentials.
func (s *UserService) Login(ctx context.Context, username, password string) (*Session, error) {
	repo := s.repomanager.Users(s.db)
	user, err := repo.GetUserByLogin(ctx, username)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			s.hasher.Verify(password, s.dummyDigest)
			return nil, common.ErrInvalidCredentials
		}
		return nil, common.ErrorInternal
	}

	if !s.hasher.Verify(password, user.PasswordHash) {
		return nil, common.ErrInvalidCredentials
	}

	token, expiresAt, err := s.tokens.Issue(user.UserName, s.now())
	if err != nil {
		return nil, common.ErrorInternal
	}
	return &Session{AccessToken: token, ExpiresAt: expiresAt, User: user}, nil
}
