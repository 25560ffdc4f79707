// Package memory provides an in-memory auth.UserStore with the same
// uniqueness semantics as the database-backed stores. It exists for tests
// and local development; nothing survives a restart.
package memory

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/brightpath/authkit/pkg/auth"
)

// Store is a mutex-guarded in-memory user store. Safe for concurrent use.
type Store struct {
	mu    sync.Mutex
	users map[string]*auth.User // keyed by id
}

// New creates an empty store.
func New() *Store {
	return &Store{users: make(map[string]*auth.User)}
}

func (s *Store) FindByEmailOrProvider(ctx context.Context, email, provider, providerAccountID string) (*auth.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, u := range s.users {
		if u.Email == email {
			return clone(u, true), nil
		}
		if provider != "" && providerAccountID != "" &&
			u.Provider == provider && u.ProviderAccountID == providerAccountID {
			return clone(u, true), nil
		}
	}
	return nil, auth.ErrUserNotFound
}

func (s *Store) FindByEmail(ctx context.Context, email string) (*auth.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, u := range s.users {
		if u.Email == email {
			return clone(u, true), nil
		}
	}
	return nil, auth.ErrUserNotFound
}

func (s *Store) FindByID(ctx context.Context, id string) (*auth.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	u, ok := s.users[id]
	if !ok {
		return nil, auth.ErrUserNotFound
	}
	// Hydration path: the hash stays inside the store.
	return clone(u, false), nil
}

func (s *Store) Create(ctx context.Context, user *auth.User) (*auth.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, u := range s.users {
		if u.Email == user.Email {
			return nil, auth.ErrEmailTaken
		}
	}

	now := time.Now()
	stored := clone(user, true)
	stored.ID = uuid.NewString()
	stored.CreatedAt = now
	stored.UpdatedAt = now
	s.users[stored.ID] = stored

	return clone(stored, true), nil
}

func (s *Store) Update(ctx context.Context, id string, params auth.UpdateUserParams) (*auth.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	u, ok := s.users[id]
	if !ok {
		return nil, auth.ErrUserNotFound
	}

	if params.Name != nil {
		u.Name = *params.Name
	}
	if params.Image != nil {
		u.Image = *params.Image
	}
	if params.Provider != nil {
		u.Provider = *params.Provider
	}
	if params.ProviderAccountID != nil {
		u.ProviderAccountID = *params.ProviderAccountID
	}
	u.UpdatedAt = time.Now()

	return clone(u, true), nil
}

func (s *Store) ValidID(id string) bool {
	return uuid.Validate(id) == nil
}

// Len reports the number of stored records; handy in tests.
func (s *Store) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.users)
}

func clone(u *auth.User, withHash bool) *auth.User {
	c := *u
	if withHash {
		c.PasswordHash = append([]byte(nil), u.PasswordHash...)
	} else {
		c.PasswordHash = nil
	}
	if u.EmailVerifiedAt != nil {
		t := *u.EmailVerifiedAt
		c.EmailVerifiedAt = &t
	}
	return &c
}

// Compile-time interface assertion
var _ auth.UserStore = (*Store)(nil)
