package db

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"

	"usergraph/internal/app/user"
)

// MemoryStore keeps users in a process-local map. Check and insert happen under one lock.
type MemoryStore struct {
	mu    sync.RWMutex
	users map[string]user.User
}

// NewMemoryStore returns an empty store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{users: make(map[string]user.User)}
}

func (s *MemoryStore) FindByUsername(_ context.Context, username string) (*user.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	u, ok := s.users[username]
	if !ok {
		return nil, nil
	}
	return &u, nil
}

func (s *MemoryStore) Create(_ context.Context, nu user.NewUser) (*user.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.users[nu.Username]; ok {
		return nil, fmt.Errorf("insert user %q: %w", nu.Username, user.ErrUsernameTaken)
	}

	u := user.User{
		ID:           uuid.NewString(),
		Username:     nu.Username,
		Name:         nu.Name,
		PasswordHash: nu.PasswordHash,
		CreatedAt:    time.Now().UTC(),
	}
	s.users[nu.Username] = u
	return &u, nil
}

func (s *MemoryStore) Ping(context.Context) error { return nil }

func (s *MemoryStore) Close() error { return nil }
