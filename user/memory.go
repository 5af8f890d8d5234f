package user

import (
	"context"
	"sync"
	"time"
)

// MemoryStore is a mutex-guarded in-memory Store, the reference
// implementation used in tests and when no database is configured.
type MemoryStore struct {
	mu    sync.RWMutex
	users map[string]*User
}

// NewMemoryStore creates an empty in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{users: make(map[string]*User)}
}

func (s *MemoryStore) GetByEmail(_ context.Context, email string) (*User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, u := range s.users {
		if u.DeletedAt == nil && u.Email == email {
			return clone(u), nil
		}
	}
	return nil, nil
}

func (s *MemoryStore) GetByUsername(_ context.Context, username string) (*User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, u := range s.users {
		if u.DeletedAt == nil && u.Username == username {
			return clone(u), nil
		}
	}
	return nil, nil
}

func (s *MemoryStore) GetByID(_ context.Context, id string) (*User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if u, ok := s.users[id]; ok && u.DeletedAt == nil {
		return clone(u), nil
	}
	return nil, nil
}

func (s *MemoryStore) Create(_ context.Context, u *User) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, existing := range s.users {
		if existing.DeletedAt != nil {
			continue
		}
		if existing.Email == u.Email || existing.Username == u.Username {
			return ErrDuplicate
		}
	}
	if _, ok := s.users[u.ID]; ok {
		return ErrDuplicate
	}
	s.users[u.ID] = clone(u)
	return nil
}

func (s *MemoryStore) UpdatePassword(_ context.Context, id, hashedPassword string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if u, ok := s.users[id]; ok && u.DeletedAt == nil {
		u.HashedPassword = hashedPassword
		u.UpdatedAt = time.Now().UTC()
	}
	return nil
}

// SoftDelete marks a user as deleted, hiding it from all lookups.
// Exposed for tests exercising stale-token behavior.
func (s *MemoryStore) SoftDelete(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if u, ok := s.users[id]; ok && u.DeletedAt == nil {
		now := time.Now().UTC()
		u.DeletedAt = &now
	}
}

func clone(u *User) *User {
	c := *u
	if u.FullName != nil {
		fn := *u.FullName
		c.FullName = &fn
	}
	if u.DeletedAt != nil {
		d := *u.DeletedAt
		c.DeletedAt = &d
	}
	return &c
}
