package user

import (
	"context"
	"strings"
	"sync"
	"time"

	id "curio/pkg/domain"
	"curio/pkg/platform/sentinel"
)

// InMemoryStore keeps users in a map; used in development and tests.
type InMemoryStore struct {
	mu     sync.RWMutex
	nextID int64
	users  map[id.UserID]*User
}

func NewInMemoryStore() *InMemoryStore {
	return &InMemoryStore{users: make(map[id.UserID]*User)}
}

func (s *InMemoryStore) Create(_ context.Context, u *User) (*User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, existing := range s.users {
		if strings.EqualFold(existing.Email, u.Email) {
			return nil, sentinel.ErrConflict
		}
	}

	s.nextID++
	created := *u
	created.ID = id.UserID(s.nextID)
	created.CreatedAt = time.Now().UTC()
	s.users[created.ID] = &created

	result := created
	return &result, nil
}

func (s *InMemoryStore) GetByID(_ context.Context, userID id.UserID) (*User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	u, ok := s.users[userID]
	if !ok {
		return nil, sentinel.ErrNotFound
	}
	result := *u
	return &result, nil
}

func (s *InMemoryStore) FindByEmail(_ context.Context, email string) (*User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, u := range s.users {
		if strings.EqualFold(u.Email, email) {
			result := *u
			return &result, nil
		}
	}
	return nil, sentinel.ErrNotFound
}
