package category

import (
	"context"
	"sort"
	"strings"
	"sync"

	id "curio/pkg/domain"
	"curio/pkg/platform/sentinel"
)

type InMemoryStore struct {
	mu         sync.RWMutex
	nextID     int64
	categories map[id.CategoryID]*Category
}

func NewInMemoryStore() *InMemoryStore {
	return &InMemoryStore{categories: make(map[id.CategoryID]*Category)}
}

func (s *InMemoryStore) Create(_ context.Context, c *Category) (*Category, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.nameTaken(c.Name, 0) {
		return nil, sentinel.ErrConflict
	}

	s.nextID++
	created := *c
	created.ID = id.CategoryID(s.nextID)
	s.categories[created.ID] = &created

	result := created
	return &result, nil
}

func (s *InMemoryStore) GetByID(_ context.Context, categoryID id.CategoryID) (*Category, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	c, ok := s.categories[categoryID]
	if !ok {
		return nil, sentinel.ErrNotFound
	}
	result := *c
	return &result, nil
}

func (s *InMemoryStore) List(_ context.Context) ([]*Category, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	result := make([]*Category, 0, len(s.categories))
	for _, c := range s.categories {
		copied := *c
		result = append(result, &copied)
	}
	sort.Slice(result, func(i, j int) bool { return result[i].Name < result[j].Name })
	return result, nil
}

func (s *InMemoryStore) Update(_ context.Context, c *Category) (*Category, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.categories[c.ID]; !ok {
		return nil, sentinel.ErrNotFound
	}
	if s.nameTaken(c.Name, c.ID) {
		return nil, sentinel.ErrConflict
	}

	updated := *c
	s.categories[c.ID] = &updated

	result := updated
	return &result, nil
}

func (s *InMemoryStore) Delete(_ context.Context, categoryID id.CategoryID) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.categories[categoryID]; !ok {
		return sentinel.ErrNotFound
	}
	delete(s.categories, categoryID)
	return nil
}

func (s *InMemoryStore) nameTaken(name string, exclude id.CategoryID) bool {
	for _, existing := range s.categories {
		if existing.ID != exclude && strings.EqualFold(existing.Name, name) {
			return true
		}
	}
	return false
}
