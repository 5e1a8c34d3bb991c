package city

import (
	"context"
	"sort"
	"strings"
	"sync"

	id "curio/pkg/domain"
	"curio/pkg/platform/sentinel"
)

// InMemoryStore keeps cities in a map; used in development and tests.
type InMemoryStore struct {
	mu     sync.RWMutex
	nextID int64
	cities map[id.CityID]*City
}

func NewInMemoryStore() *InMemoryStore {
	return &InMemoryStore{cities: make(map[id.CityID]*City)}
}

func (s *InMemoryStore) nameTaken(name string, exclude id.CityID) bool {
	for _, c := range s.cities {
		if c.ID != exclude && strings.EqualFold(c.Name, name) {
			return true
		}
	}
	return false
}

func (s *InMemoryStore) Create(_ context.Context, c *City) (*City, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.nameTaken(c.Name, 0) {
		return nil, sentinel.ErrConflict
	}

	s.nextID++
	created := *c
	created.ID = id.CityID(s.nextID)
	created.Active = false
	s.cities[created.ID] = &created

	result := created
	return &result, nil
}

func (s *InMemoryStore) GetByID(_ context.Context, cityID id.CityID) (*City, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	c, ok := s.cities[cityID]
	if !ok {
		return nil, sentinel.ErrNotFound
	}
	result := *c
	return &result, nil
}

func (s *InMemoryStore) List(_ context.Context) ([]*City, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	result := make([]*City, 0, len(s.cities))
	for _, c := range s.cities {
		copied := *c
		result = append(result, &copied)
	}
	sort.Slice(result, func(i, j int) bool { return result[i].Name < result[j].Name })
	return result, nil
}

func (s *InMemoryStore) Update(_ context.Context, c *City) (*City, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	existing, ok := s.cities[c.ID]
	if !ok {
		return nil, sentinel.ErrNotFound
	}
	if s.nameTaken(c.Name, c.ID) {
		return nil, sentinel.ErrConflict
	}

	existing.Name = c.Name
	result := *existing
	return &result, nil
}

func (s *InMemoryStore) Delete(_ context.Context, cityID id.CityID) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.cities[cityID]; !ok {
		return sentinel.ErrNotFound
	}
	delete(s.cities, cityID)
	return nil
}

func (s *InMemoryStore) SetActive(_ context.Context, cityID id.CityID) (*City, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	target, ok := s.cities[cityID]
	if !ok {
		return nil, sentinel.ErrNotFound
	}

	for _, c := range s.cities {
		c.Active = false
	}
	target.Active = true

	result := *target
	return &result, nil
}

func (s *InMemoryStore) GetActive(_ context.Context) (*City, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, c := range s.cities {
		if c.Active {
			result := *c
			return &result, nil
		}
	}
	return nil, sentinel.ErrNotFound
}
