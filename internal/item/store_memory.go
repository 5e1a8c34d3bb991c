package item

import (
	"context"
	"sort"
	"sync"
	"time"

	id "curio/pkg/domain"
	"curio/pkg/platform/sentinel"
)

// InMemoryStore keeps items in a map; used in development and tests.
type InMemoryStore struct {
	mu     sync.RWMutex
	nextID int64
	items  map[id.ItemID]*Item
	now    func() time.Time
}

func NewInMemoryStore() *InMemoryStore {
	return &InMemoryStore{
		items: make(map[id.ItemID]*Item),
		now:   time.Now,
	}
}

func copyItem(i *Item) *Item {
	copied := *i
	copied.TagIDs = append([]id.TagID(nil), i.TagIDs...)
	if i.CityID != nil {
		cityID := *i.CityID
		copied.CityID = &cityID
	}
	return &copied
}

func (s *InMemoryStore) Create(_ context.Context, i *Item) (*Item, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.nextID++
	created := copyItem(i)
	created.ID = id.ItemID(s.nextID)
	created.CreatedAt = s.now().UTC()
	if created.TagIDs == nil {
		created.TagIDs = []id.TagID{}
	}
	s.items[created.ID] = created

	return copyItem(created), nil
}

func (s *InMemoryStore) GetByID(_ context.Context, itemID id.ItemID) (*Item, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	i, ok := s.items[itemID]
	if !ok {
		return nil, sentinel.ErrNotFound
	}
	return copyItem(i), nil
}

func (s *InMemoryStore) List(_ context.Context) ([]*Item, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	result := make([]*Item, 0, len(s.items))
	for _, i := range s.items {
		result = append(result, copyItem(i))
	}
	sort.Slice(result, func(i, j int) bool { return result[i].ID < result[j].ID })
	return result, nil
}

func (s *InMemoryStore) Update(_ context.Context, i *Item) (*Item, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	existing, ok := s.items[i.ID]
	if !ok {
		return nil, sentinel.ErrNotFound
	}

	updated := copyItem(i)
	updated.CreatedAt = existing.CreatedAt
	if updated.TagIDs == nil {
		updated.TagIDs = []id.TagID{}
	}
	s.items[i.ID] = updated

	return copyItem(updated), nil
}

func (s *InMemoryStore) Delete(_ context.Context, itemID id.ItemID) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.items[itemID]; !ok {
		return sentinel.ErrNotFound
	}
	delete(s.items, itemID)
	return nil
}

func (s *InMemoryStore) CountByCategory(_ context.Context, categoryID id.CategoryID) (int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	count := 0
	for _, i := range s.items {
		if i.CategoryID == categoryID {
			count++
		}
	}
	return count, nil
}

func (s *InMemoryStore) CountByCity(_ context.Context, cityID id.CityID) (int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	count := 0
	for _, i := range s.items {
		if i.CityID != nil && *i.CityID == cityID {
			count++
		}
	}
	return count, nil
}
