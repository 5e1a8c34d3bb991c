package tag

import (
	"context"
	"sort"
	"strings"
	"sync"

	id "curio/pkg/domain"
	"curio/pkg/platform/sentinel"
)

// InMemoryStore keeps tags in a map; used in development and tests.
type InMemoryStore struct {
	mu     sync.RWMutex
	nextID int64
	tags   map[id.TagID]*Tag
}

func NewInMemoryStore() *InMemoryStore {
	return &InMemoryStore{tags: make(map[id.TagID]*Tag)}
}

func (s *InMemoryStore) Create(_ context.Context, t *Tag) (*Tag, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, existing := range s.tags {
		if strings.EqualFold(existing.Name, t.Name) {
			return nil, sentinel.ErrConflict
		}
	}

	s.nextID++
	created := *t
	created.ID = id.TagID(s.nextID)
	s.tags[created.ID] = &created

	result := created
	return &result, nil
}

func (s *InMemoryStore) GetByID(_ context.Context, tagID id.TagID) (*Tag, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	t, ok := s.tags[tagID]
	if !ok {
		return nil, sentinel.ErrNotFound
	}
	result := *t
	return &result, nil
}

func (s *InMemoryStore) List(_ context.Context) ([]*Tag, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	result := make([]*Tag, 0, len(s.tags))
	for _, t := range s.tags {
		copied := *t
		result = append(result, &copied)
	}
	sort.Slice(result, func(i, j int) bool { return result[i].Name < result[j].Name })
	return result, nil
}

func (s *InMemoryStore) Delete(_ context.Context, tagID id.TagID) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.tags[tagID]; !ok {
		return sentinel.ErrNotFound
	}
	delete(s.tags, tagID)
	return nil
}
