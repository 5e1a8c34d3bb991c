package store

import (
	"context"
	"sort"
	"sync"
	"time"

	"curio/internal/verification"
	"curio/internal/verification/policy"
	id "curio/pkg/domain"
	"curio/pkg/platform/sentinel"
)

// Memory keeps verification records in a slice; used in development and
// tests. It enforces the same per-day uniqueness the postgres index does,
// under its own mutex.
type Memory struct {
	mu      sync.RWMutex
	nextID  int64
	records []*verification.Record
	now     func() time.Time
}

type MemoryOption func(*Memory)

// WithNow overrides the clock, letting tests backdate records.
func WithNow(now func() time.Time) MemoryOption {
	return func(m *Memory) { m.now = now }
}

func NewMemory(opts ...MemoryOption) *Memory {
	m := &Memory{now: time.Now}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

func copyRecord(r *verification.Record) *verification.Record {
	copied := *r
	if r.Note != nil {
		note := *r.Note
		copied.Note = &note
	}
	return &copied
}

func (m *Memory) Create(_ context.Context, r *verification.Record) (*verification.Record, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	createdAt := m.now().UTC()
	dayStart := policy.DayStart(createdAt)
	for _, existing := range m.records {
		if existing.UserID == r.UserID && existing.ItemID == r.ItemID && !existing.CreatedAt.Before(dayStart) {
			return nil, sentinel.ErrConflict
		}
	}

	m.nextID++
	created := copyRecord(r)
	created.ID = id.VerificationID(m.nextID)
	created.CreatedAt = createdAt
	m.records = append(m.records, created)

	return copyRecord(created), nil
}

func (m *Memory) GetByID(_ context.Context, verificationID id.VerificationID) (*verification.Record, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	for _, r := range m.records {
		if r.ID == verificationID {
			return copyRecord(r), nil
		}
	}
	return nil, sentinel.ErrNotFound
}

func (m *Memory) list(match func(*verification.Record) bool, limit int) []*verification.Record {
	var result []*verification.Record
	for _, r := range m.records {
		if match(r) {
			result = append(result, copyRecord(r))
		}
	}
	sort.Slice(result, func(i, j int) bool {
		if result[i].CreatedAt.Equal(result[j].CreatedAt) {
			return result[i].ID > result[j].ID
		}
		return result[i].CreatedAt.After(result[j].CreatedAt)
	})
	if limit > 0 && len(result) > limit {
		result = result[:limit]
	}
	return result
}

func (m *Memory) ListByItem(_ context.Context, itemID id.ItemID, limit int) ([]*verification.Record, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	return m.list(func(r *verification.Record) bool { return r.ItemID == itemID }, limit), nil
}

func (m *Memory) ListByUser(_ context.Context, userID id.UserID, limit int) ([]*verification.Record, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	return m.list(func(r *verification.Record) bool { return r.UserID == userID }, limit), nil
}

func (m *Memory) ExistsForUserItemOnDay(_ context.Context, userID id.UserID, itemID id.ItemID, dayStart time.Time) (bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	for _, r := range m.records {
		if r.UserID == userID && r.ItemID == itemID && !r.CreatedAt.Before(dayStart) {
			return true, nil
		}
	}
	return false, nil
}

func (m *Memory) CountByItem(_ context.Context, itemID id.ItemID) (int, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	count := 0
	for _, r := range m.records {
		if r.ItemID == itemID {
			count++
		}
	}
	return count, nil
}
