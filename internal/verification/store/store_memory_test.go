package store

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"curio/internal/verification"
	"curio/internal/verification/policy"
	id "curio/pkg/domain"
	"curio/pkg/platform/sentinel"
)

func Test_Memory_Create(t *testing.T) {
	t.Run("assigns ids monotonically", func(t *testing.T) {
		m := NewMemory()

		first, err := m.Create(context.Background(), &verification.Record{UserID: 1, ItemID: 1})
		require.NoError(t, err)
		second, err := m.Create(context.Background(), &verification.Record{UserID: 2, ItemID: 1})
		require.NoError(t, err)

		assert.Less(t, first.ID, second.ID)
		assert.False(t, first.CreatedAt.IsZero())
	})

	t.Run("same user item and day conflicts", func(t *testing.T) {
		m := NewMemory()

		_, err := m.Create(context.Background(), &verification.Record{UserID: 1, ItemID: 1})
		require.NoError(t, err)

		_, err = m.Create(context.Background(), &verification.Record{UserID: 1, ItemID: 1})
		assert.ErrorIs(t, err, sentinel.ErrConflict)
	})

	t.Run("yesterday's record does not conflict", func(t *testing.T) {
		yesterday := time.Now().UTC().Add(-24 * time.Hour)
		clock := yesterday
		m := NewMemory(WithNow(func() time.Time { return clock }))

		_, err := m.Create(context.Background(), &verification.Record{UserID: 1, ItemID: 1})
		require.NoError(t, err)

		clock = time.Now().UTC()
		_, err = m.Create(context.Background(), &verification.Record{UserID: 1, ItemID: 1})
		assert.NoError(t, err)
	})
}

func Test_Memory_ExistsForUserItemOnDay(t *testing.T) {
	now := time.Date(2025, 6, 15, 10, 0, 0, 0, time.UTC)
	m := NewMemory(WithNow(func() time.Time { return now }))

	_, err := m.Create(context.Background(), &verification.Record{UserID: 1, ItemID: 1})
	require.NoError(t, err)

	exists, err := m.ExistsForUserItemOnDay(context.Background(), 1, 1, policy.DayStart(now))
	require.NoError(t, err)
	assert.True(t, exists)

	exists, err = m.ExistsForUserItemOnDay(context.Background(), 2, 1, policy.DayStart(now))
	require.NoError(t, err)
	assert.False(t, exists)

	// A boundary one day later excludes the record.
	exists, err = m.ExistsForUserItemOnDay(context.Background(), 1, 1, policy.DayStart(now.Add(24*time.Hour)))
	require.NoError(t, err)
	assert.False(t, exists)
}

func Test_Memory_Lists(t *testing.T) {
	clock := time.Date(2025, 6, 15, 10, 0, 0, 0, time.UTC)
	m := NewMemory(WithNow(func() time.Time { return clock }))

	// Three users verify item 1 at increasing times, one verifies item 2.
	for _, userID := range []id.UserID{1, 2, 3} {
		_, err := m.Create(context.Background(), &verification.Record{UserID: userID, ItemID: 1})
		require.NoError(t, err)
		clock = clock.Add(time.Hour)
	}
	_, err := m.Create(context.Background(), &verification.Record{UserID: 1, ItemID: 2})
	require.NoError(t, err)

	t.Run("list by item is most recent first", func(t *testing.T) {
		records, err := m.ListByItem(context.Background(), 1, 0)
		require.NoError(t, err)
		require.Len(t, records, 3)
		for i := 1; i < len(records); i++ {
			assert.False(t, records[i-1].CreatedAt.Before(records[i].CreatedAt))
		}
		assert.Equal(t, id.UserID(3), records[0].UserID)
	})

	t.Run("limit truncates", func(t *testing.T) {
		records, err := m.ListByItem(context.Background(), 1, 2)
		require.NoError(t, err)
		assert.Len(t, records, 2)
	})

	t.Run("list by user spans items", func(t *testing.T) {
		records, err := m.ListByUser(context.Background(), 1, 0)
		require.NoError(t, err)
		require.Len(t, records, 2)
		assert.Equal(t, id.ItemID(2), records[0].ItemID)
	})

	t.Run("count by item", func(t *testing.T) {
		count, err := m.CountByItem(context.Background(), 1)
		require.NoError(t, err)
		assert.Equal(t, 3, count)

		count, err = m.CountByItem(context.Background(), 99)
		require.NoError(t, err)
		assert.Zero(t, count)
	})
}

func Test_Memory_GetByID(t *testing.T) {
	m := NewMemory()

	note := "still here"
	created, err := m.Create(context.Background(), &verification.Record{UserID: 1, ItemID: 1, Note: &note})
	require.NoError(t, err)

	got, err := m.GetByID(context.Background(), created.ID)
	require.NoError(t, err)
	require.NotNil(t, got.Note)
	assert.Equal(t, "still here", *got.Note)

	_, err = m.GetByID(context.Background(), id.VerificationID(9999))
	assert.ErrorIs(t, err, sentinel.ErrNotFound)
}
