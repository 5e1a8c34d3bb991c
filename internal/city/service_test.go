package city

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	id "curio/pkg/domain"
	dErrors "curio/pkg/domain-errors"
)

type stubItemCounter struct {
	count int
}

func (s stubItemCounter) CountByCity(context.Context, id.CityID) (int, error) {
	return s.count, nil
}

func Test_Service_Activate(t *testing.T) {
	svc := NewService(NewInMemoryStore(), stubItemCounter{})

	lisbon, err := svc.Create(context.Background(), "Lisbon")
	require.NoError(t, err)
	porto, err := svc.Create(context.Background(), "Porto")
	require.NoError(t, err)

	t.Run("new cities start inactive", func(t *testing.T) {
		assert.False(t, lisbon.Active)

		_, err := svc.Current(context.Background())
		assert.True(t, dErrors.Is(err, dErrors.CodeNotFound))
	})

	t.Run("activating makes the city current", func(t *testing.T) {
		activated, err := svc.Activate(context.Background(), lisbon.ID)
		require.NoError(t, err)
		assert.True(t, activated.Active)

		current, err := svc.Current(context.Background())
		require.NoError(t, err)
		assert.Equal(t, lisbon.ID, current.ID)
	})

	t.Run("activating another city deactivates the previous one", func(t *testing.T) {
		_, err := svc.Activate(context.Background(), porto.ID)
		require.NoError(t, err)

		current, err := svc.Current(context.Background())
		require.NoError(t, err)
		assert.Equal(t, porto.ID, current.ID)

		previous, err := svc.Get(context.Background(), lisbon.ID)
		require.NoError(t, err)
		assert.False(t, previous.Active)
	})

	t.Run("unknown city is not found", func(t *testing.T) {
		_, err := svc.Activate(context.Background(), id.CityID(9999))
		assert.True(t, dErrors.Is(err, dErrors.CodeNotFound))
	})
}

func Test_Service_Delete(t *testing.T) {
	t.Run("refuses while items reference the city", func(t *testing.T) {
		svc := NewService(NewInMemoryStore(), stubItemCounter{count: 2})

		created, err := svc.Create(context.Background(), "Lisbon")
		require.NoError(t, err)

		err = svc.Delete(context.Background(), created.ID)
		assert.True(t, dErrors.Is(err, dErrors.CodeConflict))
	})

	t.Run("deletes when unreferenced", func(t *testing.T) {
		svc := NewService(NewInMemoryStore(), stubItemCounter{})

		created, err := svc.Create(context.Background(), "Lisbon")
		require.NoError(t, err)

		require.NoError(t, svc.Delete(context.Background(), created.ID))
	})
}

func Test_Service_Create(t *testing.T) {
	svc := NewService(NewInMemoryStore(), stubItemCounter{})

	t.Run("duplicate name conflicts", func(t *testing.T) {
		_, err := svc.Create(context.Background(), "Lisbon")
		require.NoError(t, err)

		_, err = svc.Create(context.Background(), "lisbon")
		assert.True(t, dErrors.Is(err, dErrors.CodeConflict))
	})

	t.Run("rejects empty name", func(t *testing.T) {
		_, err := svc.Create(context.Background(), "")
		assert.True(t, dErrors.Is(err, dErrors.CodeInvalidInput))
	})
}
