package item

import (
	"context"
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"curio/internal/category"
	"curio/internal/city"
	"curio/internal/platform/metrics"
	"curio/internal/tag"
	id "curio/pkg/domain"
	dErrors "curio/pkg/domain-errors"
)

type stubVerificationCounter struct {
	count int
}

func (s stubVerificationCounter) CountByItem(context.Context, id.ItemID) (int, error) {
	return s.count, nil
}

type fixture struct {
	svc        *Service
	categoryID id.CategoryID
	cityID     id.CityID
	tagID      id.TagID
}

func newFixture(t *testing.T, verifications VerificationCounter) *fixture {
	t.Helper()

	categories := category.NewInMemoryStore()
	cities := city.NewInMemoryStore()
	tags := tag.NewInMemoryStore()

	cat, err := categories.Create(context.Background(), &category.Category{Name: "Coins"})
	require.NoError(t, err)
	c, err := cities.Create(context.Background(), &city.City{Name: "Lisbon"})
	require.NoError(t, err)
	tg, err := tags.Create(context.Background(), &tag.Tag{Name: "rare"})
	require.NoError(t, err)

	if verifications == nil {
		verifications = stubVerificationCounter{}
	}

	return &fixture{
		svc: NewService(
			NewInMemoryStore(),
			categories, cities, tags,
			verifications,
			metrics.New(prometheus.NewRegistry()),
		),
		categoryID: cat.ID,
		cityID:     c.ID,
		tagID:      tg.ID,
	}
}

func Test_Service_Create(t *testing.T) {
	t.Run("creates with all references", func(t *testing.T) {
		f := newFixture(t, nil)

		created, err := f.svc.Create(context.Background(), "Escudo 1975", "silver", f.categoryID, &f.cityID, []id.TagID{f.tagID})
		require.NoError(t, err)
		assert.NotZero(t, created.ID)
		assert.Equal(t, f.categoryID, created.CategoryID)
		require.NotNil(t, created.CityID)
		assert.Equal(t, f.cityID, *created.CityID)
		assert.Equal(t, []id.TagID{f.tagID}, created.TagIDs)
		assert.False(t, created.CreatedAt.IsZero())
	})

	t.Run("city is optional", func(t *testing.T) {
		f := newFixture(t, nil)

		created, err := f.svc.Create(context.Background(), "Escudo 1975", "", f.categoryID, nil, nil)
		require.NoError(t, err)
		assert.Nil(t, created.CityID)
		assert.Empty(t, created.TagIDs)
	})

	t.Run("deduplicates repeated tags", func(t *testing.T) {
		f := newFixture(t, nil)

		created, err := f.svc.Create(context.Background(), "Escudo 1975", "", f.categoryID, nil, []id.TagID{f.tagID, f.tagID})
		require.NoError(t, err)
		assert.Equal(t, []id.TagID{f.tagID}, created.TagIDs)
	})

	t.Run("unknown category is rejected", func(t *testing.T) {
		f := newFixture(t, nil)

		_, err := f.svc.Create(context.Background(), "Escudo 1975", "", id.CategoryID(9999), nil, nil)
		assert.True(t, dErrors.Is(err, dErrors.CodeInvalidInput))
	})

	t.Run("unknown tag is rejected", func(t *testing.T) {
		f := newFixture(t, nil)

		_, err := f.svc.Create(context.Background(), "Escudo 1975", "", f.categoryID, nil, []id.TagID{9999})
		assert.True(t, dErrors.Is(err, dErrors.CodeInvalidInput))
	})

	t.Run("rejects oversized description", func(t *testing.T) {
		f := newFixture(t, nil)

		_, err := f.svc.Create(context.Background(), "Escudo 1975", strings.Repeat("a", 2001), f.categoryID, nil, nil)
		assert.True(t, dErrors.Is(err, dErrors.CodeInvalidInput))
	})
}

func Test_Service_Update(t *testing.T) {
	f := newFixture(t, nil)

	created, err := f.svc.Create(context.Background(), "Escudo 1975", "old", f.categoryID, &f.cityID, []id.TagID{f.tagID})
	require.NoError(t, err)

	t.Run("replaces fields and clears tags", func(t *testing.T) {
		updated, err := f.svc.Update(context.Background(), created.ID, "Escudo 1976", "new", f.categoryID, nil, nil)
		require.NoError(t, err)
		assert.Equal(t, "Escudo 1976", updated.Name)
		assert.Nil(t, updated.CityID)
		assert.Empty(t, updated.TagIDs)
		assert.Equal(t, created.CreatedAt, updated.CreatedAt)
	})

	t.Run("unknown item is not found", func(t *testing.T) {
		_, err := f.svc.Update(context.Background(), id.ItemID(9999), "Other", "", f.categoryID, nil, nil)
		assert.True(t, dErrors.Is(err, dErrors.CodeNotFound))
	})
}

func Test_Service_Delete(t *testing.T) {
	t.Run("refuses while verifications exist", func(t *testing.T) {
		f := newFixture(t, stubVerificationCounter{count: 1})

		created, err := f.svc.Create(context.Background(), "Escudo 1975", "", f.categoryID, nil, nil)
		require.NoError(t, err)

		err = f.svc.Delete(context.Background(), created.ID)
		assert.True(t, dErrors.Is(err, dErrors.CodeConflict))
	})

	t.Run("deletes when unverified", func(t *testing.T) {
		f := newFixture(t, nil)

		created, err := f.svc.Create(context.Background(), "Escudo 1975", "", f.categoryID, nil, nil)
		require.NoError(t, err)

		require.NoError(t, f.svc.Delete(context.Background(), created.ID))

		_, err = f.svc.Get(context.Background(), created.ID)
		assert.True(t, dErrors.Is(err, dErrors.CodeNotFound))
	})
}

func Test_Service_CountByCategory(t *testing.T) {
	f := newFixture(t, nil)

	for _, name := range []string{"Escudo 1974", "Escudo 1975", "Escudo 1976"} {
		_, err := f.svc.Create(context.Background(), name, "", f.categoryID, &f.cityID, nil)
		require.NoError(t, err)
	}

	store := f.svc.store
	byCategory, err := store.CountByCategory(context.Background(), f.categoryID)
	require.NoError(t, err)
	assert.Equal(t, 3, byCategory)

	byCity, err := store.CountByCity(context.Background(), f.cityID)
	require.NoError(t, err)
	assert.Equal(t, 3, byCity)
}
