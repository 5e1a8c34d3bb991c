package item

import (
	"context"
	"errors"

	"curio/internal/category"
	"curio/internal/city"
	"curio/internal/platform/metrics"
	"curio/internal/tag"
	id "curio/pkg/domain"
	dErrors "curio/pkg/domain-errors"
	"curio/pkg/platform/sentinel"
)

// Directories resolve references in item payloads. The sibling package
// stores satisfy them.
type (
	CategoryDirectory interface {
		GetByID(ctx context.Context, categoryID id.CategoryID) (*category.Category, error)
	}
	CityDirectory interface {
		GetByID(ctx context.Context, cityID id.CityID) (*city.City, error)
	}
	TagDirectory interface {
		GetByID(ctx context.Context, tagID id.TagID) (*tag.Tag, error)
	}
)

// VerificationCounter reports how many verification records an item has;
// the service refuses deletion while any exist.
type VerificationCounter interface {
	CountByItem(ctx context.Context, itemID id.ItemID) (int, error)
}

type Service struct {
	store         Store
	categories    CategoryDirectory
	cities        CityDirectory
	tags          TagDirectory
	verifications VerificationCounter
	metrics       *metrics.Metrics
}

func NewService(
	store Store,
	categories CategoryDirectory,
	cities CityDirectory,
	tags TagDirectory,
	verifications VerificationCounter,
	m *metrics.Metrics,
) *Service {
	return &Service{
		store:         store,
		categories:    categories,
		cities:        cities,
		tags:          tags,
		verifications: verifications,
		metrics:       m,
	}
}

// checkReferences verifies that the category, city and tags named in a
// payload all exist before the item row is written.
func (s *Service) checkReferences(ctx context.Context, categoryID id.CategoryID, cityID *id.CityID, tagIDs []id.TagID) error {
	if _, err := s.categories.GetByID(ctx, categoryID); err != nil {
		if errors.Is(err, sentinel.ErrNotFound) {
			return dErrors.New(dErrors.CodeInvalidInput, "category "+categoryID.String()+" does not exist")
		}
		return dErrors.New(dErrors.CodeInternal, "failed to check category reference")
	}

	if cityID != nil {
		if _, err := s.cities.GetByID(ctx, *cityID); err != nil {
			if errors.Is(err, sentinel.ErrNotFound) {
				return dErrors.New(dErrors.CodeInvalidInput, "city "+cityID.String()+" does not exist")
			}
			return dErrors.New(dErrors.CodeInternal, "failed to check city reference")
		}
	}

	for _, tagID := range tagIDs {
		if _, err := s.tags.GetByID(ctx, tagID); err != nil {
			if errors.Is(err, sentinel.ErrNotFound) {
				return dErrors.New(dErrors.CodeInvalidInput, "tag "+tagID.String()+" does not exist")
			}
			return dErrors.New(dErrors.CodeInternal, "failed to check tag reference")
		}
	}
	return nil
}

func (s *Service) Create(ctx context.Context, name, description string, categoryID id.CategoryID, cityID *id.CityID, tagIDs []id.TagID) (*Item, error) {
	if err := validate(name, description); err != nil {
		return nil, err
	}
	tagIDs = dedupeTags(tagIDs)
	if err := s.checkReferences(ctx, categoryID, cityID, tagIDs); err != nil {
		return nil, err
	}

	created, err := s.store.Create(ctx, &Item{
		Name:        name,
		Description: description,
		CategoryID:  categoryID,
		CityID:      cityID,
		TagIDs:      tagIDs,
	})
	if err != nil {
		return nil, dErrors.New(dErrors.CodeInternal, "failed to create item")
	}

	s.metrics.IncrementItemsCreated()
	return created, nil
}

func (s *Service) Get(ctx context.Context, itemID id.ItemID) (*Item, error) {
	i, err := s.store.GetByID(ctx, itemID)
	if errors.Is(err, sentinel.ErrNotFound) {
		return nil, dErrors.New(dErrors.CodeNotFound, "item "+itemID.String()+" not found")
	}
	if err != nil {
		return nil, dErrors.New(dErrors.CodeInternal, "failed to load item")
	}
	return i, nil
}

func (s *Service) List(ctx context.Context) ([]*Item, error) {
	list, err := s.store.List(ctx)
	if err != nil {
		return nil, dErrors.New(dErrors.CodeInternal, "failed to list items")
	}
	return list, nil
}

func (s *Service) Update(ctx context.Context, itemID id.ItemID, name, description string, categoryID id.CategoryID, cityID *id.CityID, tagIDs []id.TagID) (*Item, error) {
	if err := validate(name, description); err != nil {
		return nil, err
	}
	tagIDs = dedupeTags(tagIDs)
	if err := s.checkReferences(ctx, categoryID, cityID, tagIDs); err != nil {
		return nil, err
	}

	updated, err := s.store.Update(ctx, &Item{
		ID:          itemID,
		Name:        name,
		Description: description,
		CategoryID:  categoryID,
		CityID:      cityID,
		TagIDs:      tagIDs,
	})
	if errors.Is(err, sentinel.ErrNotFound) {
		return nil, dErrors.New(dErrors.CodeNotFound, "item "+itemID.String()+" not found")
	}
	if err != nil {
		return nil, dErrors.New(dErrors.CodeInternal, "failed to update item")
	}
	return updated, nil
}

func (s *Service) Delete(ctx context.Context, itemID id.ItemID) error {
	count, err := s.verifications.CountByItem(ctx, itemID)
	if err != nil {
		return dErrors.New(dErrors.CodeInternal, "failed to check item references")
	}
	if count > 0 {
		return dErrors.New(dErrors.CodeConflict, "item has verification records")
	}

	err = s.store.Delete(ctx, itemID)
	if errors.Is(err, sentinel.ErrNotFound) {
		return dErrors.New(dErrors.CodeNotFound, "item "+itemID.String()+" not found")
	}
	if errors.Is(err, sentinel.ErrReferenced) {
		return dErrors.New(dErrors.CodeConflict, "item has verification records")
	}
	if err != nil {
		return dErrors.New(dErrors.CodeInternal, "failed to delete item")
	}
	return nil
}
