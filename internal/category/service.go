package category

import (
	"context"
	"errors"

	id "curio/pkg/domain"
	dErrors "curio/pkg/domain-errors"
	"curio/pkg/platform/sentinel"
)

// ItemCounter reports how many items reference a category; the service
// refuses deletion while any do.
type ItemCounter interface {
	CountByCategory(ctx context.Context, categoryID id.CategoryID) (int, error)
}

type Service struct {
	store Store
	items ItemCounter
}

func NewService(store Store, items ItemCounter) *Service {
	return &Service{store: store, items: items}
}

func (s *Service) Create(ctx context.Context, name, description string) (*Category, error) {
	if err := validateName(name); err != nil {
		return nil, err
	}
	created, err := s.store.Create(ctx, &Category{Name: name, Description: description})
	if errors.Is(err, sentinel.ErrConflict) {
		return nil, dErrors.New(dErrors.CodeConflict, "category name already exists")
	}
	if err != nil {
		return nil, dErrors.New(dErrors.CodeInternal, "failed to create category")
	}
	return created, nil
}

func (s *Service) Get(ctx context.Context, categoryID id.CategoryID) (*Category, error) {
	c, err := s.store.GetByID(ctx, categoryID)
	if errors.Is(err, sentinel.ErrNotFound) {
		return nil, dErrors.New(dErrors.CodeNotFound, "category "+categoryID.String()+" not found")
	}
	if err != nil {
		return nil, dErrors.New(dErrors.CodeInternal, "failed to load category")
	}
	return c, nil
}

func (s *Service) List(ctx context.Context) ([]*Category, error) {
	list, err := s.store.List(ctx)
	if err != nil {
		return nil, dErrors.New(dErrors.CodeInternal, "failed to list categories")
	}
	return list, nil
}

func (s *Service) Update(ctx context.Context, categoryID id.CategoryID, name, description string) (*Category, error) {
	if err := validateName(name); err != nil {
		return nil, err
	}
	updated, err := s.store.Update(ctx, &Category{ID: categoryID, Name: name, Description: description})
	if errors.Is(err, sentinel.ErrNotFound) {
		return nil, dErrors.New(dErrors.CodeNotFound, "category "+categoryID.String()+" not found")
	}
	if errors.Is(err, sentinel.ErrConflict) {
		return nil, dErrors.New(dErrors.CodeConflict, "category name already exists")
	}
	if err != nil {
		return nil, dErrors.New(dErrors.CodeInternal, "failed to update category")
	}
	return updated, nil
}

func (s *Service) Delete(ctx context.Context, categoryID id.CategoryID) error {
	count, err := s.items.CountByCategory(ctx, categoryID)
	if err != nil {
		return dErrors.New(dErrors.CodeInternal, "failed to check category references")
	}
	if count > 0 {
		return dErrors.New(dErrors.CodeConflict, "category still has items")
	}

	err = s.store.Delete(ctx, categoryID)
	if errors.Is(err, sentinel.ErrNotFound) {
		return dErrors.New(dErrors.CodeNotFound, "category "+categoryID.String()+" not found")
	}
	if errors.Is(err, sentinel.ErrReferenced) {
		return dErrors.New(dErrors.CodeConflict, "category still has items")
	}
	if err != nil {
		return dErrors.New(dErrors.CodeInternal, "failed to delete category")
	}
	return nil
}
