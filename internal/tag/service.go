package tag

import (
	"context"
	"errors"

	id "curio/pkg/domain"
	dErrors "curio/pkg/domain-errors"
	"curio/pkg/platform/sentinel"
)

type Service struct {
	store Store
}

func NewService(store Store) *Service {
	return &Service{store: store}
}

func (s *Service) Create(ctx context.Context, name string) (*Tag, error) {
	if err := validateName(name); err != nil {
		return nil, err
	}
	created, err := s.store.Create(ctx, &Tag{Name: name})
	if errors.Is(err, sentinel.ErrConflict) {
		return nil, dErrors.New(dErrors.CodeConflict, "tag name already exists")
	}
	if err != nil {
		return nil, dErrors.New(dErrors.CodeInternal, "failed to create tag")
	}
	return created, nil
}

func (s *Service) Get(ctx context.Context, tagID id.TagID) (*Tag, error) {
	t, err := s.store.GetByID(ctx, tagID)
	if errors.Is(err, sentinel.ErrNotFound) {
		return nil, dErrors.New(dErrors.CodeNotFound, "tag "+tagID.String()+" not found")
	}
	if err != nil {
		return nil, dErrors.New(dErrors.CodeInternal, "failed to load tag")
	}
	return t, nil
}

func (s *Service) List(ctx context.Context) ([]*Tag, error) {
	list, err := s.store.List(ctx)
	if err != nil {
		return nil, dErrors.New(dErrors.CodeInternal, "failed to list tags")
	}
	return list, nil
}

// Delete removes a tag. Item associations drop with it via the junction
// table's ON DELETE CASCADE, so no reference check is needed here.
func (s *Service) Delete(ctx context.Context, tagID id.TagID) error {
	err := s.store.Delete(ctx, tagID)
	if errors.Is(err, sentinel.ErrNotFound) {
		return dErrors.New(dErrors.CodeNotFound, "tag "+tagID.String()+" not found")
	}
	if err != nil {
		return dErrors.New(dErrors.CodeInternal, "failed to delete tag")
	}
	return nil
}
