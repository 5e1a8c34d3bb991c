package city

import (
	"context"
	"errors"

	id "curio/pkg/domain"
	dErrors "curio/pkg/domain-errors"
	"curio/pkg/platform/sentinel"
)

// ItemCounter reports how many items reference a city; the service
// refuses deletion while any do.
type ItemCounter interface {
	CountByCity(ctx context.Context, cityID id.CityID) (int, error)
}

type Service struct {
	store Store
	items ItemCounter
}

func NewService(store Store, items ItemCounter) *Service {
	return &Service{store: store, items: items}
}

func (s *Service) Create(ctx context.Context, name string) (*City, error) {
	if err := validateName(name); err != nil {
		return nil, err
	}
	created, err := s.store.Create(ctx, &City{Name: name})
	if errors.Is(err, sentinel.ErrConflict) {
		return nil, dErrors.New(dErrors.CodeConflict, "city name already exists")
	}
	if err != nil {
		return nil, dErrors.New(dErrors.CodeInternal, "failed to create city")
	}
	return created, nil
}

func (s *Service) Get(ctx context.Context, cityID id.CityID) (*City, error) {
	c, err := s.store.GetByID(ctx, cityID)
	if errors.Is(err, sentinel.ErrNotFound) {
		return nil, dErrors.New(dErrors.CodeNotFound, "city "+cityID.String()+" not found")
	}
	if err != nil {
		return nil, dErrors.New(dErrors.CodeInternal, "failed to load city")
	}
	return c, nil
}

func (s *Service) List(ctx context.Context) ([]*City, error) {
	list, err := s.store.List(ctx)
	if err != nil {
		return nil, dErrors.New(dErrors.CodeInternal, "failed to list cities")
	}
	return list, nil
}

func (s *Service) Update(ctx context.Context, cityID id.CityID, name string) (*City, error) {
	if err := validateName(name); err != nil {
		return nil, err
	}
	updated, err := s.store.Update(ctx, &City{ID: cityID, Name: name})
	if errors.Is(err, sentinel.ErrNotFound) {
		return nil, dErrors.New(dErrors.CodeNotFound, "city "+cityID.String()+" not found")
	}
	if errors.Is(err, sentinel.ErrConflict) {
		return nil, dErrors.New(dErrors.CodeConflict, "city name already exists")
	}
	if err != nil {
		return nil, dErrors.New(dErrors.CodeInternal, "failed to update city")
	}
	return updated, nil
}

func (s *Service) Delete(ctx context.Context, cityID id.CityID) error {
	count, err := s.items.CountByCity(ctx, cityID)
	if err != nil {
		return dErrors.New(dErrors.CodeInternal, "failed to check city references")
	}
	if count > 0 {
		return dErrors.New(dErrors.CodeConflict, "city still has items")
	}

	err = s.store.Delete(ctx, cityID)
	if errors.Is(err, sentinel.ErrNotFound) {
		return dErrors.New(dErrors.CodeNotFound, "city "+cityID.String()+" not found")
	}
	if errors.Is(err, sentinel.ErrReferenced) {
		return dErrors.New(dErrors.CodeConflict, "city still has items")
	}
	if err != nil {
		return dErrors.New(dErrors.CodeInternal, "failed to delete city")
	}
	return nil
}

// Activate makes the given city the current rotation city. Any
// previously active city is deactivated in the same operation.
func (s *Service) Activate(ctx context.Context, cityID id.CityID) (*City, error) {
	c, err := s.store.SetActive(ctx, cityID)
	if errors.Is(err, sentinel.ErrNotFound) {
		return nil, dErrors.New(dErrors.CodeNotFound, "city "+cityID.String()+" not found")
	}
	if err != nil {
		return nil, dErrors.New(dErrors.CodeInternal, "failed to activate city")
	}
	return c, nil
}

// Current returns the active rotation city.
func (s *Service) Current(ctx context.Context) (*City, error) {
	c, err := s.store.GetActive(ctx)
	if errors.Is(err, sentinel.ErrNotFound) {
		return nil, dErrors.New(dErrors.CodeNotFound, "no city is currently active")
	}
	if err != nil {
		return nil, dErrors.New(dErrors.CodeInternal, "failed to load active city")
	}
	return c, nil
}
