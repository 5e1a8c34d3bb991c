package city

import (
	"context"

	id "curio/pkg/domain"
)

// Store persists rotation cities. Implementations return
// sentinel.ErrConflict on duplicate names, sentinel.ErrNotFound for
// missing IDs, and guarantee that SetActive leaves at most one city
// active.
type Store interface {
	Create(ctx context.Context, c *City) (*City, error)
	GetByID(ctx context.Context, cityID id.CityID) (*City, error)
	List(ctx context.Context) ([]*City, error)
	Update(ctx context.Context, c *City) (*City, error)
	Delete(ctx context.Context, cityID id.CityID) error

	// SetActive marks the given city active and deactivates any other.
	SetActive(ctx context.Context, cityID id.CityID) (*City, error)
	// GetActive returns the currently active city, or
	// sentinel.ErrNotFound when none is active.
	GetActive(ctx context.Context) (*City, error)
}
