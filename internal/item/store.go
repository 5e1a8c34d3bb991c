package item

import (
	"context"

	id "curio/pkg/domain"
)

// Store persists items and their tag associations. Implementations
// return sentinel.ErrNotFound for missing IDs and
// sentinel.ErrReferenced when a delete is blocked by existing
// verification records.
type Store interface {
	Create(ctx context.Context, i *Item) (*Item, error)
	GetByID(ctx context.Context, itemID id.ItemID) (*Item, error)
	List(ctx context.Context) ([]*Item, error)
	Update(ctx context.Context, i *Item) (*Item, error)
	Delete(ctx context.Context, itemID id.ItemID) error

	CountByCategory(ctx context.Context, categoryID id.CategoryID) (int, error)
	CountByCity(ctx context.Context, cityID id.CityID) (int, error)
}
