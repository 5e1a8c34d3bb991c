package category

import (
	"context"

	id "curio/pkg/domain"
)

// Store persists categories. Create and Update return sentinel.ErrConflict
// on duplicate names; Delete returns sentinel.ErrReferenced while items
// still point at the category.
type Store interface {
	Create(ctx context.Context, c *Category) (*Category, error)
	GetByID(ctx context.Context, categoryID id.CategoryID) (*Category, error)
	List(ctx context.Context) ([]*Category, error)
	Update(ctx context.Context, c *Category) (*Category, error)
	Delete(ctx context.Context, categoryID id.CategoryID) error
}
