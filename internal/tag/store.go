package tag

import (
	"context"

	id "curio/pkg/domain"
)

// Store persists tags. Implementations return sentinel.ErrConflict on
// duplicate names and sentinel.ErrNotFound for missing IDs.
type Store interface {
	Create(ctx context.Context, t *Tag) (*Tag, error)
	GetByID(ctx context.Context, tagID id.TagID) (*Tag, error)
	List(ctx context.Context) ([]*Tag, error)
	Delete(ctx context.Context, tagID id.TagID) error
}
