package user

import (
	"context"

	id "curio/pkg/domain"
)

// Store persists users. Implementations return sentinel errors for
// infrastructure facts; validation happens in the service.
type Store interface {
	// Create assigns the ID and CreatedAt. Returns sentinel.ErrConflict
	// when the email is already taken.
	Create(ctx context.Context, u *User) (*User, error)
	GetByID(ctx context.Context, userID id.UserID) (*User, error)
	FindByEmail(ctx context.Context, email string) (*User, error)
}
