// Package store persists verification records. The log is append-only:
// no update or delete operations exist.
package store

import (
	"context"
	"time"

	"curio/internal/verification"
	id "curio/pkg/domain"
)

// Store is the verification record log. Create returns
// sentinel.ErrConflict when a record for the same user, item and UTC day
// already exists; list results are ordered most recent first.
type Store interface {
	Create(ctx context.Context, r *verification.Record) (*verification.Record, error)
	GetByID(ctx context.Context, verificationID id.VerificationID) (*verification.Record, error)
	ListByItem(ctx context.Context, itemID id.ItemID, limit int) ([]*verification.Record, error)
	ListByUser(ctx context.Context, userID id.UserID, limit int) ([]*verification.Record, error)

	// ExistsForUserItemOnDay reports whether the pair already has a record
	// with created_at at or after dayStart.
	ExistsForUserItemOnDay(ctx context.Context, userID id.UserID, itemID id.ItemID, dayStart time.Time) (bool, error)

	CountByItem(ctx context.Context, itemID id.ItemID) (int, error)
}
