package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/lib/pq"

	"curio/internal/verification"
	id "curio/pkg/domain"
	"curio/pkg/platform/sentinel"
)

var psql = sq.StatementBuilder.PlaceholderFormat(sq.Dollar)

// Postgres backs the verification log with the item_verifications table.
// The item_verifications_once_per_day unique index closes the
// check-then-create race between concurrent same-day requests; a violation
// surfaces here as sentinel.ErrConflict.
type Postgres struct {
	db *sql.DB
}

func NewPostgres(db *sql.DB) *Postgres {
	return &Postgres{db: db}
}

func (s *Postgres) Create(ctx context.Context, r *verification.Record) (*verification.Record, error) {
	query, args, err := psql.Insert("item_verifications").
		Columns("user_id", "item_id", "note").
		Values(r.UserID, r.ItemID, r.Note).
		Suffix("RETURNING id, created_at").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build insert verification: %w", err)
	}

	created := *r
	if err := s.db.QueryRowContext(ctx, query, args...).Scan(&created.ID, &created.CreatedAt); err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == "23505" {
			return nil, sentinel.ErrConflict
		}
		return nil, fmt.Errorf("create verification: %w", err)
	}
	created.CreatedAt = created.CreatedAt.UTC()
	return &created, nil
}

func (s *Postgres) GetByID(ctx context.Context, verificationID id.VerificationID) (*verification.Record, error) {
	query, args, err := psql.Select("id", "user_id", "item_id", "note", "created_at").
		From("item_verifications").
		Where(sq.Eq{"id": verificationID}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build select verification: %w", err)
	}

	r, err := scanRecord(s.db.QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, sentinel.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get verification: %w", err)
	}
	return r, nil
}

func scanRecord(row interface{ Scan(...any) error }) (*verification.Record, error) {
	var (
		r    verification.Record
		note sql.NullString
	)
	if err := row.Scan(&r.ID, &r.UserID, &r.ItemID, &note, &r.CreatedAt); err != nil {
		return nil, err
	}
	if note.Valid {
		r.Note = &note.String
	}
	r.CreatedAt = r.CreatedAt.UTC()
	return &r, nil
}

func (s *Postgres) listBy(ctx context.Context, where sq.Eq, limit int) ([]*verification.Record, error) {
	builder := psql.Select("id", "user_id", "item_id", "note", "created_at").
		From("item_verifications").
		Where(where).
		OrderBy("created_at DESC", "id DESC")
	if limit > 0 {
		builder = builder.Limit(uint64(limit))
	}

	query, args, err := builder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build list verifications: %w", err)
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list verifications: %w", err)
	}
	defer rows.Close()

	var result []*verification.Record
	for rows.Next() {
		r, err := scanRecord(rows)
		if err != nil {
			return nil, fmt.Errorf("scan verification: %w", err)
		}
		result = append(result, r)
	}
	return result, rows.Err()
}

func (s *Postgres) ListByItem(ctx context.Context, itemID id.ItemID, limit int) ([]*verification.Record, error) {
	return s.listBy(ctx, sq.Eq{"item_id": itemID}, limit)
}

func (s *Postgres) ListByUser(ctx context.Context, userID id.UserID, limit int) ([]*verification.Record, error) {
	return s.listBy(ctx, sq.Eq{"user_id": userID}, limit)
}

func (s *Postgres) ExistsForUserItemOnDay(ctx context.Context, userID id.UserID, itemID id.ItemID, dayStart time.Time) (bool, error) {
	var exists bool
	err := s.db.QueryRowContext(ctx, `
		SELECT EXISTS (
			SELECT 1 FROM item_verifications
			WHERE user_id = $1 AND item_id = $2 AND created_at >= $3
		)`, userID, itemID, dayStart).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("check verification day window: %w", err)
	}
	return exists, nil
}

func (s *Postgres) CountByItem(ctx context.Context, itemID id.ItemID) (int, error) {
	query, args, err := psql.Select("COUNT(*)").
		From("item_verifications").
		Where(sq.Eq{"item_id": itemID}).
		ToSql()
	if err != nil {
		return 0, fmt.Errorf("build count verifications: %w", err)
	}

	var count int
	if err := s.db.QueryRowContext(ctx, query, args...).Scan(&count); err != nil {
		return 0, fmt.Errorf("count verifications: %w", err)
	}
	return count, nil
}
