package tag

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	sq "github.com/Masterminds/squirrel"
	"github.com/lib/pq"

	id "curio/pkg/domain"
	"curio/pkg/platform/sentinel"
)

var psql = sq.StatementBuilder.PlaceholderFormat(sq.Dollar)

type PostgresStore struct {
	db *sql.DB
}

func NewPostgres(db *sql.DB) *PostgresStore {
	return &PostgresStore{db: db}
}

func (s *PostgresStore) Create(ctx context.Context, t *Tag) (*Tag, error) {
	query, args, err := psql.Insert("tags").
		Columns("name").
		Values(t.Name).
		Suffix("RETURNING id").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build insert tag: %w", err)
	}

	created := *t
	if err := s.db.QueryRowContext(ctx, query, args...).Scan(&created.ID); err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == "23505" {
			return nil, sentinel.ErrConflict
		}
		return nil, fmt.Errorf("create tag: %w", err)
	}
	return &created, nil
}

func (s *PostgresStore) GetByID(ctx context.Context, tagID id.TagID) (*Tag, error) {
	query, args, err := psql.Select("id", "name").
		From("tags").
		Where(sq.Eq{"id": tagID}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build select tag: %w", err)
	}

	var t Tag
	err = s.db.QueryRowContext(ctx, query, args...).Scan(&t.ID, &t.Name)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, sentinel.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get tag: %w", err)
	}
	return &t, nil
}

func (s *PostgresStore) List(ctx context.Context) ([]*Tag, error) {
	query, args, err := psql.Select("id", "name").
		From("tags").
		OrderBy("name ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build list tags: %w", err)
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list tags: %w", err)
	}
	defer rows.Close()

	var result []*Tag
	for rows.Next() {
		var t Tag
		if err := rows.Scan(&t.ID, &t.Name); err != nil {
			return nil, fmt.Errorf("scan tag: %w", err)
		}
		result = append(result, &t)
	}
	return result, rows.Err()
}

func (s *PostgresStore) Delete(ctx context.Context, tagID id.TagID) error {
	query, args, err := psql.Delete("tags").
		Where(sq.Eq{"id": tagID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("build delete tag: %w", err)
	}

	res, err := s.db.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("delete tag: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete tag: %w", err)
	}
	if affected == 0 {
		return sentinel.ErrNotFound
	}
	return nil
}
