package category

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

func (s *PostgresStore) Create(ctx context.Context, c *Category) (*Category, error) {
	query, args, err := psql.Insert("categories").
		Columns("name", "description").
		Values(c.Name, c.Description).
		Suffix("RETURNING id").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build insert category: %w", err)
	}

	created := *c
	if err := s.db.QueryRowContext(ctx, query, args...).Scan(&created.ID); err != nil {
		return nil, translatePQ("create category", err)
	}
	return &created, nil
}

func (s *PostgresStore) GetByID(ctx context.Context, categoryID id.CategoryID) (*Category, error) {
	query, args, err := psql.Select("id", "name", "description").
		From("categories").
		Where(sq.Eq{"id": categoryID}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build select category: %w", err)
	}

	var c Category
	err = s.db.QueryRowContext(ctx, query, args...).Scan(&c.ID, &c.Name, &c.Description)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, sentinel.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get category: %w", err)
	}
	return &c, nil
}

func (s *PostgresStore) List(ctx context.Context) ([]*Category, error) {
	query, args, err := psql.Select("id", "name", "description").
		From("categories").
		OrderBy("name ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build list categories: %w", err)
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list categories: %w", err)
	}
	defer rows.Close()

	var result []*Category
	for rows.Next() {
		var c Category
		if err := rows.Scan(&c.ID, &c.Name, &c.Description); err != nil {
			return nil, fmt.Errorf("scan category: %w", err)
		}
		result = append(result, &c)
	}
	return result, rows.Err()
}

func (s *PostgresStore) Update(ctx context.Context, c *Category) (*Category, error) {
	query, args, err := psql.Update("categories").
		Set("name", c.Name).
		Set("description", c.Description).
		Where(sq.Eq{"id": c.ID}).
		Suffix("RETURNING id, name, description").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build update category: %w", err)
	}

	var updated Category
	err = s.db.QueryRowContext(ctx, query, args...).Scan(&updated.ID, &updated.Name, &updated.Description)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, sentinel.ErrNotFound
	}
	if err != nil {
		return nil, translatePQ("update category", err)
	}
	return &updated, nil
}

func (s *PostgresStore) Delete(ctx context.Context, categoryID id.CategoryID) error {
	query, args, err := psql.Delete("categories").
		Where(sq.Eq{"id": categoryID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("build delete category: %w", err)
	}

	res, err := s.db.ExecContext(ctx, query, args...)
	if err != nil {
		return translatePQ("delete category", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete category: %w", err)
	}
	if affected == 0 {
		return sentinel.ErrNotFound
	}
	return nil
}

// translatePQ maps postgres constraint violations to sentinels.
func translatePQ(op string, err error) error {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		switch pqErr.Code {
		case "23505":
			return sentinel.ErrConflict
		case "23503":
			return sentinel.ErrReferenced
		}
	}
	return fmt.Errorf("%s: %w", op, err)
}
