package city

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

func (s *PostgresStore) Create(ctx context.Context, c *City) (*City, error) {
	query, args, err := psql.Insert("cities").
		Columns("name", "active").
		Values(c.Name, false).
		Suffix("RETURNING id").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build insert city: %w", err)
	}

	created := *c
	created.Active = false
	if err := s.db.QueryRowContext(ctx, query, args...).Scan(&created.ID); err != nil {
		return nil, translatePQ("create city", err)
	}
	return &created, nil
}

func (s *PostgresStore) GetByID(ctx context.Context, cityID id.CityID) (*City, error) {
	query, args, err := psql.Select("id", "name", "active").
		From("cities").
		Where(sq.Eq{"id": cityID}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build select city: %w", err)
	}

	var c City
	err = s.db.QueryRowContext(ctx, query, args...).Scan(&c.ID, &c.Name, &c.Active)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, sentinel.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get city: %w", err)
	}
	return &c, nil
}

func (s *PostgresStore) List(ctx context.Context) ([]*City, error) {
	query, args, err := psql.Select("id", "name", "active").
		From("cities").
		OrderBy("name ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build list cities: %w", err)
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list cities: %w", err)
	}
	defer rows.Close()

	var result []*City
	for rows.Next() {
		var c City
		if err := rows.Scan(&c.ID, &c.Name, &c.Active); err != nil {
			return nil, fmt.Errorf("scan city: %w", err)
		}
		result = append(result, &c)
	}
	return result, rows.Err()
}

func (s *PostgresStore) Update(ctx context.Context, c *City) (*City, error) {
	query, args, err := psql.Update("cities").
		Set("name", c.Name).
		Where(sq.Eq{"id": c.ID}).
		Suffix("RETURNING id, name, active").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build update city: %w", err)
	}

	var updated City
	err = s.db.QueryRowContext(ctx, query, args...).Scan(&updated.ID, &updated.Name, &updated.Active)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, sentinel.ErrNotFound
	}
	if err != nil {
		return nil, translatePQ("update city", err)
	}
	return &updated, nil
}

func (s *PostgresStore) Delete(ctx context.Context, cityID id.CityID) error {
	query, args, err := psql.Delete("cities").
		Where(sq.Eq{"id": cityID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("build delete city: %w", err)
	}

	res, err := s.db.ExecContext(ctx, query, args...)
	if err != nil {
		return translatePQ("delete city", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete city: %w", err)
	}
	if affected == 0 {
		return sentinel.ErrNotFound
	}
	return nil
}

// SetActive deactivates every city and activates the target inside one
// transaction, keeping the cities_single_active index satisfied.
func (s *PostgresStore) SetActive(ctx context.Context, cityID id.CityID) (*City, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("begin set active city: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `UPDATE cities SET active = FALSE WHERE active`); err != nil {
		return nil, fmt.Errorf("deactivate cities: %w", err)
	}

	var c City
	err = tx.QueryRowContext(ctx,
		`UPDATE cities SET active = TRUE WHERE id = $1 RETURNING id, name, active`,
		cityID,
	).Scan(&c.ID, &c.Name, &c.Active)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, sentinel.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("activate city: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("commit set active city: %w", err)
	}
	return &c, nil
}

func (s *PostgresStore) GetActive(ctx context.Context) (*City, error) {
	query, args, err := psql.Select("id", "name", "active").
		From("cities").
		Where(sq.Eq{"active": true}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build select active city: %w", err)
	}

	var c City
	err = s.db.QueryRowContext(ctx, query, args...).Scan(&c.ID, &c.Name, &c.Active)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, sentinel.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get active city: %w", err)
	}
	return &c, nil
}

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
