package item

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

const selectItemColumns = `
	i.id, i.name, i.description, i.category_id, i.city_id, i.created_at,
	COALESCE(array_agg(it.tag_id ORDER BY it.tag_id) FILTER (WHERE it.tag_id IS NOT NULL), '{}')`

type PostgresStore struct {
	db *sql.DB
}

func NewPostgres(db *sql.DB) *PostgresStore {
	return &PostgresStore{db: db}
}

func scanItem(row interface{ Scan(...any) error }) (*Item, error) {
	var (
		i      Item
		cityID sql.NullInt64
		tagIDs pq.Int64Array
	)
	if err := row.Scan(&i.ID, &i.Name, &i.Description, &i.CategoryID, &cityID, &i.CreatedAt, &tagIDs); err != nil {
		return nil, err
	}
	if cityID.Valid {
		c := id.CityID(cityID.Int64)
		i.CityID = &c
	}
	i.TagIDs = make([]id.TagID, len(tagIDs))
	for n, tagID := range tagIDs {
		i.TagIDs[n] = id.TagID(tagID)
	}
	return &i, nil
}

func (s *PostgresStore) insertTags(ctx context.Context, tx *sql.Tx, itemID id.ItemID, tagIDs []id.TagID) error {
	if len(tagIDs) == 0 {
		return nil
	}
	builder := psql.Insert("item_tags").Columns("item_id", "tag_id")
	for _, tagID := range tagIDs {
		builder = builder.Values(itemID, tagID)
	}
	query, args, err := builder.ToSql()
	if err != nil {
		return fmt.Errorf("build insert item tags: %w", err)
	}
	if _, err := tx.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("insert item tags: %w", err)
	}
	return nil
}

func (s *PostgresStore) Create(ctx context.Context, i *Item) (*Item, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("begin create item: %w", err)
	}
	defer tx.Rollback()

	var cityID any
	if i.CityID != nil {
		cityID = int64(*i.CityID)
	}

	query, args, err := psql.Insert("items").
		Columns("name", "description", "category_id", "city_id").
		Values(i.Name, i.Description, i.CategoryID, cityID).
		Suffix("RETURNING id, created_at").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build insert item: %w", err)
	}

	created := *i
	created.TagIDs = append([]id.TagID(nil), i.TagIDs...)
	if err := tx.QueryRowContext(ctx, query, args...).Scan(&created.ID, &created.CreatedAt); err != nil {
		return nil, translatePQ("create item", err)
	}

	if err := s.insertTags(ctx, tx, created.ID, created.TagIDs); err != nil {
		return nil, err
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("commit create item: %w", err)
	}
	if created.TagIDs == nil {
		created.TagIDs = []id.TagID{}
	}
	return &created, nil
}

func (s *PostgresStore) GetByID(ctx context.Context, itemID id.ItemID) (*Item, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT `+selectItemColumns+`
		FROM items i
		LEFT JOIN item_tags it ON it.item_id = i.id
		WHERE i.id = $1
		GROUP BY i.id`, itemID)

	i, err := scanItem(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, sentinel.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get item: %w", err)
	}
	return i, nil
}

func (s *PostgresStore) List(ctx context.Context) ([]*Item, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT `+selectItemColumns+`
		FROM items i
		LEFT JOIN item_tags it ON it.item_id = i.id
		GROUP BY i.id
		ORDER BY i.id ASC`)
	if err != nil {
		return nil, fmt.Errorf("list items: %w", err)
	}
	defer rows.Close()

	var result []*Item
	for rows.Next() {
		i, err := scanItem(rows)
		if err != nil {
			return nil, fmt.Errorf("scan item: %w", err)
		}
		result = append(result, i)
	}
	return result, rows.Err()
}

func (s *PostgresStore) Update(ctx context.Context, i *Item) (*Item, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("begin update item: %w", err)
	}
	defer tx.Rollback()

	var cityID any
	if i.CityID != nil {
		cityID = int64(*i.CityID)
	}

	query, args, err := psql.Update("items").
		Set("name", i.Name).
		Set("description", i.Description).
		Set("category_id", i.CategoryID).
		Set("city_id", cityID).
		Where(sq.Eq{"id": i.ID}).
		Suffix("RETURNING created_at").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build update item: %w", err)
	}

	updated := *i
	updated.TagIDs = append([]id.TagID(nil), i.TagIDs...)
	err = tx.QueryRowContext(ctx, query, args...).Scan(&updated.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, sentinel.ErrNotFound
	}
	if err != nil {
		return nil, translatePQ("update item", err)
	}

	if _, err := tx.ExecContext(ctx, `DELETE FROM item_tags WHERE item_id = $1`, i.ID); err != nil {
		return nil, fmt.Errorf("clear item tags: %w", err)
	}
	if err := s.insertTags(ctx, tx, i.ID, updated.TagIDs); err != nil {
		return nil, err
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("commit update item: %w", err)
	}
	if updated.TagIDs == nil {
		updated.TagIDs = []id.TagID{}
	}
	return &updated, nil
}

func (s *PostgresStore) Delete(ctx context.Context, itemID id.ItemID) error {
	query, args, err := psql.Delete("items").
		Where(sq.Eq{"id": itemID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("build delete item: %w", err)
	}

	res, err := s.db.ExecContext(ctx, query, args...)
	if err != nil {
		return translatePQ("delete item", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete item: %w", err)
	}
	if affected == 0 {
		return sentinel.ErrNotFound
	}
	return nil
}

func (s *PostgresStore) CountByCategory(ctx context.Context, categoryID id.CategoryID) (int, error) {
	return s.count(ctx, sq.Eq{"category_id": categoryID})
}

func (s *PostgresStore) CountByCity(ctx context.Context, cityID id.CityID) (int, error) {
	return s.count(ctx, sq.Eq{"city_id": cityID})
}

func (s *PostgresStore) count(ctx context.Context, where sq.Eq) (int, error) {
	query, args, err := psql.Select("COUNT(*)").From("items").Where(where).ToSql()
	if err != nil {
		return 0, fmt.Errorf("build count items: %w", err)
	}

	var count int
	if err := s.db.QueryRowContext(ctx, query, args...).Scan(&count); err != nil {
		return 0, fmt.Errorf("count items: %w", err)
	}
	return count, nil
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
