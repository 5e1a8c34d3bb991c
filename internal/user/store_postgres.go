package user

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

// PostgresStore persists users in PostgreSQL.
type PostgresStore struct {
	db *sql.DB
}

func NewPostgres(db *sql.DB) *PostgresStore {
	return &PostgresStore{db: db}
}

func (s *PostgresStore) Create(ctx context.Context, u *User) (*User, error) {
	query, args, err := psql.Insert("users").
		Columns("email", "first_name", "last_name", "password_hash").
		Values(u.Email, u.FirstName, u.LastName, u.PasswordHash).
		Suffix("RETURNING id, created_at").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build insert user: %w", err)
	}

	created := *u
	err = s.db.QueryRowContext(ctx, query, args...).Scan(&created.ID, &created.CreatedAt)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == "23505" {
			return nil, sentinel.ErrConflict
		}
		return nil, fmt.Errorf("create user: %w", err)
	}
	return &created, nil
}

func (s *PostgresStore) GetByID(ctx context.Context, userID id.UserID) (*User, error) {
	return s.getOne(ctx, sq.Eq{"id": userID})
}

func (s *PostgresStore) FindByEmail(ctx context.Context, email string) (*User, error) {
	return s.getOne(ctx, sq.Expr("lower(email) = lower(?)", email))
}

func (s *PostgresStore) getOne(ctx context.Context, pred any) (*User, error) {
	query, args, err := psql.Select("id", "email", "first_name", "last_name", "password_hash", "created_at").
		From("users").
		Where(pred).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build select user: %w", err)
	}

	var u User
	err = s.db.QueryRowContext(ctx, query, args...).
		Scan(&u.ID, &u.Email, &u.FirstName, &u.LastName, &u.PasswordHash, &u.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, sentinel.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get user: %w", err)
	}
	return &u, nil
}
