package user

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

// uniqueViolation is the Postgres error code for unique constraint failures.
const uniqueViolation = "23505"

// PostgresStore implements Store on a pgx connection pool. The pool owns all
// concurrency concerns; the store itself is stateless.
type PostgresStore struct {
	pool *pgxpool.Pool
}

// NewPostgresStore creates a Store backed by the given pool.
func NewPostgresStore(pool *pgxpool.Pool) *PostgresStore {
	return &PostgresStore{pool: pool}
}

const userColumns = `id, email, username, hashed_password, full_name,
	is_active, is_superuser, created_at, updated_at, deleted_at`

func (s *PostgresStore) GetByEmail(ctx context.Context, email string) (*User, error) {
	query := `SELECT ` + userColumns + ` FROM users
		 WHERE email = $1 AND deleted_at IS NULL`
	return s.queryOne(ctx, query, email)
}

func (s *PostgresStore) GetByUsername(ctx context.Context, username string) (*User, error) {
	query := `SELECT ` + userColumns + ` FROM users
		 WHERE username = $1 AND deleted_at IS NULL`
	return s.queryOne(ctx, query, username)
}

func (s *PostgresStore) GetByID(ctx context.Context, id string) (*User, error) {
	query := `SELECT ` + userColumns + ` FROM users
		 WHERE id = $1 AND deleted_at IS NULL`
	return s.queryOne(ctx, query, id)
}

func (s *PostgresStore) queryOne(ctx context.Context, query string, arg any) (*User, error) {
	u := &User{}
	err := s.pool.QueryRow(ctx, query, arg).Scan(
		&u.ID, &u.Email, &u.Username, &u.HashedPassword, &u.FullName,
		&u.IsActive, &u.IsSuperuser, &u.CreatedAt, &u.UpdatedAt, &u.DeletedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("db error: %w", err)
	}
	return u, nil
}

func (s *PostgresStore) Create(ctx context.Context, u *User) error {
	query := `INSERT INTO users
		 (id, email, username, hashed_password, full_name,
		  is_active, is_superuser, created_at, updated_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`

	_, err := s.pool.Exec(ctx, query,
		u.ID, u.Email, u.Username, u.HashedPassword, u.FullName,
		u.IsActive, u.IsSuperuser, u.CreatedAt, u.UpdatedAt,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
			return ErrDuplicate
		}
		return fmt.Errorf("db error: %w", err)
	}
	return nil
}

func (s *PostgresStore) UpdatePassword(ctx context.Context, id, hashedPassword string) error {
	query := `UPDATE users SET hashed_password = $2, updated_at = $3
		 WHERE id = $1 AND deleted_at IS NULL`

	_, err := s.pool.Exec(ctx, query, id, hashedPassword, time.Now().UTC())
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	return nil
}

// Ping reports database reachability for the health endpoint.
func (s *PostgresStore) Ping(ctx context.Context) error {
	return s.pool.Ping(ctx)
}
