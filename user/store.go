package user

import (
	"context"
	"errors"
)

// ErrDuplicate is returned by Create when a uniqueness constraint on email or
// username is violated.
var ErrDuplicate = errors.New("user: duplicate email or username")

// Store is the persistence contract for user records. Lookups return
// (nil, nil) when no matching active row exists; absence is not an error.
// Soft-deleted rows are excluded from every lookup.
type Store interface {
	GetByEmail(ctx context.Context, email string) (*User, error)
	GetByUsername(ctx context.Context, username string) (*User, error)
	GetByID(ctx context.Context, id string) (*User, error)

	// Create persists a new user. Returns ErrDuplicate on a uniqueness
	// violation.
	Create(ctx context.Context, u *User) error

	// UpdatePassword replaces the stored password hash and bumps updated_at.
	UpdatePassword(ctx context.Context, id, hashedPassword string) error
}
