// Package user defines the user identity record and the store contract the
// auth service depends on. Persistence technology stays behind the Store
// interface; an in-memory and a Postgres implementation are provided.
package user

import "time"

// User is the identity record. HashedPassword is opaque and never serialized
// or logged. A non-nil DeletedAt marks a soft-deleted row, excluded from all
// lookups.
type User struct {
	ID             string
	Email          string
	Username       string
	HashedPassword string
	FullName       *string
	IsActive       bool
	IsSuperuser    bool
	CreatedAt      time.Time
	UpdatedAt      time.Time
	DeletedAt      *time.Time
}

// Public is the outward view of a user, safe to return to callers.
type Public struct {
	ID          string  `json:"id"`
	Email       string  `json:"email"`
	Username    string  `json:"username"`
	FullName    *string `json:"full_name,omitempty"`
	IsActive    bool    `json:"is_active"`
	IsSuperuser bool    `json:"is_superuser"`
}

// Public returns the outward view of the user.
func (u *User) Public() *Public {
	return &Public{
		ID:          u.ID,
		Email:       u.Email,
		Username:    u.Username,
		FullName:    u.FullName,
		IsActive:    u.IsActive,
		IsSuperuser: u.IsSuperuser,
	}
}
