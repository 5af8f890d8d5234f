package user

import (
	"context"
	"errors"
	"testing"
	"time"
)

func seedUser(t *testing.T, s *MemoryStore, id, email, username string) {
	t.Helper()
	now := time.Now().UTC()
	err := s.Create(context.Background(), &User{
		ID:             id,
		Email:          email,
		Username:       username,
		HashedPassword: "hashed",
		IsActive:       true,
		CreatedAt:      now,
		UpdatedAt:      now,
	})
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}
}

func TestMemoryStoreLookups(t *testing.T) {
	s := NewMemoryStore()
	seedUser(t, s, "u1", "a@example.com", "alice")

	byEmail, err := s.GetByEmail(context.Background(), "a@example.com")
	if err != nil || byEmail == nil || byEmail.ID != "u1" {
		t.Fatalf("GetByEmail: expected u1, got %+v (err: %v)", byEmail, err)
	}
	byUsername, err := s.GetByUsername(context.Background(), "alice")
	if err != nil || byUsername == nil || byUsername.ID != "u1" {
		t.Fatalf("GetByUsername: expected u1, got %+v (err: %v)", byUsername, err)
	}
	byID, err := s.GetByID(context.Background(), "u1")
	if err != nil || byID == nil || byID.Email != "a@example.com" {
		t.Fatalf("GetByID: expected a@example.com, got %+v (err: %v)", byID, err)
	}
}

func TestMemoryStoreAbsenceIsNilNil(t *testing.T) {
	s := NewMemoryStore()

	u, err := s.GetByEmail(context.Background(), "nobody@example.com")
	if err != nil || u != nil {
		t.Errorf("expected (nil, nil), got (%+v, %v)", u, err)
	}
	u, err = s.GetByUsername(context.Background(), "nobody")
	if err != nil || u != nil {
		t.Errorf("expected (nil, nil), got (%+v, %v)", u, err)
	}
	u, err = s.GetByID(context.Background(), "missing")
	if err != nil || u != nil {
		t.Errorf("expected (nil, nil), got (%+v, %v)", u, err)
	}
}

func TestMemoryStoreUniqueness(t *testing.T) {
	s := NewMemoryStore()
	seedUser(t, s, "u1", "a@example.com", "alice")

	err := s.Create(context.Background(), &User{ID: "u2", Email: "a@example.com", Username: "other"})
	if !errors.Is(err, ErrDuplicate) {
		t.Errorf("expected ErrDuplicate for duplicate email, got: %v", err)
	}
	err = s.Create(context.Background(), &User{ID: "u3", Email: "b@example.com", Username: "alice"})
	if !errors.Is(err, ErrDuplicate) {
		t.Errorf("expected ErrDuplicate for duplicate username, got: %v", err)
	}
}

func TestMemoryStoreSoftDelete(t *testing.T) {
	s := NewMemoryStore()
	seedUser(t, s, "u1", "a@example.com", "alice")

	s.SoftDelete("u1")

	if u, _ := s.GetByID(context.Background(), "u1"); u != nil {
		t.Error("expected soft-deleted user hidden from GetByID")
	}
	if u, _ := s.GetByEmail(context.Background(), "a@example.com"); u != nil {
		t.Error("expected soft-deleted user hidden from GetByEmail")
	}
	if u, _ := s.GetByUsername(context.Background(), "alice"); u != nil {
		t.Error("expected soft-deleted user hidden from GetByUsername")
	}
}

func TestMemoryStoreUpdatePassword(t *testing.T) {
	s := NewMemoryStore()
	seedUser(t, s, "u1", "a@example.com", "alice")

	if err := s.UpdatePassword(context.Background(), "u1", "new-hash"); err != nil {
		t.Fatalf("UpdatePassword failed: %v", err)
	}
	u, _ := s.GetByID(context.Background(), "u1")
	if u.HashedPassword != "new-hash" {
		t.Errorf("expected updated hash, got: %s", u.HashedPassword)
	}
}

func TestMemoryStoreReturnsCopies(t *testing.T) {
	s := NewMemoryStore()
	seedUser(t, s, "u1", "a@example.com", "alice")

	u, _ := s.GetByID(context.Background(), "u1")
	u.Email = "mutated@example.com"

	again, _ := s.GetByID(context.Background(), "u1")
	if again.Email != "a@example.com" {
		t.Errorf("expected store state untouched by caller mutation, got: %s", again.Email)
	}
}

func TestUserPublicView(t *testing.T) {
	full := "Alice A."
	u := &User{
		ID:             "u1",
		Email:          "a@example.com",
		Username:       "alice",
		HashedPassword: "secret-hash",
		FullName:       &full,
		IsActive:       true,
	}

	p := u.Public()
	if p.ID != "u1" || p.Email != "a@example.com" || p.Username != "alice" {
		t.Errorf("unexpected public view: %+v", p)
	}
	if p.FullName == nil || *p.FullName != "Alice A." {
		t.Errorf("expected full name preserved, got: %v", p.FullName)
	}
}
