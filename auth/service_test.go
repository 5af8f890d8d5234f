package auth

import (
	"context"
	"testing"

	"github.com/wihlarkop/authkit/errors"
	"github.com/wihlarkop/authkit/password"
	"github.com/wihlarkop/authkit/user"
)

func newTestService(t *testing.T) (*Service, *user.MemoryStore) {
	t.Helper()
	store := user.NewMemoryStore()
	codec, err := NewCodec(Config{Secret: "test-secret-please-change"})
	if err != nil {
		t.Fatalf("NewCodec failed: %v", err)
	}
	// Low-cost bcrypt keeps the suite fast.
	hasher := password.NewBcryptHasher(password.WithCost(4))
	return NewService(store, hasher, codec), store
}

func registerAlice(t *testing.T, svc *Service) *user.Public {
	t.Helper()
	u, err := svc.Register(context.Background(), RegisterRequest{
		Email:    "alice@example.com",
		Username: "alice",
		Password: "password123",
	})
	if err != nil {
		t.Fatalf("Register failed: %v", err)
	}
	return u
}

func TestRegister(t *testing.T) {
	svc, store := newTestService(t)

	u := registerAlice(t, svc)
	if u.ID == "" {
		t.Error("expected generated user id")
	}
	if u.Email != "alice@example.com" || u.Username != "alice" {
		t.Errorf("unexpected public view: %+v", u)
	}
	if !u.IsActive || u.IsSuperuser {
		t.Errorf("expected active non-superuser, got: %+v", u)
	}

	stored, err := store.GetByEmail(context.Background(), "alice@example.com")
	if err != nil {
		t.Fatalf("GetByEmail failed: %v", err)
	}
	if stored == nil {
		t.Fatal("expected stored user")
	}
	if stored.HashedPassword == "password123" || stored.HashedPassword == "" {
		t.Error("expected password to be stored hashed")
	}
}

func TestRegisterDuplicateEmail(t *testing.T) {
	svc, _ := newTestService(t)
	registerAlice(t, svc)

	_, err := svc.Register(context.Background(), RegisterRequest{
		Email:    "alice@example.com",
		Username: "different",
		Password: "password123",
	})
	assertErrorCode(t, err, errors.ErrCodeUserAlreadyExists)
	appErr, _ := errors.AsAppError(err)
	if appErr.Message != "User with this email already exists" {
		t.Errorf("unexpected message: %s", appErr.Message)
	}
}

func TestRegisterDuplicateUsername(t *testing.T) {
	svc, _ := newTestService(t)
	registerAlice(t, svc)

	_, err := svc.Register(context.Background(), RegisterRequest{
		Email:    "different@example.com",
		Username: "alice",
		Password: "password123",
	})
	assertErrorCode(t, err, errors.ErrCodeUserAlreadyExists)
	appErr, _ := errors.AsAppError(err)
	if appErr.Message != "User with this username already exists" {
		t.Errorf("unexpected message: %s", appErr.Message)
	}
}

func TestLogin(t *testing.T) {
	svc, _ := newTestService(t)
	registerAlice(t, svc)

	pair, err := svc.Login(context.Background(), LoginRequest{
		Email:    "alice@example.com",
		Password: "password123",
	})
	if err != nil {
		t.Fatalf("Login failed: %v", err)
	}
	if pair.AccessToken == "" || pair.RefreshToken == "" {
		t.Fatal("expected both tokens to be issued")
	}
	if pair.TokenType != "bearer" {
		t.Errorf("expected token type bearer, got: %s", pair.TokenType)
	}

	claims, err := svc.codec.Verify(pair.AccessToken, TokenKindAccess)
	if err != nil {
		t.Fatalf("Verify access token failed: %v", err)
	}
	if claims.Email != "alice@example.com" || claims.Username != "alice" {
		t.Errorf("expected identity claims on access token, got: %+v", claims)
	}

	refreshClaims, err := svc.codec.Verify(pair.RefreshToken, TokenKindRefresh)
	if err != nil {
		t.Fatalf("Verify refresh token failed: %v", err)
	}
	if refreshClaims.Email != "" || refreshClaims.Username != "" {
		t.Errorf("expected refresh token to carry only the subject, got: %+v", refreshClaims)
	}
	if refreshClaims.Subject != claims.Subject {
		t.Errorf("expected same subject on both tokens")
	}
}

func TestLoginFailuresAreIndistinguishable(t *testing.T) {
	svc, _ := newTestService(t)
	registerAlice(t, svc)

	_, unknownErr := svc.Login(context.Background(), LoginRequest{
		Email:    "nobody@example.com",
		Password: "password123",
	})
	_, wrongErr := svc.Login(context.Background(), LoginRequest{
		Email:    "alice@example.com",
		Password: "wrong-password",
	})

	assertErrorCode(t, unknownErr, errors.ErrCodeInvalidCredentials)
	assertErrorCode(t, wrongErr, errors.ErrCodeInvalidCredentials)

	unknown, _ := errors.AsAppError(unknownErr)
	wrong, _ := errors.AsAppError(wrongErr)
	if unknown.Message != wrong.Message {
		t.Errorf("expected identical messages, got %q and %q", unknown.Message, wrong.Message)
	}
}

func TestLoginDisabledAccount(t *testing.T) {
	svc, store := newTestService(t)

	hashed, err := password.NewBcryptHasher(password.WithCost(4)).Hash("password123")
	if err != nil {
		t.Fatalf("hash password: %v", err)
	}
	if err := store.Create(context.Background(), &user.User{
		ID:             "disabled-user",
		Email:          "bob@example.com",
		Username:       "bob",
		HashedPassword: hashed,
		IsActive:       false,
	}); err != nil {
		t.Fatalf("create user: %v", err)
	}

	_, err = svc.Login(context.Background(), LoginRequest{
		Email:    "bob@example.com",
		Password: "password123",
	})
	assertErrorCode(t, err, errors.ErrCodeInvalidCredentials)
	appErr, _ := errors.AsAppError(err)
	if appErr.Message != "User account is disabled" {
		t.Errorf("unexpected message: %s", appErr.Message)
	}
}

func TestRefreshAccessToken(t *testing.T) {
	svc, _ := newTestService(t)
	registerAlice(t, svc)

	pair, err := svc.Login(context.Background(), LoginRequest{
		Email:    "alice@example.com",
		Password: "password123",
	})
	if err != nil {
		t.Fatalf("Login failed: %v", err)
	}

	rotated, err := svc.RefreshAccessToken(pair.RefreshToken)
	if err != nil {
		t.Fatalf("RefreshAccessToken failed: %v", err)
	}
	if rotated.AccessToken == "" || rotated.RefreshToken == "" {
		t.Fatal("expected a full new pair")
	}
	if rotated.RefreshToken == pair.RefreshToken {
		t.Error("expected rotation to issue a new refresh token")
	}

	// Rotation is stateless: the old refresh token stays valid until expiry.
	if _, err := svc.RefreshAccessToken(pair.RefreshToken); err != nil {
		t.Errorf("expected old refresh token to remain usable, got: %v", err)
	}
}

func TestRefreshRejectsAccessToken(t *testing.T) {
	svc, _ := newTestService(t)
	registerAlice(t, svc)

	pair, err := svc.Login(context.Background(), LoginRequest{
		Email:    "alice@example.com",
		Password: "password123",
	})
	if err != nil {
		t.Fatalf("Login failed: %v", err)
	}

	_, err = svc.RefreshAccessToken(pair.AccessToken)
	assertErrorCode(t, err, errors.ErrCodeInvalidTokenType)
}

func TestCurrentUser(t *testing.T) {
	svc, _ := newTestService(t)
	registered := registerAlice(t, svc)

	pair, err := svc.Login(context.Background(), LoginRequest{
		Email:    "alice@example.com",
		Password: "password123",
	})
	if err != nil {
		t.Fatalf("Login failed: %v", err)
	}

	u, err := svc.CurrentUser(context.Background(), pair.AccessToken)
	if err != nil {
		t.Fatalf("CurrentUser failed: %v", err)
	}
	if u.ID != registered.ID || u.Email != "alice@example.com" {
		t.Errorf("unexpected user: %+v", u)
	}
}

func TestCurrentUserRejectsRefreshToken(t *testing.T) {
	svc, _ := newTestService(t)
	registerAlice(t, svc)

	pair, err := svc.Login(context.Background(), LoginRequest{
		Email:    "alice@example.com",
		Password: "password123",
	})
	if err != nil {
		t.Fatalf("Login failed: %v", err)
	}

	_, err = svc.CurrentUser(context.Background(), pair.RefreshToken)
	assertErrorCode(t, err, errors.ErrCodeInvalidTokenType)
}

func TestCurrentUserAfterSoftDelete(t *testing.T) {
	svc, store := newTestService(t)
	registered := registerAlice(t, svc)

	pair, err := svc.Login(context.Background(), LoginRequest{
		Email:    "alice@example.com",
		Password: "password123",
	})
	if err != nil {
		t.Fatalf("Login failed: %v", err)
	}

	store.SoftDelete(registered.ID)

	_, err = svc.CurrentUser(context.Background(), pair.AccessToken)
	assertErrorCode(t, err, errors.ErrCodeUserNotFound)
}
