package auth

import (
	"context"
	"errors"
	"time"

	gojwt "github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	apperrors "github.com/wihlarkop/authkit/errors"
	"github.com/wihlarkop/authkit/password"
	"github.com/wihlarkop/authkit/user"
)

// Service orchestrates registration, login, token refresh, and current-user
// resolution. All dependencies are injected at construction; the service
// holds no mutable state and is safe for concurrent use.
type Service struct {
	users  user.Store
	hasher password.Hasher
	codec  *Codec
}

// NewService creates the auth service.
func NewService(users user.Store, hasher password.Hasher, codec *Codec) *Service {
	return &Service{users: users, hasher: hasher, codec: codec}
}

// Register creates a new user. Conflicts on email are reported before
// conflicts on username; existing users are never overwritten.
func (s *Service) Register(ctx context.Context, req RegisterRequest) (*user.Public, error) {
	existing, err := s.users.GetByEmail(ctx, req.Email)
	if err != nil {
		return nil, apperrors.Internal(err)
	}
	if existing != nil {
		return nil, apperrors.UserAlreadyExists("User with this email already exists")
	}

	existing, err = s.users.GetByUsername(ctx, req.Username)
	if err != nil {
		return nil, apperrors.Internal(err)
	}
	if existing != nil {
		return nil, apperrors.UserAlreadyExists("User with this username already exists")
	}

	hashed, err := s.hasher.Hash(req.Password)
	if err != nil {
		return nil, apperrors.Internal(err)
	}

	now := time.Now().UTC()
	u := &user.User{
		ID:             uuid.New().String(),
		Email:          req.Email,
		Username:       req.Username,
		HashedPassword: hashed,
		FullName:       req.FullName,
		IsActive:       true,
		IsSuperuser:    false,
		CreatedAt:      now,
		UpdatedAt:      now,
	}

	if err := s.users.Create(ctx, u); err != nil {
		// A concurrent registration can slip between the existence checks
		// and the insert; the store's uniqueness constraint is the backstop.
		if errors.Is(err, user.ErrDuplicate) {
			return nil, apperrors.UserAlreadyExists("")
		}
		return nil, apperrors.Internal(err)
	}

	return u.Public(), nil
}

// Login verifies credentials and issues one access and one refresh token.
// A missing account and a wrong password produce identical errors so callers
// cannot enumerate accounts.
func (s *Service) Login(ctx context.Context, req LoginRequest) (*TokenPair, error) {
	u, err := s.users.GetByEmail(ctx, req.Email)
	if err != nil {
		return nil, apperrors.Internal(err)
	}
	if u == nil {
		return nil, apperrors.InvalidCredentials("")
	}

	if !s.hasher.Verify(req.Password, u.HashedPassword) {
		return nil, apperrors.InvalidCredentials("")
	}

	if !u.IsActive {
		return nil, apperrors.InvalidCredentials("User account is disabled")
	}

	return s.issuePair(Claims{
		RegisteredClaims: gojwt.RegisteredClaims{Subject: u.ID},
		Email:            u.Email,
		Username:         u.Username,
	})
}

// RefreshAccessToken exchanges a valid refresh token for a brand-new token
// pair (rotation). Both new tokens carry only the subject id. No store
// round-trip happens on this path, so a user deactivated after issuance can
// keep refreshing until the token's natural expiry.
func (s *Service) RefreshAccessToken(refreshToken string) (*TokenPair, error) {
	claims, err := s.codec.Verify(refreshToken, TokenKindRefresh)
	if err != nil {
		return nil, err
	}

	return s.issuePair(Claims{
		RegisteredClaims: gojwt.RegisteredClaims{Subject: claims.Subject},
	})
}

// CurrentUser resolves the user behind an access token. Returns UserNotFound
// when the subject no longer resolves to an active row (e.g. soft-deleted
// after issuance).
func (s *Service) CurrentUser(ctx context.Context, accessToken string) (*user.Public, error) {
	claims, err := s.codec.Verify(accessToken, TokenKindAccess)
	if err != nil {
		return nil, err
	}

	u, err := s.users.GetByID(ctx, claims.Subject)
	if err != nil {
		return nil, apperrors.Internal(err)
	}
	if u == nil {
		return nil, apperrors.UserNotFound()
	}
	return u.Public(), nil
}

func (s *Service) issuePair(claims Claims) (*TokenPair, error) {
	access, err := s.codec.CreateAccessToken(claims, 0)
	if err != nil {
		return nil, apperrors.Internal(err)
	}

	refresh, err := s.codec.CreateRefreshToken(Claims{
		RegisteredClaims: gojwt.RegisteredClaims{Subject: claims.Subject},
	}, 0)
	if err != nil {
		return nil, apperrors.Internal(err)
	}

	return &TokenPair{
		AccessToken:  access,
		RefreshToken: refresh,
		TokenType:    "bearer",
	}, nil
}
