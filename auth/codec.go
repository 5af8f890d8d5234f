// Package auth implements the authentication core: the dual-token codec
// (signed, expiring access/refresh JWTs) and the service orchestrating
// registration, login, token refresh, and current-user resolution.
package auth

import (
	"errors"
	"fmt"
	"time"

	gojwt "github.com/golang-jwt/jwt/v5"

	apperrors "github.com/wihlarkop/authkit/errors"
	"github.com/wihlarkop/authkit/password"
)

// jtiByteLength is the entropy of refresh-token jti values.
const jtiByteLength = 32

// Codec creates and verifies signed, expiring tokens of the two kinds.
// Tokens are stateless and self-verifying: access-token checks need no I/O.
// Stateless and safe for concurrent use.
type Codec struct {
	cfg Config
}

// NewCodec creates a token codec. The configuration is copied and immutable
// for the codec's lifetime.
func NewCodec(cfg Config) (*Codec, error) {
	cfg.ApplyDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &Codec{cfg: cfg}, nil
}

// CreateAccessToken issues a signed access token. A zero ttl selects the
// configured default; a negative ttl is honored and yields an already
// expired token.
func (c *Codec) CreateAccessToken(claims Claims, ttl time.Duration) (string, error) {
	if ttl == 0 {
		ttl = c.cfg.AccessTokenTTL
	}
	claims.Kind = TokenKindAccess
	return c.sign(claims, ttl)
}

// CreateRefreshToken issues a signed refresh token with a fresh jti.
// Any caller-supplied jti is overwritten. A zero ttl selects the configured
// default; a negative ttl is honored.
func (c *Codec) CreateRefreshToken(claims Claims, ttl time.Duration) (string, error) {
	if ttl == 0 {
		ttl = c.cfg.RefreshTokenTTL
	}
	jti, err := password.GenerateURLSafeToken(jtiByteLength)
	if err != nil {
		return "", fmt.Errorf("jwt: generate jti: %w", err)
	}
	claims.Kind = TokenKindRefresh
	claims.ID = jti
	return c.sign(claims, ttl)
}

func (c *Codec) sign(claims Claims, ttl time.Duration) (string, error) {
	now := time.Now()
	claims.IssuedAt = gojwt.NewNumericDate(now)
	claims.ExpiresAt = gojwt.NewNumericDate(now.Add(ttl))

	token := gojwt.NewWithClaims(gojwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(c.cfg.Secret))
	if err != nil {
		return "", fmt.Errorf("jwt: sign token: %w", err)
	}
	return signed, nil
}

// Verify validates signature, structure, and expiry, then checks that the
// kind claim matches expectedKind. The kind claim is only consulted after
// the signature has been verified; unsigned claims are never branched on.
func (c *Codec) Verify(tokenString string, expectedKind TokenKind) (*Claims, error) {
	claims := &Claims{}
	token, err := gojwt.ParseWithClaims(tokenString, claims, c.keyFunc,
		gojwt.WithValidMethods([]string{gojwt.SigningMethodHS256.Alg()}),
	)
	if err != nil {
		if errors.Is(err, gojwt.ErrTokenExpired) {
			return nil, apperrors.TokenExpired()
		}
		return nil, apperrors.InvalidToken().WithCause(err)
	}
	if !token.Valid {
		return nil, apperrors.InvalidToken()
	}

	if claims.Kind != expectedKind {
		return nil, apperrors.TokenKindMismatch(string(expectedKind), string(claims.Kind))
	}
	return claims, nil
}

// HashRefreshToken returns a deterministic digest of a refresh token for
// at-rest comparison. It plays no part in authentication decisions here;
// the hook exists so a revocation store can be added later.
func (c *Codec) HashRefreshToken(token string) string {
	return password.HashSHA256(token)
}

func (c *Codec) keyFunc(token *gojwt.Token) (interface{}, error) {
	if token.Method.Alg() != gojwt.SigningMethodHS256.Alg() {
		return nil, fmt.Errorf("jwt: unexpected signing method: %s", token.Method.Alg())
	}
	return []byte(c.cfg.Secret), nil
}
