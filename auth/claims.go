package auth

import gojwt "github.com/golang-jwt/jwt/v5"

// TokenKind distinguishes the two token flavors. Access and refresh tokens
// are never interchangeable, even when cryptographically valid.
type TokenKind string

const (
	// TokenKindAccess marks short-lived tokens used on every authenticated
	// request. Access tokens embed email and username so request handling
	// needs no user lookup.
	TokenKindAccess TokenKind = "access"

	// TokenKindRefresh marks long-lived tokens exchanged for new pairs.
	// Refresh tokens carry a unique jti (RegisteredClaims.ID) to allow a
	// future revocation store without changing the token shape.
	TokenKindRefresh TokenKind = "refresh"
)

// Claims is the signed token payload. Subject is the user id; ID is the jti
// for refresh tokens.
type Claims struct {
	gojwt.RegisteredClaims
	Kind     TokenKind `json:"type"`
	Email    string    `json:"email,omitempty"`
	Username string    `json:"username,omitempty"`
}
