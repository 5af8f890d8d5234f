package errors

// ErrorCode represents a machine-readable error code, stable across releases
// and distinct from the human-readable message.
type ErrorCode string

// Authentication errors
const (
	// ErrCodeInvalidCredentials indicates a failed login. The same code and
	// message are used whether the account is missing or the password is
	// wrong, to prevent account enumeration.
	ErrCodeInvalidCredentials ErrorCode = "INVALID_CREDENTIALS"
	// ErrCodeUnauthorized indicates a malformed or missing Authorization header.
	ErrCodeUnauthorized ErrorCode = "UNAUTHORIZED"
	// ErrCodeTokenExpired indicates the token's expiry has passed.
	ErrCodeTokenExpired ErrorCode = "TOKEN_EXPIRED"
	// ErrCodeInvalidToken indicates a token with a bad signature or structure.
	ErrCodeInvalidToken ErrorCode = "INVALID_TOKEN"
	// ErrCodeInvalidTokenType indicates a token whose kind claim does not
	// match the kind the caller expected (access vs refresh).
	ErrCodeInvalidTokenType ErrorCode = "INVALID_TOKEN_TYPE"
)

// User errors
const (
	// ErrCodeUserAlreadyExists indicates a registration conflict on email or username.
	ErrCodeUserAlreadyExists ErrorCode = "USER_ALREADY_EXISTS"
	// ErrCodeUserNotFound indicates the user id no longer resolves to an active row.
	ErrCodeUserNotFound ErrorCode = "USER_NOT_FOUND"
)

// Request errors
const (
	// ErrCodeRequestValidation indicates one or more invalid request fields.
	ErrCodeRequestValidation ErrorCode = "REQUEST_VALIDATION"
)

// Internal errors
const (
	// ErrCodeInternal indicates an unexpected server error. Details are never
	// sent to the caller.
	ErrCodeInternal ErrorCode = "INTERNAL_ERROR"
)
