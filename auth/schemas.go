package auth

// RegisterRequest is the registration input.
type RegisterRequest struct {
	Email    string  `json:"email" validate:"required,email"`
	Username string  `json:"username" validate:"required,min=3,max=100"`
	Password string  `json:"password" validate:"required,min=8"`
	FullName *string `json:"full_name,omitempty" validate:"omitempty,max=255"`
}

// LoginRequest is the login input.
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=8"`
}

// RefreshRequest carries the refresh token to exchange for a new pair.
type RefreshRequest struct {
	RefreshToken string `json:"refresh_token" validate:"required"`
}

// TokenPair is the issued credential pair.
type TokenPair struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
	TokenType    string `json:"token_type"`
}
