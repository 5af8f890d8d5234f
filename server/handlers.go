package server

import (
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/wihlarkop/authkit/auth"
	apperrors "github.com/wihlarkop/authkit/errors"
	"github.com/wihlarkop/authkit/validation"
)

const bearerPrefix = "Bearer "

// handleRegister creates a new user account.
func (s *Server) handleRegister(c *gin.Context) {
	var req auth.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondWithError(c, apperrors.Validation([]string{"request: invalid JSON body"}))
		return
	}
	if err := validation.Validate(req); err != nil {
		RespondWithError(c, err)
		return
	}

	u, err := s.auth.Register(c.Request.Context(), req)
	if err != nil {
		RespondWithError(c, err)
		return
	}
	RespondCreated(c, u, "User registered successfully")
}

// handleLogin verifies credentials and issues a token pair.
func (s *Server) handleLogin(c *gin.Context) {
	var req auth.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondWithError(c, apperrors.Validation([]string{"request: invalid JSON body"}))
		return
	}
	if err := validation.Validate(req); err != nil {
		RespondWithError(c, err)
		return
	}

	pair, err := s.auth.Login(c.Request.Context(), req)
	if err != nil {
		RespondWithError(c, err)
		return
	}
	RespondOK(c, pair, "Login successful")
}

// handleRefresh exchanges a refresh token for a new token pair.
func (s *Server) handleRefresh(c *gin.Context) {
	var req auth.RefreshRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondWithError(c, apperrors.Validation([]string{"request: invalid JSON body"}))
		return
	}
	if err := validation.Validate(req); err != nil {
		RespondWithError(c, err)
		return
	}

	pair, err := s.auth.RefreshAccessToken(req.RefreshToken)
	if err != nil {
		RespondWithError(c, err)
		return
	}
	RespondOK(c, pair, "Token refreshed successfully")
}

// handleMe resolves the user behind the bearer access token.
func (s *Server) handleMe(c *gin.Context) {
	token, err := bearerToken(c)
	if err != nil {
		RespondWithError(c, err)
		return
	}

	u, err := s.auth.CurrentUser(c.Request.Context(), token)
	if err != nil {
		RespondWithError(c, err)
		return
	}
	RespondOK(c, u, "User retrieved successfully")
}

// bearerToken extracts the token from the Authorization header. A missing or
// malformed header fails before any token parsing happens.
func bearerToken(c *gin.Context) (string, error) {
	header := c.GetHeader("Authorization")
	if header == "" {
		return "", apperrors.Unauthorized("Authorization header is missing")
	}
	if !strings.HasPrefix(header, bearerPrefix) {
		return "", apperrors.Unauthorized("Invalid authorization header format")
	}
	return header[len(bearerPrefix):], nil
}
