package server

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	apperrors "github.com/wihlarkop/authkit/errors"
)

// JSONResponse is the envelope every endpoint returns.
type JSONResponse struct {
	Data       any    `json:"data"`
	Message    any    `json:"message,omitempty"`
	Success    bool   `json:"success"`
	Meta       *Meta  `json:"meta,omitempty"`
	StatusCode int    `json:"status_code"`
	Timestamp  string `json:"timestamp,omitempty"`
	ErrorCode  string `json:"error_code,omitempty"`
}

// Meta carries pagination or other response metadata.
type Meta struct {
	Page                 int     `json:"page,omitempty"`
	Limit                int     `json:"limit,omitempty"`
	TotalData            int     `json:"total_data,omitempty"`
	ExecutionTimeSeconds float64 `json:"execution_time_seconds,omitempty"`
}

// RespondOK sends a 200 envelope wrapping data.
func RespondOK(c *gin.Context, data any, message string) {
	c.JSON(http.StatusOK, JSONResponse{
		Data:       data,
		Message:    message,
		Success:    true,
		StatusCode: http.StatusOK,
	})
}

// RespondCreated sends a 201 envelope wrapping data.
func RespondCreated(c *gin.Context, data any, message string) {
	c.JSON(http.StatusCreated, JSONResponse{
		Data:       data,
		Message:    message,
		Success:    true,
		StatusCode: http.StatusCreated,
	})
}

// RespondWithError inspects err: an *apperrors.AppError drives the status,
// message, and error code; anything else becomes a generic 500 that leaks no
// internal details.
func RespondWithError(c *gin.Context, err error) {
	appErr, ok := apperrors.AsAppError(err)
	if !ok {
		appErr = apperrors.Internal(err)
	}

	c.JSON(appErr.HTTPStatus, JSONResponse{
		Data:       nil,
		Message:    appErr.MessageValue(),
		Success:    false,
		StatusCode: appErr.HTTPStatus,
		Timestamp:  time.Now().Format(time.RFC3339),
		ErrorCode:  string(appErr.Code),
	})
}
