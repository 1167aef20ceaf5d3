// Package httputil provides HTTP utility functions for request and response handling.
// Every error leaves the API as {"success": false, "error": <status>, "message": <text>}.
package httputil

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	authDomain "github.com/allisson/coffeeshop/internal/auth/domain"
	apperrors "github.com/allisson/coffeeshop/internal/errors"
)

// ErrorResponse represents the uniform error envelope.
type ErrorResponse struct {
	Success bool   `json:"success"`
	Error   int    `json:"error"`
	Message string `json:"message"`
}

// statusMessages holds the fixed message returned for each translated status.
var statusMessages = map[int]string{
	http.StatusBadRequest:          "Bad Request",
	http.StatusUnauthorized:        "Unauthorized",
	http.StatusForbidden:           "Forbidden",
	http.StatusNotFound:            "Not Found",
	http.StatusMethodNotAllowed:    "Method Not Allowed",
	http.StatusUnprocessableEntity: "Unprocessable",
	http.StatusTooManyRequests:     "Too Many Requests",
	http.StatusInternalServerError: "Internal Server Error",
}

// StatusMessage returns the envelope message for status, falling back to the standard status text.
func StatusMessage(status int) string {
	if msg, ok := statusMessages[status]; ok {
		return msg
	}
	return http.StatusText(status)
}

// NewErrorResponse builds the envelope for status with its fixed message.
func NewErrorResponse(status int) ErrorResponse {
	return ErrorResponse{
		Success: false,
		Error:   status,
		Message: StatusMessage(status),
	}
}

// AbortWithStatus writes the envelope for status and stops the handler chain.
func AbortWithStatus(c *gin.Context, status int) {
	c.AbortWithStatusJSON(status, NewErrorResponse(status))
}

// statusFromError maps domain errors to HTTP status codes.
func statusFromError(err error) int {
	switch {
	case apperrors.Is(err, apperrors.ErrBadRequest):
		return http.StatusBadRequest
	case apperrors.Is(err, apperrors.ErrUnauthorized):
		return http.StatusUnauthorized
	case apperrors.Is(err, apperrors.ErrForbidden):
		return http.StatusForbidden
	case apperrors.Is(err, apperrors.ErrNotFound):
		return http.StatusNotFound
	case apperrors.Is(err, apperrors.ErrMethodNotAllowed):
		return http.StatusMethodNotAllowed
	case apperrors.Is(err, apperrors.ErrInvalidInput), apperrors.Is(err, apperrors.ErrUnprocessable):
		return http.StatusUnprocessableEntity
	case apperrors.Is(err, apperrors.ErrTooManyRequests):
		return http.StatusTooManyRequests
	default:
		return http.StatusInternalServerError
	}
}

// HandleErrorGin maps err to its status and writes the error envelope. An AuthError
// keeps its own status code and uses its description as the message.
func HandleErrorGin(c *gin.Context, err error, logger *slog.Logger) {
	if err == nil {
		return
	}

	var response ErrorResponse
	var authErr *authDomain.AuthError
	if apperrors.As(err, &authErr) {
		response = ErrorResponse{
			Success: false,
			Error:   authErr.StatusCode,
			Message: authErr.Description,
		}
	} else {
		response = NewErrorResponse(statusFromError(err))
	}

	if logger != nil && c.Request != nil {
		level := slog.LevelWarn
		if response.Error >= http.StatusInternalServerError {
			level = slog.LevelError
		}
		logger.Log(c.Request.Context(), level, "request failed",
			slog.Int("status_code", response.Error),
			slog.String("path", c.Request.URL.Path),
			slog.Any("error", err),
		)
	}

	c.AbortWithStatusJSON(response.Error, response)
}

// HandleBadRequestGin writes a 400 envelope for malformed JSON bodies or parameters.
func HandleBadRequestGin(c *gin.Context, err error, logger *slog.Logger) {
	if logger != nil {
		logger.Warn("bad request", slog.Any("error", err))
	}

	AbortWithStatus(c, http.StatusBadRequest)
}

// HandleValidationErrorGin writes a 422 envelope for requests that parse but fail validation.
func HandleValidationErrorGin(c *gin.Context, err error, logger *slog.Logger) {
	if logger != nil {
		logger.Warn("validation failed", slog.Any("error", err))
	}

	AbortWithStatus(c, http.StatusUnprocessableEntity)
}
