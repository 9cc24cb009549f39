package handlers

import (
	"errors"
	"time"

	"github.com/gin-gonic/gin"

	apperrors "spendwise/internal/errors"
	"spendwise/internal/logger"
	"spendwise/internal/middleware"
	"spendwise/internal/validator"
)

// getUserID extracts the authenticated user ID from the Gin context.
// Returns ErrUnauthorized if not present.
func getUserID(c *gin.Context) (string, error) {
	userID := c.GetString("userID")
	if userID == "" {
		return "", apperrors.ErrUnauthorized
	}
	return userID, nil
}

// bindError turns a binding failure into an INVALID_INPUT error, listing
// per-field messages when the failure came from validation tags.
func bindError(err error) *apperrors.AppError {
	if fields := validator.Messages(err); len(fields) > 0 {
		return apperrors.WithFields(apperrors.ErrInvalidInput, "Invalid input", fields)
	}
	return apperrors.WithMessage(apperrors.ErrInvalidInput, "Malformed request body")
}

// parseFlexibleTime accepts YYYY-MM-DD or RFC 3339.
func parseFlexibleTime(s string) (time.Time, error) {
	t, ok := validator.ParseDate(s)
	if !ok {
		return time.Time{}, errors.New("invalid date: " + s)
	}
	return t, nil
}

// respondWithError writes a consistent JSON error response. If the error is an
// *AppError it uses the error's status code, code, message and fields.
// Otherwise it logs the unexpected error and returns a generic internal server error.
func respondWithError(c *gin.Context, err error) {
	var appErr *apperrors.AppError
	if errors.As(err, &appErr) {
		if appErr.Internal != nil {
			logger.Get().Errorw("app error",
				"code", appErr.Code,
				"internal", appErr.Internal.Error(),
				"path", c.Request.URL.Path,
			)
		}
		c.JSON(appErr.StatusCode, middleware.ErrorBody(appErr))
		return
	}

	logger.Get().Errorw("unexpected error",
		"error", err.Error(),
		"path", c.Request.URL.Path,
		"method", c.Request.Method,
	)
	c.JSON(apperrors.ErrInternalServer.StatusCode, middleware.ErrorBody(apperrors.ErrInternalServer))
}

// ErrorDetail represents the inner error object in an error response.
type ErrorDetail struct {
	Code    string            `json:"code"`
	Message string            `json:"message"`
	Fields  map[string]string `json:"fields,omitempty"`
}

// ErrorResponse represents an error response.
type ErrorResponse struct {
	Error ErrorDetail `json:"error"`
}

// MessageResponse is returned by operations that only confirm success.
type MessageResponse struct {
	Message string `json:"message"`
}
