package middleware

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/yudha/sipkl/internal/app/messages"
	"github.com/yudha/sipkl/internal/app/models/dto"
	"github.com/yudha/sipkl/internal/pkg/apperrors"
	"github.com/yudha/sipkl/internal/pkg/logger"
)

// statusFor maps an error to its HTTP status through the sentinel chain.
func statusFor(err error) int {
	switch {
	case errors.Is(err, apperrors.ErrBadRequest):
		return http.StatusBadRequest
	case errors.Is(err, apperrors.ErrUnauthorized):
		return http.StatusUnauthorized
	case errors.Is(err, apperrors.ErrPermissionDenied):
		return http.StatusForbidden
	case errors.Is(err, apperrors.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, apperrors.ErrConflict):
		return http.StatusConflict
	case errors.Is(err, apperrors.ErrTeapot):
		return http.StatusTeapot
	default:
		return http.StatusInternalServerError
	}
}

// HandleAPIError writes the error envelope for a failed request. Known
// application errors carry their own user-facing message; anything else
// becomes an opaque 500.
func HandleAPIError(c *gin.Context, err error) {
	status := statusFor(err)
	message := messages.DataNotFound
	var data any

	var appErr *apperrors.Error
	if errors.As(err, &appErr) {
		message = appErr.Message
		data = appErr.Data
	} else if status == http.StatusInternalServerError {
		message = apperrors.ErrInternal.Error()
	}

	if status >= http.StatusInternalServerError {
		logger.Error().Err(err).Str("path", c.FullPath()).Msg("request failed")
	}

	c.JSON(status, dto.APIResponse{Status: status, Message: message, Data: data})
}
