package httputil

import (
	"errors"
	"log/slog"
	"net/http"

	"feedback-service/internal/apperrors"

	"github.com/gin-gonic/gin"
)

type ErrorResponse struct {
	Error string `json:"error"`
}

// RespondWithError writes an error response in JSON format
func RespondWithError(c *gin.Context, code int, message string) {
	c.AbortWithStatusJSON(code, ErrorResponse{Error: message})
}

// RespondWithJSON writes a JSON response
func RespondWithJSON(c *gin.Context, code int, payload interface{}) {
	c.JSON(code, payload)
}

// RespondWithServiceError maps a domain error to its user-facing status and message.
// Anything unclassified is logged with full detail and answered with an opaque message.
func RespondWithServiceError(c *gin.Context, logger *slog.Logger, err error) {
	ctx := c.Request.Context()
	var appErr *apperrors.Error

	switch {
	case errors.As(err, &appErr) && appErr.UserFacing():
		logger.InfoContext(ctx, "request rejected", "path", c.FullPath(), "reason", err.Error())
		RespondWithError(c, statusFor(appErr.Kind), appErr.Message)
	case errors.Is(err, apperrors.ErrStorageConnectivity):
		logger.ErrorContext(ctx, "storage unavailable", "path", c.FullPath(), "error", err)
		RespondWithError(c, http.StatusServiceUnavailable, "Service temporarily unavailable. Try again later.")
	default:
		logger.ErrorContext(ctx, "request failed", "path", c.FullPath(), "error", err)
		RespondWithError(c, http.StatusInternalServerError, "Something went wrong. Try again later.")
	}
}

func statusFor(kind error) int {
	switch kind {
	case apperrors.ErrAuthentication, apperrors.ErrUnauthorized:
		return http.StatusUnauthorized
	case apperrors.ErrDuplicateIdentity, apperrors.ErrDuplicateFeedback:
		return http.StatusConflict
	case apperrors.ErrValidation:
		return http.StatusBadRequest
	case apperrors.ErrLogFileMissing:
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}
