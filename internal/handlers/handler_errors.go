package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/bhhaskin/workspaces_app/internal/apperrors"
	"github.com/bhhaskin/workspaces_app/internal/middleware"
	"github.com/gin-gonic/gin"
)

// ErrorResponse is the generic error response structure for handlers.
type ErrorResponse struct {
	Error string `json:"error"`
}

// respondWithError maps a service error onto an HTTP status. Sentinel errors
// carry the semantics; an AppError overrides with its own code and message.
func respondWithError(c *gin.Context, err error, fallbackMsg string) {
	var appErr *apperrors.AppError
	if errors.As(err, &appErr) && appErr.Err == nil {
		c.JSON(appErr.Code, ErrorResponse{Error: appErr.Message})
		return
	}

	switch {
	case errors.Is(err, apperrors.ErrNotFound):
		c.JSON(http.StatusNotFound, ErrorResponse{Error: "Resource not found"})
	case errors.Is(err, apperrors.ErrForbidden):
		c.JSON(http.StatusForbidden, ErrorResponse{Error: "Forbidden"})
	case errors.Is(err, apperrors.ErrUnauthorized), errors.Is(err, apperrors.ErrRefreshTokenExpired):
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
	case errors.Is(err, apperrors.ErrValidation), errors.Is(err, apperrors.ErrInvalidOperation):
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: messageOf(err, "Invalid request")})
	case errors.Is(err, apperrors.ErrDuplicate), errors.Is(err, apperrors.ErrConflict), errors.Is(err, apperrors.ErrAlreadyResolved):
		c.JSON(http.StatusConflict, ErrorResponse{Error: messageOf(err, "Conflict")})
	case errors.Is(err, apperrors.ErrExpired):
		c.JSON(http.StatusGone, ErrorResponse{Error: "Invitation has expired"})
	default:
		logger := middleware.GetLoggerFromCtx(c.Request.Context())
		logger.Error(fallbackMsg, slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: fallbackMsg})
	}
}

// messageOf prefers the AppError message when one is wrapped in err.
func messageOf(err error, fallback string) string {
	var appErr *apperrors.AppError
	if errors.As(err, &appErr) && appErr.Message != "" {
		return appErr.Message
	}
	return fallback
}
