package handler

import (
	"errors"
	"net/http"

	"go.uber.org/zap"

	"github.com/taskcore/task-tracker-api/internal/service"
	"github.com/taskcore/task-tracker-api/pkg/respond"
)

// writeError maps the service error taxonomy onto HTTP codes. Anything
// outside the taxonomy is logged and hidden behind a 500.
func writeError(w http.ResponseWriter, r *http.Request, logger *zap.Logger, err error) {
	var vErr *service.ValidationError
	switch {
	case errors.As(err, &vErr):
		respond.Error(w, r, http.StatusBadRequest, "VALIDATION_ERROR", "validation failed", vErr.Violations)
	case errors.Is(err, service.ErrUserNotFound):
		respond.Error(w, r, http.StatusNotFound, "USER_NOT_FOUND", "user not found", nil)
	case errors.Is(err, service.ErrTaskNotFound):
		respond.Error(w, r, http.StatusNotFound, "TASK_NOT_FOUND", "task not found", nil)
	case errors.Is(err, service.ErrProjectNotFound):
		respond.Error(w, r, http.StatusNotFound, "PROJECT_NOT_FOUND", "project not found", nil)
	case errors.Is(err, service.ErrAccessDenied):
		respond.Error(w, r, http.StatusForbidden, "ACCESS_DENIED", "access denied", nil)
	case errors.Is(err, service.ErrUsernameTaken):
		respond.Error(w, r, http.StatusConflict, "USERNAME_TAKEN", "username already exists", nil)
	case errors.Is(err, service.ErrWeakPassword):
		respond.Error(w, r, http.StatusBadRequest, "WEAK_PASSWORD", "password must be at least 6 characters", nil)
	case errors.Is(err, service.ErrInvalidCredentials):
		respond.Error(w, r, http.StatusUnauthorized, "INVALID_CREDENTIALS", "invalid credentials", nil)
	default:
		logger.Error("internal error", zap.Error(err))
		respond.Error(w, r, http.StatusInternalServerError, "INTERNAL", "internal error", nil)
	}
}
