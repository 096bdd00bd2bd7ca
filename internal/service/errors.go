package service

import (
	"errors"
	"fmt"

	"github.com/taskcore/task-tracker-api/internal/validation"
)

// Closed error taxonomy. Every failure a service can return wraps one of
// these sentinels, so handlers map them with errors.Is.
var (
	ErrValidation         = errors.New("validation error")
	ErrUserNotFound       = errors.New("user not found")
	ErrTaskNotFound       = errors.New("task not found")
	ErrProjectNotFound    = errors.New("project not found")
	ErrAccessDenied       = errors.New("access denied")
	ErrUsernameTaken      = errors.New("username already exists")
	ErrWeakPassword       = errors.New("password must be at least 6 characters")
	ErrInvalidCredentials = errors.New("invalid credentials")
)

// ValidationError carries the full ordered violation list, never just the
// first failure.
type ValidationError struct {
	Violations []validation.Violation
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation error: %d violation(s)", len(e.Violations))
}

func (e *ValidationError) Unwrap() error { return ErrValidation }

func newValidationError(vs []validation.Violation) error {
	return &ValidationError{Violations: vs}
}
