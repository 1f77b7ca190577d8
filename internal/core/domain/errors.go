package domain

import (
	"errors"
	"strings"
)

var (
	ErrValidationFailed   = errors.New("validation failed")
	ErrMissingToken       = errors.New("missing token")
	ErrInvalidToken       = errors.New("invalid token")
	ErrExpiredToken       = errors.New("token has expired")
	ErrInvalidTaskID      = errors.New("invalid task id")
	ErrTaskNotFound       = errors.New("task not found")
	ErrStoreUnavailable   = errors.New("store unavailable")
	ErrUserExists         = errors.New("user already exists")
	ErrUserNotFound       = errors.New("user not found")
	ErrInvalidCredentials = errors.New("invalid credentials")
)

// FieldError is one violated rule. Its shape follows the error entries
// returned to API clients.
type FieldError struct {
	Field   string
	Message string
	Value   any
}

// ValidationError accumulates every rule violated by a single request.
type ValidationError struct {
	Errors []FieldError
}

func (e *ValidationError) Error() string {
	fields := make([]string, 0, len(e.Errors))
	for _, fe := range e.Errors {
		fields = append(fields, fe.Field+": "+fe.Message)
	}
	return "validation failed: " + strings.Join(fields, "; ")
}

func (e *ValidationError) Unwrap() error {
	return ErrValidationFailed
}

// HasField reports whether at least one violation concerns field.
func (e *ValidationError) HasField(field string) bool {
	for _, fe := range e.Errors {
		if fe.Field == field {
			return true
		}
	}
	return false
}
