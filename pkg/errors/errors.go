package errors

import (
	"errors"
	"fmt"
)

// NotFoundError represents an error when an entity is not found
type NotFoundError struct {
	Entity string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s not found", e.Entity)
}

// Is enables errors.Is() comparison for NotFoundError
func (e *NotFoundError) Is(target error) bool {
	t, ok := target.(*NotFoundError)
	if !ok {
		return false
	}
	return e.Entity == t.Entity
}

// ValidationError represents a rejected input
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("validation error: %s - %s", e.Field, e.Message)
	}
	return fmt.Sprintf("validation error: %s", e.Message)
}

// NewValidationError creates a ValidationError for a field
func NewValidationError(field, format string, args ...any) *ValidationError {
	return &ValidationError{Field: field, Message: fmt.Sprintf(format, args...)}
}

// AuthenticationError represents authentication-related errors
type AuthenticationError struct {
	Message string
}

func (e *AuthenticationError) Error() string {
	return e.Message
}

// RateLimitError is returned when a key has used up its allowance
type RateLimitError struct {
	Limit int
}

func (e *RateLimitError) Error() string {
	return fmt.Sprintf("rate limit of %d requests per day exceeded", e.Limit)
}

var (
	ErrDateOutOfRange  = &NotFoundError{Entity: "rotation date"}
	ErrMonthOutOfRange = &NotFoundError{Entity: "calendar month"}
	ErrAPIKeyNotFound  = &NotFoundError{Entity: "api key"}
	ErrUserNotFound    = &NotFoundError{Entity: "user"}
)

var (
	ErrUnsupportedRosterFormat = errors.New("unsupported roster format")
	ErrInvalidCredentials      = &AuthenticationError{Message: "invalid credentials"}
	ErrInvalidToken            = &AuthenticationError{Message: "invalid token"}
	ErrInvalidKeyFormat        = &AuthenticationError{Message: "invalid key format"}
	ErrInvalidKeySignature     = &AuthenticationError{Message: "invalid signature"}
	ErrAPIKeyRevoked           = &AuthenticationError{Message: "api key revoked"}
)

// IsValidation reports whether err is or wraps a ValidationError
func IsValidation(err error) bool {
	var v *ValidationError
	return errors.As(err, &v)
}

// IsNotFound reports whether err is or wraps a NotFoundError
func IsNotFound(err error) bool {
	var nf *NotFoundError
	return errors.As(err, &nf)
}

// IsAuthentication reports whether err is or wraps an AuthenticationError
func IsAuthentication(err error) bool {
	var a *AuthenticationError
	return errors.As(err, &a)
}

// IsRateLimit reports whether err is or wraps a RateLimitError
func IsRateLimit(err error) bool {
	var r *RateLimitError
	return errors.As(err, &r)
}
