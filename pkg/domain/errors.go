package domain

import "fmt"

// DomainError represents a domain-specific error with a code and message
type DomainError struct {
	Code    string
	Message string
	Err     error
}

func (e *DomainError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *DomainError) Unwrap() error {
	return e.Err
}

// Error codes
const (
	ErrCodeFetch        = "FETCH_FAILED"
	ErrCodeTimeout      = "FEED_TIMEOUT"
	ErrCodePersistence  = "PERSISTENCE_FAILED"
	ErrCodeUnauthorized = "UNAUTHORIZED"
	ErrCodeValidation   = "VALIDATION_ERROR"
	ErrCodeNotFound     = "NOT_FOUND"
	ErrCodeInternal     = "INTERNAL_ERROR"
)

// Error constructors

// NewFetchError wraps a failed feed read
func NewFetchError(feed string, err error) error {
	return &DomainError{
		Code:    ErrCodeFetch,
		Message: fmt.Sprintf("failed to load %s feed", feed),
		Err:     err,
	}
}

// NewTimeoutError reports a feed that exceeded its bounded wait
func NewTimeoutError(feed string) error {
	return &DomainError{
		Code:    ErrCodeTimeout,
		Message: fmt.Sprintf("%s feed timed out", feed),
	}
}

// NewPersistenceError wraps a failed remote status write issued after a
// successful optimistic local patch
func NewPersistenceError(err error) error {
	return &DomainError{
		Code:    ErrCodePersistence,
		Message: "failed to sync pipeline stage with server",
		Err:     err,
	}
}

// NewUnauthorizedError reports a request the upstream rejected as
// unauthenticated
func NewUnauthorizedError() error {
	return &DomainError{
		Code:    ErrCodeUnauthorized,
		Message: "upstream rejected credentials",
	}
}

// NewValidationError creates a new validation error
func NewValidationError(msg string) error {
	return &DomainError{
		Code:    ErrCodeValidation,
		Message: msg,
	}
}

// NewNotFoundError creates a new not found error
func NewNotFoundError(resource string) error {
	return &DomainError{
		Code:    ErrCodeNotFound,
		Message: fmt.Sprintf("%s not found", resource),
	}
}

// NewInternalError creates a new internal error
func NewInternalError(err error) error {
	return &DomainError{
		Code:    ErrCodeInternal,
		Message: "An internal error occurred",
		Err:     err,
	}
}

// Helper functions to check error types

// IsFetch checks if the error is a feed fetch error
func IsFetch(err error) bool {
	return codeOf(err) == ErrCodeFetch
}

// IsTimeout checks if the error is a bounded-wait timeout
func IsTimeout(err error) bool {
	return codeOf(err) == ErrCodeTimeout
}

// IsPersistence checks if the error is a persistence error
func IsPersistence(err error) bool {
	return codeOf(err) == ErrCodePersistence
}

// IsUnauthorized checks if the error is an unauthorized error
func IsUnauthorized(err error) bool {
	return codeOf(err) == ErrCodeUnauthorized
}

// IsValidation checks if the error is a validation error
func IsValidation(err error) bool {
	return codeOf(err) == ErrCodeValidation
}

// IsNotFound checks if the error is a not found error
func IsNotFound(err error) bool {
	return codeOf(err) == ErrCodeNotFound
}

// GetErrorCode extracts the error code from a domain error
func GetErrorCode(err error) string {
	if code := codeOf(err); code != "" {
		return code
	}
	return ErrCodeInternal
}

func codeOf(err error) string {
	if de, ok := err.(*DomainError); ok {
		return de.Code
	}
	return ""
}
