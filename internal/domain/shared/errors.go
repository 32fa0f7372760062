package shared

import "fmt"

// DomainError represents a domain-level error
type DomainError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Field   string `json:"field,omitempty"`
}

// Error implements the error interface
func (e *DomainError) Error() string {
	return e.Message
}

// Is allows errors.Is matching against the sentinel errors below by code
func (e *DomainError) Is(target error) bool {
	t, ok := target.(*DomainError)
	if !ok {
		return false
	}
	return e.Code == t.Code
}

// NewDomainError creates a new domain error
func NewDomainError(code, message string) *DomainError {
	return &DomainError{
		Code:    code,
		Message: message,
	}
}

// Error codes used across the domain
const (
	CodeValidation             = "VALIDATION_ERROR"
	CodeNotFound               = "NOT_FOUND"
	CodeDuplicateKey           = "DUPLICATE_KEY"
	CodeInvalidStateTransition = "INVALID_STATE_TRANSITION"
	CodeInsufficientStock      = "INSUFFICIENT_STOCK"
	CodeConcurrencyConflict    = "CONCURRENCY_CONFLICT"
)

// Common domain errors
var (
	ErrValidation             = NewDomainError(CodeValidation, "Invalid input provided")
	ErrNotFound               = NewDomainError(CodeNotFound, "Resource not found")
	ErrDuplicateKey           = NewDomainError(CodeDuplicateKey, "Resource already exists")
	ErrInvalidStateTransition = NewDomainError(CodeInvalidStateTransition, "Operation not allowed in current state")
	ErrInsufficientStock      = NewDomainError(CodeInsufficientStock, "Insufficient stock available")
	ErrConcurrencyConflict    = NewDomainError(CodeConcurrencyConflict, "Resource was modified by another process")
)

// NewValidationError creates a validation error with field-level detail
func NewValidationError(field, message string) *DomainError {
	return &DomainError{
		Code:    CodeValidation,
		Message: message,
		Field:   field,
	}
}

// NewNotFoundError creates a not-found error naming the missing resource
func NewNotFoundError(resource string) *DomainError {
	return &DomainError{
		Code:    CodeNotFound,
		Message: fmt.Sprintf("%s not found", resource),
	}
}

// NewDuplicateKeyError creates a conflict error for a unique-key collision
func NewDuplicateKeyError(resource, key string) *DomainError {
	return &DomainError{
		Code:    CodeDuplicateKey,
		Message: fmt.Sprintf("%s with key %q already exists", resource, key),
	}
}

// NewInvalidStateTransitionError creates an error naming the current and requested states
func NewInvalidStateTransitionError(current, requested string) *DomainError {
	return &DomainError{
		Code:    CodeInvalidStateTransition,
		Message: fmt.Sprintf("cannot transition from %s to %s", current, requested),
	}
}

// NewInsufficientStockError creates an error describing a failed deduction
func NewInsufficientStockError(requested, available int) *DomainError {
	return &DomainError{
		Code:    CodeInsufficientStock,
		Message: fmt.Sprintf("requested %d but only %d available", requested, available),
	}
}

// ErrorCode extracts the domain error code from an error, or empty string
func ErrorCode(err error) string {
	if de, ok := err.(*DomainError); ok {
		return de.Code
	}
	return ""
}
