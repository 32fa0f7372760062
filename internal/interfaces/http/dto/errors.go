package dto

import (
	"net/http"

	"github.com/phf/backend/internal/domain/shared"
)

// API error codes returned in the response envelope
const (
	ErrCodeUnknown             = "ERR_UNKNOWN"
	ErrCodeInternal            = "ERR_INTERNAL"
	ErrCodeBadRequest          = "ERR_BAD_REQUEST"
	ErrCodeValidation          = "ERR_VALIDATION"
	ErrCodeNotFound            = "ERR_NOT_FOUND"
	ErrCodeAlreadyExists       = "ERR_ALREADY_EXISTS"
	ErrCodeInvalidState        = "ERR_INVALID_STATE"
	ErrCodeInsufficientStock   = "ERR_INSUFFICIENT_STOCK"
	ErrCodeConcurrencyConflict = "ERR_CONCURRENCY_CONFLICT"
)

// ErrorCodeHTTPStatus maps API error codes to HTTP status codes
var ErrorCodeHTTPStatus = map[string]int{
	ErrCodeUnknown:             http.StatusInternalServerError,
	ErrCodeInternal:            http.StatusInternalServerError,
	ErrCodeBadRequest:          http.StatusBadRequest,
	ErrCodeValidation:          http.StatusBadRequest,
	ErrCodeNotFound:            http.StatusNotFound,
	ErrCodeAlreadyExists:       http.StatusConflict,
	ErrCodeInvalidState:        http.StatusConflict,
	ErrCodeInsufficientStock:   http.StatusUnprocessableEntity,
	ErrCodeConcurrencyConflict: http.StatusConflict,
}

// GetHTTPStatus returns the HTTP status for an API error code
func GetHTTPStatus(code string) int {
	if status, ok := ErrorCodeHTTPStatus[code]; ok {
		return status
	}
	return http.StatusInternalServerError
}

// domainErrorCodes maps domain error codes to API error codes
var domainErrorCodes = map[string]string{
	shared.CodeValidation:             ErrCodeValidation,
	shared.CodeNotFound:               ErrCodeNotFound,
	shared.CodeDuplicateKey:           ErrCodeAlreadyExists,
	shared.CodeInvalidStateTransition: ErrCodeInvalidState,
	shared.CodeInsufficientStock:      ErrCodeInsufficientStock,
	shared.CodeConcurrencyConflict:    ErrCodeConcurrencyConflict,
}

// NormalizeErrorCode translates a domain error code into its API counterpart
func NormalizeErrorCode(domainCode string) string {
	if code, ok := domainErrorCodes[domainCode]; ok {
		return code
	}
	return ErrCodeUnknown
}
