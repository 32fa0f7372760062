package dto

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/phf/backend/internal/domain/shared"
)

func TestNormalizeErrorCode(t *testing.T) {
	tests := []struct {
		name       string
		domainCode string
		want       string
	}{
		{"validation", shared.CodeValidation, ErrCodeValidation},
		{"not found", shared.CodeNotFound, ErrCodeNotFound},
		{"duplicate key", shared.CodeDuplicateKey, ErrCodeAlreadyExists},
		{"invalid transition", shared.CodeInvalidStateTransition, ErrCodeInvalidState},
		{"insufficient stock", shared.CodeInsufficientStock, ErrCodeInsufficientStock},
		{"concurrency conflict", shared.CodeConcurrencyConflict, ErrCodeConcurrencyConflict},
		{"unmapped", "SOMETHING_ELSE", ErrCodeUnknown},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, NormalizeErrorCode(tt.domainCode))
		})
	}
}

func TestGetHTTPStatus(t *testing.T) {
	assert.Equal(t, http.StatusBadRequest, GetHTTPStatus(ErrCodeValidation))
	assert.Equal(t, http.StatusNotFound, GetHTTPStatus(ErrCodeNotFound))
	assert.Equal(t, http.StatusConflict, GetHTTPStatus(ErrCodeAlreadyExists))
	assert.Equal(t, http.StatusConflict, GetHTTPStatus(ErrCodeInvalidState))
	assert.Equal(t, http.StatusUnprocessableEntity, GetHTTPStatus(ErrCodeInsufficientStock))
	assert.Equal(t, http.StatusInternalServerError, GetHTTPStatus("ERR_NOPE"))
}

func TestResponseEnvelope(t *testing.T) {
	ok := NewSuccessResponse(map[string]string{"k": "v"})
	assert.True(t, ok.Success)
	assert.Nil(t, ok.Error)

	withMeta := NewSuccessResponseWithMeta([]int{1, 2}, Meta{Page: 1, PageSize: 20, Total: 2, TotalPages: 1})
	assert.True(t, withMeta.Success)
	assert.NotNil(t, withMeta.Meta)
	assert.Equal(t, int64(2), withMeta.Meta.Total)

	bad := NewErrorResponseWithRequestID(ErrCodeNotFound, "product not found", "req-1")
	assert.False(t, bad.Success)
	assert.Equal(t, ErrCodeNotFound, bad.Error.Code)
	assert.Equal(t, "req-1", bad.Error.RequestID)
}
