package dto

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGetHTTPStatus(t *testing.T) {
	tests := []struct {
		code     string
		expected int
	}{
		{ErrCodeNotFound, http.StatusNotFound},
		{ErrCodeConflict, http.StatusConflict},
		{ErrCodeValidation, http.StatusBadRequest},
		{ErrCodeInvalidState, http.StatusUnprocessableEntity},
		{ErrCodeUnauthorized, http.StatusUnauthorized},
		{ErrCodeRateLimited, http.StatusTooManyRequests},
		{"ERR_SOMETHING_ELSE", http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.code, func(t *testing.T) {
			assert.Equal(t, tt.expected, GetHTTPStatus(tt.code))
		})
	}
}

func TestNormalizeErrorCode(t *testing.T) {
	tests := []struct {
		code     string
		expected string
	}{
		{"NOT_FOUND", ErrCodeNotFound},
		{"OWNER_HAS_PROPERTIES", ErrCodeConflict},
		{"PROPERTY_HAS_ACTIVE_LEASE", ErrCodeConflict},
		{"BILL_ALREADY_PAID", ErrCodeInvalidState},
		{"INVALID_BILL_TRANSITION", ErrCodeInvalidState},
		{"INVALID_FEE_PERCENT", ErrCodeValidation},
		{"INVALID_ADDRESS", ErrCodeValidation},
		{"LINE_ITEMS_MISMATCH", ErrCodeValidation},
		{"TAX_ALREADY_PAID", ErrCodeInvalidState},
		{ErrCodeNotFound, ErrCodeNotFound},
		{"SOMETHING_ODD", ErrCodeBusinessRule},
	}

	for _, tt := range tests {
		t.Run(tt.code, func(t *testing.T) {
			assert.Equal(t, tt.expected, NormalizeErrorCode(tt.code))
		})
	}
}

func TestNormalizedCodesResolveToAStatus(t *testing.T) {
	for code := range domainErrorCodeMapping {
		normalized := NormalizeErrorCode(code)
		_, ok := ErrorCodeHTTPStatus[normalized]
		assert.True(t, ok, "domain code %s maps to an unknown API code %s", code, normalized)
	}
}
