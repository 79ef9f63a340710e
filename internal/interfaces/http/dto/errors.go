package dto

import (
	"net/http"
	"strings"
)

// Error code constants organized by category.
// Format: ERR_<CATEGORY>_<DESCRIPTION>

// General error codes
const (
	ErrCodeUnknown  = "ERR_UNKNOWN"
	ErrCodeInternal = "ERR_INTERNAL"
)

// Validation error codes
const (
	ErrCodeValidation = "ERR_VALIDATION"
)

// Authentication error codes
const (
	ErrCodeUnauthorized = "ERR_UNAUTHORIZED"
	ErrCodeForbidden    = "ERR_FORBIDDEN"
	ErrCodeTokenExpired = "ERR_TOKEN_EXPIRED"
	ErrCodeTokenInvalid = "ERR_TOKEN_INVALID"
)

// Resource error codes
const (
	ErrCodeNotFound      = "ERR_NOT_FOUND"
	ErrCodeAlreadyExists = "ERR_ALREADY_EXISTS"
	ErrCodeConflict      = "ERR_CONFLICT"
)

// Business rule error codes
const (
	ErrCodeInvalidState = "ERR_INVALID_STATE"
	ErrCodeBusinessRule = "ERR_BUSINESS_RULE"
)

// Input error codes
const (
	ErrCodeBadRequest   = "ERR_BAD_REQUEST"
	ErrCodeInvalidInput = "ERR_INVALID_INPUT"
)

// Rate limiting error codes
const (
	ErrCodeRateLimited = "ERR_RATE_LIMITED"
)

// ErrorCodeHTTPStatus maps error codes to HTTP status codes
var ErrorCodeHTTPStatus = map[string]int{
	ErrCodeUnknown:  http.StatusInternalServerError,
	ErrCodeInternal: http.StatusInternalServerError,

	ErrCodeValidation: http.StatusBadRequest,

	ErrCodeUnauthorized: http.StatusUnauthorized,
	ErrCodeForbidden:    http.StatusForbidden,
	ErrCodeTokenExpired: http.StatusUnauthorized,
	ErrCodeTokenInvalid: http.StatusUnauthorized,

	ErrCodeNotFound:      http.StatusNotFound,
	ErrCodeAlreadyExists: http.StatusConflict,
	ErrCodeConflict:      http.StatusConflict,

	ErrCodeInvalidState: http.StatusUnprocessableEntity,
	ErrCodeBusinessRule: http.StatusUnprocessableEntity,

	ErrCodeBadRequest:   http.StatusBadRequest,
	ErrCodeInvalidInput: http.StatusBadRequest,

	ErrCodeRateLimited: http.StatusTooManyRequests,
}

// GetHTTPStatus returns the HTTP status code for an error code.
// Unknown codes map to 500.
func GetHTTPStatus(code string) int {
	if status, ok := ErrorCodeHTTPStatus[code]; ok {
		return status
	}
	return http.StatusInternalServerError
}

// domainErrorCodeMapping maps domain error codes to the standardized
// API codes. Conflict guards (records that block a delete) map to
// conflict; state machine rejections map to invalid state.
var domainErrorCodeMapping = map[string]string{
	"NOT_FOUND":      ErrCodeNotFound,
	"ALREADY_EXISTS": ErrCodeAlreadyExists,
	"CONFLICT":       ErrCodeConflict,
	"UNAUTHORIZED":   ErrCodeUnauthorized,
	"FORBIDDEN":      ErrCodeForbidden,
	"TOKEN_EXPIRED":  ErrCodeTokenExpired,
	"TOKEN_INVALID":  ErrCodeTokenInvalid,
	"INTERNAL_ERROR": ErrCodeInternal,

	"OWNER_HAS_PROPERTIES":      ErrCodeConflict,
	"PROPERTY_HAS_ACTIVE_LEASE": ErrCodeConflict,
	"TENANT_HAS_ACTIVE_LEASE":   ErrCodeConflict,
	"EXPENSE_FROM_BILL":         ErrCodeConflict,
	"EXPENSE_NOT_EDITABLE":      ErrCodeConflict,

	"INVALID_STATE":             ErrCodeInvalidState,
	"INVALID_TRANSITION":        ErrCodeInvalidState,
	"INVALID_BILL_TRANSITION":   ErrCodeInvalidState,
	"INVALID_TASK_TRANSITION":   ErrCodeInvalidState,
	"INVALID_NOTICE_TRANSITION": ErrCodeInvalidState,
	"BILL_ALREADY_PAID":         ErrCodeInvalidState,
	"LEASE_ALREADY_TERMINATED":  ErrCodeInvalidState,
	"TAX_ALREADY_PAID":          ErrCodeInvalidState,
	"TASK_COMPLETED":            ErrCodeInvalidState,
	"REHAB_COMPLETED":           ErrCodeInvalidState,
	"MILESTONE_COMPLETED":       ErrCodeInvalidState,

	"LINE_ITEMS_MISMATCH": ErrCodeValidation,
	"DETAILS_MISMATCH":    ErrCodeValidation,
}

// NormalizeErrorCode converts a domain error code to the standardized
// API format. Unmapped INVALID_* codes are treated as validation
// failures; anything else falls back to a business rule violation.
func NormalizeErrorCode(code string) string {
	if apiCode, ok := domainErrorCodeMapping[code]; ok {
		return apiCode
	}
	if strings.HasPrefix(code, "ERR_") {
		return code
	}
	if strings.HasPrefix(code, "INVALID_") {
		return ErrCodeValidation
	}
	return ErrCodeBusinessRule
}
