package dto

import (
	"net/http"
	"strings"
)

// Error codes returned in ErrorInfo.Code. Format: ERR_<CATEGORY>_<DESCRIPTION>

// General
const (
	ErrCodeUnknown  = "ERR_UNKNOWN"
	ErrCodeInternal = "ERR_INTERNAL"
)

// Validation
const (
	ErrCodeValidation = "ERR_VALIDATION"
	ErrCodeBadRequest = "ERR_BAD_REQUEST"
	// ErrCodeInvalidInput is a domain rule rejecting a value
	ErrCodeInvalidInput = "ERR_INVALID_INPUT"
	ErrCodeInvalidJSON  = "ERR_INVALID_JSON"
	ErrCodeTooLarge     = "ERR_REQUEST_TOO_LARGE"
)

// Authentication
const (
	ErrCodeUnauthorized       = "ERR_UNAUTHORIZED"
	ErrCodeForbidden          = "ERR_FORBIDDEN"
	ErrCodeTokenExpired       = "ERR_TOKEN_EXPIRED"
	ErrCodeTokenInvalid       = "ERR_TOKEN_INVALID"
	ErrCodeTokenRevoked       = "ERR_TOKEN_REVOKED"
	ErrCodeInvalidCredentials = "ERR_INVALID_CREDENTIALS"
	ErrCodeAccountDisabled    = "ERR_ACCOUNT_DISABLED"
)

// Resources
const (
	ErrCodeNotFound      = "ERR_NOT_FOUND"
	ErrCodeAlreadyExists = "ERR_ALREADY_EXISTS"
	ErrCodeConflict      = "ERR_CONFLICT"
)

// Business rules
const (
	ErrCodeInvalidState       = "ERR_INVALID_STATE"
	ErrCodeBusinessRule       = "ERR_BUSINESS_RULE"
	ErrCodeInsufficientStock  = "ERR_INSUFFICIENT_STOCK"
	ErrCodeProductUnavailable = "ERR_PRODUCT_UNAVAILABLE"
	ErrCodeCartEmpty          = "ERR_CART_EMPTY"
	ErrCodeCourierUnavailable = "ERR_COURIER_UNAVAILABLE"
)

// Payments
const (
	ErrCodePaymentFailed           = "ERR_PAYMENT_FAILED"
	ErrCodePaymentUnavailable      = "ERR_PAYMENT_UNAVAILABLE"
	ErrCodePaymentAlreadyExecuted  = "ERR_PAYMENT_ALREADY_EXECUTED"
	ErrCodePaymentComingSoon       = "ERR_PAYMENT_COMING_SOON"
	ErrCodePaymentGatewayNotConfig = "ERR_PAYMENT_GATEWAY_NOT_CONFIGURED"
)

// Files and rendering
const (
	ErrCodeCoverTooLarge        = "ERR_COVER_TOO_LARGE"
	ErrCodeCoverType            = "ERR_COVER_TYPE"
	ErrCodeStorageUnavailable   = "ERR_STORAGE_UNAVAILABLE"
	ErrCodeInvoiceUnavailable   = "ERR_INVOICE_UNAVAILABLE"
	ErrCodeRateLimited          = "ERR_RATE_LIMITED"
	ErrCodeUnsupportedMediaType = "ERR_UNSUPPORTED_MEDIA_TYPE"
)

// ErrorCodeHTTPStatus maps error codes to HTTP status codes
var ErrorCodeHTTPStatus = map[string]int{
	ErrCodeUnknown:  http.StatusInternalServerError,
	ErrCodeInternal: http.StatusInternalServerError,

	ErrCodeValidation:   http.StatusBadRequest,
	ErrCodeBadRequest:   http.StatusBadRequest,
	ErrCodeInvalidInput: http.StatusBadRequest,
	ErrCodeInvalidJSON:  http.StatusBadRequest,
	ErrCodeTooLarge:     http.StatusRequestEntityTooLarge,

	ErrCodeUnauthorized:       http.StatusUnauthorized,
	ErrCodeForbidden:          http.StatusForbidden,
	ErrCodeTokenExpired:       http.StatusUnauthorized,
	ErrCodeTokenInvalid:       http.StatusUnauthorized,
	ErrCodeTokenRevoked:       http.StatusUnauthorized,
	ErrCodeInvalidCredentials: http.StatusUnauthorized,
	ErrCodeAccountDisabled:    http.StatusForbidden,

	ErrCodeNotFound:      http.StatusNotFound,
	ErrCodeAlreadyExists: http.StatusConflict,
	ErrCodeConflict:      http.StatusConflict,

	ErrCodeInvalidState:       http.StatusUnprocessableEntity,
	ErrCodeBusinessRule:       http.StatusUnprocessableEntity,
	ErrCodeInsufficientStock:  http.StatusUnprocessableEntity,
	ErrCodeProductUnavailable: http.StatusUnprocessableEntity,
	ErrCodeCartEmpty:          http.StatusUnprocessableEntity,
	ErrCodeCourierUnavailable: http.StatusUnprocessableEntity,

	ErrCodePaymentFailed:           http.StatusBadGateway,
	ErrCodePaymentUnavailable:      http.StatusServiceUnavailable,
	ErrCodePaymentAlreadyExecuted:  http.StatusConflict,
	ErrCodePaymentComingSoon:       http.StatusUnprocessableEntity,
	ErrCodePaymentGatewayNotConfig: http.StatusUnprocessableEntity,

	ErrCodeCoverTooLarge:        http.StatusRequestEntityTooLarge,
	ErrCodeCoverType:            http.StatusUnsupportedMediaType,
	ErrCodeStorageUnavailable:   http.StatusServiceUnavailable,
	ErrCodeInvoiceUnavailable:   http.StatusServiceUnavailable,
	ErrCodeRateLimited:          http.StatusTooManyRequests,
	ErrCodeUnsupportedMediaType: http.StatusUnsupportedMediaType,
}

// GetHTTPStatus returns the HTTP status code for an error code.
// Unknown ERR_ codes are internal errors; other unknown codes come from
// domain rules and are classified by their shape.
func GetHTTPStatus(code string) int {
	if status, ok := ErrorCodeHTTPStatus[code]; ok {
		return status
	}
	switch {
	case strings.HasPrefix(code, "ERR_"):
		return http.StatusInternalServerError
	case strings.HasPrefix(code, "INVALID_"):
		return http.StatusBadRequest
	case strings.HasSuffix(code, "_NOT_FOUND"):
		return http.StatusNotFound
	case strings.HasPrefix(code, "ALREADY_"), strings.HasPrefix(code, "DUPLICATE_"):
		return http.StatusConflict
	default:
		return http.StatusUnprocessableEntity
	}
}

// DomainErrorCodeMapping maps domain error codes to API error codes
var DomainErrorCodeMapping = map[string]string{
	"NOT_FOUND":                ErrCodeNotFound,
	"ALREADY_EXISTS":           ErrCodeAlreadyExists,
	"INVALID_INPUT":            ErrCodeInvalidInput,
	"INVALID_STATE":            ErrCodeInvalidState,
	"UNAUTHORIZED":             ErrCodeUnauthorized,
	"FORBIDDEN":                ErrCodeForbidden,
	"INSUFFICIENT_STOCK":       ErrCodeInsufficientStock,
	"CONCURRENT_UPDATE":        ErrCodeConflict,
	"VALIDATION_ERROR":         ErrCodeValidation,
	"BAD_REQUEST":              ErrCodeBadRequest,
	"INTERNAL_ERROR":           ErrCodeInternal,
	"INVALID_CREDENTIALS":      ErrCodeInvalidCredentials,
	"ACCOUNT_DISABLED":         ErrCodeAccountDisabled,
	"PRODUCT_UNAVAILABLE":      ErrCodeProductUnavailable,
	"CART_EMPTY":               ErrCodeCartEmpty,
	"COURIER_UNAVAILABLE":      ErrCodeCourierUnavailable,
	"PAYMENT_ALREADY_EXECUTED": ErrCodePaymentAlreadyExecuted,
	"PAYMENT_COMING_SOON":      ErrCodePaymentComingSoon,
	"COVER_TOO_LARGE":          ErrCodeCoverTooLarge,
	"INVALID_COVER_TYPE":       ErrCodeCoverType,
	"STORAGE_UNAVAILABLE":      ErrCodeStorageUnavailable,
	"INVOICE_UNAVAILABLE":      ErrCodeInvoiceUnavailable,
}

// NormalizeErrorCode converts a domain error code to its API code.
// Codes without a mapping are returned as-is.
func NormalizeErrorCode(code string) string {
	if newCode, ok := DomainErrorCodeMapping[code]; ok {
		return newCode
	}
	return code
}
