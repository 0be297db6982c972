package dto

import (
	"net/http"
	"strings"
)

// Transport-level error codes. Domain errors keep their own codes and
// are mapped to a status below.
const (
	ErrCodeInternal    = "INTERNAL_ERROR"
	ErrCodeBadRequest  = "BAD_REQUEST"
	ErrCodeValidation  = "VALIDATION_ERROR"
	ErrCodeRateLimited = "RATE_LIMITED"
)

// ErrorCodeHTTPStatus maps domain error codes to HTTP status codes
var ErrorCodeHTTPStatus = map[string]int{
	ErrCodeInternal:    http.StatusInternalServerError,
	ErrCodeBadRequest:  http.StatusBadRequest,
	ErrCodeValidation:  http.StatusBadRequest,
	ErrCodeRateLimited: http.StatusTooManyRequests,

	// Resource errors
	"NOT_FOUND":            http.StatusNotFound,
	"ALREADY_EXISTS":       http.StatusConflict,
	"DUPLICATE_SLUG":       http.StatusConflict,
	"DUPLICATE_CODE":       http.StatusConflict,
	"DUPLICATE_SKU":        http.StatusConflict,
	"CONCURRENCY_CONFLICT": http.StatusConflict,

	// Business rule errors
	"INVALID_STATE":      http.StatusUnprocessableEntity,
	"INSUFFICIENT_STOCK": http.StatusUnprocessableEntity,
	"COUPON_INVALID":     http.StatusUnprocessableEntity,
	"COUPON_EXHAUSTED":   http.StatusUnprocessableEntity,
	"ALREADY_PAID":       http.StatusUnprocessableEntity,
	"NO_VARIANTS":        http.StatusUnprocessableEntity,
	"MAX_DEPTH_EXCEEDED": http.StatusUnprocessableEntity,
	"PAYMENT_REJECTED":   http.StatusUnprocessableEntity,

	// Input errors
	"INVALID_INPUT":    http.StatusBadRequest,
	"MISSING_SHIPPING": http.StatusBadRequest,
	"EMPTY_ORDER":      http.StatusBadRequest,

	// Upstream errors
	"PAYMENT_GATEWAY": http.StatusBadGateway,
}

// GetHTTPStatus returns the HTTP status code for an error code. Codes
// describing malformed input (the INVALID_ family from the domain
// constructors) default to 400; anything else unknown is a 500.
func GetHTTPStatus(code string) int {
	if status, ok := ErrorCodeHTTPStatus[code]; ok {
		return status
	}
	if strings.HasPrefix(code, "INVALID_") {
		return http.StatusBadRequest
	}
	return http.StatusInternalServerError
}
