package dto

import "net/http"

// Transport-level error codes
const (
	ErrCodeBadRequest   = "BAD_REQUEST"
	ErrCodeInvalidJSON  = "INVALID_JSON"
	ErrCodeUnauthorized = "UNAUTHORIZED"
	ErrCodeForbidden    = "FORBIDDEN"
	ErrCodeNotFound     = "NOT_FOUND"
	ErrCodeInternal     = "INTERNAL_ERROR"
)

// errorCodeHTTPStatus maps domain error codes to HTTP status codes.
// Codes missing from the map fall back to 400.
var errorCodeHTTPStatus = map[string]int{
	// General
	ErrCodeNotFound:  http.StatusNotFound,
	ErrCodeInternal:  http.StatusInternalServerError,
	"ALREADY_EXISTS": http.StatusConflict,
	"INVALID_INPUT":  http.StatusBadRequest,
	"INVALID_STATE":  http.StatusConflict,

	// Authentication
	ErrCodeUnauthorized: http.StatusUnauthorized,
	ErrCodeForbidden:    http.StatusForbidden,
	"AUTH_FAILED":       http.StatusUnauthorized,
	"ACCOUNT_INACTIVE":  http.StatusForbidden,
	"EMAIL_TAKEN":       http.StatusConflict,

	// Hashing and token generation are server faults
	"PASSWORD_HASH_ERROR":    http.StatusInternalServerError,
	"TOKEN_GENERATION_ERROR": http.StatusInternalServerError,

	// Basket and orders
	"DUPLICATE_ITEM":     http.StatusConflict,
	"NOT_A_BASKET":       http.StatusConflict,
	"INVALID_TRANSITION": http.StatusConflict,
	"STALE_ORDER":        http.StatusConflict,

	// Partner
	"NO_SHOP":            http.StatusNotFound,
	"IMPORT_UNAVAILABLE": http.StatusServiceUnavailable,
}

// GetHTTPStatus returns the HTTP status for an error code
func GetHTTPStatus(code string) int {
	if status, ok := errorCodeHTTPStatus[code]; ok {
		return status
	}
	return http.StatusBadRequest
}
