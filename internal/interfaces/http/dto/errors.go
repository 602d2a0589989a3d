package dto

import "net/http"

// Transport-level error codes. Domain error codes travel to the client
// unchanged; these cover failures that never reach the domain.
const (
	ErrCodeBadRequest = "BAD_REQUEST"
	ErrCodeValidation = "VALIDATION_ERROR"
	ErrCodeNotFound   = "NOT_FOUND"
	ErrCodeInternal   = "INTERNAL_ERROR"
)

// ErrorCodeHTTPStatus maps domain and transport error codes to HTTP status
// codes. Not-found lookups map to 404, uniqueness and locking conflicts to
// 409, business rule rejections to 422 and malformed input to 400.
var ErrorCodeHTTPStatus = map[string]int{
	// Lookups
	"ACCOUNT_NOT_FOUND":        http.StatusNotFound,
	"TRANSACTION_NOT_FOUND":    http.StatusNotFound,
	"CUSTOMER_NOT_FOUND":       http.StatusNotFound,
	"OUTBOX_ENTRY_NOT_FOUND":   http.StatusNotFound,
	ErrCodeNotFound:            http.StatusNotFound,

	// Conflicts
	"DUPLICATE_ACCOUNT_NUMBER": http.StatusConflict,
	"CONCURRENCY_CONFLICT":     http.StatusConflict,
	"ALREADY_EXISTS":           http.StatusConflict,

	// Business rule rejections
	"INSUFFICIENT_BALANCE":      http.StatusUnprocessableEntity,
	"INACTIVE_ACCOUNT":          http.StatusUnprocessableEntity,
	"INACTIVE_CUSTOMER":         http.StatusUnprocessableEntity,
	"CLOSE_WITH_BALANCE":        http.StatusUnprocessableEntity,
	"INVALID_STATUS_TRANSITION": http.StatusUnprocessableEntity,
	"INVALID_OUTBOX_STATUS":     http.StatusUnprocessableEntity,
	"BALANCE_INCONSISTENT":      http.StatusUnprocessableEntity,
	"INVALID_STATE":             http.StatusUnprocessableEntity,

	// Malformed input
	"INVALID_ACCOUNT_NUMBER":     http.StatusBadRequest,
	"INVALID_AMOUNT":             http.StatusBadRequest,
	"INVALID_MONEY":              http.StatusBadRequest,
	"NEGATIVE_INITIAL_BALANCE":   http.StatusBadRequest,
	"INVALID_TRANSACTION_TYPE":   http.StatusBadRequest,
	"INVALID_INPUT":              http.StatusBadRequest,
	ErrCodeBadRequest:            http.StatusBadRequest,
	ErrCodeValidation:            http.StatusBadRequest,

	ErrCodeInternal: http.StatusInternalServerError,
}

// GetHTTPStatus returns the HTTP status code for an error code.
// Unknown codes map to 500 so new domain errors fail loudly.
func GetHTTPStatus(code string) int {
	if status, ok := ErrorCodeHTTPStatus[code]; ok {
		return status
	}
	return http.StatusInternalServerError
}
