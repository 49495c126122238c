package dto

import "net/http"

// Error codes surfaced by the API. Domain errors carry their code through
// unchanged; the handler layer only maps codes to HTTP status.
const (
	ErrCodeNotFound              = "NOT_FOUND"
	ErrCodeBarcodeNotFound       = "BARCODE_NOT_FOUND"
	ErrCodeValidation            = "VALIDATION_ERROR"
	ErrCodeInvalidInput          = "INVALID_INPUT"
	ErrCodeInvalidState          = "INVALID_STATE"
	ErrCodeInvalidStore          = "INVALID_STORE"
	ErrCodeInvalidQuantity       = "INVALID_QUANTITY"
	ErrCodeInsufficientInventory = "INSUFFICIENT_INVENTORY"
	ErrCodeProductMismatch       = "PRODUCT_MISMATCH"
	ErrCodeIncompleteFulfillment = "INCOMPLETE_FULFILLMENT"
	ErrCodeDispatchNotDelivered  = "DISPATCH_NOT_DELIVERED"
	ErrCodeAlreadyFulfilled      = "ALREADY_FULFILLED"
	ErrCodeAlreadyExists         = "ALREADY_EXISTS"
	ErrCodeConcurrencyConflict   = "CONCURRENCY_CONFLICT"
	ErrCodeInternal              = "INTERNAL_ERROR"
)

// errorCodeHTTPStatus maps error codes to HTTP status codes
var errorCodeHTTPStatus = map[string]int{
	ErrCodeNotFound:              http.StatusNotFound,
	ErrCodeBarcodeNotFound:       http.StatusNotFound,
	ErrCodeValidation:            http.StatusBadRequest,
	ErrCodeInvalidInput:          http.StatusBadRequest,
	ErrCodeInvalidState:          http.StatusUnprocessableEntity,
	ErrCodeInvalidStore:          http.StatusUnprocessableEntity,
	ErrCodeInvalidQuantity:       http.StatusUnprocessableEntity,
	ErrCodeInsufficientInventory: http.StatusUnprocessableEntity,
	ErrCodeProductMismatch:       http.StatusUnprocessableEntity,
	ErrCodeIncompleteFulfillment: http.StatusUnprocessableEntity,
	ErrCodeDispatchNotDelivered:  http.StatusUnprocessableEntity,
	ErrCodeAlreadyFulfilled:      http.StatusConflict,
	ErrCodeAlreadyExists:         http.StatusConflict,
	ErrCodeConcurrencyConflict:   http.StatusConflict,
	ErrCodeInternal:              http.StatusInternalServerError,
}

// GetHTTPStatus returns the HTTP status for an error code. Unknown codes
// map to 500 so a missing entry never masks a failure as client error.
func GetHTTPStatus(code string) int {
	if status, ok := errorCodeHTTPStatus[code]; ok {
		return status
	}
	return http.StatusInternalServerError
}
