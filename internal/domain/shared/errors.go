package shared

// DomainError represents a domain-level error
type DomainError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// Error implements the error interface
func (e *DomainError) Error() string {
	return e.Message
}

// NewDomainError creates a new domain error
func NewDomainError(code, message string) *DomainError {
	return &DomainError{
		Code:    code,
		Message: message,
	}
}

// Common domain errors
var (
	ErrNotFound              = NewDomainError("NOT_FOUND", "Resource not found")
	ErrAlreadyExists         = NewDomainError("ALREADY_EXISTS", "Resource already exists")
	ErrInvalidInput          = NewDomainError("INVALID_INPUT", "Invalid input provided")
	ErrConcurrencyConflict   = NewDomainError("CONCURRENCY_CONFLICT", "Resource was modified by another process")
	ErrInvalidState          = NewDomainError("INVALID_STATE", "Operation not allowed in current state")
	ErrInsufficientInventory = NewDomainError("INSUFFICIENT_INVENTORY", "Insufficient inventory available")
	ErrAlreadyFulfilled      = NewDomainError("ALREADY_FULFILLED", "Order item has already been scanned")
	ErrBarcodeNotFound       = NewDomainError("BARCODE_NOT_FOUND", "Barcode not found or not available in this store")
	ErrProductMismatch       = NewDomainError("PRODUCT_MISMATCH", "Scanned barcode does not match the order item product")
	ErrIncompleteFulfillment = NewDomainError("INCOMPLETE_FULFILLMENT", "Not all order items have been scanned")
	ErrDispatchNotDelivered  = NewDomainError("DISPATCH_NOT_DELIVERED", "Dispatch must be delivered before completing rebalancing")
)
