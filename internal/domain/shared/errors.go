package shared

// DomainError represents a domain-level error
type DomainError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	cause   error
}

// Error implements the error interface
func (e *DomainError) Error() string {
	return e.Message
}

// Unwrap exposes the wrapped cause so errors.Is can match sentinels
func (e *DomainError) Unwrap() error {
	return e.cause
}

// NewDomainError creates a new domain error
func NewDomainError(code, message string) *DomainError {
	return &DomainError{
		Code:    code,
		Message: message,
	}
}

// NewDomainErrorWithCause creates a domain error wrapping a sentinel
func NewDomainErrorWithCause(code, message string, cause error) *DomainError {
	return &DomainError{
		Code:    code,
		Message: message,
		cause:   cause,
	}
}

// Common domain errors
var (
	ErrNotFound            = NewDomainError("NOT_FOUND", "Resource not found")
	ErrAlreadyExists       = NewDomainError("ALREADY_EXISTS", "Resource already exists")
	ErrInvalidInput        = NewDomainError("INVALID_INPUT", "Invalid input provided")
	ErrConcurrencyConflict = NewDomainError("CONCURRENCY_CONFLICT", "Resource was modified by another process")
	ErrInvalidState        = NewDomainError("INVALID_STATE", "Operation not allowed in current state")
	ErrInsufficientStock   = NewDomainError("INSUFFICIENT_STOCK", "Insufficient stock available")
	ErrCouponInvalid       = NewDomainError("COUPON_INVALID", "Coupon is invalid or expired")
	ErrCouponExhausted     = NewDomainError("COUPON_EXHAUSTED", "Coupon usage limit reached")
	ErrMissingShipping     = NewDomainError("MISSING_SHIPPING", "Shipping method is required")
	ErrAlreadyPaid         = NewDomainError("ALREADY_PAID", "Order has already been paid")
	ErrPaymentGateway      = NewDomainError("PAYMENT_GATEWAY", "Payment gateway request failed")
)
