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

// Is reports whether target is a DomainError with the same code, so wrapped
// errors with contextual messages still match their sentinel via errors.Is.
func (e *DomainError) Is(target error) bool {
	t, ok := target.(*DomainError)
	return ok && t.Code == e.Code
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
	ErrNotFound                = NewDomainError("NOT_FOUND", "Resource not found")
	ErrInvalidInput            = NewDomainError("INVALID_INPUT", "Invalid input provided")
	ErrInvalidState            = NewDomainError("INVALID_STATE", "Operation not allowed in current state")
	ErrInsufficientStock       = NewDomainError("INSUFFICIENT_STOCK", "Insufficient stock available")
	ErrRefundExceedsAllocation = NewDomainError("REFUND_EXCEEDS_ALLOCATION", "Refund quantity exceeds allocated quantity")
	ErrAlreadyVoided           = NewDomainError("ALREADY_VOIDED", "Record has already been voided")
	ErrBrokenItemNotRevertible = NewDomainError("BROKEN_ITEM_NOT_REVERTIBLE", "Written-off items cannot be restored")
	ErrConcurrencyConflict     = NewDomainError("CONCURRENCY_CONFLICT", "Resource was modified by another process")
	ErrTransientStorage        = NewDomainError("TRANSIENT_STORAGE", "Transient storage failure")
)
