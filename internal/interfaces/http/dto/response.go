package dto

import "net/http"

// Error codes returned by the API
const (
	ErrCodeBadRequest              = "BAD_REQUEST"
	ErrCodeNotFound                = "NOT_FOUND"
	ErrCodeInvalidInput            = "INVALID_INPUT"
	ErrCodeInvalidState            = "INVALID_STATE"
	ErrCodeInsufficientStock       = "INSUFFICIENT_STOCK"
	ErrCodeRefundExceedsAllocation = "REFUND_EXCEEDS_ALLOCATION"
	ErrCodeAlreadyVoided           = "ALREADY_VOIDED"
	ErrCodeBrokenItemNotRevertible = "BROKEN_ITEM_NOT_REVERTIBLE"
	ErrCodeConcurrencyConflict     = "CONCURRENCY_CONFLICT"
	ErrCodeInternal                = "INTERNAL_ERROR"
)

// Response is the standard API envelope
type Response struct {
	Success bool       `json:"success"`
	Data    any        `json:"data,omitempty"`
	Error   *ErrorBody `json:"error,omitempty"`
}

// ErrorBody carries error details in an API response
type ErrorBody struct {
	Code      string `json:"code"`
	Message   string `json:"message"`
	RequestID string `json:"request_id,omitempty"`
}

// NewSuccessResponse creates a success envelope
func NewSuccessResponse(data any) Response {
	return Response{Success: true, Data: data}
}

// NewErrorResponse creates an error envelope
func NewErrorResponse(code, message, requestID string) Response {
	return Response{Success: false, Error: &ErrorBody{Code: code, Message: message, RequestID: requestID}}
}

// GetHTTPStatus maps an error code to its HTTP status
func GetHTTPStatus(code string) int {
	switch code {
	case ErrCodeNotFound:
		return http.StatusNotFound
	case ErrCodeBadRequest, ErrCodeInvalidInput:
		return http.StatusBadRequest
	case ErrCodeInvalidState, ErrCodeAlreadyVoided, ErrCodeBrokenItemNotRevertible:
		return http.StatusConflict
	case ErrCodeInsufficientStock, ErrCodeRefundExceedsAllocation:
		return http.StatusUnprocessableEntity
	case ErrCodeConcurrencyConflict:
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}
