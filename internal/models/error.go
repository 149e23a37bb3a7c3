package models

// APIError represents a standardized error response for the API
type APIError struct {
	Code    string                 `json:"code"`
	Message string                 `json:"message"`
	Details map[string]interface{} `json:"details,omitempty"`
}

// Error code constants
const (
	// General errors
	ErrBadRequest       = "BAD_REQUEST"
	ErrNotFound         = "NOT_FOUND"
	ErrInternalServer   = "INTERNAL_SERVER_ERROR"
	ErrValidationFailed = "VALIDATION_FAILED"

	// Catalog errors
	ErrProductNotFound = "PRODUCT_NOT_FOUND"

	// Order errors
	ErrOrderNotFound       = "ORDER_NOT_FOUND"
	ErrNothingToUpdate     = "NOTHING_TO_UPDATE"
	ErrOrderSaveFailed     = "ORDER_SAVE_FAILED"
	ErrEmptyCart           = "EMPTY_CART"
	ErrCheckoutFailed      = "CHECKOUT_FAILED"
	ErrCheckoutPurgeFailed = "CHECKOUT_PURGE_FAILED"
	ErrConfirmationNeeded  = "CONFIRMATION_REQUIRED"
)

// NewAPIError creates a new API error with the given code and message
func NewAPIError(code, message string, details ...map[string]interface{}) APIError {
	err := APIError{
		Code:    code,
		Message: message,
	}
	if len(details) > 0 {
		err.Details = details[0]
	}
	return err
}
