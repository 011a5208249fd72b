// Package error defines domain-specific errors for the analytics backend.
package error

import "errors"

// Transaction domain errors.
var (
	// ErrInvalidMovementKind is returned when the kind is not one of the
	// four transaction roles.
	ErrInvalidMovementKind = errors.New("kind must be: income, expense, transfer or financial")

	// ErrNegativeAmount is returned when the amount is negative.
	ErrNegativeAmount = errors.New("amount must be non-negative")

	// ErrMissingCategoryCode is returned when an expense has no category.
	ErrMissingCategoryCode = errors.New("category_code is required for expenses")

	// ErrUnknownCategoryCode is returned when the category is outside the
	// closed taxonomy.
	ErrUnknownCategoryCode = errors.New("category_code must be in the range 01-13")

	// ErrCategoryOnNonExpense is returned when a category is supplied for
	// a non-expense movement.
	ErrCategoryOnNonExpense = errors.New("category_code is only allowed on expenses")

	// ErrMissingFinancialSubtype is returned when a financial movement
	// has no subtype.
	ErrMissingFinancialSubtype = errors.New("financial_subtype is required for financial movements")

	// ErrUnknownFinancialSubtype is returned when the subtype is not recognized.
	ErrUnknownFinancialSubtype = errors.New("financial_subtype is not recognized")

	// ErrSubtypeOnNonFinancial is returned when a subtype is supplied for
	// a non-financial movement.
	ErrSubtypeOnNonFinancial = errors.New("financial_subtype is only allowed on financial movements")

	// ErrInvalidOrigin is returned when the origin is not a known channel.
	ErrInvalidOrigin = errors.New("origin must be: manual, csv, import or api")

	// ErrDescriptionTooLong is returned when the description exceeds the limit.
	ErrDescriptionTooLong = errors.New("description exceeds maximum length")

	// ErrMissingOccurredAt is returned when the movement date is absent.
	ErrMissingOccurredAt = errors.New("occurred_at is required")
)

// TransactionErrorCode defines error codes for transaction errors.
// Format: TXN-XXYYYY where XX is category and YYYY is specific error.
type TransactionErrorCode string

const (
	// Validation errors (01XXXX)
	ErrCodeInvalidMovementKind     TransactionErrorCode = "TXN-010001"
	ErrCodeNegativeAmount          TransactionErrorCode = "TXN-010002"
	ErrCodeMissingCategoryCode     TransactionErrorCode = "TXN-010003"
	ErrCodeUnknownCategoryCode     TransactionErrorCode = "TXN-010004"
	ErrCodeCategoryOnNonExpense    TransactionErrorCode = "TXN-010005"
	ErrCodeMissingFinancialSubtype TransactionErrorCode = "TXN-010006"
	ErrCodeUnknownFinancialSubtype TransactionErrorCode = "TXN-010007"
	ErrCodeSubtypeOnNonFinancial   TransactionErrorCode = "TXN-010008"
	ErrCodeInvalidOrigin           TransactionErrorCode = "TXN-010009"
	ErrCodeDescriptionTooLong      TransactionErrorCode = "TXN-010010"
	ErrCodeMissingOccurredAt       TransactionErrorCode = "TXN-010011"

	// Internal errors (99XXXX)
	ErrCodeTransactionInternalError TransactionErrorCode = "TXN-990001"
)

// TransactionError represents a transaction error with code and message.
type TransactionError struct {
	Code    TransactionErrorCode
	Message string
	Err     error
}

// Error implements the error interface.
func (e *TransactionError) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

// Unwrap returns the underlying error.
func (e *TransactionError) Unwrap() error {
	return e.Err
}

// NewTransactionError creates a new TransactionError with the given code and message.
func NewTransactionError(code TransactionErrorCode, message string, err error) *TransactionError {
	return &TransactionError{
		Code:    code,
		Message: message,
		Err:     err,
	}
}
