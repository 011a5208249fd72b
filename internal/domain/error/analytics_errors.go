package error

import "errors"

// Analytics domain errors.
var (
	// ErrMissingFromDate is returned when the range start is not provided.
	ErrMissingFromDate = errors.New("from is required")

	// ErrMissingToDate is returned when the range end is not provided.
	ErrMissingToDate = errors.New("to is required")

	// ErrInvalidDateRange is returned when from is not strictly before to.
	ErrInvalidDateRange = errors.New("from must be before to")

	// ErrInvalidDateFormat is returned when a date cannot be parsed.
	ErrInvalidDateFormat = errors.New("invalid date format, expected YYYY-MM-DD")

	// ErrInvalidMonth is returned when a month is outside 1-12.
	ErrInvalidMonth = errors.New("month must be between 1 and 12")

	// ErrInvalidYear is returned when a year is outside the supported range.
	ErrInvalidYear = errors.New("year must be between 2000 and 2100")

	// ErrInvalidTopN is returned when the top-N parameter is not positive.
	ErrInvalidTopN = errors.New("top must be a positive integer")

	// ErrRollupNotFound is returned when no rollup is stored for the key.
	// Absence of a rollup is distinct from a computed all-zero summary.
	ErrRollupNotFound = errors.New("rollup not found for the requested period")

	// ErrScanTimeout is returned when a cross-user scan exceeds its time
	// budget. Callers may retry with a narrower range.
	ErrScanTimeout = errors.New("analytics scan exceeded the configured time budget")
)

// AnalyticsErrorCode defines error codes for analytics errors.
// Format: ANL-XXYYYY where XX is category and YYYY is specific error.
type AnalyticsErrorCode string

const (
	// Validation errors (01XXXX)
	ErrCodeMissingFromDate   AnalyticsErrorCode = "ANL-010001"
	ErrCodeMissingToDate     AnalyticsErrorCode = "ANL-010002"
	ErrCodeInvalidDateRange  AnalyticsErrorCode = "ANL-010003"
	ErrCodeInvalidDateFormat AnalyticsErrorCode = "ANL-010004"
	ErrCodeInvalidMonth      AnalyticsErrorCode = "ANL-010005"
	ErrCodeInvalidYear       AnalyticsErrorCode = "ANL-010006"
	ErrCodeInvalidTopN       AnalyticsErrorCode = "ANL-010007"

	// Not-found errors (02XXXX)
	ErrCodeRollupNotFound AnalyticsErrorCode = "ANL-020001"

	// Timeout errors (03XXXX) - retryable
	ErrCodeScanTimeout AnalyticsErrorCode = "ANL-030001"

	// Internal errors (99XXXX)
	ErrCodeAnalyticsInternalError AnalyticsErrorCode = "ANL-990001"
)

// AnalyticsError represents an analytics error with code and message.
type AnalyticsError struct {
	Code    AnalyticsErrorCode
	Message string
	Err     error
	// Retryable marks errors where the caller may retry, possibly with
	// a narrower range (scan timeouts).
	Retryable bool
}

// Error implements the error interface.
func (e *AnalyticsError) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

// Unwrap returns the underlying error.
func (e *AnalyticsError) Unwrap() error {
	return e.Err
}

// NewAnalyticsError creates a new AnalyticsError with the given code and message.
func NewAnalyticsError(code AnalyticsErrorCode, message string, err error) *AnalyticsError {
	return &AnalyticsError{
		Code:    code,
		Message: message,
		Err:     err,
	}
}

// NewRetryableAnalyticsError creates an AnalyticsError the caller may retry.
func NewRetryableAnalyticsError(code AnalyticsErrorCode, message string, err error) *AnalyticsError {
	return &AnalyticsError{
		Code:      code,
		Message:   message,
		Err:       err,
		Retryable: true,
	}
}
