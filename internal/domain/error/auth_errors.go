package error

import "errors"

// Auth domain errors. Token issuance lives in the external auth
// service; this API only validates access tokens.
var (
	// ErrMissingToken is returned when no bearer token is supplied.
	ErrMissingToken = errors.New("authorization token is required")

	// ErrInvalidToken is returned when the token is malformed or expired.
	ErrInvalidToken = errors.New("invalid or expired token")

	// ErrForbidden is returned when the token lacks the required role.
	ErrForbidden = errors.New("insufficient permissions")
)

// AuthErrorCode defines error codes for auth errors.
type AuthErrorCode string

const (
	ErrCodeMissingToken AuthErrorCode = "AUT-010001"
	ErrCodeInvalidToken AuthErrorCode = "AUT-010002"
	ErrCodeForbidden    AuthErrorCode = "AUT-010003"
)
