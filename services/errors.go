package services

import (
	"errors"
	"fmt"
)

// ErrorType represents the type/category of error
type ErrorType string

const (
	ErrorTypeMissingCredential ErrorType = "missing_credential"
	ErrorTypeInvalidCredential ErrorType = "invalid_credential"
	ErrorTypeUnknownToken      ErrorType = "unknown_token"
	ErrorTypeValidation        ErrorType = "validation"
	ErrorTypeInternal          ErrorType = "internal"
	ErrorTypeExternal          ErrorType = "external"
)

// DomainError represents a structured error with additional context
type DomainError struct {
	Type    ErrorType
	Message string
	Err     error
	Details map[string]interface{}
}

// Error implements the error interface
func (e *DomainError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s (%v)", e.Type, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Type, e.Message)
}

// Unwrap implements errors.Unwrap
func (e *DomainError) Unwrap() error {
	return e.Err
}

// Is implements errors.Is
func (e *DomainError) Is(target error) bool {
	t, ok := target.(*DomainError)
	if !ok {
		return false
	}
	return e.Type == t.Type
}

// WithDetail adds a detail to the error
func (e *DomainError) WithDetail(key string, value interface{}) *DomainError {
	if e.Details == nil {
		e.Details = make(map[string]interface{})
	}
	e.Details[key] = value
	return e
}

// NewDomainError creates a new domain error
func NewDomainError(errType ErrorType, message string, err error) *DomainError {
	return &DomainError{
		Type:    errType,
		Message: message,
		Err:     err,
		Details: make(map[string]interface{}),
	}
}

// Domain error variables

var (
	// Credential Errors
	ErrMissingCredential = NewDomainError(ErrorTypeMissingCredential, "credential header missing", nil)
	ErrBadCredentials    = NewDomainError(ErrorTypeInvalidCredential, "credentials rejected", nil)
	ErrUnknownToken      = NewDomainError(ErrorTypeUnknownToken, "token not recognized", nil)

	// Validation Errors
	ErrInvalidInput = NewDomainError(ErrorTypeValidation, "invalid input", nil)

	// Internal Errors
	ErrInternal      = NewDomainError(ErrorTypeInternal, "internal server error", nil)
	ErrDatabaseError = NewDomainError(ErrorTypeInternal, "database error", nil)

	// External Authenticator Errors
	ErrVerifierUnavailable = NewDomainError(ErrorTypeExternal, "external authenticator unavailable", nil)
	ErrVerifierResponse    = NewDomainError(ErrorTypeExternal, "external authenticator returned a malformed response", nil)
)

// Error type checking helper functions

// IsCredentialError checks if an error is any credential-class error.
// All three credential types collapse to the same 401 at the HTTP edge.
func IsCredentialError(err error) bool {
	var domainErr *DomainError
	if errors.As(err, &domainErr) {
		switch domainErr.Type {
		case ErrorTypeMissingCredential, ErrorTypeInvalidCredential, ErrorTypeUnknownToken:
			return true
		}
	}
	return false
}

// IsValidationError checks if an error is a validation error
func IsValidationError(err error) bool {
	var domainErr *DomainError
	if errors.As(err, &domainErr) {
		return domainErr.Type == ErrorTypeValidation
	}
	return false
}

// IsExternalError checks if an error originated in the external authenticator
func IsExternalError(err error) bool {
	var domainErr *DomainError
	if errors.As(err, &domainErr) {
		return domainErr.Type == ErrorTypeExternal
	}
	return false
}
