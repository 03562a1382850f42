package errorutil

import (
	"errors"
	"fmt"
	"net/http"
)

// Error codes rendered in API error envelopes.
const (
	CodeValidation         = "VALIDATION_FAILED"
	CodeNotFound           = "NOT_FOUND"
	CodeInvalidCredentials = "INVALID_CREDENTIALS"
	CodeUnauthorized       = "UNAUTHORIZED"
	CodeForbidden          = "FORBIDDEN"
	CodeStorageUnavailable = "STORAGE_UNAVAILABLE"
	CodeInternal           = "INTERNAL_ERROR"
)

// ErrStorageUnavailable marks failures of the backing key/value store.
var ErrStorageUnavailable = errors.New("storage unavailable")

// DomainError standardizes application errors.
type DomainError struct {
	Code       string
	Message    string
	HTTPStatus int
	Details    map[string]any
	Err        error
}

func (e *DomainError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *DomainError) Unwrap() error {
	return e.Err
}

// NewDomainError constructs a DomainError.
func NewDomainError(code, message string, status int, details map[string]any) *DomainError {
	return &DomainError{Code: code, Message: message, HTTPStatus: status, Details: details}
}

func NewValidationError(message string, details map[string]any) error {
	return NewDomainError(CodeValidation, message, http.StatusBadRequest, details)
}

// NewFieldErrors wraps a field-keyed message map as a validation error.
func NewFieldErrors(fields map[string]string) error {
	details := make(map[string]any, len(fields))
	for field, msg := range fields {
		details[field] = msg
	}
	return NewValidationError("validation failed", details)
}

func NewNotFound(resource string, details map[string]any) error {
	if details == nil {
		details = map[string]any{}
	}
	return &DomainError{
		Code:       CodeNotFound,
		Message:    fmt.Sprintf("%s not found", resource),
		HTTPStatus: http.StatusNotFound,
		Details:    details,
	}
}

// NewNotFoundMessage is NewNotFound with a caller supplied user-facing message.
func NewNotFoundMessage(message string) error {
	return NewDomainError(CodeNotFound, message, http.StatusNotFound, nil)
}

// NewCredentialError never says which credential field was wrong.
func NewCredentialError() error {
	return NewDomainError(CodeInvalidCredentials, "invalid credentials", http.StatusUnauthorized, nil)
}

// NewLoginRequired is an unauthorized error carrying the view to redirect to.
func NewLoginRequired(redirect string) error {
	return NewDomainError(CodeUnauthorized, "login required", http.StatusUnauthorized, map[string]any{"redirect": redirect})
}

func NewForbidden(message string) error {
	return NewDomainError(CodeForbidden, message, http.StatusForbidden, nil)
}

func NewInternalError(err error) error {
	return &DomainError{
		Code:       CodeInternal,
		Message:    "internal server error",
		HTTPStatus: http.StatusInternalServerError,
		Err:        err,
	}
}

// ToDomainError converts generic errors to DomainError.
func ToDomainError(err error) *DomainError {
	if err == nil {
		return nil
	}
	var domainErr *DomainError
	if errors.As(err, &domainErr) {
		return domainErr
	}
	if errors.Is(err, ErrStorageUnavailable) {
		return &DomainError{
			Code:       CodeStorageUnavailable,
			Message:    "storage unavailable, nothing was saved",
			HTTPStatus: http.StatusServiceUnavailable,
			Err:        err,
		}
	}
	return &DomainError{
		Code:       CodeInternal,
		Message:    "internal server error",
		HTTPStatus: http.StatusInternalServerError,
		Err:        err,
	}
}

// HasCode reports whether err maps to a DomainError with the given code.
func HasCode(err error, code string) bool {
	if err == nil {
		return false
	}
	return ToDomainError(err).Code == code
}

// FieldErrors returns the field-keyed messages of a validation error.
func FieldErrors(err error) map[string]string {
	var domainErr *DomainError
	if !errors.As(err, &domainErr) || domainErr.Code != CodeValidation {
		return nil
	}
	fields := make(map[string]string, len(domainErr.Details))
	for field, v := range domainErr.Details {
		if msg, ok := v.(string); ok {
			fields[field] = msg
		}
	}
	return fields
}
