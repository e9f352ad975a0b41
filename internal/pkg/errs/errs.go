package errs

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrObjectNotFound is the sentinel error for lookups that produce no result.
	ErrObjectNotFound = errors.New("object not found")

	// ErrValueIsRequired is the sentinel error for missing required values.
	ErrValueIsRequired = errors.New("value is required")

	// ErrValueIsInvalid is the sentinel error for malformed or inconsistent values.
	ErrValueIsInvalid = errors.New("value is invalid")

	// ErrCollaboratorNotConfigured is the sentinel error for invoking an optional
	// collaborator that was never wired in. Absence alone is not an error; only
	// the invocation is.
	ErrCollaboratorNotConfigured = errors.New("collaborator is not configured")

	// ErrExternalServiceFailed is the sentinel error for failures of external
	// collaborators (bank feed, payment gateway, carrier API). It aborts the
	// remainder of the current phase only; committed work stays committed.
	ErrExternalServiceFailed = errors.New("external service failed")
)

// ObjectNotFoundError indicates that a lookup by identifier produced no result.
type ObjectNotFoundError struct {
	ParamName string
	ID        any
	Cause     error
}

// NewObjectNotFoundError creates an ObjectNotFoundError without an underlying cause.
func NewObjectNotFoundError(paramName string, id any) *ObjectNotFoundError {
	return &ObjectNotFoundError{
		ParamName: paramName,
		ID:        id,
	}
}

// NewObjectNotFoundErrorWithCause creates an ObjectNotFoundError wrapping an underlying cause.
func NewObjectNotFoundErrorWithCause(paramName string, id any, cause error) *ObjectNotFoundError {
	return &ObjectNotFoundError{
		ParamName: paramName,
		ID:        id,
		Cause:     cause,
	}
}

func (e *ObjectNotFoundError) Error() string {
	if e.Cause != nil {
		return sanitize(fmt.Sprintf("%s: param is: %s, ID is: %s (cause: %s)",
			ErrObjectNotFound, e.ParamName, e.ID, e.Cause))
	}
	return sanitize(fmt.Sprintf("%s: %s", ErrObjectNotFound, e.ID))
}

func (e *ObjectNotFoundError) Unwrap() error {
	return ErrObjectNotFound
}

// ValueIsRequiredError indicates that a required value is missing.
type ValueIsRequiredError struct {
	ParamName string
	Cause     error
}

// NewValueIsRequiredError creates a ValueIsRequiredError without an underlying cause.
func NewValueIsRequiredError(paramName string) *ValueIsRequiredError {
	return &ValueIsRequiredError{ParamName: paramName}
}

// NewValueIsRequiredErrorWithCause creates a ValueIsRequiredError wrapping an underlying cause.
func NewValueIsRequiredErrorWithCause(paramName string, cause error) *ValueIsRequiredError {
	return &ValueIsRequiredError{ParamName: paramName, Cause: cause}
}

func (e *ValueIsRequiredError) Error() string {
	if e.Cause != nil {
		return sanitize(fmt.Sprintf("%s: %s (cause: %s)", ErrValueIsRequired, e.ParamName, e.Cause))
	}
	return sanitize(fmt.Sprintf("%s: %s", ErrValueIsRequired, e.ParamName))
}

func (e *ValueIsRequiredError) Unwrap() error {
	return ErrValueIsRequired
}

// ValueIsInvalidError indicates that a value is malformed or violates a business rule.
type ValueIsInvalidError struct {
	ParamName string
	Cause     error
}

// NewValueIsInvalidError creates a ValueIsInvalidError without an underlying cause.
func NewValueIsInvalidError(paramName string) *ValueIsInvalidError {
	return &ValueIsInvalidError{ParamName: paramName}
}

// NewValueIsInvalidErrorWithCause creates a ValueIsInvalidError wrapping an underlying cause.
func NewValueIsInvalidErrorWithCause(paramName string, cause error) *ValueIsInvalidError {
	return &ValueIsInvalidError{ParamName: paramName, Cause: cause}
}

func (e *ValueIsInvalidError) Error() string {
	if e.Cause != nil {
		return sanitize(fmt.Sprintf("%s: %s (cause: %s)", ErrValueIsInvalid, e.ParamName, e.Cause))
	}
	return sanitize(fmt.Sprintf("%s: %s", ErrValueIsInvalid, e.ParamName))
}

func (e *ValueIsInvalidError) Unwrap() error {
	return ErrValueIsInvalid
}

// CollaboratorNotConfiguredError indicates that an optional collaborator
// (for example the invoice issuer) was invoked while absent.
type CollaboratorNotConfiguredError struct {
	ParamName string
	Cause     error
}

// NewCollaboratorNotConfiguredError creates a CollaboratorNotConfiguredError
// without an underlying cause.
func NewCollaboratorNotConfiguredError(paramName string) *CollaboratorNotConfiguredError {
	return &CollaboratorNotConfiguredError{ParamName: paramName}
}

// NewCollaboratorNotConfiguredErrorWithCause creates a CollaboratorNotConfiguredError
// wrapping an underlying cause.
func NewCollaboratorNotConfiguredErrorWithCause(paramName string, cause error) *CollaboratorNotConfiguredError {
	return &CollaboratorNotConfiguredError{ParamName: paramName, Cause: cause}
}

func (e *CollaboratorNotConfiguredError) Error() string {
	if e.Cause != nil {
		return sanitize(fmt.Sprintf("%s: %s (cause: %s)", ErrCollaboratorNotConfigured, e.ParamName, e.Cause))
	}
	return sanitize(fmt.Sprintf("%s: %s", ErrCollaboratorNotConfigured, e.ParamName))
}

func (e *CollaboratorNotConfiguredError) Unwrap() error {
	return ErrCollaboratorNotConfigured
}

// ExternalServiceError indicates that a call to an external collaborator failed.
type ExternalServiceError struct {
	ServiceName string
	Cause       error
}

// NewExternalServiceError creates an ExternalServiceError wrapping an underlying cause.
func NewExternalServiceError(serviceName string, cause error) *ExternalServiceError {
	return &ExternalServiceError{ServiceName: serviceName, Cause: cause}
}

func (e *ExternalServiceError) Error() string {
	if e.Cause != nil {
		return sanitize(fmt.Sprintf("%s: %s (cause: %s)", ErrExternalServiceFailed, e.ServiceName, e.Cause))
	}
	return sanitize(fmt.Sprintf("%s: %s", ErrExternalServiceFailed, e.ServiceName))
}

func (e *ExternalServiceError) Unwrap() error {
	return ErrExternalServiceFailed
}

// sanitize keeps error messages single-line so they stay readable in logs.
func sanitize(s string) string {
	return strings.ReplaceAll(s, "\n", " ")
}
