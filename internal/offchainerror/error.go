// Package offchainerror is the error taxonomy of spec.md §4.7: a Go error
// type distinguishing document-level command errors from envelope-level
// protocol errors, and the common codes both paths raise.
package offchainerror

import (
	"fmt"

	"github.com/travelrule/engine/internal/payment"
)

// Common error codes (spec.md §4.7, §9 ambient additions marked below).
const (
	CodeInvalidRequest = "invalid-request"
	CodeRejected       = "rejected"
	CodeNoKycNeeded    = "no-kyc-needed"
	// CodeInternal and CodeUnsupportedState are additions: a catch-all
	// internal code distinct from the validation-shaped ones above.
	CodeInternal         = "internal-error"
	CodeUnsupportedState = "unsupported-state"
)

// Error is the engine's error type: every Error carries enough to build
// an OffChainError for a CommandResponse, and satisfies the standard
// error interface for the outbound (local-exception) path.
type Error struct {
	ErrType payment.ErrorType
	Code    string
	Field   string
	Message string
}

func (e *Error) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("%s: %s (field=%s): %s", e.ErrType, e.Code, e.Field, e.Message)
	}
	return fmt.Sprintf("%s: %s: %s", e.ErrType, e.Code, e.Message)
}

// NewCommandError builds a document-level error (validation, transition,
// missing fields).
func NewCommandError(code, message string) *Error {
	return &Error{ErrType: payment.ErrorTypeCommand, Code: code, Message: message}
}

// NewCommandFieldError builds a document-level error tied to one field.
func NewCommandFieldError(code, field, message string) *Error {
	return &Error{ErrType: payment.ErrorTypeCommand, Code: code, Field: field, Message: message}
}

// NewProtocolError builds an envelope-level error (signature, malformed
// JSON, missing headers).
func NewProtocolError(code, message string) *Error {
	return &Error{ErrType: payment.ErrorTypeProtocol, Code: code, Message: message}
}

// ToOffChainError converts the Error into the wire-level OffChainError
// embedded in a CommandResponse.
func (e *Error) ToOffChainError() payment.OffChainError {
	oe := payment.OffChainError{Type: e.ErrType, Code: e.Code}
	if e.Field != "" {
		f := e.Field
		oe.Field = &f
	}
	if e.Message != "" {
		m := e.Message
		oe.Message = &m
	}
	return oe
}

// ToOffChainErrors converts any error into a one-element OffChainError
// slice, wrapping plain (non-*Error) errors as an internal command error
// so every failure caught on the inbound path can be reported uniformly.
func ToOffChainErrors(err error) []payment.OffChainError {
	if err == nil {
		return nil
	}
	if e, ok := err.(*Error); ok {
		return []payment.OffChainError{e.ToOffChainError()}
	}
	return []payment.OffChainError{
		NewCommandError(CodeInternal, err.Error()).ToOffChainError(),
	}
}

// IsCommandError reports whether err is a command_error.
func IsCommandError(err error) bool {
	e, ok := err.(*Error)
	return ok && e.ErrType == payment.ErrorTypeCommand
}

// IsProtocolError reports whether err is a protocol_error.
func IsProtocolError(err error) bool {
	e, ok := err.(*Error)
	return ok && e.ErrType == payment.ErrorTypeProtocol
}
