// Package errors provides standardized domain errors with codes for the bookz API.
//
// Usage:
//
//	// In services - return typed errors
//	if borrowed {
//	    return errors.Newf(errors.CodeBookCopyBorrowed, "copy %d is borrowed", id)
//	}
//
//	// In callers - check with errors.Is
//	if errors.Is(err, errors.ErrInsufficientCapacity) {
//	    ...
//	}
//
//	// Or switch on the Code directly
//	var domainErr *errors.Error
//	if errors.As(err, &domainErr) {
//	    switch domainErr.Code {
//	    case errors.CodeBookNotFound:
//	        ...
//	    }
//	}
package errors

import (
	"errors"
	"fmt"
	"net/http"
)

// Re-export standard library functions for convenience.
var (
	Is     = errors.Is
	As     = errors.As
	Unwrap = errors.Unwrap
	Join   = errors.Join
)

// Code represents a machine-readable error code.
type Code string

// Error codes used throughout the application.
const (
	// Not-found family.
	CodeAuthorNotFound   Code = "AUTHOR_NOT_FOUND"
	CodeBookNotFound     Code = "BOOK_NOT_FOUND"
	CodeBookCopyNotFound Code = "BOOK_COPY_NOT_FOUND"
	CodeCustomerNotFound Code = "CUSTOMER_NOT_FOUND"
	CodeNotFound         Code = "NOT_FOUND"

	// Conflict family.
	CodeBookAlreadyExists      Code = "BOOK_ALREADY_EXISTS"
	CodeAuthorAlreadyExists    Code = "AUTHOR_ALREADY_EXISTS"
	CodeCustomerEmailExists    Code = "CUSTOMER_EMAIL_ALREADY_EXISTS"
	CodeCustomerPhoneExists    Code = "CUSTOMER_PHONE_ALREADY_EXISTS"
	CodeCustomerFullNameExists Code = "CUSTOMER_FULL_NAME_ALREADY_EXISTS"
	CodeBookPresentInDatabase  Code = "BOOK_PRESENT_IN_DATABASE"
	CodeBookCopyBorrowed       Code = "BOOK_COPY_BORROWED"
	CodeUpdateConflict         Code = "UPDATE_CONFLICT"
	CodeInvalidStatementChange Code = "INVALID_STATEMENT_TRANSITION"
	CodeInsufficientCapacity   Code = "INSUFFICIENT_CAPACITY"
	CodeConflict               Code = "CONFLICT"

	// Validation family.
	CodeCustomerRequired Code = "CUSTOMER_REQUIRED"
	CodeValidation       Code = "VALIDATION"

	CodeInternal Code = "INTERNAL"
)

// HTTPStatus returns the appropriate HTTP status code for an error code.
func (c Code) HTTPStatus() int {
	switch c {
	case CodeAuthorNotFound, CodeBookNotFound, CodeBookCopyNotFound,
		CodeCustomerNotFound, CodeNotFound:
		return http.StatusNotFound
	case CodeBookAlreadyExists, CodeAuthorAlreadyExists,
		CodeCustomerEmailExists, CodeCustomerPhoneExists,
		CodeCustomerFullNameExists, CodeBookPresentInDatabase,
		CodeBookCopyBorrowed, CodeUpdateConflict,
		CodeInvalidStatementChange, CodeInsufficientCapacity, CodeConflict:
		return http.StatusConflict
	case CodeCustomerRequired, CodeValidation:
		return http.StatusUnprocessableEntity
	default:
		return http.StatusInternalServerError
	}
}

// Error is a domain error with a code, message, and optional details.
type Error struct {
	Code    Code   `json:"code"`
	Message string `json:"message"`
	Details any    `json:"details,omitempty"`
	cause   error  // unexported, for wrapping
}

// Error implements the error interface.
func (e *Error) Error() string {
	if e.cause != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.cause)
	}
	return e.Message
}

// Unwrap returns the underlying error.
func (e *Error) Unwrap() error {
	return e.cause
}

// Is reports whether target matches this error.
// Matches if target is an *Error with the same Code.
func (e *Error) Is(target error) bool {
	var t *Error
	if errors.As(target, &t) {
		return e.Code == t.Code
	}
	return false
}

// HTTPStatus returns the HTTP status code for this error.
func (e *Error) HTTPStatus() int {
	return e.Code.HTTPStatus()
}

// WithDetails returns a new error with additional details.
func (e *Error) WithDetails(details any) *Error {
	return &Error{
		Code:    e.Code,
		Message: e.Message,
		Details: details,
		cause:   e.cause,
	}
}

// WithCause wraps an underlying error.
func (e *Error) WithCause(err error) *Error {
	return &Error{
		Code:    e.Code,
		Message: e.Message,
		Details: e.Details,
		cause:   err,
	}
}

// Sentinel errors for use with errors.Is().
var (
	ErrAuthorNotFound         = &Error{Code: CodeAuthorNotFound, Message: "author not found"}
	ErrBookNotFound           = &Error{Code: CodeBookNotFound, Message: "book not found"}
	ErrBookCopyNotFound       = &Error{Code: CodeBookCopyNotFound, Message: "book copy not found"}
	ErrCustomerNotFound       = &Error{Code: CodeCustomerNotFound, Message: "customer not found"}
	ErrNotFound               = &Error{Code: CodeNotFound, Message: "not found"}
	ErrBookAlreadyExists      = &Error{Code: CodeBookAlreadyExists, Message: "book already exists"}
	ErrAuthorAlreadyExists    = &Error{Code: CodeAuthorAlreadyExists, Message: "author already exists"}
	ErrCustomerEmailExists    = &Error{Code: CodeCustomerEmailExists, Message: "customer email already exists"}
	ErrCustomerPhoneExists    = &Error{Code: CodeCustomerPhoneExists, Message: "customer phone already exists"}
	ErrCustomerFullNameExists = &Error{Code: CodeCustomerFullNameExists, Message: "customer full name already exists"}
	ErrBookPresentInDatabase  = &Error{Code: CodeBookPresentInDatabase, Message: "author still has books in the database"}
	ErrBookCopyBorrowed       = &Error{Code: CodeBookCopyBorrowed, Message: "book copy is borrowed"}
	ErrUpdateConflict         = &Error{Code: CodeUpdateConflict, Message: "update conflict"}
	ErrInvalidStatementChange = &Error{Code: CodeInvalidStatementChange, Message: "invalid statement transition"}
	ErrInsufficientCapacity   = &Error{Code: CodeInsufficientCapacity, Message: "not enough free placements"}
	ErrConflict               = &Error{Code: CodeConflict, Message: "conflict"}
	ErrCustomerRequired       = &Error{Code: CodeCustomerRequired, Message: "customer is required"}
	ErrValidation             = &Error{Code: CodeValidation, Message: "validation error"}
	ErrInternal               = &Error{Code: CodeInternal, Message: "internal error"}
)

// New creates an error with the given code and message.
func New(code Code, msg string) *Error {
	return &Error{Code: code, Message: msg}
}

// Newf creates an error with the given code and formatted message.
func Newf(code Code, format string, args ...any) *Error {
	return &Error{Code: code, Message: fmt.Sprintf(format, args...)}
}

// NotFound creates a generic not found error.
func NotFound(msg string) *Error {
	return &Error{Code: CodeNotFound, Message: msg}
}

// NotFoundf creates a generic not found error with formatted message.
func NotFoundf(format string, args ...any) *Error {
	return &Error{Code: CodeNotFound, Message: fmt.Sprintf(format, args...)}
}

// Conflict creates a generic conflict error.
func Conflict(msg string) *Error {
	return &Error{Code: CodeConflict, Message: msg}
}

// Conflictf creates a generic conflict error with formatted message.
func Conflictf(format string, args ...any) *Error {
	return &Error{Code: CodeConflict, Message: fmt.Sprintf(format, args...)}
}

// Validation creates a validation error.
func Validation(msg string) *Error {
	return &Error{Code: CodeValidation, Message: msg}
}

// Validationf creates a validation error with formatted message.
func Validationf(format string, args ...any) *Error {
	return &Error{Code: CodeValidation, Message: fmt.Sprintf(format, args...)}
}

// ValidationWithDetails creates a validation error with details.
func ValidationWithDetails(msg string, details any) *Error {
	return &Error{Code: CodeValidation, Message: msg, Details: details}
}

// InsufficientCapacityf creates a capacity error with formatted message.
func InsufficientCapacityf(format string, args ...any) *Error {
	return &Error{Code: CodeInsufficientCapacity, Message: fmt.Sprintf(format, args...)}
}

// Internal creates an internal error.
func Internal(msg string) *Error {
	return &Error{Code: CodeInternal, Message: msg}
}

// Internalf creates an internal error with formatted message.
func Internalf(format string, args ...any) *Error {
	return &Error{Code: CodeInternal, Message: fmt.Sprintf(format, args...)}
}

// Wrap wraps an error with a code and message.
func Wrap(err error, code Code, msg string) *Error {
	return &Error{Code: code, Message: msg, cause: err}
}

// Wrapf wraps an error with a code and formatted message.
func Wrapf(err error, code Code, format string, args ...any) *Error {
	return &Error{Code: code, Message: fmt.Sprintf(format, args...), cause: err}
}
