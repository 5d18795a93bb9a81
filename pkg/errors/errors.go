// Package errors provides coded errors for cdgpath's input handling.
//
// The CDG engine itself reports programmer faults by panicking and uses plain
// sentinel errors. Everything that reads user input (graph files, coverage
// files, config, command arguments) returns an [*Error] instead, so the CLI
// can tell bad input apart from internal failures.
//
// # Error Codes
//
// Codes are grouped by prefix:
//   - INVALID_*: the input is malformed
//   - DUPLICATE_NODE, UNKNOWN_PARENT: the input describes an impossible tree
//   - NOT_FOUND: a referenced file or node does not exist
//   - INTERNAL_ERROR, UNSUPPORTED: everything else
//
// # Usage
//
//	err := errors.New(errors.ErrCodeDuplicateNode, "node %d defined twice", id)
//	if errors.Is(err, errors.ErrCodeDuplicateNode) {
//	    // report the offending record
//	}
//
//	err = errors.Wrap(errors.ErrCodeInvalidFormat, cause, "decode %s", path)
package errors

import (
	"errors"
	"fmt"
)

// Code represents a machine-readable error code.
type Code string

const (
	// Input validation errors
	ErrCodeInvalidInput  Code = "INVALID_INPUT"
	ErrCodeInvalidFormat Code = "INVALID_FORMAT"
	ErrCodeInvalidBranch Code = "INVALID_BRANCH"
	ErrCodeInvalidConfig Code = "INVALID_CONFIG"

	// Tree shape errors
	ErrCodeDuplicateNode Code = "DUPLICATE_NODE"
	ErrCodeUnknownParent Code = "UNKNOWN_PARENT"

	// Lookup errors
	ErrCodeNotFound     Code = "NOT_FOUND"
	ErrCodeFileNotFound Code = "FILE_NOT_FOUND"

	// Internal errors
	ErrCodeInternal    Code = "INTERNAL_ERROR"
	ErrCodeUnsupported Code = "UNSUPPORTED"
)

// Error is a coded error with an optional cause.
type Error struct {
	Code    Code
	Message string
	Cause   error
}

// Error implements the error interface.
func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// Unwrap returns the underlying cause for errors.Is/As compatibility.
func (e *Error) Unwrap() error {
	return e.Cause
}

// New creates an Error with the given code and formatted message.
func New(code Code, format string, args ...any) *Error {
	return &Error{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
	}
}

// Wrap creates an Error around an existing error.
func Wrap(code Code, cause error, format string, args ...any) *Error {
	return &Error{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
		Cause:   cause,
	}
}

// Is reports whether the outermost *Error in err's chain has the given code.
func Is(err error, code Code) bool {
	var e *Error
	if errors.As(err, &e) {
		return e.Code == code
	}
	return false
}

// GetCode extracts the code of the outermost *Error, or "".
func GetCode(err error) Code {
	var e *Error
	if errors.As(err, &e) {
		return e.Code
	}
	return ""
}

// UserMessage returns the message without the code prefix for *Error values
// and the plain error string otherwise.
func UserMessage(err error) string {
	var e *Error
	if errors.As(err, &e) {
		return e.Message
	}
	return err.Error()
}

// IsInputError reports whether err is caused by bad user input rather than an
// internal failure.
func IsInputError(err error) bool {
	switch GetCode(err) {
	case ErrCodeInvalidInput, ErrCodeInvalidFormat, ErrCodeInvalidBranch, ErrCodeInvalidConfig,
		ErrCodeDuplicateNode, ErrCodeUnknownParent, ErrCodeNotFound, ErrCodeFileNotFound:
		return true
	}
	return false
}
