package apierrors

import (
	"errors"
	"fmt"
)

// Error is a typed error carrying a registered code. Core packages return
// *Error values; the HTTP layer maps them to a status via the registry.
type Error struct {
	Code    string
	Message string
}

func (e *Error) Error() string {
	return e.Code + ": " + e.Message
}

// New creates an *Error for a registered code with its default message
func New(code string) *Error {
	return &Error{Code: code, Message: Registry.Message(code)}
}

// Newf creates an *Error with a formatted message
func Newf(code, format string, args ...any) *Error {
	return &Error{Code: code, Message: fmt.Sprintf(format, args...)}
}

// CodeOf extracts the registered code from an error chain.
// Unrecognized errors map to the internal error code.
func CodeOf(err error) string {
	var e *Error
	if errors.As(err, &e) {
		return e.Code
	}
	return CodeInternalError
}

// IsCode reports whether err carries the given code
func IsCode(err error, code string) bool {
	return CodeOf(err) == code
}
