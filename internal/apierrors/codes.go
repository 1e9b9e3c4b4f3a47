// Package apierrors provides structured API error codes and responses.
// All codes are namespaced under "zd:" to mirror the emulated platform surface.
package apierrors

import "net/http"

// Emulator error codes - registered automatically at init
const (
	// Malformed or missing required fields in an incoming payload
	CodeValidationFailed = "zd:validation_failed"

	// Field or feature intentionally unsupported by the emulator.
	// Signals a platform-fidelity gap, not a bug. Answered with 405,
	// matching the emulated platform's mock surface.
	CodeNotImplemented = "zd:not_implemented"

	// Caller supplied a field that may never be set (e.g. id on create)
	CodePropertyNotAllowed = "zd:property_not_allowed"

	// Resource errors
	CodeNotFound       = "zd:not_found"
	CodeDuplicateEmail = "zd:duplicate_email"
	CodeConflict       = "zd:conflict"
	CodeTicketClosed   = "zd:ticket_closed"

	// Caller exceeded the configured request rate
	CodeRateLimited = "zd:rate_limited"

	// Server errors
	CodeInternalError = "zd:internal_error"
)

// emulatorErrors defines all error codes with their default messages and HTTP status
var emulatorErrors = []ErrorCode{
	{Code: CodeValidationFailed, Message: "Request validation failed", HTTPStatus: http.StatusBadRequest},
	{Code: CodeNotImplemented, Message: "Not yet implemented", HTTPStatus: http.StatusMethodNotAllowed},
	{Code: CodePropertyNotAllowed, Message: "Property may not be set", HTTPStatus: http.StatusBadRequest},
	{Code: CodeNotFound, Message: "Resource not found", HTTPStatus: http.StatusNotFound},
	{Code: CodeDuplicateEmail, Message: "User with this email already exists", HTTPStatus: http.StatusUnprocessableEntity},
	{Code: CodeConflict, Message: "Resource conflict", HTTPStatus: http.StatusConflict},
	{Code: CodeTicketClosed, Message: "Closed tickets cannot be updated", HTTPStatus: http.StatusUnprocessableEntity},
	{Code: CodeRateLimited, Message: "Rate limit exceeded", HTTPStatus: http.StatusTooManyRequests},
	{Code: CodeInternalError, Message: "Internal server error", HTTPStatus: http.StatusInternalServerError},
}

func init() {
	// Register all emulator error codes
	for _, e := range emulatorErrors {
		Registry.Register(e)
	}
}
