package apierrors

import (
	"errors"

	"github.com/gin-gonic/gin"
)

// APIError represents the JSON error response structure
type APIError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// Respond sends the response for a typed error, resolving HTTP status and
// message through the registry
func Respond(c *gin.Context, err error) {
	code := CodeOf(err)
	message := Registry.Message(code)
	var e *Error
	if errors.As(err, &e) {
		message = e.Message
	}
	c.JSON(Registry.HTTPStatus(code), gin.H{"error": APIError{Code: code, Message: message}})
}

// RespondCode sends the response for a bare code using its registered message
func RespondCode(c *gin.Context, code string) {
	ErrorWithMessage(c, code, Registry.Message(code))
}

// ErrorWithMessage sends an error response with a custom message
// Useful when the message needs dynamic content (e.g., validation details)
func ErrorWithMessage(c *gin.Context, code, message string) {
	status := Registry.HTTPStatus(code)
	c.JSON(status, gin.H{"error": APIError{Code: code, Message: message}})
}
