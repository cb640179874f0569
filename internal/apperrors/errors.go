// Package apperrors is the application error type shared by services and
// controllers. Services wrap failures in an *Error carrying the HTTP status
// the API should answer with; controllers render them through Respond so the
// client always sees the {success, message} envelope and never a stack trace.
package apperrors

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
)

// Error is an application error with an HTTP status code.
type Error struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
	Err     error  `json:"-"`
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.Err
}

// New creates an Error.
func New(code int, message string, err error) *Error {
	return &Error{Code: code, Message: message, Err: err}
}

// BadRequest is shorthand for a 400 with a user-facing message.
func BadRequest(message string) *Error {
	return New(http.StatusBadRequest, message, nil)
}

// NotFound is shorthand for a 404 with a user-facing message.
func NotFound(message string) *Error {
	return New(http.StatusNotFound, message, nil)
}

// Internal wraps an unexpected failure behind a stable message.
func Internal(message string, err error) *Error {
	return New(http.StatusInternalServerError, message, err)
}

var (
	ErrUnauthorized       = New(http.StatusUnauthorized, "Not authorized", nil)
	ErrInvalidCredentials = New(http.StatusUnauthorized, "Invalid email or password", nil)
	ErrInvalidToken       = New(http.StatusUnauthorized, "Invalid or expired token", nil)
)

// Respond writes err as the API's JSON error envelope. Non-application
// errors collapse to a 500 so internals never leak.
func Respond(c *gin.Context, err error) {
	var appErr *Error
	if !errors.As(err, &appErr) {
		appErr = Internal("Internal server error", err)
	}
	c.JSON(appErr.Code, gin.H{
		"success": false,
		"message": appErr.Message,
	})
}
