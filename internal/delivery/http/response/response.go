// Package response defines the JSON envelope every API handler returns.
package response

import (
	"net/http"

	deliverycontext "campusmart/internal/delivery/context"

	"github.com/labstack/echo/v4"
)

// Envelope is the wire shape for every API reply. Data carries the payload
// on success; Error is set instead when the request failed. RequestID lets
// support tie a client report back to the server logs.
type Envelope struct {
	Success   bool       `json:"success"`
	Code      int        `json:"code"`
	Message   string     `json:"message"`
	RequestID string     `json:"requestId,omitempty"`
	Data      any        `json:"data,omitempty"`
	Error     *ErrorInfo `json:"error,omitempty"`
}

// ErrorInfo carries the business error code, e.g. "STALE_CART" or
// "INVALID_TRANSITION", plus optional detail text.
type ErrorInfo struct {
	Code    string `json:"code"`
	Details string `json:"details,omitempty"`
}

// Success writes a success envelope with the given payload.
func Success(c echo.Context, statusCode int, data any, message string) error {
	if message == "" {
		message = "Success"
	}

	return c.JSON(statusCode, Envelope{
		Success:   true,
		Code:      statusCode,
		Message:   message,
		RequestID: deliverycontext.RequestIDFromEcho(c),
		Data:      data,
	})
}

// Error writes a failure envelope carrying the business error code.
func Error(c echo.Context, statusCode int, errorCode string, message string, details string) error {
	if message == "" {
		message = http.StatusText(statusCode)
	}

	return c.JSON(statusCode, Envelope{
		Success:   false,
		Code:      statusCode,
		Message:   message,
		RequestID: deliverycontext.RequestIDFromEcho(c),
		Error: &ErrorInfo{
			Code:    errorCode,
			Details: details,
		},
	})
}

// BadRequest writes a 400 failure envelope.
func BadRequest(c echo.Context, errorCode string, message string) error {
	return Error(c, http.StatusBadRequest, errorCode, message, "")
}

// BindingError writes a 400 failure envelope for malformed request bodies.
func BindingError(c echo.Context, errorCode string, message string) error {
	return Error(c, http.StatusBadRequest, errorCode, message, "")
}
