// Package errors defines the application error taxonomy. Every failure the
// delivery layer can surface maps to one of the values or types here; the
// HTTP boundary translates them without inspecting business state.
package errors

import (
	"fmt"
	"net/http"

	"campusmart/internal/errors"
)

// AppError defines the interface for application-specific errors.
type AppError interface {
	error
	HTTPCode() int     // HTTP status code
	ErrorCode() string // Business error code
	Message() string   // User-friendly error message
	Details() string   // Detailed error information (optional)
}

// BaseError is a basic error structure that implements the AppError interface.
type BaseError struct {
	httpCode  int
	errorCode string
	message   string
	details   string
}

// NewBaseError creates a new base error.
func NewBaseError(httpCode int, errorCode, message, details string) *BaseError {
	return &BaseError{
		httpCode:  httpCode,
		errorCode: errorCode,
		message:   message,
		details:   details,
	}
}

// Error implements the error interface.
func (e *BaseError) Error() string {
	return e.message
}

// WrapMessage wraps the error with additional context message.
func (e *BaseError) WrapMessage(message string) error {
	return errors.Wrap(e, message)
}

// HTTPCode returns the HTTP status code.
func (e *BaseError) HTTPCode() int {
	return e.httpCode
}

// ErrorCode returns the business error code.
func (e *BaseError) ErrorCode() string {
	return e.errorCode
}

// Message returns the user-friendly error message.
func (e *BaseError) Message() string {
	return e.message
}

// Details returns detailed error information.
func (e *BaseError) Details() string {
	return e.details
}

// WithDetails adds detailed error information.
func (e *BaseError) WithDetails(details string) *BaseError {
	return &BaseError{
		httpCode:  e.httpCode,
		errorCode: e.errorCode,
		message:   e.message,
		details:   details,
	}
}

// Predefined error values covering the taxonomy. Forbidden-* messages must
// not reveal whether the resource exists.
var (
	ErrValidation = NewBaseError(
		http.StatusBadRequest,
		"VALIDATION_FAILED",
		"request validation failed",
		"",
	)

	ErrUnauthenticated = NewBaseError(
		http.StatusUnauthorized,
		"UNAUTHENTICATED",
		"authentication required",
		"",
	)

	ErrForbiddenRole = NewBaseError(
		http.StatusForbidden,
		"FORBIDDEN_ROLE",
		"insufficient permissions",
		"",
	)

	ErrForbiddenScope = NewBaseError(
		http.StatusForbidden,
		"FORBIDDEN_SCOPE",
		"insufficient permissions",
		"",
	)

	ErrUnverified = NewBaseError(
		http.StatusForbidden,
		"UNVERIFIED",
		"campus email verification required",
		"",
	)

	ErrNotFound = NewBaseError(
		http.StatusNotFound,
		"NOT_FOUND",
		"resource not found",
		"",
	)

	ErrConflict = NewBaseError(
		http.StatusConflict,
		"CONFLICT",
		"resource conflict",
		"",
	)

	ErrEmptyCart = NewBaseError(
		http.StatusBadRequest,
		"EMPTY_CART",
		"cart is empty",
		"",
	)

	ErrShopUnavailable = NewBaseError(
		http.StatusConflict,
		"SHOP_UNAVAILABLE",
		"one or more shops in the cart are not accepting orders",
		"",
	)

	ErrInternal = NewBaseError(
		http.StatusInternalServerError,
		"INTERNAL_ERROR",
		"internal server error",
		"",
	)
)

// StaleCartCause names which authoritative value diverged from the cart.
type StaleCartCause string

const (
	StaleCausePrice StaleCartCause = "price"
	StaleCauseStock StaleCartCause = "stock"
)

// StaleCartError rejects an entire checkout because one line no longer
// matches authoritative server state. It reports the first offending
// product and whether price or stock diverged.
type StaleCartError struct {
	ProductID string
	Cause     StaleCartCause
}

func (e *StaleCartError) Error() string {
	return fmt.Sprintf("stale cart: product %s %s changed", e.ProductID, e.Cause)
}

// HTTPCode returns the HTTP status code.
func (e *StaleCartError) HTTPCode() int {
	return http.StatusConflict
}

// ErrorCode returns the business error code.
func (e *StaleCartError) ErrorCode() string {
	return "STALE_CART"
}

// Message returns the user-friendly error message.
func (e *StaleCartError) Message() string {
	return e.Error()
}

// Details returns detailed error information.
func (e *StaleCartError) Details() string {
	return fmt.Sprintf("productId=%s cause=%s", e.ProductID, e.Cause)
}

// NewStaleCart creates a stale-cart error for the first offending product.
func NewStaleCart(productID string, cause StaleCartCause) *StaleCartError {
	return &StaleCartError{ProductID: productID, Cause: cause}
}

// InvalidTransitionError rejects an order status change, naming the
// attempted edge.
type InvalidTransitionError struct {
	From string
	To   string
}

func (e *InvalidTransitionError) Error() string {
	return fmt.Sprintf("invalid order transition from %s to %s", e.From, e.To)
}

// HTTPCode returns the HTTP status code.
func (e *InvalidTransitionError) HTTPCode() int {
	return http.StatusUnprocessableEntity
}

// ErrorCode returns the business error code.
func (e *InvalidTransitionError) ErrorCode() string {
	return "INVALID_TRANSITION"
}

// Message returns the user-friendly error message.
func (e *InvalidTransitionError) Message() string {
	return e.Error()
}

// Details returns detailed error information.
func (e *InvalidTransitionError) Details() string {
	return fmt.Sprintf("from=%s to=%s", e.From, e.To)
}

// NewInvalidTransition creates an invalid-transition error for the edge.
func NewInvalidTransition(from, to string) *InvalidTransitionError {
	return &InvalidTransitionError{From: from, To: to}
}

// DatabaseExecuteError represents a database execution error, implementing
// the AppError interface.
type DatabaseExecuteError struct {
	err     error
	details string
}

// NewDatabaseExecuteError creates a database-related error.
func NewDatabaseExecuteError(err error, details string) AppError {
	return &DatabaseExecuteError{
		err:     err,
		details: details,
	}
}

// Error implements the error interface.
func (e *DatabaseExecuteError) Error() string {
	return errors.Wrap(e.err, "database execution failed").Error()
}

// HTTPCode returns the HTTP status code.
func (e *DatabaseExecuteError) HTTPCode() int {
	return http.StatusInternalServerError
}

// ErrorCode returns the business error code.
func (e *DatabaseExecuteError) ErrorCode() string {
	return "DATABASE_EXECUTE_FAILED"
}

// Message returns the user-friendly error message.
func (e *DatabaseExecuteError) Message() string {
	return "database execution failed"
}

// Details returns detailed error information.
func (e *DatabaseExecuteError) Details() string {
	return e.details
}
