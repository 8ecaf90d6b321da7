package errors

import (
	"errors"
	"fmt"
	"net/http"
)

const (
	CodeNotFound        = "NOT_FOUND"
	CodeInvalidArgument = "INVALID_ARGUMENT"
	CodeInvalidState    = "INVALID_STATE"
	CodeUnauthorized    = "UNAUTHORIZED"
	CodeForbidden       = "FORBIDDEN"
	CodeConflict        = "CONFLICT"
	CodeOutOfStock      = "OUT_OF_STOCK"
	CodeEmptyCart       = "EMPTY_CART"
	CodeTransient       = "TRANSIENT"
	CodeInternal        = "INTERNAL_ERROR"
	CodeTooManyRequests = "TOO_MANY_REQUESTS"
)

type AppError struct {
	Code    string
	Message string
	Status  int
	Err     error
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *AppError) Unwrap() error {
	return e.Err
}

func New(code string, message string, status int, err error) *AppError {
	return &AppError{
		Code:    code,
		Message: message,
		Status:  status,
		Err:     err,
	}
}

func NotFound(resource string, err error) *AppError {
	return &AppError{
		Code:    CodeNotFound,
		Message: fmt.Sprintf("%s not found", resource),
		Status:  http.StatusNotFound,
		Err:     err,
	}
}

// InvalidArgument is returned for malformed input, e.g. a cart quantity below one.
func InvalidArgument(message string, err error) *AppError {
	return &AppError{
		Code:    CodeInvalidArgument,
		Message: message,
		Status:  http.StatusBadRequest,
		Err:     err,
	}
}

// InvalidState is returned when a status transition is attempted from the wrong state.
func InvalidState(message string) *AppError {
	return &AppError{
		Code:    CodeInvalidState,
		Message: message,
		Status:  http.StatusConflict,
	}
}

func Unauthorized(message string, err error) *AppError {
	return &AppError{
		Code:    CodeUnauthorized,
		Message: message,
		Status:  http.StatusUnauthorized,
		Err:     err,
	}
}

func Forbidden(message string, err error) *AppError {
	return &AppError{
		Code:    CodeForbidden,
		Message: message,
		Status:  http.StatusForbidden,
		Err:     err,
	}
}

func Conflict(message string) *AppError {
	return &AppError{
		Code:    CodeConflict,
		Message: message,
		Status:  http.StatusConflict,
	}
}

func OutOfStock(productName string, requested, available int) *AppError {
	return &AppError{
		Code:    CodeOutOfStock,
		Message: fmt.Sprintf("only %d of %q in stock, %d requested", available, productName, requested),
		Status:  http.StatusConflict,
	}
}

func EmptyCart() *AppError {
	return &AppError{
		Code:    CodeEmptyCart,
		Message: "cart is empty",
		Status:  http.StatusUnprocessableEntity,
	}
}

// Transient marks a backend failure that is safe to retry.
func Transient(err error) *AppError {
	return &AppError{
		Code:    CodeTransient,
		Message: "service temporarily unavailable, try again later",
		Status:  http.StatusServiceUnavailable,
		Err:     err,
	}
}

func Internal(message string, err error) *AppError {
	return &AppError{
		Code:    CodeInternal,
		Message: message,
		Status:  http.StatusInternalServerError,
		Err:     err,
	}
}

func TooManyRequests(message string) *AppError {
	return &AppError{
		Code:    CodeTooManyRequests,
		Message: message,
		Status:  http.StatusTooManyRequests,
	}
}

func Is(err error, code string) bool {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Code == code
	}
	return false
}

// IsRetryable reports whether the caller may safely retry err.
func IsRetryable(err error) bool {
	return Is(err, CodeTransient)
}
