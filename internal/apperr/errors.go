// Package apperr defines the error taxonomy shared by repositories, the order
// engine, and handlers. Every error carries a stable kind and a human-readable
// message; internal causes are kept for logging and never exposed to callers.
package apperr

import (
	"errors"
	"fmt"
	"net/http"
)

// Kind identifies the class of an application error.
type Kind string

const (
	KindUnauthenticated   Kind = "unauthenticated"
	KindForbidden         Kind = "forbidden"
	KindNotFound          Kind = "not_found"
	KindConflict          Kind = "conflict"
	KindInvalidInput      Kind = "invalid_input"
	KindOutOfStock        Kind = "out_of_stock"
	KindInsufficientStock Kind = "insufficient_stock"
	KindUpstreamFailure   Kind = "upstream_failure"
	KindInternal          Kind = "internal"
)

// Error is an application error with a stable kind. Stock errors additionally
// identify the offending product; Available is only meaningful for
// KindInsufficientStock.
type Error struct {
	Kind      Kind
	Message   string
	ProductID uint
	Available int
	Err       error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Kind, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Unauthenticated signals a missing, invalid or expired credential.
func Unauthenticated(message string) *Error {
	return &Error{Kind: KindUnauthenticated, Message: message}
}

// Forbidden signals an authenticated caller lacking permission.
func Forbidden(message string) *Error {
	return &Error{Kind: KindForbidden, Message: message}
}

// NotFound signals an entity lookup miss.
func NotFound(message string) *Error {
	return &Error{Kind: KindNotFound, Message: message}
}

// Conflict signals a duplicate unique field on create.
func Conflict(message string) *Error {
	return &Error{Kind: KindConflict, Message: message}
}

// InvalidInput signals a malformed or incomplete request.
func InvalidInput(message string) *Error {
	return &Error{Kind: KindInvalidInput, Message: message}
}

// ProductNotFound signals an order line referencing an unknown product.
func ProductNotFound(productID uint) *Error {
	return &Error{
		Kind:      KindNotFound,
		Message:   fmt.Sprintf("product %d not found", productID),
		ProductID: productID,
	}
}

// OutOfStock signals an order line against a product with zero stock.
func OutOfStock(productID uint, description string) *Error {
	return &Error{
		Kind:      KindOutOfStock,
		Message:   fmt.Sprintf("product %q is out of stock", description),
		ProductID: productID,
	}
}

// InsufficientStock signals an order line exceeding the available stock.
func InsufficientStock(productID uint, description string, available int) *Error {
	return &Error{
		Kind:      KindInsufficientStock,
		Message:   fmt.Sprintf("insufficient stock for product %q: %d available", description, available),
		ProductID: productID,
		Available: available,
	}
}

// Upstream signals a failed call to an external collaborator.
func Upstream(message string, err error) *Error {
	return &Error{Kind: KindUpstreamFailure, Message: message, Err: err}
}

// Internal wraps an unexpected fault. The caller-visible message stays
// generic; the cause is preserved for logging only.
func Internal(err error) *Error {
	return &Error{Kind: KindInternal, Message: "internal server error", Err: err}
}

// From extracts an *Error from err, wrapping unknown errors as internal
// faults so handlers always have a kind to map.
func From(err error) *Error {
	var appErr *Error
	if errors.As(err, &appErr) {
		return appErr
	}
	return Internal(err)
}

// HTTPStatus maps an error kind to its transport status code.
func HTTPStatus(err error) int {
	switch From(err).Kind {
	case KindUnauthenticated:
		return http.StatusUnauthorized
	case KindForbidden:
		return http.StatusForbidden
	case KindNotFound:
		return http.StatusNotFound
	case KindConflict:
		return http.StatusConflict
	case KindInvalidInput, KindOutOfStock, KindInsufficientStock:
		return http.StatusBadRequest
	case KindUpstreamFailure:
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}
