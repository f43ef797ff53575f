// Package apperrors contains the error taxonomy shared by the ledger, the
// gateways and the HTTP layer.
package apperrors

import (
	"errors"
	"net/http"
)

// Category defines error category
type Category int

const (
	CategoryGeneral Category = iota
	// CategoryUnauthorized is an unknown or unverified identity.
	CategoryUnauthorized
	// CategoryNotFound is a reference to an entity that does not exist.
	CategoryNotFound
	// CategoryConflict is a uniqueness violation.
	CategoryConflict
	// CategoryInvalidRequest is malformed or out-of-range input.
	CategoryInvalidRequest
	// CategoryBadCredential is an empty or malformed wallet address.
	CategoryBadCredential
	// CategoryUpstream is a failure of an external provider.
	CategoryUpstream
	CategoryRateLimited
)

func (c Category) String() string {
	switch c {
	case CategoryUnauthorized:
		return "Unauthorized"
	case CategoryNotFound:
		return "NotFound"
	case CategoryConflict:
		return "Conflict"
	case CategoryInvalidRequest:
		return "InvalidRequest"
	case CategoryBadCredential:
		return "BadCredential"
	case CategoryUpstream:
		return "Upstream"
	case CategoryRateLimited:
		return "RateLimited"
	default:
		return "General"
	}
}

// ServiceError carries a category, a message that is safe to show to the
// client, and the underlying error for logs.
type ServiceError struct {
	Category Category
	Message  string
	Err      error
}

func (err *ServiceError) Error() string {
	if err.Err != nil {
		return err.Message + ": " + err.Err.Error()
	}
	return err.Message
}

func (err *ServiceError) Unwrap() error {
	return err.Err
}

// StatusCode returns the HTTP status code for the error category
func (err *ServiceError) StatusCode() int {
	switch err.Category {
	case CategoryUnauthorized:
		return http.StatusUnauthorized
	case CategoryNotFound:
		return http.StatusNotFound
	case CategoryConflict:
		return http.StatusConflict
	case CategoryInvalidRequest, CategoryBadCredential:
		return http.StatusBadRequest
	case CategoryRateLimited:
		return http.StatusTooManyRequests
	default:
		return http.StatusInternalServerError
	}
}

// Is reports whether err is a ServiceError of the given category.
func Is(err error, cat Category) bool {
	var svcErr *ServiceError
	return errors.As(err, &svcErr) && svcErr.Category == cat
}

func newError(cat Category, err error, message string) error {
	if err == nil {
		err = errors.New(message)
	}
	return &ServiceError{Category: cat, Message: message, Err: err}
}

func UnauthorizedError(err error, message string) error {
	return newError(CategoryUnauthorized, err, message)
}

func NotFoundError(err error, message string) error {
	return newError(CategoryNotFound, err, message)
}

func ConflictError(err error, message string) error {
	return newError(CategoryConflict, err, message)
}

func InvalidRequestError(err error, message string) error {
	return newError(CategoryInvalidRequest, err, message)
}

func BadCredentialError(err error, message string) error {
	return newError(CategoryBadCredential, err, message)
}

// UpstreamError wraps a provider failure. The client only sees message.
func UpstreamError(err error, message string) error {
	return newError(CategoryUpstream, err, message)
}

func RateLimitedError(message string) error {
	return newError(CategoryRateLimited, nil, message)
}

// GeneralError hides err behind a generic message.
func GeneralError(err error) error {
	return newError(CategoryGeneral, err, "Internal Server Error")
}
