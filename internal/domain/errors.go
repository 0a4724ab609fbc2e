// Package domain contains the quote entity, its input schema and the error
// taxonomy shared by every layer.
//
// Every domain failure belongs to one Kind. Adapters branch on the kind
// (errors.Is against the Err* values) and read details with errors.As.
package domain

import (
	"errors"
	"fmt"
)

// Kind classifies a domain failure. Kinds are themselves errors so they
// can be used as errors.Is targets.
type Kind string

func (k Kind) Error() string { return string(k) }

const (
	// ErrNotFound: the quote never existed or was deleted.
	ErrNotFound Kind = "not found"

	// ErrValidation: input broke a rule, such as a blank text or author.
	ErrValidation Kind = "validation failed"

	// ErrUnavailable: the store or the upstream could not serve the call.
	ErrUnavailable Kind = "unavailable"
)

// KindOf returns the kind of err, or "" for nil and non-domain errors.
func KindOf(err error) Kind {
	for _, k := range []Kind{ErrNotFound, ErrValidation, ErrUnavailable} {
		if errors.Is(err, k) {
			return k
		}
	}

	return ""
}

// NotFoundError names the missing entity.
type NotFoundError struct {
	Entity string
	ID     string
}

func (e *NotFoundError) Error() string {
	if e.ID == "" {
		return e.Entity + " not found"
	}

	return fmt.Sprintf("%s with id %q not found", e.Entity, e.ID)
}

func (e *NotFoundError) Is(target error) bool { return target == ErrNotFound }

func NewNotFoundError(entity, id string) error {
	return &NotFoundError{Entity: entity, ID: id}
}

// ValidationError carries the offending field so forms can point at it.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	if e.Field == "" {
		return "validation failed: " + e.Message
	}

	return fmt.Sprintf("validation failed for %s: %s", e.Field, e.Message)
}

func (e *ValidationError) Is(target error) bool { return target == ErrValidation }

func NewValidationError(field, message string) error {
	return &ValidationError{Field: field, Message: message}
}

// UnavailableError reports a dependency failure. Cause stays reachable via
// errors.Is/As and slog, but Error() never includes it, so driver and
// upstream messages do not reach responses.
type UnavailableError struct {
	Service string
	Reason  string
	Cause   error
}

func (e *UnavailableError) Error() string {
	msg := fmt.Sprintf("service %q unavailable", e.Service)
	if e.Reason != "" {
		msg += ": " + e.Reason
	}

	return msg
}

func (e *UnavailableError) Is(target error) bool { return target == ErrUnavailable }

func (e *UnavailableError) Unwrap() error { return e.Cause }

func NewUnavailableError(service, reason string) error {
	return &UnavailableError{Service: service, Reason: reason}
}

func NewUnavailableErrorWithCause(service, reason string, cause error) error {
	return &UnavailableError{Service: service, Reason: reason, Cause: cause}
}

func IsNotFound(err error) bool    { return errors.Is(err, ErrNotFound) }
func IsValidation(err error) bool  { return errors.Is(err, ErrValidation) }
func IsUnavailable(err error) bool { return errors.Is(err, ErrUnavailable) }
