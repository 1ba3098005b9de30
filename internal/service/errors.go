package service

import (
	"errors"
	"fmt"
	"strings"

	"github.com/luke-tf/finanapp/internal/storage"
)

// ErrorKind classifies failures crossing the service boundary.
type ErrorKind int

const (
	// KindUnknown is the catch-all for anything not otherwise classified.
	KindUnknown ErrorKind = iota
	// KindValidation means caller-supplied data violated an invariant.
	// Always recoverable by correcting the input.
	KindValidation
	// KindStorage means the persistence engine failed. Recoverable by
	// retry or reinitialization.
	KindStorage
)

func (k ErrorKind) String() string {
	switch k {
	case KindValidation:
		return "validation"
	case KindStorage:
		return "storage"
	default:
		return "unknown"
	}
}

// Error is the typed error surfaced to the state container and, from
// there, to the UI. Message is user-facing; the wrapped cause carries
// the technical detail.
type Error struct {
	cause   error
	Message string
	Kind    ErrorKind
}

func (e *Error) Error() string {
	if e.cause != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.cause)
	}
	return e.Message
}

// Unwrap exposes the underlying cause for errors.Is / errors.As.
func (e *Error) Unwrap() error {
	return e.cause
}

// Details returns the technical cause as text, or "" when there is
// none. UIs show this only behind a "details" affordance.
func (e *Error) Details() string {
	if e.cause == nil {
		return ""
	}
	return e.cause.Error()
}

// NewValidationError builds a validation error with a user-facing message.
func NewValidationError(message string) *Error {
	return &Error{Kind: KindValidation, Message: message}
}

// NewStorageError wraps a persistence failure with a user-facing message.
func NewStorageError(message string, cause error) *Error {
	return &Error{Kind: KindStorage, Message: message, cause: cause}
}

// NewUnknownError wraps an unclassified failure.
func NewUnknownError(cause error) *Error {
	return &Error{Kind: KindUnknown, Message: "Something went wrong", cause: cause}
}

// storageKeywords mark error text as persistence-related when no
// sentinel matches. A heuristic, not a contract.
var storageKeywords = []string{"sqlite", "database", "storage", "disk", "no such table", "sql"}

// Classify converts an arbitrary error into a typed *Error. Already
// typed errors pass through unchanged, never re-wrapped.
func Classify(err error) *Error {
	if err == nil {
		return nil
	}

	var typed *Error
	if errors.As(err, &typed) {
		return typed
	}

	switch {
	case errors.Is(err, storage.ErrNotFound):
		return NewStorageError("The record could not be found", err)
	case errors.Is(err, storage.ErrInvalidID), errors.Is(err, storage.ErrInvalidRecord):
		return &Error{Kind: KindValidation, Message: "The record data is invalid", cause: err}
	}

	msg := strings.ToLower(err.Error())
	for _, kw := range storageKeywords {
		if strings.Contains(msg, kw) {
			return NewStorageError("The record store failed", err)
		}
	}

	return NewUnknownError(err)
}
