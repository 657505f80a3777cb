package apperrors

import (
	"errors"
	"fmt"
)

// Kind classifies an application error. The set is closed; handlers map each
// kind to exactly one response status.
type Kind string

const (
	KindValidation   Kind = "VALIDATION"
	KindConflict     Kind = "CONFLICT"
	KindNotFound     Kind = "NOT_FOUND"
	KindStorage      Kind = "STORAGE"
	KindUnauthorized Kind = "UNAUTHORIZED"
)

// ErrNotFound indicates that a requested resource could not be found.
var ErrNotFound = errors.New("resource not found")

// ErrValidation indicates that input data failed validation checks.
var ErrValidation = errors.New("validation error")

// ErrConflict indicates that the request clashes with existing state
// (duplicate code, idempotency key reused with another payload).
var ErrConflict = errors.New("conflict")

// ErrStorage indicates a failure of the relational store. Nothing was committed.
var ErrStorage = errors.New("storage error")

// ErrUnauthorized indicates that the caller could not be authenticated.
var ErrUnauthorized = errors.New("unauthorized")

// ErrDuplicate is kept as an alias of ErrConflict for unique-constraint violations.
var ErrDuplicate = ErrConflict

var sentinels = map[Kind]error{
	KindValidation:   ErrValidation,
	KindConflict:     ErrConflict,
	KindNotFound:     ErrNotFound,
	KindStorage:      ErrStorage,
	KindUnauthorized: ErrUnauthorized,
}

// AppError is the single error shape crossing the core boundary.
type AppError struct {
	Kind    Kind
	Message string
	// Details carries the offending data (unbalanced totals, missing ids).
	Details map[string]any
	Err     error
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// Is lets errors.Is(err, apperrors.ErrValidation) and friends match on kind.
func (e *AppError) Is(target error) bool {
	s, ok := sentinels[e.Kind]
	return ok && s == target
}

// WithDetail attaches a key/value pair to the error's details and returns it.
func (e *AppError) WithDetail(key string, value any) *AppError {
	if e.Details == nil {
		e.Details = make(map[string]any)
	}
	e.Details[key] = value
	return e
}

// NewAppError creates an AppError of the given kind wrapping an optional cause.
func NewAppError(kind Kind, message string, err error) *AppError {
	return &AppError{Kind: kind, Message: message, Err: err}
}

func NewValidationError(message string) *AppError {
	return NewAppError(KindValidation, message, nil)
}

func NewConflictError(message string) *AppError {
	return NewAppError(KindConflict, message, nil)
}

func NewNotFoundError(message string) *AppError {
	return NewAppError(KindNotFound, message, nil)
}

// NewStorageError wraps a driver or transaction failure.
func NewStorageError(message string, err error) *AppError {
	return NewAppError(KindStorage, message, err)
}

func NewUnauthorizedError(message string) *AppError {
	return NewAppError(KindUnauthorized, message, nil)
}

// KindOf reports the kind of err, defaulting to KindStorage for foreign errors.
func KindOf(err error) Kind {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Kind
	}
	switch {
	case errors.Is(err, ErrValidation):
		return KindValidation
	case errors.Is(err, ErrConflict):
		return KindConflict
	case errors.Is(err, ErrNotFound):
		return KindNotFound
	case errors.Is(err, ErrUnauthorized):
		return KindUnauthorized
	}
	return KindStorage
}

// As extracts the AppError from err's chain, if any.
func As(err error) (*AppError, bool) {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr, true
	}
	return nil, false
}
