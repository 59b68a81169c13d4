package kpi

import (
	"errors"
	"fmt"
)

// ErrorKind classifies KPI failures so callers can map them to responses
type ErrorKind string

const (
	KindInvalidTransition ErrorKind = "invalid_transition"
	KindLockedRecord      ErrorKind = "locked_record"
	KindValidation        ErrorKind = "validation"
	KindNotFound          ErrorKind = "not_found"
)

// Error is a typed KPI failure. errors.Is matches any *Error of the same
// kind against the Err* sentinels below.
type Error struct {
	Kind    ErrorKind
	Message string
	cause   error
}

func (e *Error) Error() string {
	if e.Message == "" {
		return string(e.Kind)
	}
	return e.Message
}

// Is matches sentinels by kind
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return t.Message == "" && t.Kind == e.Kind
}

func (e *Error) Unwrap() error {
	return e.cause
}

// Sentinels for errors.Is
var (
	ErrInvalidTransition = &Error{Kind: KindInvalidTransition}
	ErrLockedRecord      = &Error{Kind: KindLockedRecord}
	ErrValidation        = &Error{Kind: KindValidation}
	ErrNotFound          = &Error{Kind: KindNotFound}

	// ErrAutoCompletion marks a recalculation refused because the inquiry
	// has auto completion enabled. It is wrapped in an invalid transition.
	ErrAutoCompletion = errors.New("auto completion enabled")
)

// InvalidTransition builds an invalid transition error
func InvalidTransition(format string, args ...interface{}) *Error {
	return &Error{Kind: KindInvalidTransition, Message: fmt.Sprintf(format, args...)}
}

// LockedRecord builds a locked record error
func LockedRecord(format string, args ...interface{}) *Error {
	return &Error{Kind: KindLockedRecord, Message: fmt.Sprintf(format, args...)}
}

// ValidationError builds a validation error
func ValidationError(format string, args ...interface{}) *Error {
	return &Error{Kind: KindValidation, Message: fmt.Sprintf(format, args...)}
}

// NotFound builds a not found error for the named entity
func NotFound(entity string, id interface{}) *Error {
	return &Error{Kind: KindNotFound, Message: fmt.Sprintf("%s %v not found", entity, id)}
}

// KindOf returns the kind of a KPI error anywhere in the chain, or "" if none
func KindOf(err error) ErrorKind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return ""
}
