package storage

import (
	"context"
	"errors"
	"fmt"
	"strings"
)

// Kind classifies a storage failure. Backend-specific error shapes are
// mapped onto these kinds at the storage boundary so callers never
// inspect message strings.
type Kind int

const (
	KindUnknown Kind = iota
	KindNotFound
	KindPermissionDenied
	KindUnavailable
	KindTimeout
)

// String returns a stable name for the kind.
func (k Kind) String() string {
	switch k {
	case KindNotFound:
		return "not_found"
	case KindPermissionDenied:
		return "permission_denied"
	case KindUnavailable:
		return "unavailable"
	case KindTimeout:
		return "timeout"
	default:
		return "unknown"
	}
}

// Error is a failure from the storage backend.
type Error struct {
	Kind Kind
	Op   string // e.g. "insert members"
	Err  error
}

// Error implements the error interface.
func (e *Error) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("storage: %s: %s", e.Op, e.Kind)
	}
	return fmt.Sprintf("storage: %s: %s: %v", e.Op, e.Kind, e.Err)
}

// Unwrap exposes the underlying cause.
func (e *Error) Unwrap() error { return e.Err }

// NewError builds a storage Error with an explicit kind.
func NewError(kind Kind, op string, err error) *Error {
	return &Error{Kind: kind, Op: op, Err: err}
}

// WrapErr classifies err and wraps it as a storage Error. Context
// cancellation and deadline errors map to Timeout; driver-level
// lock/connection failures map to Unavailable.
func WrapErr(op string, err error) *Error {
	if err == nil {
		return nil
	}
	var se *Error
	if errors.As(err, &se) {
		return se
	}
	return &Error{Kind: classify(err), Op: op, Err: err}
}

// KindOf returns the kind of err if it is a storage Error, KindUnknown
// otherwise.
func KindOf(err error) Kind {
	var se *Error
	if errors.As(err, &se) {
		return se.Kind
	}
	return KindUnknown
}

// IsNotFound reports whether err is a storage Error of kind NotFound.
func IsNotFound(err error) bool {
	return KindOf(err) == KindNotFound
}

func classify(err error) Kind {
	if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled) {
		return KindTimeout
	}
	msg := strings.ToLower(err.Error())
	switch {
	case strings.Contains(msg, "permission") || strings.Contains(msg, "access denied") || strings.Contains(msg, "readonly database"):
		return KindPermissionDenied
	case strings.Contains(msg, "database is locked") ||
		strings.Contains(msg, "unable to open") ||
		strings.Contains(msg, "connection") ||
		strings.Contains(msg, "no such table"):
		return KindUnavailable
	default:
		return KindUnknown
	}
}
