// Package validation holds the error type domain models return when a
// record fails its field checks. Violations are caught before any storage
// call, so a stored document always satisfies its model's rules.
package validation

import (
	"errors"
	"fmt"
)

// Error is a field-level validation failure.
type Error struct {
	Field   string
	Message string
}

// Error implements the error interface.
func (e *Error) Error() string {
	return e.Message
}

// Errf builds a validation error for the given field.
func Errf(field, format string, args ...any) *Error {
	return &Error{Field: field, Message: fmt.Sprintf(format, args...)}
}

// FieldOf returns the offending field name when err is a validation
// error, empty otherwise.
func FieldOf(err error) string {
	var verr *Error
	if errors.As(err, &verr) {
		return verr.Field
	}
	return ""
}
