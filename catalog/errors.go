package catalog

import (
	"errors"
	"fmt"
)

var (
	ErrInvalidField = errors.New("invalid field")
	ErrInvalidTime  = errors.New("invalid time")
)

// FieldError reports a raw field that failed validation.
type FieldError struct {
	Field  string
	Value  string
	Reason string
}

func (e *FieldError) Error() string {
	if e.Reason != "" {
		return fmt.Sprintf("invalid %v %q: %v", e.Field, e.Value, e.Reason)
	}
	return fmt.Sprintf("invalid %v %q", e.Field, e.Value)
}

func (e *FieldError) Is(target error) bool {
	return target == ErrInvalidField
}

// TimeError reports clock text that is not a valid 12 or 24 hour time.
type TimeError struct {
	Text   string
	Reason string
}

func (e *TimeError) Error() string {
	return fmt.Sprintf("invalid time %q: %v", e.Text, e.Reason)
}

func (e *TimeError) Is(target error) bool {
	return target == ErrInvalidTime
}

// ValidationError is the record level failure. The builder skips records
// that fail with it and aborts on anything else.
type ValidationError struct {
	Title string
	Err   error
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%v: %v", e.Title, e.Err)
}

func (e *ValidationError) Unwrap() error {
	return e.Err
}

func invalidField(field, value, reason string) error {
	return &FieldError{Field: field, Value: value, Reason: reason}
}
