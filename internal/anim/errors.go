package anim

import (
	"errors"
	"fmt"
)

// Domain errors for animation documents.
var (
	// ErrInvalidAnimation indicates a document that cannot be imported.
	ErrInvalidAnimation = errors.New("anim: invalid animation")

	// ErrNotLegacy indicates a document without a legacy keyframes array.
	ErrNotLegacy = errors.New("anim: not a legacy animation")
)

// FormatError describes why a document was rejected.
type FormatError struct {
	Field   string
	Reason  string
	Wrapped error
}

func (e *FormatError) Error() string {
	if e.Field == "" {
		return fmt.Sprintf("%v: %s", ErrInvalidAnimation, e.Reason)
	}
	return fmt.Sprintf("%v: %s: %s", ErrInvalidAnimation, e.Field, e.Reason)
}

func (e *FormatError) Unwrap() []error {
	if e.Wrapped == nil {
		return []error{ErrInvalidAnimation}
	}
	return []error{ErrInvalidAnimation, e.Wrapped}
}

func formatErr(field, reason string, args ...any) *FormatError {
	return &FormatError{Field: field, Reason: fmt.Sprintf(reason, args...)}
}
