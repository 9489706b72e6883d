package domain

import (
	"errors"
	"fmt"
)

// Sentinel errors for engine-level failures
var (
	ErrMalformedRoster = errors.New("malformed roster")
	ErrInvalidTemplate = errors.New("invalid template")
)

// MalformedRosterError reports a roster row that cannot be turned into an
// Identity: a missing name, a missing ID, or a duplicate ID.
type MalformedRosterError struct {
	Row    int // 1-based position in the input sequence
	Reason string
}

func (e *MalformedRosterError) Error() string {
	return fmt.Sprintf("roster row %d: %s", e.Row, e.Reason)
}

func (e *MalformedRosterError) Is(target error) bool {
	return target == ErrMalformedRoster
}

// InvalidTemplateError reports a naming template that references an
// unrecognized placeholder or is syntactically broken.
type InvalidTemplateError struct {
	Template string
	Reason   string
}

func (e *InvalidTemplateError) Error() string {
	return fmt.Sprintf("invalid template %q: %s", e.Template, e.Reason)
}

func (e *InvalidTemplateError) Is(target error) bool {
	return target == ErrInvalidTemplate
}
