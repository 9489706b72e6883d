package application

import (
	"errors"
	"fmt"
)

// Sentinel errors for common conditions
var (
	ErrNoSubmissions = errors.New("no submission files found")
	ErrNothingToUndo = errors.New("nothing to undo")
	ErrBatchInUse    = errors.New("another batch is in progress")
	ErrEmptyPlan     = errors.New("plan has no entries to apply")
	ErrCannotResolve = errors.New("cannot resolve")
)

// ValidationError represents a validation failure with details
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// ResolveError represents a failed manual resolution of an ambiguous match
type ResolveError struct {
	Source string
	ID     string
	Reason string
}

func (e *ResolveError) Error() string {
	return fmt.Sprintf("cannot resolve %s to %s: %s", e.Source, e.ID, e.Reason)
}

func (e *ResolveError) Is(target error) bool {
	return target == ErrCannotResolve
}
