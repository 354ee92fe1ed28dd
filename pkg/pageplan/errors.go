package pageplan

import (
	"errors"
	"fmt"
)

// Errors returned by the resolver and planner.
var (
	// ErrInvalidRequest is returned for a malformed page number, page size or
	// local range.
	ErrInvalidRequest = errors.New("invalid page request")

	// ErrInvalidManifest is returned when a manifest cannot describe a
	// collection, e.g. a negative record count.
	ErrInvalidManifest = errors.New("invalid source manifest")

	// ErrInvalidPlan is returned by ResolvedPlan.Validate when a plan breaks
	// one of its invariants.
	ErrInvalidPlan = errors.New("invalid resolved plan")
)

// ValidationError describes which input was rejected and why.
type ValidationError struct {
	// Kind is one of ErrInvalidRequest, ErrInvalidManifest or ErrInvalidPlan.
	Kind    error
	Field   string
	Message string
}

// Error implements the error interface.
func (e *ValidationError) Error() string {
	return fmt.Sprintf("%v: %s: %s", e.Kind, e.Field, e.Message)
}

// Unwrap implements error unwrapping for errors.Is/As.
func (e *ValidationError) Unwrap() error {
	return e.Kind
}

func invalidRequest(field, format string, args ...any) error {
	return &ValidationError{Kind: ErrInvalidRequest, Field: field, Message: fmt.Sprintf(format, args...)}
}

func invalidManifest(field, format string, args ...any) error {
	return &ValidationError{Kind: ErrInvalidManifest, Field: field, Message: fmt.Sprintf(format, args...)}
}

func invalidPlan(field, format string, args ...any) error {
	return &ValidationError{Kind: ErrInvalidPlan, Field: field, Message: fmt.Sprintf(format, args...)}
}
