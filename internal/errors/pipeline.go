package errors

import (
	"errors"
	"fmt"

	"chartscout/pkg/contracts/domain"
)

// Pipeline error taxonomy. Each type marks a distinct failure class so the
// orchestrator can decide between local recovery, fallback and defaulting
// without string matching.

// DataFormatError means the fetch succeeded but the payload is unusable:
// undecodable JSON, a body-level error field, or a shape the normalizer
// cannot repair.
type DataFormatError struct {
	Source string
	Reason string
	Err    error
}

func (e *DataFormatError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("data format error from %s: %s: %v", e.Source, e.Reason, e.Err)
	}
	return fmt.Sprintf("data format error from %s: %s", e.Source, e.Reason)
}

func (e *DataFormatError) Unwrap() error { return e.Err }

// NewDataFormatError creates a DataFormatError for the given source
func NewDataFormatError(source, reason string, err error) *DataFormatError {
	return &DataFormatError{Source: source, Reason: reason, Err: err}
}

// ValidationError means an adapter rejected canonical data for its kind.
type ValidationError struct {
	Kind   domain.ChartKind
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation failed for kind %q: %s", e.Kind, e.Reason)
}

// NewValidationError creates a ValidationError for the given kind
func NewValidationError(kind domain.ChartKind, reason string) *ValidationError {
	return &ValidationError{Kind: kind, Reason: reason}
}

// DeserializationError means callable-expression materialization failed for
// a leaf. It is recovered locally by dropping the leaf.
type DeserializationError struct {
	Path string
	Err  error
}

func (e *DeserializationError) Error() string {
	return fmt.Sprintf("callable at %q could not be materialized: %v", e.Path, e.Err)
}

func (e *DeserializationError) Unwrap() error { return e.Err }

// RenderError means the engine threw during construction or update.
type RenderError struct {
	SurfaceID string
	Err       error
}

func (e *RenderError) Error() string {
	return fmt.Sprintf("engine failed on surface %q: %v", e.SurfaceID, e.Err)
}

func (e *RenderError) Unwrap() error { return e.Err }

// ResourceConflictError means the destroy-before-create ordering on a
// surface was violated or a stale request tried to overwrite a newer
// binding.
type ResourceConflictError struct {
	SurfaceID string
	Reason    string
}

func (e *ResourceConflictError) Error() string {
	return fmt.Sprintf("surface %q conflict: %s", e.SurfaceID, e.Reason)
}

// NewResourceConflictError creates a ResourceConflictError for the surface
func NewResourceConflictError(surfaceID, reason string) *ResourceConflictError {
	return &ResourceConflictError{SurfaceID: surfaceID, Reason: reason}
}

// IsDataFormat reports whether err is a DataFormatError
func IsDataFormat(err error) bool {
	var target *DataFormatError
	return errors.As(err, &target)
}

// IsValidation reports whether err is a ValidationError
func IsValidation(err error) bool {
	var target *ValidationError
	return errors.As(err, &target)
}

// IsRender reports whether err is a RenderError
func IsRender(err error) bool {
	var target *RenderError
	return errors.As(err, &target)
}

// IsResourceConflict reports whether err is a ResourceConflictError
func IsResourceConflict(err error) bool {
	var target *ResourceConflictError
	return errors.As(err, &target)
}
