package mesh

import (
	"errors"
	"fmt"
)

// Common sentinel errors
var (
	ErrMalformedAdjacency = errors.New("malformed adjacency")
	ErrBadSnapshot        = errors.New("bad mesh snapshot")
	ErrBadFace            = errors.New("bad face")
)

// BuildError provides structured information about a mesh or graph that
// could not be constructed.
type BuildError struct {
	Op       string // Operation that failed (e.g., "validate", "from-indexed")
	Triangle int    // Triangle index, -1 when not applicable
	Edge     int    // Edge index within the triangle, -1 when not applicable
	Cause    error  // Underlying error
	Context  string // Additional context
}

// Error implements the error interface.
func (e *BuildError) Error() string {
	var where string
	switch {
	case e.Triangle >= 0 && e.Edge >= 0:
		where = fmt.Sprintf(" triangle %d edge %d", e.Triangle, e.Edge)
	case e.Triangle >= 0:
		where = fmt.Sprintf(" triangle %d", e.Triangle)
	}
	if e.Context != "" {
		return fmt.Sprintf("%s%s (%s): %v", e.Op, where, e.Context, e.Cause)
	}
	return fmt.Sprintf("%s%s: %v", e.Op, where, e.Cause)
}

// Unwrap returns the underlying cause for error chain support.
func (e *BuildError) Unwrap() error {
	return e.Cause
}

// Is reports whether the target error matches this error's cause.
func (e *BuildError) Is(target error) bool {
	if target == nil {
		return false
	}
	return errors.Is(e.Cause, target)
}

// ErrorBuilder provides a fluent interface for building BuildErrors.
type ErrorBuilder struct {
	err BuildError
}

// NewError creates a new error builder for the given operation.
func NewError(op string) *ErrorBuilder {
	return &ErrorBuilder{err: BuildError{Op: op, Triangle: -1, Edge: -1}}
}

// Triangle sets the offending triangle index.
func (b *ErrorBuilder) Triangle(i int) *ErrorBuilder {
	b.err.Triangle = i
	return b
}

// Edge sets the offending edge index.
func (b *ErrorBuilder) Edge(i int) *ErrorBuilder {
	b.err.Edge = i
	return b
}

// Context sets additional context information.
func (b *ErrorBuilder) Context(ctx string) *ErrorBuilder {
	b.err.Context = ctx
	return b
}

// Contextf sets formatted context information.
func (b *ErrorBuilder) Contextf(format string, args ...any) *ErrorBuilder {
	b.err.Context = fmt.Sprintf(format, args...)
	return b
}

// Cause sets the underlying error cause.
func (b *ErrorBuilder) Cause(err error) *ErrorBuilder {
	b.err.Cause = err
	return b
}

// Build returns the constructed BuildError.
func (b *ErrorBuilder) Build() *BuildError {
	return &b.err
}

// Err returns the error as an error interface.
func (b *ErrorBuilder) Err() error {
	return &b.err
}

// AdjacencyError creates a malformed adjacency error for one triangle edge.
func AdjacencyError(tri, edge int, context string) error {
	return NewError("validate").Triangle(tri).Edge(edge).Context(context).Cause(ErrMalformedAdjacency).Err()
}

// FaceError creates an error for an unusable indexed face.
func FaceError(face int, context string) error {
	return NewError("from-indexed").Triangle(face).Context(context).Cause(ErrBadFace).Err()
}
