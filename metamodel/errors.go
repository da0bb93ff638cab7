package metamodel

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrInvalidArgument is returned when a metadata value violates a construction invariant.
	ErrInvalidArgument = errors.New("invalid argument")
	// ErrFieldNotFound is returned when a path segment matches no declared field.
	ErrFieldNotFound = errors.New("field not found")
	// ErrAmbiguousField is returned when a computed field cannot collapse to one source path.
	ErrAmbiguousField = errors.New("ambiguous computed field")
	// ErrInvalidPath is returned when a path is malformed or continues past a leaf field.
	ErrInvalidPath = errors.New("invalid path")
	// ErrNotRegistered is returned when metadata is requested for an unregistered type.
	ErrNotRegistered = errors.New("type not registered")
	// ErrEmptyPipeline is returned when an empty pipeline cannot pass its inputs through.
	ErrEmptyPipeline = errors.New("pipeline has no steps")
)

// InvariantError reports a violated construction invariant.
type InvariantError struct {
	// Subject names the value being built (e.g., "ComputedField fullName").
	Subject string
	// Rule describes the violated invariant.
	Rule string
}

func (e *InvariantError) Error() string {
	if e.Subject == "" {
		return e.Rule
	}

	return e.Subject + ": " + e.Rule
}

// Unwrap makes InvariantError match ErrInvalidArgument.
func (e *InvariantError) Unwrap() error {
	return ErrInvalidArgument
}

func invariant(subject, format string, args ...any) error {
	return &InvariantError{Subject: subject, Rule: fmt.Sprintf(format, args...)}
}

// PathError reports a projection path that could not be resolved.
type PathError struct {
	// Type is the projection (or entity) type the failing segment was looked up on.
	Type TypeID
	// Path is the full path requested by the caller.
	Path string
	// Segment is the segment that failed to resolve.
	Segment string
	// Resolved is the source path resolved before the failure.
	Resolved string
	// Err is one of ErrFieldNotFound, ErrAmbiguousField or ErrInvalidPath.
	Err error
	// Suggestions lists declared names close to Segment.
	Suggestions []string
}

func (e *PathError) Error() string {
	var sb strings.Builder

	fmt.Fprintf(&sb, "resolve %q on %s: segment %q: %v", e.Path, e.Type, e.Segment, e.Err)

	if e.Resolved != "" {
		fmt.Fprintf(&sb, " (resolved so far: %q)", e.Resolved)
	}

	if len(e.Suggestions) > 0 {
		fmt.Fprintf(&sb, "; did you mean %s?", strings.Join(e.Suggestions, ", "))
	}

	return sb.String()
}

func (e *PathError) Unwrap() error {
	return e.Err
}

// RegistrationKind names the kind of registration a query expected.
type RegistrationKind string

const (
	KindEntity     RegistrationKind = "entity"
	KindEmbeddable RegistrationKind = "embeddable"
	KindManaged    RegistrationKind = "entity or embeddable"
	KindProjection RegistrationKind = "projection"
	KindAny        RegistrationKind = "entity, embeddable or projection"
)

// RegistrationError reports a query against a type that was never registered.
type RegistrationError struct {
	Type TypeID
	Kind RegistrationKind
}

func (e *RegistrationError) Error() string {
	return fmt.Sprintf("%s is not a registered %s", e.Type, e.Kind)
}

func (e *RegistrationError) Unwrap() error {
	return ErrNotRegistered
}
