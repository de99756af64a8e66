package errors

import (
	"fmt"
	"strings"
)

// Phase indicates where in processing the error occurred
type Phase string

const (
	PhaseParse     Phase = "parse"     // manifest/declaration parsing
	PhaseNormalize Phase = "normalize" // artifact to descriptor normalization
	PhaseRegistry  Phase = "registry"  // extension registry operations
	PhaseResolve   Phase = "resolve"   // dependency and export resolution
	PhaseAssemble  Phase = "assemble"  // module assembly
	PhaseState     Phase = "state"     // lifecycle transitions
)

// Kind categorizes the error
type Kind string

const (
	KindInvalidArtifact      Kind = "invalid_artifact"
	KindInvalidConfig        Kind = "invalid_config"
	KindUnresolvedDependency Kind = "unresolved_dependency"
	KindInvalidManifest      Kind = "invalid_manifest"
	KindInvalidDeclaration   Kind = "invalid_declaration"
	KindDuplicate            Kind = "duplicate"
	KindNotFound             Kind = "not_found"
	KindIllegalTransition    Kind = "illegal_transition"
	KindIO                   Kind = "io"
)

// Error is the structured error type used throughout the engine
type Error struct {
	Value  any
	Cause  error
	Phase  Phase
	Kind   Kind
	Detail string
	Path   []string
}

// Error implements the error interface
func (e *Error) Error() string {
	var b strings.Builder

	b.WriteByte('[')
	b.WriteString(string(e.Phase))
	b.WriteString("] ")
	b.WriteString(string(e.Kind))

	if len(e.Path) > 0 {
		b.WriteString(" at ")
		b.WriteString(strings.Join(e.Path, "/"))
	}

	if e.Detail != "" {
		b.WriteString(": ")
		b.WriteString(e.Detail)
	}

	if e.Cause != nil {
		b.WriteString(" (caused by: ")
		b.WriteString(e.Cause.Error())
		b.WriteByte(')')
	}

	return b.String()
}

// Unwrap returns the underlying error
func (e *Error) Unwrap() error {
	return e.Cause
}

// Is reports whether target matches this error
func (e *Error) Is(target error) bool {
	if t, ok := target.(*Error); ok {
		return e.Phase == t.Phase && e.Kind == t.Kind
	}
	return false
}

// Builder provides structured error construction
type Builder struct {
	err Error
}

// New creates a new error builder
func New(phase Phase, kind Kind) *Builder {
	return &Builder{
		err: Error{
			Phase: phase,
			Kind:  kind,
		},
	}
}

// Path sets the location path (artifact entry, attribute, file)
func (b *Builder) Path(path ...string) *Builder {
	b.err.Path = path
	return b
}

// Value sets the offending value
func (b *Builder) Value(v any) *Builder {
	b.err.Value = v
	return b
}

// Cause sets the underlying error
func (b *Builder) Cause(err error) *Builder {
	b.err.Cause = err
	return b
}

// Detail sets the human-readable detail message
func (b *Builder) Detail(msg string, args ...any) *Builder {
	if len(args) > 0 {
		b.err.Detail = fmt.Sprintf(msg, args...)
	} else {
		b.err.Detail = msg
	}
	return b
}

// Build returns the constructed error
func (b *Builder) Build() *Error {
	return &b.err
}

// Convenience constructors for common error patterns

// InvalidArtifact creates an error for an artifact that is not a
// recognized module artifact
func InvalidArtifact(name, detail string) *Error {
	return &Error{
		Phase:  PhaseAssemble,
		Kind:   KindInvalidArtifact,
		Detail: fmt.Sprintf("artifact for module %q: %s", name, detail),
	}
}

// InvalidConfig creates an error for missing or unusable configuration
func InvalidConfig(detail string) *Error {
	return &Error{
		Phase:  PhaseAssemble,
		Kind:   KindInvalidConfig,
		Detail: detail,
	}
}

// InvalidManifest creates a manifest parsing error
func InvalidManifest(line int, detail string) *Error {
	return &Error{
		Phase:  PhaseParse,
		Kind:   KindInvalidManifest,
		Detail: fmt.Sprintf("line %d: %s", line, detail),
	}
}

// InvalidDeclaration creates an extension declaration error
func InvalidDeclaration(path string, cause error, detail string) *Error {
	return &Error{
		Phase:  PhaseParse,
		Kind:   KindInvalidDeclaration,
		Path:   []string{path},
		Detail: detail,
		Cause:  cause,
	}
}

// Duplicate creates a duplicate registration error
func Duplicate(phase Phase, what, name string) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindDuplicate,
		Detail: fmt.Sprintf("%s %q already registered", what, name),
	}
}

// NotFound creates a not-found error
func NotFound(phase Phase, what, name string) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindNotFound,
		Detail: fmt.Sprintf("%s %q not found", what, name),
	}
}

// IllegalTransition creates a lifecycle transition error
func IllegalTransition(from, to string) *Error {
	return &Error{
		Phase:  PhaseState,
		Kind:   KindIllegalTransition,
		Detail: fmt.Sprintf("cannot transition from %s to %s", from, to),
	}
}

// IO wraps a filesystem or archive error with location context. The
// cause stays on the chain, so errors.Is against fs sentinels keeps
// working.
func IO(phase Phase, path string, cause error) *Error {
	return &Error{
		Phase: phase,
		Kind:  KindIO,
		Path:  []string{path},
		Cause: cause,
	}
}

// Wrap wraps an existing error with additional context
func Wrap(phase Phase, kind Kind, cause error, detail string) *Error {
	return &Error{
		Phase:  phase,
		Kind:   kind,
		Detail: detail,
		Cause:  cause,
	}
}

// UnresolvedDependencyError is returned when dependency resolution
// fails because one or more declared extensions are not registered. All
// missing names are collected before failing so a single round trip
// reports the full gap.
type UnresolvedDependencyError struct {
	Names []string
}

// NewUnresolvedDependencyError creates an error from the missing
// extension names, preserving their order.
func NewUnresolvedDependencyError(names []string) *UnresolvedDependencyError {
	return &UnresolvedDependencyError{Names: names}
}

func (e *UnresolvedDependencyError) Error() string {
	if len(e.Names) == 0 {
		return "[resolve] unresolved_dependency: no dependencies specified"
	}

	var b strings.Builder
	fmt.Fprintf(&b, "missing %d extension(s):", len(e.Names))
	for _, name := range e.Names {
		b.WriteString("\n  - ")
		b.WriteString(name)
	}
	return b.String()
}

// Is reports whether target matches this error type
func (e *UnresolvedDependencyError) Is(target error) bool {
	_, ok := target.(*UnresolvedDependencyError)
	return ok
}
