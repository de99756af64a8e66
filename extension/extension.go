package extension

import (
	"github.com/coreos/go-semver/semver"

	"github.com/gantryhq/gantry"
	"github.com/gantryhq/gantry/errors"
	"github.com/gantryhq/gantry/pattern"
)

// DefaultPriority is used when a declaration omits the priority field.
// Lower values sort earlier in the registry order.
const DefaultPriority = 100

// Spec describes an extension to construct. Priority is taken as-is;
// zero is a valid (highest-urgency) priority.
type Spec struct {
	Name     string
	Version  string
	Priority int

	// Symbols and Resources are raw export patterns, compiled into the
	// five export surfaces by New.
	Symbols   []string
	Resources []string

	// Root is the path entry this extension contributes to dependent
	// modules' search paths.
	Root gantry.PathEntry
}

// Extension is an immutable shared capability provider.
type Extension struct {
	name      string
	version   semver.Version
	priority  int
	symbols   pattern.Symbols
	resources pattern.Resources
	root      gantry.PathEntry
}

// New validates spec and constructs an Extension. The version must be
// strict semver; the name and root must be non-empty.
func New(spec Spec) (*Extension, error) {
	if spec.Name == "" {
		return nil, errors.New(errors.PhaseRegistry, errors.KindInvalidDeclaration).
			Detail("extension name must not be empty").
			Build()
	}
	if spec.Root == "" {
		return nil, errors.New(errors.PhaseRegistry, errors.KindInvalidDeclaration).
			Value(spec.Name).
			Detail("extension %q declares no lookup root", spec.Name).
			Build()
	}
	v, err := semver.NewVersion(spec.Version)
	if err != nil {
		return nil, errors.New(errors.PhaseRegistry, errors.KindInvalidDeclaration).
			Value(spec.Version).
			Cause(err).
			Detail("extension %q version %q is not semver", spec.Name, spec.Version).
			Build()
	}

	return &Extension{
		name:      spec.Name,
		version:   *v,
		priority:  spec.Priority,
		symbols:   pattern.CompileSymbols(spec.Symbols),
		resources: pattern.CompileResources(spec.Resources),
		root:      spec.Root,
	}, nil
}

// Name returns the registry-unique extension name.
func (e *Extension) Name() string { return e.name }

// Version returns the extension version in canonical semver form.
func (e *Extension) Version() string { return e.version.String() }

// Priority returns the registry ordering priority; lower sorts earlier.
func (e *Extension) Priority() int { return e.priority }

// Symbols returns the compiled symbol export surface (exact names and
// dotted-prefix stems).
func (e *Extension) Symbols() pattern.Symbols { return e.symbols }

// Resources returns the compiled resource export surface (exact paths,
// prefix stems, suffix stems).
func (e *Extension) Resources() pattern.Resources { return e.resources }

// Root returns the lookup-root path entry.
func (e *Extension) Root() gantry.PathEntry { return e.root }
