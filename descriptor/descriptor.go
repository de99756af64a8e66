package descriptor

import (
	"strconv"

	"github.com/gantryhq/gantry"
	"github.com/gantryhq/gantry/artifact"
	"github.com/gantryhq/gantry/errors"
	"github.com/gantryhq/gantry/manifest"
)

// Normalization defaults for attributes an artifact may omit.
const (
	DefaultPriority    = 100
	DefaultContextPath = "/"
)

// Overrides carries caller-supplied values that win over what the
// artifact declares. Zero values mean "no override".
type Overrides struct {
	// SpecifiedVersion replaces the artifact-declared version.
	SpecifiedVersion string

	// Dependencies replaces the artifact-declared dependent
	// extensions.
	Dependencies []string

	// ExtraEntries are appended to the module's own lookup path after
	// the artifact's private entries.
	ExtraEntries []gantry.PathEntry
}

// Descriptor is the normalized description of a module artifact. It
// holds raw declared and overridden values side by side; the assembler
// applies precedence.
type Descriptor struct {
	Name string

	DeclaredVersion string
	VersionOverride string

	MainClass  string
	StartClass string

	DeclaredDependencies []string
	DependencyOverride   []string

	Priority    int
	ContextPath string

	DenyPackages  []string
	DenyClasses   []string
	DenyResources []string

	InjectedDependencies []string

	// PathEntries are the artifact's private lookup entries, root
	// first. ExtraEntries follow them in the composed own path.
	PathEntries  []gantry.PathEntry
	ExtraEntries []gantry.PathEntry

	// Origin is the artifact's on-disk origin location, or "" for a
	// directory deployed in place. The assembler records it as the
	// module's work directory when present.
	Origin string

	DirectoryBacked bool

	// Recognized records whether the artifact passed the module-marker
	// rule. Unrecognized descriptors are rejected at assembly.
	Recognized bool
}

// Normalize reads arc into a Descriptor under cfg. A nil cfg behaves
// like the zero Config. The artifact's attribute block supplies the
// declared fields; ov is carried through untouched.
func Normalize(arc artifact.Archive, ov Overrides, cfg *gantry.Config) (*Descriptor, error) {
	attrs := arc.Attributes()

	desc := &Descriptor{
		Name:                 attrs.Get(manifest.AttrModuleName),
		DeclaredVersion:      attrs.Get(manifest.AttrModuleVersion),
		VersionOverride:      ov.SpecifiedVersion,
		MainClass:            attrs.Get(manifest.AttrMainClass),
		StartClass:           attrs.Get(manifest.AttrStartClass),
		DeclaredDependencies: attrs.List(manifest.AttrDependentExtensions),
		DependencyOverride:   copyStrings(ov.Dependencies),
		Priority:             DefaultPriority,
		ContextPath:          DefaultContextPath,
		DenyPackages:         attrs.List(manifest.AttrDenyPackages),
		DenyClasses:          attrs.List(manifest.AttrDenyClasses),
		DenyResources:        attrs.List(manifest.AttrDenyResources),
		InjectedDependencies: attrs.List(manifest.AttrInjectDependencies),
		PathEntries:          arc.LookupEntries(),
		ExtraEntries:         copyEntries(ov.ExtraEntries),
		Origin:               arc.Origin(),
		DirectoryBacked:      arc.DirectoryBacked(),
		Recognized:           artifact.Recognized(arc, cfg),
	}

	if raw := attrs.Get(manifest.AttrPriority); raw != "" {
		p, err := strconv.Atoi(raw)
		if err != nil {
			return nil, errors.New(errors.PhaseNormalize, errors.KindInvalidManifest).
				Path(manifest.AttrPriority).
				Value(raw).
				Detail("priority must be an integer").
				Build()
		}
		desc.Priority = p
	}
	if cp := attrs.Get(manifest.AttrContextPath); cp != "" {
		desc.ContextPath = cp
	}

	if desc.Recognized && desc.Name == "" {
		return nil, errors.New(errors.PhaseNormalize, errors.KindInvalidManifest).
			Path(manifest.AttrModuleName).
			Detail("module artifact declares no name").
			Build()
	}

	return desc, nil
}

func copyStrings(in []string) []string {
	if len(in) == 0 {
		return nil
	}
	out := make([]string, len(in))
	copy(out, in)
	return out
}

func copyEntries(in []gantry.PathEntry) []gantry.PathEntry {
	if len(in) == 0 {
		return nil
	}
	out := make([]gantry.PathEntry, len(in))
	copy(out, in)
	return out
}
