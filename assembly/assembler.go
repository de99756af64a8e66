package assembly

import (
	"go.uber.org/zap"

	"github.com/gantryhq/gantry"
	"github.com/gantryhq/gantry/descriptor"
	"github.com/gantryhq/gantry/errors"
	"github.com/gantryhq/gantry/extension"
	"github.com/gantryhq/gantry/module"
)

// Fixed identity of the embedded host module. The host process is not
// packaged, so its module carries convention values instead of manifest
// attributes.
const (
	HostVersion     = "1.0.0"
	HostEntryPoint  = "embedded host"
	HostPriority    = 100
	HostContextPath = "/"
)

// Assembler turns normalized descriptors into resolved modules. It holds
// the process-wide configuration and registry and no other state;
// Assemble never mutates either, so one assembler serves concurrent
// assemblies.
type Assembler struct {
	cfg      *gantry.Config
	reg      *extension.Registry
	resolver *Resolver
}

// New creates an assembler over the process configuration and extension
// registry. Nil arguments are tolerated here and rejected by Assemble,
// so construction never fails.
func New(cfg *gantry.Config, reg *extension.Registry) *Assembler {
	a := &Assembler{cfg: cfg, reg: reg}
	if cfg != nil {
		a.resolver = NewResolver(cfg.DependencyPolicy)
	}
	return a
}

// Assemble builds a resolved module from desc.
//
// It fails with an invalid-config error when the configuration, registry
// or descriptor is absent, with an invalid-artifact error when the
// descriptor's artifact did not pass the module-marker rule, and with an
// UnresolvedDependencyError when explicit dependency names are missing
// from the registry. There is no partial result: either a fully resolved
// module in the Resolved/Created phase comes back, or nil and the error.
func (a *Assembler) Assemble(desc *descriptor.Descriptor) (*module.Module, error) {
	if a.cfg == nil {
		return nil, errors.InvalidConfig("assembler has no configuration")
	}
	if a.reg == nil {
		return nil, errors.InvalidConfig("assembler has no extension registry")
	}
	if desc == nil {
		return nil, errors.InvalidConfig("nil descriptor")
	}
	if !desc.Recognized {
		return nil, errors.InvalidArtifact(desc.Name, "not a recognized module artifact")
	}

	// Caller overrides win over artifact-declared values.
	version := desc.DeclaredVersion
	if desc.VersionOverride != "" {
		version = desc.VersionOverride
	}
	entryPoint := desc.MainClass
	if desc.StartClass != "" {
		entryPoint = desc.StartClass
	}
	deps := desc.DeclaredDependencies
	if len(desc.DependencyOverride) > 0 {
		deps = desc.DependencyOverride
	}

	selected, exports, err := a.resolver.Resolve(deps, a.reg)
	if err != nil {
		return nil, err
	}

	ownPath, searchPath := Compose(desc.PathEntries, desc.ExtraEntries, selected)

	m := module.New(module.Spec{
		Name:                 desc.Name,
		Version:              version,
		EntryPoint:           entryPoint,
		Priority:             desc.Priority,
		ContextPath:          desc.ContextPath,
		DenyPackages:         desc.DenyPackages,
		DenyClasses:          desc.DenyClasses,
		DenyResources:        desc.DenyResources,
		InjectedDependencies: desc.InjectedDependencies,
		Extensions:           selected,
		Exports:              exports,
		OwnPath:              ownPath,
		SearchPath:           searchPath,
		Exploded:             desc.DirectoryBacked,
		WorkDir:              desc.Origin,
	})
	if err := m.Transition(module.StateResolved, module.ReasonCreated); err != nil {
		return nil, err
	}

	Logger().Info("module assembled",
		zap.String("module", m.Identity()),
		zap.Strings("extensions", m.ExtensionNames()),
		zap.Int("search_path", len(searchPath)))

	return m, nil
}

// AssembleHost builds the embedded host module from the host process's
// own lookup path. It carries the configured host name, the fixed
// version, entry point, priority and context path, no deny-lists, no
// dependencies, and empty export indices. Artifact validation,
// dependency resolution and work-directory recording do not apply.
func (a *Assembler) AssembleHost(entries []gantry.PathEntry) (*module.Module, error) {
	if a.cfg == nil {
		return nil, errors.InvalidConfig("assembler has no configuration")
	}
	if a.cfg.HostName == "" {
		return nil, errors.InvalidConfig("embedded host module requires Config.HostName")
	}

	ownPath, searchPath := Compose(entries, nil, nil)

	m := module.New(module.Spec{
		Name:        a.cfg.HostName,
		Version:     HostVersion,
		EntryPoint:  HostEntryPoint,
		Priority:    HostPriority,
		ContextPath: HostContextPath,
		OwnPath:     ownPath,
		SearchPath:  searchPath,
	})
	if err := m.Transition(module.StateResolved, module.ReasonCreated); err != nil {
		return nil, err
	}

	Logger().Info("embedded host module assembled",
		zap.String("module", m.Identity()),
		zap.Int("path", len(searchPath)))

	return m, nil
}
