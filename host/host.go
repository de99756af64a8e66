package host

import (
	"github.com/gantryhq/gantry"
	"github.com/gantryhq/gantry/artifact"
	"github.com/gantryhq/gantry/assembly"
	"github.com/gantryhq/gantry/descriptor"
	"github.com/gantryhq/gantry/errors"
	"github.com/gantryhq/gantry/extension"
	"github.com/gantryhq/gantry/module"
)

// Host wires the process-wide configuration, the extension registry, and
// the assembler into one facade. Construct it once at startup, register
// or load extensions, then assemble modules against it.
type Host struct {
	cfg *gantry.Config
	reg *extension.Registry
	asm *assembly.Assembler
}

// New creates a host over cfg and reg. A nil registry gets a fresh empty
// one; a nil config is rejected.
func New(cfg *gantry.Config, reg *extension.Registry) (*Host, error) {
	if cfg == nil {
		return nil, errors.InvalidConfig("host requires a configuration")
	}
	if reg == nil {
		reg = extension.NewRegistry()
	}
	return &Host{
		cfg: cfg,
		reg: reg,
		asm: assembly.New(cfg, reg),
	}, nil
}

// Config returns the process configuration.
func (h *Host) Config() *gantry.Config { return h.cfg }

// Registry returns the extension registry.
func (h *Host) Registry() *extension.Registry { return h.reg }

// RegisterExtension builds an extension from spec and registers it.
func (h *Host) RegisterExtension(spec extension.Spec) (*extension.Extension, error) {
	ext, err := extension.New(spec)
	if err != nil {
		return nil, err
	}
	if err := h.reg.Register(ext); err != nil {
		return nil, err
	}
	return ext, nil
}

// LoadExtensions registers every extension declared in the file at path
// and returns how many were registered.
func (h *Host) LoadExtensions(path string) (int, error) {
	return extension.LoadInto(h.reg, path)
}

// AssembleFile opens the artifact at path, normalizes it with the given
// overrides, and assembles the module in one call.
func (h *Host) AssembleFile(path string, ov descriptor.Overrides) (*module.Module, error) {
	arc, err := artifact.Open(path, h.cfg)
	if err != nil {
		return nil, err
	}
	return h.AssembleArchive(arc, ov)
}

// AssembleArchive normalizes an already-opened archive and assembles the
// module.
func (h *Host) AssembleArchive(arc artifact.Archive, ov descriptor.Overrides) (*module.Module, error) {
	desc, err := descriptor.Normalize(arc, ov, h.cfg)
	if err != nil {
		return nil, err
	}
	return h.asm.Assemble(desc)
}

// Assemble assembles a module from an already-normalized descriptor.
func (h *Host) Assemble(desc *descriptor.Descriptor) (*module.Module, error) {
	return h.asm.Assemble(desc)
}

// AssembleHost builds the embedded host module from the host process's
// own lookup path entries.
func (h *Host) AssembleHost(entries []gantry.PathEntry) (*module.Module, error) {
	return h.asm.AssembleHost(entries)
}
