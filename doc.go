// Package gantry assembles isolated application modules from packaged
// artifacts and wires them into a host process that holds a registry of
// shared, versioned capability providers called extensions.
//
// Given a normalized module descriptor and the extension registry, the
// engine resolves which extensions the module depends on, builds a
// deterministic first-writer-wins export index over their exported symbols
// and resources, composes the ordered lookup path the module's isolated
// namespace will consult, and returns a fully resolved Module in the
// Resolved/Created lifecycle state.
//
// # Architecture Overview
//
// The library is organized into packages with distinct responsibilities:
//
//	gantry/              Root package with PathEntry, Policy and Config
//	├── pattern/         Exact/stem/prefix/suffix pattern sets for symbols
//	│                    and resource paths
//	├── manifest/        Attribute-block parsing and well-known attribute
//	│                    names for module manifests
//	├── artifact/        Packaged artifact access: zip archives, exploded
//	│                    directories, marker detection, atomic unpacking
//	├── descriptor/      Normalization of an artifact plus caller overrides
//	│                    into a module descriptor
//	├── extension/       Extension entity, process-wide registry, and
//	│                    declaration-file loading
//	├── assembly/        The core engine: export resolver, lookup-path
//	│                    composer, module assembler
//	├── module/          Module entity, export indices, isolated namespace,
//	│                    lifecycle state machine
//	├── host/            Convenience facade wiring config, registry,
//	│                    normalizer and assembler together
//	├── errors/          Structured error types for the whole library
//	└── cmd/assemble/    CLI for assembling and inspecting modules
//
// # Quick Start
//
// Register extensions once at host startup, then assemble modules against
// the registry:
//
//	cfg := gantry.DefaultConfig()
//	reg := extension.NewRegistry()
//	if err := reg.Register(ext); err != nil {
//	    log.Fatal(err)
//	}
//
//	arc, err := artifact.Open("app.zip", cfg)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer arc.Close()
//
//	desc, err := descriptor.Normalize(arc, descriptor.Overrides{}, cfg)
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	asm := assembly.New(cfg, reg)
//	mod, err := asm.Assemble(desc)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Println(mod.Identity(), mod.State())
//
// Or use the host facade, which performs the open/normalize/assemble
// pipeline in one call:
//
//	h, err := host.New(cfg, reg)
//	mod, err := h.AssembleFile("app.zip", descriptor.Overrides{})
//
// # Determinism
//
// For a fixed registry content, assembling the same descriptor always
// produces identical export indices and identical path ordering. Extensions
// iterate in registry priority order; an extension's own export surfaces
// iterate in sorted order. Exact symbol indices keep the first claimant of
// a key; resource indices accumulate every claimant in order.
//
// # Concurrency
//
// Assembly is a synchronous, single-threaded-per-call operation that holds
// no internal mutable singleton state. Multiple modules may be assembled
// concurrently against the same registry content; assembling one module
// never mutates an Extension or another Module. Registering or
// unregistering extensions concurrently with a resolution leaves the
// export-index contents undefined — complete registry mutation before
// resolving against it.
package gantry
