// Package host is the convenience facade over the assembly pipeline: one
// value holding the process configuration, the extension registry, and
// the assembler, with single-call paths from an artifact file to a
// resolved module.
//
//	cfg := gantry.DefaultConfig()
//	h, err := host.New(cfg, nil)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	if _, err := h.LoadExtensions("extensions.yaml"); err != nil {
//	    log.Fatal(err)
//	}
//	mod, err := h.AssembleFile("app.zip", descriptor.Overrides{})
//
// The facade adds no semantics of its own; everything it does is reachable
// through the artifact, descriptor, extension, and assembly packages.
package host
