// Package assembly is the module assembly engine: it resolves a
// descriptor's dependent extensions, builds the export indices, composes
// the lookup paths, and produces the resolved module.
//
// # Main Types
//
//   - Resolver: selects extensions per the process policy and claims
//     their exported keys into the module's indices
//   - Compose: merges private entries, extras, and extension roots into
//     the ordered, de-duplicated own and search paths
//   - Assembler: orchestration; also builds the embedded host module
//
// # Determinism
//
// For fixed registry contents the engine is a pure function of its
// inputs: extensions are iterated in registry priority order and their
// export surfaces in sorted order, so assembling the same descriptor
// twice yields identical indices and identical path ordering. Mutating
// the registry concurrently with a resolution leaves the index contents
// undefined — finish registration first.
//
// # Failure Semantics
//
// Assembly either returns a fully resolved module or an error, never a
// partial module. Nothing is retried internally and no Extension or
// other Module is ever mutated.
package assembly
