// Package descriptor normalizes an opened artifact into the flat
// Descriptor record consumed by assembly.
//
// A Descriptor carries both what the artifact declares and what the
// caller overrides, without deciding between them. Precedence (version
// override beats declared version, start-class beats main-class,
// dependency override beats declared dependencies) is applied by the
// assembler so the same descriptor can be inspected before assembly.
package descriptor
