// Package module defines the assembled module entity: its identity, its
// resolved export indices, its isolated namespace, and its lifecycle
// state machine.
//
// # Main Types
//
//   - Module: the assembled unit; immutable except for lifecycle state
//   - Exports: the five export indices mapping symbol/resource keys to
//     the extensions that claimed them
//   - Namespace: the ordered lookup path the module's resolution walks
//   - DenyLists: import patterns the module refuses to resolve
//
// # Lifecycle
//
// A module starts Unresolved and is handed out by the assembler in the
// Resolved phase with reason Created. The only legal moves afterwards
// are Resolved→Activated, Activated→Deactivated, Deactivated→Activated,
// and from any of those three phases →Broken, which is terminal.
// Transition enforces the table; everything else about later lifecycle
// phases belongs to the consumer of the assembled module.
//
// # Thread Safety
//
// All fields except the lifecycle state are fixed at construction and
// safe for concurrent reads. State and Transition synchronize
// internally.
package module
