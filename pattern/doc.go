// Package pattern compiles symbol-name and resource-path pattern lists
// into matchable sets.
//
// Symbol patterns are dotted names: "com.vendor.api.Client" is an exact
// name, while "com.vendor.*" (or the normalized "com.vendor.") is a stem
// matching every name beneath that dotted prefix.
//
// Resource patterns are slash-separated paths: "META-INF/app.conf" is an
// exact path, "config/*" is a prefix stem, and "*.conf" is a suffix stem.
//
// Compiled sets store their members sorted and de-duplicated so that any
// iteration over them is deterministic.
package pattern
