// Package manifest parses the attribute block carried by module
// artifacts (META-INF/MANIFEST.MF).
//
// The format is the jar-manifest line discipline: one "Name: value"
// attribute per line, lines starting with a single space continue the
// previous value, and parsing stops at the first blank line (only the
// main section matters to the engine). Attribute names are
// case-insensitive; the canonical well-known names are exported as
// constants. Unknown attributes are preserved; the engine treats the
// block as an opaque key/value set.
package manifest
