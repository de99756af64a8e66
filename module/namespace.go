package module

import (
	"github.com/gantryhq/gantry"
)

// Namespace is a module's isolated resolution scope: the ordered lookup
// path its symbol and resource lookups walk. It is a plain value with an
// explicit path sequence — resolution is an ordered walk, not dispatch
// machinery.
//
// The namespace holds a back-reference to its module for introspection
// but does not own it.
type Namespace struct {
	module   *Module
	path     []gantry.PathEntry
	exploded bool
}

func newNamespace(m *Module, path []gantry.PathEntry, exploded bool) *Namespace {
	return &Namespace{module: m, path: path, exploded: exploded}
}

// Module returns the module this namespace belongs to.
func (ns *Namespace) Module() *Module {
	return ns.module
}

// Path returns the ordered search path the namespace consults. The
// returned slice is a copy.
func (ns *Namespace) Path() []gantry.PathEntry {
	out := make([]gantry.PathEntry, len(ns.path))
	copy(out, ns.path)
	return out
}

// Len returns the number of path entries.
func (ns *Namespace) Len() int {
	return len(ns.path)
}

// Exploded reports whether the namespace serves a directory-backed
// artifact. Exploded namespaces resolve relative resource lookups
// against the filesystem tree instead of archive entries.
func (ns *Namespace) Exploded() bool {
	return ns.exploded
}

// Locate walks the search path in order and returns the first entry
// satisfying probe.
func (ns *Namespace) Locate(probe func(gantry.PathEntry) bool) (gantry.PathEntry, bool) {
	for _, entry := range ns.path {
		if probe(entry) {
			return entry, true
		}
	}
	return "", false
}

// LocateAll walks the search path in order and returns every entry
// satisfying probe.
func (ns *Namespace) LocateAll(probe func(gantry.PathEntry) bool) []gantry.PathEntry {
	var out []gantry.PathEntry
	for _, entry := range ns.path {
		if probe(entry) {
			out = append(out, entry)
		}
	}
	return out
}
