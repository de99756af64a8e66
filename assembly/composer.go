package assembly

import (
	"github.com/gantryhq/gantry"
	"github.com/gantryhq/gantry/extension"
)

// Compose builds a module's two lookup paths from its private entries,
// the caller-supplied extras, and the resolved extensions.
//
// The own path is the module's private scope: its artifact entries
// followed by the extra entries, each group keeping its original order —
// extras never precede the module's own. The search path is the combined
// scope the namespace walks: the own path followed by each extension's
// lookup root in selection order.
//
// Both paths are de-duplicated by exact value, keeping the first
// occurrence. Nil and empty extras compose identically.
func Compose(own, extra []gantry.PathEntry, exts []*extension.Extension) (ownPath, searchPath []gantry.PathEntry) {
	seen := make(map[gantry.PathEntry]struct{}, len(own)+len(extra)+len(exts))

	appendNew := func(dst []gantry.PathEntry, entries ...gantry.PathEntry) []gantry.PathEntry {
		for _, e := range entries {
			if _, dup := seen[e]; dup {
				continue
			}
			seen[e] = struct{}{}
			dst = append(dst, e)
		}
		return dst
	}

	ownPath = appendNew(ownPath, own...)
	ownPath = appendNew(ownPath, extra...)

	searchPath = append(searchPath, ownPath...)
	for _, ext := range exts {
		searchPath = appendNew(searchPath, ext.Root())
	}

	return ownPath, searchPath
}
