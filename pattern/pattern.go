package pattern

import (
	"sort"
	"strings"
)

// Symbols is a compiled set of symbol-name patterns. Exact entries match
// a full dotted name; stem entries match every name under a dotted
// prefix. Stems are stored with a trailing dot so that the stem
// "com.vendor." never matches "com.vendorx.Client".
type Symbols struct {
	exact []string
	stems []string
}

// CompileSymbols builds a Symbols set from raw pattern strings.
//
// A pattern ending in ".*" or "." is a stem and is normalized to end
// with a single dot; anything else is an exact name. Entries are
// trimmed, de-duplicated, and sorted. Empty entries are dropped.
func CompileSymbols(patterns []string) Symbols {
	var exact, stems []string
	for _, p := range patterns {
		p = strings.TrimSpace(p)
		if p == "" {
			continue
		}
		switch {
		case strings.HasSuffix(p, ".*"):
			stems = append(stems, p[:len(p)-1])
		case strings.HasSuffix(p, "."):
			stems = append(stems, p)
		default:
			exact = append(exact, p)
		}
	}
	return Symbols{exact: sortUnique(exact), stems: sortUnique(stems)}
}

// Exact returns the exact names in sorted order. The returned slice is
// a copy.
func (s Symbols) Exact() []string {
	return copySlice(s.exact)
}

// Stems returns the dotted-prefix stems in sorted order, each ending
// with a dot. The returned slice is a copy.
func (s Symbols) Stems() []string {
	return copySlice(s.stems)
}

// IsEmpty reports whether the set contains no patterns.
func (s Symbols) IsEmpty() bool {
	return len(s.exact) == 0 && len(s.stems) == 0
}

// Matches reports whether name is an exact member or falls under any
// stem.
func (s Symbols) Matches(name string) bool {
	if contains(s.exact, name) {
		return true
	}
	for _, stem := range s.stems {
		if strings.HasPrefix(name, stem) {
			return true
		}
	}
	return false
}

// Resources is a compiled set of resource-path patterns. Exact entries
// match a full path, prefix stems match any path beneath them, and
// suffix stems match any path ending with them.
type Resources struct {
	exact    []string
	prefixes []string
	suffixes []string
}

// CompileResources builds a Resources set from raw pattern strings.
//
// A pattern ending in "*" is a prefix stem ("config/*" matches
// "config/db.yaml"), a pattern starting with "*" is a suffix stem
// ("*.conf" matches "etc/app.conf"), and anything else is an exact
// path. The star itself is stripped from the stored stem. Entries are
// trimmed, de-duplicated, and sorted. Empty entries and a bare "*" are
// dropped.
func CompileResources(patterns []string) Resources {
	var exact, prefixes, suffixes []string
	for _, p := range patterns {
		p = strings.TrimSpace(p)
		switch {
		case p == "" || p == "*":
			continue
		case strings.HasSuffix(p, "*"):
			prefixes = append(prefixes, p[:len(p)-1])
		case strings.HasPrefix(p, "*"):
			suffixes = append(suffixes, p[1:])
		default:
			exact = append(exact, p)
		}
	}
	return Resources{
		exact:    sortUnique(exact),
		prefixes: sortUnique(prefixes),
		suffixes: sortUnique(suffixes),
	}
}

// Exact returns the exact paths in sorted order. The returned slice is
// a copy.
func (r Resources) Exact() []string {
	return copySlice(r.exact)
}

// Prefixes returns the prefix stems in sorted order. The returned
// slice is a copy.
func (r Resources) Prefixes() []string {
	return copySlice(r.prefixes)
}

// Suffixes returns the suffix stems in sorted order. The returned
// slice is a copy.
func (r Resources) Suffixes() []string {
	return copySlice(r.suffixes)
}

// IsEmpty reports whether the set contains no patterns.
func (r Resources) IsEmpty() bool {
	return len(r.exact) == 0 && len(r.prefixes) == 0 && len(r.suffixes) == 0
}

// Matches reports whether path is an exact member, falls under any
// prefix stem, or ends with any suffix stem.
func (r Resources) Matches(path string) bool {
	if contains(r.exact, path) {
		return true
	}
	for _, prefix := range r.prefixes {
		if strings.HasPrefix(path, prefix) {
			return true
		}
	}
	for _, suffix := range r.suffixes {
		if strings.HasSuffix(path, suffix) {
			return true
		}
	}
	return false
}

func sortUnique(in []string) []string {
	if len(in) == 0 {
		return nil
	}
	sort.Strings(in)
	out := in[:1]
	for _, s := range in[1:] {
		if s != out[len(out)-1] {
			out = append(out, s)
		}
	}
	return out
}

func contains(sorted []string, s string) bool {
	i := sort.SearchStrings(sorted, s)
	return i < len(sorted) && sorted[i] == s
}

func copySlice(in []string) []string {
	if len(in) == 0 {
		return nil
	}
	out := make([]string, len(in))
	copy(out, in)
	return out
}
