package module

import (
	"sort"
	"strings"

	"github.com/gantryhq/gantry/extension"
)

// Exports are a module's resolved export indices: for each symbol or
// resource key, which of the module's extensions supplies it.
//
// The two symbol indices are first-writer-wins maps — the extension whose
// turn comes first during resolution claims the key, later claims of the
// same key are dropped. The three resource indices accumulate instead:
// every claiming extension is appended in resolution order, because a
// resource lookup may need all candidates.
//
// Exports are populated during assembly and read-only afterwards. A
// Module owns its Exports exclusively; the referenced extensions are
// shared with the registry.
type Exports struct {
	symbols          map[string]*extension.Extension
	symbolStems      map[string]*extension.Extension
	resources        map[string][]*extension.Extension
	resourcePrefixes map[string][]*extension.Extension
	resourceSuffixes map[string][]*extension.Extension
}

// NewExports creates empty indices.
func NewExports() *Exports {
	return &Exports{
		symbols:          make(map[string]*extension.Extension),
		symbolStems:      make(map[string]*extension.Extension),
		resources:        make(map[string][]*extension.Extension),
		resourcePrefixes: make(map[string][]*extension.Extension),
		resourceSuffixes: make(map[string][]*extension.Extension),
	}
}

// ClaimSymbol records ext as the provider of the exact symbol name.
// It reports false when the name was already claimed; the index keeps
// the first claimant.
func (e *Exports) ClaimSymbol(name string, ext *extension.Extension) bool {
	if _, taken := e.symbols[name]; taken {
		return false
	}
	e.symbols[name] = ext
	return true
}

// ClaimSymbolStem records ext as the provider of the dotted-prefix stem.
// It reports false when the stem was already claimed; the index keeps
// the first claimant.
func (e *Exports) ClaimSymbolStem(stem string, ext *extension.Extension) bool {
	if _, taken := e.symbolStems[stem]; taken {
		return false
	}
	e.symbolStems[stem] = ext
	return true
}

// ClaimResource appends ext to the claimant list of the exact resource
// path.
func (e *Exports) ClaimResource(path string, ext *extension.Extension) {
	e.resources[path] = append(e.resources[path], ext)
}

// ClaimResourcePrefix appends ext to the claimant list of the resource
// prefix stem.
func (e *Exports) ClaimResourcePrefix(stem string, ext *extension.Extension) {
	e.resourcePrefixes[stem] = append(e.resourcePrefixes[stem], ext)
}

// ClaimResourceSuffix appends ext to the claimant list of the resource
// suffix stem.
func (e *Exports) ClaimResourceSuffix(stem string, ext *extension.Extension) {
	e.resourceSuffixes[stem] = append(e.resourceSuffixes[stem], ext)
}

// Symbol returns the extension that claimed the exact symbol name.
func (e *Exports) Symbol(name string) (*extension.Extension, bool) {
	ext, ok := e.symbols[name]
	return ext, ok
}

// SymbolStem returns the extension that claimed the dotted-prefix stem.
// The stem must carry its trailing dot, as stored.
func (e *Exports) SymbolStem(stem string) (*extension.Extension, bool) {
	ext, ok := e.symbolStems[stem]
	return ext, ok
}

// Resource returns the claimants of the exact resource path, in claim
// order. The returned slice is a copy.
func (e *Exports) Resource(path string) []*extension.Extension {
	return copyExts(e.resources[path])
}

// ResourcePrefix returns the claimants of the resource prefix stem, in
// claim order. The returned slice is a copy.
func (e *Exports) ResourcePrefix(stem string) []*extension.Extension {
	return copyExts(e.resourcePrefixes[stem])
}

// ResourceSuffix returns the claimants of the resource suffix stem, in
// claim order. The returned slice is a copy.
func (e *Exports) ResourceSuffix(stem string) []*extension.Extension {
	return copyExts(e.resourceSuffixes[stem])
}

// SymbolProvider resolves a full symbol name against the indices: the
// exact index first, then stems from the most specific dotted prefix
// outwards, so "a.b.c.X" consults "a.b.c." before "a.b." and "a.".
func (e *Exports) SymbolProvider(name string) (*extension.Extension, bool) {
	if ext, ok := e.symbols[name]; ok {
		return ext, true
	}
	prefix := name
	for {
		i := strings.LastIndexByte(prefix, '.')
		if i < 0 {
			return nil, false
		}
		prefix = prefix[:i]
		if ext, ok := e.symbolStems[prefix+"."]; ok {
			return ext, true
		}
	}
}

// ResourceProviders resolves a resource path against the indices and
// returns every candidate extension: exact claimants first, then prefix
// stem claimants, then suffix stem claimants. Stem keys are consulted in
// sorted order so the result is deterministic; an extension appears at
// most once, at its first position.
func (e *Exports) ResourceProviders(path string) []*extension.Extension {
	var out []*extension.Extension
	seen := make(map[string]struct{})

	add := func(exts []*extension.Extension) {
		for _, ext := range exts {
			if _, dup := seen[ext.Name()]; dup {
				continue
			}
			seen[ext.Name()] = struct{}{}
			out = append(out, ext)
		}
	}

	add(e.resources[path])
	for _, stem := range sortedKeysList(e.resourcePrefixes) {
		if strings.HasPrefix(path, stem) {
			add(e.resourcePrefixes[stem])
		}
	}
	for _, stem := range sortedKeysList(e.resourceSuffixes) {
		if strings.HasSuffix(path, stem) {
			add(e.resourceSuffixes[stem])
		}
	}
	return out
}

// SymbolKeys returns the claimed exact symbol names in sorted order.
func (e *Exports) SymbolKeys() []string {
	return sortedKeys(e.symbols)
}

// SymbolStemKeys returns the claimed symbol stems in sorted order.
func (e *Exports) SymbolStemKeys() []string {
	return sortedKeys(e.symbolStems)
}

// ResourceKeys returns the claimed exact resource paths in sorted order.
func (e *Exports) ResourceKeys() []string {
	return sortedKeysList(e.resources)
}

// ResourcePrefixKeys returns the claimed resource prefix stems in sorted
// order.
func (e *Exports) ResourcePrefixKeys() []string {
	return sortedKeysList(e.resourcePrefixes)
}

// ResourceSuffixKeys returns the claimed resource suffix stems in sorted
// order.
func (e *Exports) ResourceSuffixKeys() []string {
	return sortedKeysList(e.resourceSuffixes)
}

// IsEmpty reports whether no key was claimed in any index.
func (e *Exports) IsEmpty() bool {
	return len(e.symbols) == 0 && len(e.symbolStems) == 0 &&
		len(e.resources) == 0 && len(e.resourcePrefixes) == 0 &&
		len(e.resourceSuffixes) == 0
}

func sortedKeys(m map[string]*extension.Extension) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

func sortedKeysList(m map[string][]*extension.Extension) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

func copyExts(in []*extension.Extension) []*extension.Extension {
	if len(in) == 0 {
		return nil
	}
	out := make([]*extension.Extension, len(in))
	copy(out, in)
	return out
}
