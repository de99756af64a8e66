package assembly

import (
	"go.uber.org/zap"

	"github.com/gantryhq/gantry"
	"github.com/gantryhq/gantry/errors"
	"github.com/gantryhq/gantry/extension"
	"github.com/gantryhq/gantry/module"
)

// Resolver selects the extensions a module depends on and builds its
// export indices. The selection policy is fixed at construction; the
// registry is read once per Resolve call, so a quiescent registry yields
// the same result every time.
type Resolver struct {
	policy gantry.Policy
}

// NewResolver creates a resolver with the process-wide dependency
// policy.
func NewResolver(policy gantry.Policy) *Resolver {
	return &Resolver{policy: policy}
}

// Policy returns the resolver's dependency-selection policy.
func (r *Resolver) Policy() gantry.Policy {
	return r.policy
}

// Resolve selects the dependent extensions for the declared dependency
// names and builds the export indices over their exported surfaces.
//
// Under PolicyExplicit only the named extensions are selected; any name
// missing from the registry fails the resolution with an
// UnresolvedDependencyError listing every missing name. Under PolicyAll
// the names are ignored and every registered extension is selected. The
// selection always comes back in registry priority order, regardless of
// the order names were declared in. Zero selected extensions is not an
// error: the indices are empty.
func (r *Resolver) Resolve(deps []string, reg *extension.Registry) ([]*extension.Extension, *module.Exports, error) {
	all := reg.AllInPriorityOrder()

	var selected []*extension.Extension
	switch r.policy {
	case gantry.PolicyAll:
		selected = all
	default:
		wanted := uniqueNames(deps)
		if len(wanted) > 0 {
			byName := make(map[string]*extension.Extension, len(all))
			for _, ext := range all {
				byName[ext.Name()] = ext
			}
			var missing []string
			for _, name := range wanted {
				if _, ok := byName[name]; !ok {
					missing = append(missing, name)
				}
			}
			if len(missing) > 0 {
				return nil, nil, errors.NewUnresolvedDependencyError(missing)
			}
			// Selection order is the registry order, not declaration order.
			want := make(map[string]struct{}, len(wanted))
			for _, name := range wanted {
				want[name] = struct{}{}
			}
			for _, ext := range all {
				if _, ok := want[ext.Name()]; ok {
					selected = append(selected, ext)
				}
			}
		}
	}

	return selected, buildExports(selected), nil
}

// buildExports iterates the selection in order and claims each exported
// key. Symbol kinds keep the first claimant; resource kinds accumulate
// every claimant.
func buildExports(selected []*extension.Extension) *module.Exports {
	exports := module.NewExports()

	for _, ext := range selected {
		symbols := ext.Symbols()
		for _, name := range symbols.Exact() {
			if !exports.ClaimSymbol(name, ext) {
				Logger().Debug("duplicate symbol export dropped",
					zap.String("symbol", name),
					zap.String("extension", ext.Name()))
			}
		}
		for _, stem := range symbols.Stems() {
			if !exports.ClaimSymbolStem(stem, ext) {
				Logger().Debug("duplicate symbol stem export dropped",
					zap.String("stem", stem),
					zap.String("extension", ext.Name()))
			}
		}

		resources := ext.Resources()
		for _, path := range resources.Exact() {
			exports.ClaimResource(path, ext)
		}
		for _, stem := range resources.Prefixes() {
			exports.ClaimResourcePrefix(stem, ext)
		}
		for _, stem := range resources.Suffixes() {
			exports.ClaimResourceSuffix(stem, ext)
		}
	}

	return exports
}

// uniqueNames drops empties and duplicates, keeping first-occurrence
// order so error reports read in declaration order.
func uniqueNames(in []string) []string {
	if len(in) == 0 {
		return nil
	}
	seen := make(map[string]struct{}, len(in))
	var out []string
	for _, s := range in {
		if s == "" {
			continue
		}
		if _, dup := seen[s]; dup {
			continue
		}
		seen[s] = struct{}{}
		out = append(out, s)
	}
	return out
}
