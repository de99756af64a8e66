package module

import (
	"strings"

	"github.com/gantryhq/gantry/pattern"
)

// DenyLists are the import surfaces a module refuses to resolve from its
// extensions, compiled from the artifact's deny-import attributes. A
// denied symbol or resource is invisible through the module's export
// indices even when an extension claims it.
type DenyLists struct {
	packages  pattern.Symbols
	classes   pattern.Symbols
	resources pattern.Resources
}

// CompileDenyLists compiles the raw deny-import pattern lists.
func CompileDenyLists(packages, classes, resources []string) DenyLists {
	return DenyLists{
		packages:  pattern.CompileSymbols(packages),
		classes:   pattern.CompileSymbols(classes),
		resources: pattern.CompileResources(resources),
	}
}

// Packages returns the compiled denied-package patterns.
func (d DenyLists) Packages() pattern.Symbols { return d.packages }

// Classes returns the compiled denied-class patterns.
func (d DenyLists) Classes() pattern.Symbols { return d.classes }

// Resources returns the compiled denied-resource patterns.
func (d DenyLists) Resources() pattern.Resources { return d.resources }

// IsEmpty reports whether no deny pattern is present.
func (d DenyLists) IsEmpty() bool {
	return d.packages.IsEmpty() && d.classes.IsEmpty() && d.resources.IsEmpty()
}

// DeniesSymbol reports whether the full symbol name is denied, either as
// a denied class or because its enclosing package is denied. A package
// entry "a.b" denies symbols directly inside a.b; a stem entry "a.b.*"
// denies the whole subtree including a.b itself.
func (d DenyLists) DeniesSymbol(name string) bool {
	if d.classes.Matches(name) {
		return true
	}
	pkg := packageOf(name)
	if pkg == "" {
		return false
	}
	// The second probe lets the stem "a.b." match the package "a.b".
	return d.packages.Matches(pkg) || d.packages.Matches(pkg+".")
}

// DeniesResource reports whether the resource path is denied.
func (d DenyLists) DeniesResource(path string) bool {
	return d.resources.Matches(path)
}

// packageOf strips the final dotted segment: "a.b.C" yields "a.b".
func packageOf(name string) string {
	i := strings.LastIndexByte(name, '.')
	if i < 0 {
		return ""
	}
	return name[:i]
}
