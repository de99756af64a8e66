package manifest

import (
	"bufio"
	"io"
	"sort"
	"strings"

	"github.com/gantryhq/gantry/errors"
)

// Well-known attribute names in canonical (lowercase) form. Lookup is
// case-insensitive, so "Module-Name" in an artifact resolves to
// AttrModuleName.
const (
	AttrModuleName          = "module-name"
	AttrModuleVersion       = "module-version"
	AttrMainClass           = "main-class"
	AttrStartClass          = "start-class"
	AttrPriority            = "priority"
	AttrContextPath         = "context-path"
	AttrDenyPackages        = "deny-import-packages"
	AttrDenyClasses         = "deny-import-classes"
	AttrDenyResources       = "deny-import-resources"
	AttrDependentExtensions = "dependent-extensions"
	AttrInjectDependencies  = "inject-dependencies"
)

// Attributes is the parsed main attribute section of a manifest.
type Attributes struct {
	values map[string]string
}

// Parse reads the main attribute section from r. Continuation lines
// (single leading space) append to the previous attribute's value with
// the space stripped. A repeated attribute keeps the last value.
// Parsing stops at the first blank line.
func Parse(r io.Reader) (Attributes, error) {
	attrs := Attributes{values: make(map[string]string)}

	scanner := bufio.NewScanner(r)
	lineNo := 0
	last := ""
	for scanner.Scan() {
		lineNo++
		line := strings.TrimSuffix(scanner.Text(), "\r")
		if line == "" {
			break
		}

		if line[0] == ' ' {
			if last == "" {
				return Attributes{}, errors.InvalidManifest(lineNo, "continuation line before first attribute")
			}
			attrs.values[last] += line[1:]
			continue
		}

		name, value, found := strings.Cut(line, ":")
		if !found {
			return Attributes{}, errors.InvalidManifest(lineNo, "missing ':' separator")
		}
		name = strings.ToLower(strings.TrimSpace(name))
		if name == "" {
			return Attributes{}, errors.InvalidManifest(lineNo, "empty attribute name")
		}
		attrs.values[name] = strings.TrimSpace(value)
		last = name
	}
	if err := scanner.Err(); err != nil {
		return Attributes{}, errors.IO(errors.PhaseParse, "manifest", err)
	}

	return attrs, nil
}

// Get returns the attribute value, or "" when absent.
func (a Attributes) Get(name string) string {
	return a.values[strings.ToLower(name)]
}

// Has reports whether the attribute is present, even with an empty
// value.
func (a Attributes) Has(name string) bool {
	_, ok := a.values[strings.ToLower(name)]
	return ok
}

// List splits the attribute value on commas, trims each element, and
// drops empties. Absent attributes yield nil.
func (a Attributes) List(name string) []string {
	raw := a.Get(name)
	if raw == "" {
		return nil
	}
	var out []string
	for _, part := range strings.Split(raw, ",") {
		part = strings.TrimSpace(part)
		if part != "" {
			out = append(out, part)
		}
	}
	return out
}

// Len returns the number of attributes.
func (a Attributes) Len() int {
	return len(a.values)
}

// Names returns all attribute names in sorted order.
func (a Attributes) Names() []string {
	names := make([]string, 0, len(a.values))
	for name := range a.values {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
