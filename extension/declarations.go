package extension

import (
	"encoding/json"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/gantryhq/gantry"
	"github.com/gantryhq/gantry/errors"
)

// Declarations is the on-disk form of a set of extension declarations,
// in YAML or JSON.
type Declarations struct {
	Extensions []Declaration `json:"extensions" yaml:"extensions"`
}

// Declaration describes one extension in a declarations file.
type Declaration struct {
	Name    string `json:"name" yaml:"name"`
	Version string `json:"version" yaml:"version"`

	// Priority defaults to DefaultPriority when omitted; an explicit 0
	// is honored.
	Priority *int `json:"priority,omitempty" yaml:"priority,omitempty"`

	Root    string          `json:"root" yaml:"root"`
	Exports DeclaredExports `json:"exports,omitempty" yaml:"exports,omitempty"`
}

// DeclaredExports are the raw export patterns of a declaration, split
// into the five export surfaces when the extension is built.
type DeclaredExports struct {
	Symbols   []string `json:"symbols,omitempty" yaml:"symbols,omitempty"`
	Resources []string `json:"resources,omitempty" yaml:"resources,omitempty"`
}

// Load reads the declarations file at path and builds its extensions.
func Load(path string) ([]*Extension, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.IO(errors.PhaseParse, path, err)
	}
	return Parse(data, path)
}

// Parse builds extensions from declarations data. The filename picks the
// format: .yaml/.yml parses as YAML, .json as JSON, anything else tries
// JSON first and falls back to YAML.
func Parse(data []byte, filename string) ([]*Extension, error) {
	var decls Declarations

	switch {
	case strings.HasSuffix(filename, ".yaml"), strings.HasSuffix(filename, ".yml"):
		if err := yaml.Unmarshal(data, &decls); err != nil {
			return nil, errors.InvalidDeclaration(filename, err, "not valid YAML")
		}
	case strings.HasSuffix(filename, ".json"):
		if err := json.Unmarshal(data, &decls); err != nil {
			return nil, errors.InvalidDeclaration(filename, err, "not valid JSON")
		}
	default:
		if jerr := json.Unmarshal(data, &decls); jerr != nil {
			if yerr := yaml.Unmarshal(data, &decls); yerr != nil {
				return nil, errors.InvalidDeclaration(filename, yerr, "neither valid JSON nor YAML")
			}
		}
	}

	exts := make([]*Extension, 0, len(decls.Extensions))
	for _, d := range decls.Extensions {
		priority := DefaultPriority
		if d.Priority != nil {
			priority = *d.Priority
		}
		ext, err := New(Spec{
			Name:      d.Name,
			Version:   d.Version,
			Priority:  priority,
			Symbols:   d.Exports.Symbols,
			Resources: d.Exports.Resources,
			Root:      gantry.PathEntry(d.Root),
		})
		if err != nil {
			return nil, err
		}
		exts = append(exts, ext)
	}

	return exts, nil
}

// LoadInto loads the declarations file at path and registers every
// extension it declares, returning how many were registered. The
// registry is left partially populated when a later registration fails.
func LoadInto(reg *Registry, path string) (int, error) {
	exts, err := Load(path)
	if err != nil {
		return 0, err
	}
	for i, ext := range exts {
		if err := reg.Register(ext); err != nil {
			return i, err
		}
	}
	return len(exts), nil
}
