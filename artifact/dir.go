package artifact

import (
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/gantryhq/gantry"
	"github.com/gantryhq/gantry/errors"
	"github.com/gantryhq/gantry/manifest"
)

// Dir is a directory-backed artifact, either a directory deployed in
// place or a zip artifact exploded by Unpack.
type Dir struct {
	root    string
	origin  string
	attrs   manifest.Attributes
	entries []string
	lookup  []gantry.PathEntry
}

// OpenDir opens the directory artifact rooted at root and snapshots its
// contents. origin is the directory the artifact was exploded to, or ""
// for a directory deployed in place.
func OpenDir(root, origin string) (*Dir, error) {
	abs, err := absPath(root)
	if err != nil {
		return nil, err
	}

	d := &Dir{root: abs, origin: origin}

	err = filepath.WalkDir(abs, func(path string, entry fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if entry.IsDir() {
			return nil
		}
		rel, err := filepath.Rel(abs, path)
		if err != nil {
			return err
		}
		d.entries = append(d.entries, filepath.ToSlash(rel))
		return nil
	})
	if err != nil {
		return nil, errors.IO(errors.PhaseNormalize, root, err)
	}
	sort.Strings(d.entries)

	f, err := os.Open(filepath.Join(abs, filepath.FromSlash(ManifestEntry)))
	switch {
	case err == nil:
		attrs, perr := manifest.Parse(f)
		f.Close()
		if perr != nil {
			return nil, perr
		}
		d.attrs = attrs
	case !os.IsNotExist(err):
		return nil, errors.IO(errors.PhaseNormalize, root, err)
	}

	d.lookup = append(d.lookup, gantry.PathEntry(abs))
	for _, name := range d.entries {
		if strings.HasPrefix(name, libDir) && !strings.Contains(name[len(libDir):], "/") {
			d.lookup = append(d.lookup, gantry.PathEntry(filepath.Join(abs, filepath.FromSlash(name))))
		}
	}

	return d, nil
}

// Attributes returns the parsed manifest attributes.
func (d *Dir) Attributes() manifest.Attributes { return d.attrs }

// HasEntry reports whether any file entry satisfies pred.
func (d *Dir) HasEntry(pred func(name string) bool) bool {
	for _, name := range d.entries {
		if pred(name) {
			return true
		}
	}
	return false
}

// Entries returns all file entry names in sorted order, relative to the
// artifact root with slash separators.
func (d *Dir) Entries() []string {
	out := make([]string, len(d.entries))
	copy(out, d.entries)
	return out
}

// LookupEntries returns the directory root followed by the files under
// lib/ in name order.
func (d *Dir) LookupEntries() []gantry.PathEntry {
	out := make([]gantry.PathEntry, len(d.lookup))
	copy(out, d.lookup)
	return out
}

// Origin returns the unpack target directory, or "" for an in-place
// directory.
func (d *Dir) Origin() string { return d.origin }

// DirectoryBacked reports true.
func (d *Dir) DirectoryBacked() bool { return true }
