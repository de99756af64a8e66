package artifact

import (
	"archive/zip"
	"sort"
	"strings"

	"github.com/gantryhq/gantry"
	"github.com/gantryhq/gantry/errors"
	"github.com/gantryhq/gantry/manifest"
)

// Zip is a zip-backed artifact. The archive is read once at open time;
// the file handle is not kept.
type Zip struct {
	path    string
	attrs   manifest.Attributes
	entries []string
	lookup  []gantry.PathEntry
}

// OpenZip opens the zip archive at path and snapshots its contents.
func OpenZip(path string) (*Zip, error) {
	abs, err := absPath(path)
	if err != nil {
		return nil, err
	}

	r, err := zip.OpenReader(abs)
	if err != nil {
		return nil, errors.New(errors.PhaseNormalize, errors.KindInvalidArtifact).
			Path(path).
			Cause(err).
			Detail("not a readable archive").
			Build()
	}
	defer r.Close()

	z := &Zip{path: abs}

	var libs []string
	for _, f := range r.File {
		name := f.Name
		if strings.HasSuffix(name, "/") {
			continue
		}
		z.entries = append(z.entries, name)
		if strings.HasPrefix(name, libDir) && !strings.Contains(name[len(libDir):], "/") {
			libs = append(libs, name)
		}
		if name == ManifestEntry {
			rc, err := f.Open()
			if err != nil {
				return nil, errors.IO(errors.PhaseNormalize, path, err)
			}
			attrs, perr := manifest.Parse(rc)
			rc.Close()
			if perr != nil {
				return nil, perr
			}
			z.attrs = attrs
		}
	}
	sort.Strings(z.entries)
	sort.Strings(libs)

	// Root first, nested archives after, in name order.
	z.lookup = append(z.lookup, gantry.PathEntry(abs))
	for _, lib := range libs {
		z.lookup = append(z.lookup, gantry.PathEntry(abs+"!/"+lib))
	}

	return z, nil
}

// Attributes returns the parsed manifest attributes.
func (z *Zip) Attributes() manifest.Attributes { return z.attrs }

// HasEntry reports whether any file entry satisfies pred.
func (z *Zip) HasEntry(pred func(name string) bool) bool {
	for _, name := range z.entries {
		if pred(name) {
			return true
		}
	}
	return false
}

// Entries returns all file entry names in sorted order.
func (z *Zip) Entries() []string {
	out := make([]string, len(z.entries))
	copy(out, z.entries)
	return out
}

// LookupEntries returns the archive path followed by its nested lib/
// archive entries, each addressed as "<archive>!/<entry>".
func (z *Zip) LookupEntries() []gantry.PathEntry {
	out := make([]gantry.PathEntry, len(z.lookup))
	copy(out, z.lookup)
	return out
}

// Origin returns the archive path.
func (z *Zip) Origin() string { return z.path }

// DirectoryBacked reports false.
func (z *Zip) DirectoryBacked() bool { return false }
