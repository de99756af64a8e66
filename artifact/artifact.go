package artifact

import (
	"os"
	"path/filepath"

	"github.com/gantryhq/gantry"
	"github.com/gantryhq/gantry/errors"
	"github.com/gantryhq/gantry/manifest"
)

const (
	// MarkerEntry identifies an archive as a module artifact.
	MarkerEntry = "META-INF/gantry/module.marker"

	// ManifestEntry holds the artifact's attribute block.
	ManifestEntry = "META-INF/MANIFEST.MF"

	// libDir is the archive directory whose nested archives join the
	// private lookup path.
	libDir = "lib/"
)

// Archive is read access to an opened module artifact. Implementations
// snapshot their contents at open time and are safe for concurrent
// reads.
type Archive interface {
	// Attributes returns the parsed manifest attributes. An artifact
	// without a manifest has empty attributes.
	Attributes() manifest.Attributes

	// HasEntry reports whether any file entry satisfies pred. Entry
	// names are slash-separated and relative to the artifact root.
	HasEntry(pred func(name string) bool) bool

	// Entries returns all file entry names in sorted order.
	Entries() []string

	// LookupEntries returns the private lookup path: the artifact root
	// first, then nested lib/ archives in name order.
	LookupEntries() []gantry.PathEntry

	// Origin returns the artifact's on-disk origin: the archive path
	// for zip artifacts, the unpack target for exploded artifacts, or
	// "" for a directory deployed in place. A module's work directory
	// derives from it.
	Origin() string

	// DirectoryBacked reports whether entries are served from a
	// directory rather than a zip archive.
	DirectoryBacked() bool
}

// Recognized reports whether arc is a module artifact: it carries the
// marker entry, or cfg is in embedded-host mode and the artifact is
// directory-backed.
func Recognized(arc Archive, cfg *gantry.Config) bool {
	if cfg != nil && cfg.Embedded && arc.DirectoryBacked() {
		return true
	}
	return arc.HasEntry(func(name string) bool { return name == MarkerEntry })
}

// Open opens the artifact at path. A directory opens in place. A zip
// archive opens directly, unless cfg requests embedded-mode unpacking,
// in which case it is exploded next to the source and the exploded
// directory is opened with its origin set.
func Open(path string, cfg *gantry.Config) (Archive, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, errors.IO(errors.PhaseNormalize, path, err)
	}
	if info.IsDir() {
		return OpenDir(path, "")
	}
	if cfg != nil && cfg.Embedded && cfg.UnpackOnOpen {
		dst, err := Unpack(path, path+"-unpack")
		if err != nil {
			return nil, err
		}
		return OpenDir(dst, dst)
	}
	return OpenZip(path)
}

func absPath(path string) (string, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return "", errors.IO(errors.PhaseNormalize, path, err)
	}
	return abs, nil
}
