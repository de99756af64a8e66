// Package artifact provides read access to packaged module artifacts.
//
// An artifact is either a zip archive or a directory holding the same
// layout (an "exploded" artifact). Both carry an attribute block at
// META-INF/MANIFEST.MF and are recognized as module artifacts by the
// marker entry META-INF/gantry/module.marker. In embedded-host mode a
// directory-backed artifact is recognized without the marker.
//
// Opening an artifact snapshots its entry list, attributes, and private
// lookup entries (the artifact root followed by nested lib/ archives in
// name order). Later filesystem changes are not observed.
//
// Unpack explodes a zip artifact onto disk. Extraction goes to a
// temporary sibling directory first and is renamed into place, so a
// partially written target directory is never observable and two
// concurrent unpacks of the same artifact converge on one winner.
package artifact
