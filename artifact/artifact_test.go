package artifact

import (
	"archive/zip"
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"reflect"
	"sort"
	"testing"

	"github.com/gantryhq/gantry"
	gantryerrors "github.com/gantryhq/gantry/errors"
	"github.com/gantryhq/gantry/manifest"
)

func writeZip(t *testing.T, path string, files map[string]string) {
	t.Helper()

	f, err := os.Create(path)
	if err != nil {
		t.Fatalf("create %s: %v", path, err)
	}
	defer f.Close()

	w := zip.NewWriter(f)
	names := make([]string, 0, len(files))
	for name := range files {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		fw, err := w.Create(name)
		if err != nil {
			t.Fatalf("create entry %s: %v", name, err)
		}
		if _, err := fw.Write([]byte(files[name])); err != nil {
			t.Fatalf("write entry %s: %v", name, err)
		}
	}
	if err := w.Close(); err != nil {
		t.Fatalf("close zip: %v", err)
	}
}

func moduleManifest() string {
	return "Module-Name: orders\n" +
		"Module-Version: 2.1.0\n" +
		"Start-Class: com.x.Start\n"
}

func TestOpenZip(t *testing.T) {
	dir := t.TempDir()
	zipPath := filepath.Join(dir, "orders.zip")
	writeZip(t, zipPath, map[string]string{
		ManifestEntry:         moduleManifest(),
		MarkerEntry:           "",
		"lib/dep-b.zip":       "b",
		"lib/dep-a.zip":       "a",
		"lib/nested/deep.zip": "d",
		"conf/app.yaml":       "x: 1",
	})

	arc, err := OpenZip(zipPath)
	if err != nil {
		t.Fatalf("OpenZip() error = %v", err)
	}

	if arc.DirectoryBacked() {
		t.Error("DirectoryBacked() = true, want false")
	}
	wantOrigin, _ := filepath.Abs(zipPath)
	if arc.Origin() != wantOrigin {
		t.Errorf("Origin() = %q, want archive path %q", arc.Origin(), wantOrigin)
	}
	if got := arc.Attributes().Get(manifest.AttrModuleName); got != "orders" {
		t.Errorf("module name = %q, want orders", got)
	}

	wantEntries := []string{
		ManifestEntry,
		MarkerEntry,
		"conf/app.yaml",
		"lib/dep-a.zip",
		"lib/dep-b.zip",
		"lib/nested/deep.zip",
	}
	sort.Strings(wantEntries)
	if got := arc.Entries(); !reflect.DeepEqual(got, wantEntries) {
		t.Errorf("Entries() = %v, want %v", got, wantEntries)
	}

	abs, _ := filepath.Abs(zipPath)
	wantLookup := []gantry.PathEntry{
		gantry.PathEntry(abs),
		gantry.PathEntry(abs + "!/lib/dep-a.zip"),
		gantry.PathEntry(abs + "!/lib/dep-b.zip"),
	}
	if got := arc.LookupEntries(); !reflect.DeepEqual(got, wantLookup) {
		t.Errorf("LookupEntries() = %v, want %v", got, wantLookup)
	}
}

func TestOpenZipNotArchive(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "plain.txt")
	if err := os.WriteFile(path, []byte("not a zip"), 0644); err != nil {
		t.Fatal(err)
	}

	_, err := OpenZip(path)
	if err == nil {
		t.Fatal("expected error for non-archive file")
	}
	target := &gantryerrors.Error{
		Phase: gantryerrors.PhaseNormalize,
		Kind:  gantryerrors.KindInvalidArtifact,
	}
	if !errors.Is(err, target) {
		t.Errorf("error = %v, want invalid_artifact", err)
	}
}

func writeDirArtifact(t *testing.T, root string, files map[string]string) {
	t.Helper()
	for name, content := range files {
		full := filepath.Join(root, filepath.FromSlash(name))
		if err := os.MkdirAll(filepath.Dir(full), 0755); err != nil {
			t.Fatal(err)
		}
		if err := os.WriteFile(full, []byte(content), 0644); err != nil {
			t.Fatal(err)
		}
	}
}

func TestOpenDir(t *testing.T) {
	root := t.TempDir()
	writeDirArtifact(t, root, map[string]string{
		ManifestEntry:   moduleManifest(),
		MarkerEntry:     "",
		"lib/dep.zip":   "d",
		"conf/app.yaml": "x: 1",
	})

	arc, err := OpenDir(root, "")
	if err != nil {
		t.Fatalf("OpenDir() error = %v", err)
	}

	if !arc.DirectoryBacked() {
		t.Error("DirectoryBacked() = false, want true")
	}
	if arc.Origin() != "" {
		t.Errorf("Origin() = %q, want empty for in-place dir", arc.Origin())
	}
	if got := arc.Attributes().Get(manifest.AttrStartClass); got != "com.x.Start" {
		t.Errorf("start class = %q, want com.x.Start", got)
	}

	wantEntries := []string{
		ManifestEntry,
		MarkerEntry,
		"conf/app.yaml",
		"lib/dep.zip",
	}
	sort.Strings(wantEntries)
	if got := arc.Entries(); !reflect.DeepEqual(got, wantEntries) {
		t.Errorf("Entries() = %v, want %v", got, wantEntries)
	}

	abs, _ := filepath.Abs(root)
	wantLookup := []gantry.PathEntry{
		gantry.PathEntry(abs),
		gantry.PathEntry(filepath.Join(abs, "lib", "dep.zip")),
	}
	if got := arc.LookupEntries(); !reflect.DeepEqual(got, wantLookup) {
		t.Errorf("LookupEntries() = %v, want %v", got, wantLookup)
	}
}

func TestOpenDirWithoutManifest(t *testing.T) {
	root := t.TempDir()
	writeDirArtifact(t, root, map[string]string{"data.bin": "raw"})

	arc, err := OpenDir(root, "")
	if err != nil {
		t.Fatalf("OpenDir() error = %v", err)
	}
	if arc.Attributes().Len() != 0 {
		t.Errorf("Attributes().Len() = %d, want 0", arc.Attributes().Len())
	}
}

func TestRecognized(t *testing.T) {
	dir := t.TempDir()

	marked := filepath.Join(dir, "marked.zip")
	writeZip(t, marked, map[string]string{MarkerEntry: "", ManifestEntry: moduleManifest()})
	unmarked := filepath.Join(dir, "unmarked.zip")
	writeZip(t, unmarked, map[string]string{ManifestEntry: moduleManifest()})

	plainDir := filepath.Join(dir, "exploded")
	writeDirArtifact(t, plainDir, map[string]string{ManifestEntry: moduleManifest()})

	markedArc, err := OpenZip(marked)
	if err != nil {
		t.Fatal(err)
	}
	unmarkedArc, err := OpenZip(unmarked)
	if err != nil {
		t.Fatal(err)
	}
	dirArc, err := OpenDir(plainDir, "")
	if err != nil {
		t.Fatal(err)
	}

	embedded := &gantry.Config{Embedded: true}
	standalone := &gantry.Config{}

	tests := []struct {
		name string
		arc  Archive
		cfg  *gantry.Config
		want bool
	}{
		{"marker zip", markedArc, standalone, true},
		{"marker zip nil config", markedArc, nil, true},
		{"unmarked zip", unmarkedArc, standalone, false},
		{"unmarked zip embedded", unmarkedArc, embedded, false},
		{"unmarked dir", dirArc, standalone, false},
		{"unmarked dir embedded", dirArc, embedded, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Recognized(tt.arc, tt.cfg); got != tt.want {
				t.Errorf("Recognized() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestOpenDispatch(t *testing.T) {
	dir := t.TempDir()

	zipPath := filepath.Join(dir, "app.zip")
	writeZip(t, zipPath, map[string]string{MarkerEntry: "", "conf/a.yaml": "1"})

	dirPath := filepath.Join(dir, "app-dir")
	writeDirArtifact(t, dirPath, map[string]string{MarkerEntry: ""})

	t.Run("directory opens in place", func(t *testing.T) {
		arc, err := Open(dirPath, gantry.DefaultConfig())
		if err != nil {
			t.Fatalf("Open() error = %v", err)
		}
		if _, ok := arc.(*Dir); !ok {
			t.Fatalf("Open() = %T, want *Dir", arc)
		}
		if arc.Origin() != "" {
			t.Errorf("Origin() = %q, want empty", arc.Origin())
		}
	})

	t.Run("zip opens directly", func(t *testing.T) {
		arc, err := Open(zipPath, gantry.DefaultConfig())
		if err != nil {
			t.Fatalf("Open() error = %v", err)
		}
		if _, ok := arc.(*Zip); !ok {
			t.Fatalf("Open() = %T, want *Zip", arc)
		}
		wantOrigin, _ := filepath.Abs(zipPath)
		if arc.Origin() != wantOrigin {
			t.Errorf("Origin() = %q, want %q", arc.Origin(), wantOrigin)
		}
	})

	t.Run("embedded unpack on open", func(t *testing.T) {
		cfg := &gantry.Config{Embedded: true, UnpackOnOpen: true}
		arc, err := Open(zipPath, cfg)
		if err != nil {
			t.Fatalf("Open() error = %v", err)
		}
		d, ok := arc.(*Dir)
		if !ok {
			t.Fatalf("Open() = %T, want *Dir", arc)
		}
		wantOrigin, _ := filepath.Abs(zipPath + "-unpack")
		if d.Origin() != wantOrigin {
			t.Errorf("Origin() = %q, want %q", d.Origin(), wantOrigin)
		}
		if _, err := os.Stat(filepath.Join(wantOrigin, "conf", "a.yaml")); err != nil {
			t.Errorf("unpacked entry missing: %v", err)
		}
	})

	t.Run("missing path", func(t *testing.T) {
		_, err := Open(filepath.Join(dir, "absent.zip"), gantry.DefaultConfig())
		if !errors.Is(err, fs.ErrNotExist) {
			t.Errorf("error = %v, want fs.ErrNotExist on the chain", err)
		}
	})
}

func TestUnpack(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "app.zip")
	writeZip(t, src, map[string]string{
		"conf/app.yaml": "x: 1",
		"bin/run":       "#!/bin/sh",
	})

	dst := filepath.Join(dir, "app-unpack")
	got, err := Unpack(src, dst)
	if err != nil {
		t.Fatalf("Unpack() error = %v", err)
	}
	wantDst, _ := filepath.Abs(dst)
	if got != wantDst {
		t.Errorf("Unpack() = %q, want %q", got, wantDst)
	}

	content, err := os.ReadFile(filepath.Join(dst, "conf", "app.yaml"))
	if err != nil {
		t.Fatalf("read extracted file: %v", err)
	}
	if string(content) != "x: 1" {
		t.Errorf("extracted content = %q, want %q", content, "x: 1")
	}

	// No temporary trees survive a successful unpack.
	leftovers, _ := filepath.Glob(dst + ".tmp-*")
	if len(leftovers) != 0 {
		t.Errorf("temporary directories left behind: %v", leftovers)
	}

	// A second unpack reuses the existing target.
	again, err := Unpack(src, dst)
	if err != nil {
		t.Fatalf("second Unpack() error = %v", err)
	}
	if again != wantDst {
		t.Errorf("second Unpack() = %q, want %q", again, wantDst)
	}
}

func TestUnpackRejectsEscapingEntries(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "evil.zip")
	writeZip(t, src, map[string]string{"../evil.txt": "boom"})

	_, err := Unpack(src, filepath.Join(dir, "out"))
	if err == nil {
		t.Fatal("expected error for escaping entry")
	}
	target := &gantryerrors.Error{
		Phase: gantryerrors.PhaseNormalize,
		Kind:  gantryerrors.KindInvalidArtifact,
	}
	if !errors.Is(err, target) {
		t.Errorf("error = %v, want invalid_artifact", err)
	}
	if _, statErr := os.Stat(filepath.Join(dir, "evil.txt")); statErr == nil {
		t.Error("escaping entry was written outside the extraction root")
	}
}
