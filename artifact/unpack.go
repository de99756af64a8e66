package artifact

import (
	"archive/zip"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/gantryhq/gantry/errors"
)

// Unpack explodes the zip artifact at src into the directory dst and
// returns the directory that ended up holding the contents.
//
// Extraction writes to a temporary sibling of dst and renames it into
// place, so dst either does not exist or holds a complete tree. When
// two callers race on the same dst, the loser discards its temporary
// tree and uses the winner's; both see the same directory. An existing
// dst is reused without touching the archive.
func Unpack(src, dst string) (string, error) {
	absDst, err := absPath(dst)
	if err != nil {
		return "", err
	}
	if info, err := os.Stat(absDst); err == nil && info.IsDir() {
		return absDst, nil
	}

	tmp, err := os.MkdirTemp(filepath.Dir(absDst), filepath.Base(absDst)+".tmp-")
	if err != nil {
		return "", errors.IO(errors.PhaseNormalize, dst, err)
	}

	if err := extractZip(src, tmp); err != nil {
		os.RemoveAll(tmp)
		return "", err
	}

	if err := os.Rename(tmp, absDst); err != nil {
		os.RemoveAll(tmp)
		if info, statErr := os.Stat(absDst); statErr == nil && info.IsDir() {
			// Another unpack won the rename; its tree is equivalent.
			return absDst, nil
		}
		return "", errors.IO(errors.PhaseNormalize, dst, err)
	}

	return absDst, nil
}

func extractZip(src, destDir string) error {
	r, err := zip.OpenReader(src)
	if err != nil {
		return errors.New(errors.PhaseNormalize, errors.KindInvalidArtifact).
			Path(src).
			Cause(err).
			Detail("not a readable archive").
			Build()
	}
	defer r.Close()

	for _, f := range r.File {
		destPath := filepath.Join(destDir, filepath.FromSlash(f.Name))

		// Entry paths must stay inside the destination.
		rel, err := filepath.Rel(destDir, destPath)
		if err != nil || strings.HasPrefix(rel, "..") {
			return errors.New(errors.PhaseNormalize, errors.KindInvalidArtifact).
				Path(src).
				Detail("entry %q escapes the extraction root", f.Name).
				Build()
		}

		if f.FileInfo().IsDir() {
			if err := os.MkdirAll(destPath, 0755); err != nil {
				return errors.IO(errors.PhaseNormalize, f.Name, err)
			}
			continue
		}

		if err := os.MkdirAll(filepath.Dir(destPath), 0755); err != nil {
			return errors.IO(errors.PhaseNormalize, f.Name, err)
		}
		if err := extractFile(f, destPath); err != nil {
			return errors.IO(errors.PhaseNormalize, f.Name, err)
		}
	}

	return nil
}

func extractFile(f *zip.File, destPath string) error {
	rc, err := f.Open()
	if err != nil {
		return err
	}
	defer rc.Close()

	mode := f.Mode()
	if mode&0400 == 0 {
		mode |= 0400
	}
	dest, err := os.OpenFile(destPath, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, mode)
	if err != nil {
		return err
	}

	_, err = io.Copy(dest, rc)
	if cerr := dest.Close(); err == nil {
		err = cerr
	}
	return err
}
