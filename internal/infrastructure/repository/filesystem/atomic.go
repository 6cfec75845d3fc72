package filesystem

import (
	"os"
	"path/filepath"

	crerr "github.com/cockroachdb/errors"
)

// writeFileAtomic replaces path with data via a sibling temp file so readers
// never observe a truncated document.
func writeFileAtomic(path string, data []byte) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return crerr.Wrapf(err, "create directory %s", dir)
	}

	tmp, err := os.CreateTemp(dir, "."+filepath.Base(path)+".*.tmp")
	if err != nil {
		return crerr.Wrapf(err, "create temp file for %s", path)
	}
	tmpName := tmp.Name()
	defer func() {
		_ = os.Remove(tmpName)
	}()

	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		return crerr.Wrapf(err, "write %s", tmpName)
	}
	if err := tmp.Close(); err != nil {
		return crerr.Wrapf(err, "close %s", tmpName)
	}
	if err := os.Chmod(tmpName, 0o644); err != nil {
		return crerr.Wrapf(err, "chmod %s", tmpName)
	}
	if err := os.Rename(tmpName, path); err != nil {
		return crerr.Wrapf(err, "rename %s to %s", tmpName, path)
	}
	return nil
}
