// Where: internal/infra/fileops/file_ops.go
// What: Filesystem operations for reading and rewriting settings files.
// Why: Keep in-place and atomic rewrite behavior in one reviewed place.
package fileops

import (
	"fmt"
	"os"
	"path/filepath"
)

const defaultFileMode os.FileMode = 0o644

func EnsureDir(path string) error {
	return os.MkdirAll(path, 0o755)
}

func ReadFile(path string) ([]byte, error) {
	return os.ReadFile(path)
}

// WriteFileInPlace truncates path and writes data through the same inode.
// A failure mid-write leaves the file truncated or partially written.
func WriteFileInPlace(path string, data []byte) error {
	mode := modeOf(path)
	out, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, mode)
	if err != nil {
		return err
	}
	if _, err := out.Write(data); err != nil {
		out.Close()
		return err
	}
	return out.Close()
}

// WriteFileAtomic writes data to a temp file beside path and renames it over
// path, so readers observe either the old or the new contents.
func WriteFileAtomic(path string, data []byte) error {
	dir := filepath.Dir(path)
	if err := EnsureDir(dir); err != nil {
		return err
	}
	mode := modeOf(path)

	tmp, err := os.CreateTemp(dir, "."+filepath.Base(path)+".*.tmp")
	if err != nil {
		return err
	}
	tmpPath := tmp.Name()
	cleanup := func() { _ = os.Remove(tmpPath) }

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		cleanup()
		return err
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		cleanup()
		return err
	}
	if err := tmp.Close(); err != nil {
		cleanup()
		return err
	}
	if err := os.Chmod(tmpPath, mode); err != nil {
		cleanup()
		return err
	}
	if err := os.Rename(tmpPath, path); err != nil {
		cleanup()
		return fmt.Errorf("replace %s: %w", path, err)
	}
	return nil
}

func modeOf(path string) os.FileMode {
	info, err := os.Stat(path)
	if err != nil {
		return defaultFileMode
	}
	return info.Mode().Perm()
}

func FileExists(path string) bool {
	info, err := os.Stat(path)
	if err != nil {
		return false
	}
	return !info.IsDir()
}
