package output

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
)

// ErrOutputWriteFailed is returned when the report cannot be written.
var ErrOutputWriteFailed = errors.New("output write failed")

// WriteFileAtomic replaces path with data. The content is staged in a temporary
// file next to path and renamed into place, so readers never observe a
// truncated report and a failed write leaves the previous file intact.
func WriteFileAtomic(path string, data []byte, perm os.FileMode) (err error) {
	dir := filepath.Dir(path)
	tmp, err := os.CreateTemp(dir, "."+filepath.Base(path)+".*.tmp")
	if err != nil {
		return fmt.Errorf("%w: %q: %w", ErrOutputWriteFailed, path, err)
	}
	tmpName := tmp.Name()
	defer func() {
		if err != nil {
			_ = os.Remove(tmpName)
		}
	}()

	if _, err = tmp.Write(data); err != nil {
		_ = tmp.Close()
		return fmt.Errorf("%w: write %q: %w", ErrOutputWriteFailed, path, err)
	}
	if err = tmp.Chmod(perm); err != nil {
		_ = tmp.Close()
		return fmt.Errorf("%w: chmod %q: %w", ErrOutputWriteFailed, path, err)
	}
	if err = tmp.Close(); err != nil {
		return fmt.Errorf("%w: close %q: %w", ErrOutputWriteFailed, path, err)
	}
	if err = os.Rename(tmpName, path); err != nil {
		return fmt.Errorf("%w: rename into %q: %w", ErrOutputWriteFailed, path, err)
	}
	return nil
}
