package fs

import (
	"errors"
	"fmt"
	"os"
)

// CreateFile creates an empty regular file. It fails with ErrExists when
// anything is already at path.
func CreateFile(path string) error {
	f, err := os.OpenFile(path, os.O_RDWR|os.O_CREATE|os.O_EXCL, 0o644)
	if err != nil {
		if errors.Is(err, os.ErrExist) {
			return fmt.Errorf("create file %s: %w", path, ErrExists)
		}
		return fmt.Errorf("create file %s: %w", path, err)
	}
	return f.Close()
}

// CreateDirectory creates a single directory. Missing parents are not created.
func CreateDirectory(path string) error {
	if err := os.Mkdir(path, 0o755); err != nil {
		if errors.Is(err, os.ErrExist) {
			return fmt.Errorf("create directory %s: %w", path, ErrExists)
		}
		return fmt.Errorf("create directory %s: %w", path, err)
	}
	return nil
}

// DeleteRecursive removes a file, or a directory and everything below it.
// Symlinks are removed, never followed.
func DeleteRecursive(path string) error {
	info, err := os.Lstat(path)
	if err != nil {
		return fmt.Errorf("delete %s: %w", path, err)
	}
	if info.IsDir() {
		err = os.RemoveAll(path)
	} else {
		err = os.Remove(path)
	}
	if err != nil {
		return fmt.Errorf("delete %s: %w", path, err)
	}
	return nil
}
