package fs

import (
	"os"
	"path/filepath"
	"strings"
)

const separator = string(filepath.Separator)

// JoinPath appends name to base with a single separator. A root base already
// ends in a separator, so nothing is inserted. No other cleanup happens.
func JoinPath(base, name string) string {
	if IsRoot(base) {
		return base + name
	}
	return base + separator + name
}

// IsRoot reports whether path is a filesystem root such as "/" or `C:\`.
func IsRoot(path string) bool {
	if path == "" || !strings.HasSuffix(path, separator) {
		return false
	}
	return filepath.Dir(path) == path
}

// ParentOf returns the parent directory of path. The second result is false
// at a filesystem root and for a bare relative name.
func ParentOf(path string) (string, bool) {
	if path == "" {
		return "", false
	}
	cleaned := filepath.Clean(path)
	if IsRoot(cleaned) {
		return "", false
	}
	if !strings.Contains(cleaned, separator) {
		return "", false
	}
	return filepath.Dir(cleaned), true
}

// IsDirectory reports whether path resolves to a directory.
func IsDirectory(path string) bool {
	info, err := os.Stat(path)
	if err != nil {
		return false
	}
	return info.IsDir()
}
