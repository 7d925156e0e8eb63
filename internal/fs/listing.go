package fs

import (
	"fmt"
	"os"
	"sort"
)

// ReadDir returns the immediate children of dir. Symlinks report the kind of
// their target; entries that vanish between the read and the stat are skipped.
func ReadDir(dir string) ([]Entry, error) {
	dirEntries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("cannot read directory %s: %w", dir, err)
	}

	entries := make([]Entry, 0, len(dirEntries))
	for _, e := range dirEntries {
		info, err := e.Info()
		if err != nil {
			continue
		}

		fullPath := JoinPath(dir, e.Name())
		isDir := e.IsDir()
		isSymlink := info.Mode()&os.ModeSymlink != 0

		if isSymlink {
			if targetInfo, err := os.Stat(fullPath); err == nil {
				isDir = targetInfo.IsDir()
			}
		}

		entries = append(entries, Entry{
			Name:      e.Name(),
			Path:      fullPath,
			IsDir:     isDir,
			IsSymlink: isSymlink,
			Size:      info.Size(),
			Modified:  info.ModTime(),
			Mode:      info.Mode(),
		})
	}
	return entries, nil
}

// ListEntries is ReadDir with failures reported as an empty listing.
func ListEntries(dir string) []Entry {
	entries, err := ReadDir(dir)
	if err != nil {
		return []Entry{}
	}
	return entries
}

// SortEntries orders entries directories first, each group by name.
func SortEntries(entries []Entry) {
	sort.Slice(entries, func(i, j int) bool {
		if entries[i].IsDir != entries[j].IsDir {
			return entries[i].IsDir
		}
		return entries[i].Name < entries[j].Name
	})
}
