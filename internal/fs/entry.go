package fs

import (
	"os"
	"time"

	"golang.org/x/text/unicode/norm"
)

// Entry represents a single file or directory on disk.
type Entry struct {
	Name      string
	Path      string
	IsDir     bool
	IsSymlink bool
	Size      int64
	Modified  time.Time
	Mode      os.FileMode
}

// IsHidden reports whether the entry should be treated as hidden.
func (e Entry) IsHidden() bool {
	return IsHidden(e.Name)
}

// DisplayName returns the NFC form of the name for rendering. Name keeps the
// on-disk bytes so joined paths still resolve.
func (e Entry) DisplayName() string {
	return norm.NFC.String(e.Name)
}

// IsHidden reports whether name is a dot file.
func IsHidden(name string) bool {
	return len(name) > 0 && name[0] == '.'
}
