package state

import (
	fsutil "github.com/kk-code-lab/kexplorer/internal/fs"
)

// FileEntry mirrors fs.Entry so UI/state code can rely on a stable type.
type FileEntry = fsutil.Entry

// ===== STATE DEFINITIONS =====

// PreviewData is the read-only view of a file opened from the listing.
type PreviewData struct {
	Name      string
	Path      string
	Size      int64
	Text      bool
	Content   string
	Lines     []string
	MimeType  string
	Charset   string
	Truncated bool
}

// PromptKind identifies what a submitted prompt line turns into.
type PromptKind int

const (
	PromptNone PromptKind = iota
	PromptNewFile
	PromptNewDirectory
	PromptGoTo
	PromptOpenWith
	PromptAddApplication
	PromptRemoveApplication
	PromptConfirmDelete
)

// PromptState is the single-line input shown in the status bar.
type PromptState struct {
	Kind   PromptKind
	Text   string
	Target string // entry the prompt acts on, if any
}

// AppState is the single source of truth
type AppState struct {
	// Navigation & filesystem
	WorkingDirectory string
	PathInput        string      // editable copy of WorkingDirectory
	Files            []FileEntry // full listing including hidden entries, sorted

	// Selection & viewport
	SelectedName string
	ScrollOffset int

	// Mirrored preferences
	ShowHiddenFiles bool
	HomeDirectory   string
	Applications    []string

	// Preview
	Preview             *PreviewData
	PreviewScrollOffset int

	Prompt      *PromptState
	HelpVisible bool

	// Dimensions
	ScreenWidth  int
	ScreenHeight int

	// Error state
	LastError error

	dispatchAction func(Action)
}

// SetDispatch installs the hook used to feed actions back into the loop.
func (s *AppState) SetDispatch(fn func(Action)) {
	s.dispatchAction = fn
}

// Dispatch queues action on the loop if a hook is installed.
func (s *AppState) Dispatch(action Action) bool {
	if s.dispatchAction == nil {
		return false
	}
	s.dispatchAction(action)
	return true
}

// VisibleFiles applies the hidden-file preference to the listing. The
// underlying Files slice is never filtered, so toggling needs no rescan.
func (s *AppState) VisibleFiles() []FileEntry {
	if s.ShowHiddenFiles {
		return s.Files
	}
	visible := make([]FileEntry, 0, len(s.Files))
	for _, f := range s.Files {
		if f.IsHidden() {
			continue
		}
		visible = append(visible, f)
	}
	return visible
}

// SelectedIndex is the position of the selection in VisibleFiles, or -1.
func (s *AppState) SelectedIndex() int {
	if s.SelectedName == "" {
		return -1
	}
	for i, f := range s.VisibleFiles() {
		if f.Name == s.SelectedName {
			return i
		}
	}
	return -1
}

// SelectedEntry returns the selected visible entry.
func (s *AppState) SelectedEntry() *FileEntry {
	idx := s.SelectedIndex()
	if idx < 0 {
		return nil
	}
	entry := s.VisibleFiles()[idx]
	return &entry
}

// listHeight is the number of rows available to the listing.
func (s *AppState) listHeight() int {
	h := s.ScreenHeight - 2 // header + status line
	if h < 1 {
		return 1
	}
	return h
}

func (s *AppState) ensureSelectionVisible() {
	idx := s.SelectedIndex()
	if idx < 0 {
		return
	}
	height := s.listHeight()
	if idx < s.ScrollOffset {
		s.ScrollOffset = idx
	} else if idx >= s.ScrollOffset+height {
		s.ScrollOffset = idx - height + 1
	}
	s.clampScroll()
}

func (s *AppState) clampScroll() {
	maxOffset := len(s.VisibleFiles()) - s.listHeight()
	if maxOffset < 0 {
		maxOffset = 0
	}
	if s.ScrollOffset > maxOffset {
		s.ScrollOffset = maxOffset
	}
	if s.ScrollOffset < 0 {
		s.ScrollOffset = 0
	}
}

func (s *AppState) hasFile(name string) bool {
	for _, f := range s.Files {
		if f.Name == name {
			return true
		}
	}
	return false
}

// EntryAtRow maps a listing row (0 is the first row under the header) to the
// visible entry drawn there.
func (s *AppState) EntryAtRow(row int) (FileEntry, bool) {
	if row < 0 || row >= s.listHeight() {
		return FileEntry{}, false
	}
	idx := s.ScrollOffset + row
	visible := s.VisibleFiles()
	if idx >= len(visible) {
		return FileEntry{}, false
	}
	return visible[idx], true
}
