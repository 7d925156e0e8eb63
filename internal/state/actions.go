package state

import "github.com/kk-code-lab/kexplorer/internal/prefs"

// Action is the base interface for all state mutations
type Action interface{}

// ===== NAVIGATION ACTIONS =====

type GoToParentAction struct{}
type GoHomeAction struct{}
type RefreshAction struct{}

// NavigateIntoAction enters a directory or previews a file.
type NavigateIntoAction struct {
	Name string
}

// SelectAction selects Name; selecting the already selected name activates it.
type SelectAction struct {
	Name string
}

// GoToPathAction enters a typed path if it is a directory.
type GoToPathAction struct {
	Path string
}

// SetPathInputAction replaces the working-directory text shown in the header.
type SetPathInputAction struct {
	Text string
}

// ExternalChangeAction re-lists Path after a change made outside the app.
type ExternalChangeAction struct {
	Path string
}

type NavigateUpAction struct{}
type NavigateDownAction struct{}
type NavigatePageUpAction struct{}
type NavigatePageDownAction struct{}

// ===== FILE ACTIONS =====

type CreateEntryAction struct {
	Name      string
	Directory bool
}

type DeleteEntryAction struct {
	Name string
}

type OpenInApplicationAction struct {
	Application string
	Name        string
}

// ===== PREVIEW ACTIONS =====

type PreviewAction struct {
	Name string
}
type PreviewDismissAction struct{}
type PreviewScrollUpAction struct{}
type PreviewScrollDownAction struct{}
type PreviewPageUpAction struct{}
type PreviewPageDownAction struct{}

// ===== PREFERENCE ACTIONS =====

type ToggleHiddenFilesAction struct{}

// SetHomeDirectoryAction stores Path as home; empty means the working directory.
type SetHomeDirectoryAction struct {
	Path string
}

type AddApplicationAction struct {
	Name    string
	Command string
}

type RemoveApplicationAction struct {
	Name string
}

// PreferencesChangedAction mirrors a store change into the state.
type PreferencesChangedAction struct {
	Prefs prefs.Preferences
}

// ===== PROMPT ACTIONS =====

type PromptStartAction struct {
	Kind PromptKind
}
type PromptCharAction struct {
	Char rune
}
type PromptBackspaceAction struct{}
type PromptCancelAction struct{}
type PromptSubmitAction struct{}

// ===== VIEW ACTIONS =====

type HelpToggleAction struct{}
type HelpHideAction struct{}

// QuitAction ends the event loop.
type QuitAction struct{}

// SuspendAction stops the process and hands the terminal back to the shell.
type SuspendAction struct{}

// YankPathAction copies the selected entry's full path to the clipboard.
type YankPathAction struct{}

type ResizeAction struct {
	Width  int
	Height int
}
