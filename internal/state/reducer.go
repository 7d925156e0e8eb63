package state

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	fsutil "github.com/kk-code-lab/kexplorer/internal/fs"
	"github.com/kk-code-lab/kexplorer/internal/logging"
	"github.com/kk-code-lab/kexplorer/internal/prefs"
	"go.uber.org/zap"
)

var (
	ErrInvalidName        = errors.New("invalid entry name")
	ErrNotDirectory       = errors.New("not a directory")
	ErrUnknownApplication = errors.New("unknown application")
	ErrNoLauncher         = errors.New("launching applications is not available")
)

// Preferences is the part of the preferences store the reducer uses.
type Preferences interface {
	Snapshot() prefs.Preferences
	HomeDirectory() string
	Application(name string) (string, bool)
	SetHomeDirectory(dir string) error
	SetShowHiddenFiles(show bool) error
	AddApplication(name, command string) error
	RemoveApplication(name string) error
}

// Launcher starts an external application with extra arguments.
type Launcher interface {
	LaunchCommand(commandLine string, extra ...string) error
}

// StateReducer applies actions to an AppState. It is not safe for
// concurrent use; the event loop is its only caller.
type StateReducer struct {
	prefs           Preferences
	launcher        Launcher
	classifier      fsutil.Classifier
	maxPreviewBytes int64
	logger          *zap.Logger
}

// DefaultMaxPreviewBytes bounds how much text a preview loads.
const DefaultMaxPreviewBytes = 4 * 1024 * 1024

// ReducerOption configures a StateReducer.
type ReducerOption func(*StateReducer)

func WithLauncher(l Launcher) ReducerOption {
	return func(r *StateReducer) { r.launcher = l }
}

func WithLogger(logger *zap.Logger) ReducerOption {
	return func(r *StateReducer) { r.logger = logging.OrNop(logger) }
}

// WithPreviewLimits sets the classifier sample and the preview size cap.
func WithPreviewLimits(sampleBytes, maxBytes int64) ReducerOption {
	return func(r *StateReducer) {
		r.classifier = fsutil.Classifier{SampleLimit: sampleBytes}
		if maxBytes > 0 {
			r.maxPreviewBytes = maxBytes
		}
	}
}

// NewStateReducer creates a reducer backed by store.
func NewStateReducer(store Preferences, opts ...ReducerOption) *StateReducer {
	r := &StateReducer{
		prefs:           store,
		maxPreviewBytes: DefaultMaxPreviewBytes,
		logger:          zap.NewNop(),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// NewInitialState builds the state for workingDirectory, mirroring the
// current preferences, and loads its listing.
func (r *StateReducer) NewInitialState(workingDirectory string) (*AppState, error) {
	state := &AppState{}
	r.mirrorPreferences(state, r.prefs.Snapshot())
	err := r.changeDirectory(state, absolutePath(workingDirectory))
	return state, err
}

// Reduce applies action to state. Failures are returned and also kept in
// state.LastError for the status line; user actions clear the previous error.
func (r *StateReducer) Reduce(state *AppState, action Action) (*AppState, error) {
	if !isPassive(action) {
		state.LastError = nil
	}
	err := r.reduce(state, action)
	if err != nil {
		state.LastError = err
		r.logger.Debug("action failed", zap.String("action", fmt.Sprintf("%T", action)), zap.Error(err))
	}
	return state, err
}

func isPassive(action Action) bool {
	switch action.(type) {
	case ResizeAction, PreferencesChangedAction, ExternalChangeAction:
		return true
	default:
		return false
	}
}

func (r *StateReducer) reduce(state *AppState, action Action) error {
	switch a := action.(type) {

	// ===== NAVIGATION =====

	case GoToParentAction:
		parent, ok := fsutil.ParentOf(state.WorkingDirectory)
		if !ok {
			return nil
		}
		return r.changeDirectory(state, parent)

	case GoHomeAction:
		return r.changeDirectory(state, absolutePath(r.prefs.HomeDirectory()))

	case RefreshAction:
		return r.changeDirectory(state, state.WorkingDirectory)

	case NavigateIntoAction:
		return r.navigateInto(state, a.Name)

	case SelectAction:
		if a.Name == "" {
			state.SelectedName = ""
			return nil
		}
		if state.SelectedName == a.Name {
			return r.navigateInto(state, a.Name)
		}
		state.SelectedName = a.Name
		state.ensureSelectionVisible()
		return nil

	case GoToPathAction:
		return r.goToPath(state, a.Path)

	case SetPathInputAction:
		state.PathInput = a.Text
		return nil

	case ExternalChangeAction:
		if a.Path != state.WorkingDirectory {
			return nil
		}
		return r.relist(state)

	case NavigateDownAction:
		r.moveSelection(state, 1)
		return nil

	case NavigateUpAction:
		r.moveSelection(state, -1)
		return nil

	case NavigatePageDownAction:
		r.moveSelection(state, state.listHeight())
		return nil

	case NavigatePageUpAction:
		r.moveSelection(state, -state.listHeight())
		return nil

	// ===== FILES =====

	case CreateEntryAction:
		if err := validateEntryName(a.Name); err != nil {
			return err
		}
		target := fsutil.JoinPath(state.WorkingDirectory, a.Name)
		var err error
		if a.Directory {
			err = fsutil.CreateDirectory(target)
		} else {
			err = fsutil.CreateFile(target)
		}
		if refreshErr := r.changeDirectory(state, state.WorkingDirectory); err == nil {
			err = refreshErr
		}
		if err == nil {
			r.logger.Info("created entry", zap.String("path", target), zap.Bool("directory", a.Directory))
		}
		return err

	case DeleteEntryAction:
		if err := validateEntryName(a.Name); err != nil {
			return err
		}
		target := fsutil.JoinPath(state.WorkingDirectory, a.Name)
		err := fsutil.DeleteRecursive(target)
		if refreshErr := r.changeDirectory(state, state.WorkingDirectory); err == nil {
			err = refreshErr
		}
		if err == nil {
			r.logger.Info("deleted entry", zap.String("path", target))
		}
		return err

	case OpenInApplicationAction:
		return r.openInApplication(state, a.Application, a.Name)

	// ===== PREVIEW =====

	case PreviewAction:
		if a.Name == "" {
			return nil
		}
		state.Preview = r.buildPreview(a.Name, fsutil.JoinPath(state.WorkingDirectory, a.Name))
		state.PreviewScrollOffset = 0
		return nil

	case PreviewDismissAction:
		state.Preview = nil
		state.PreviewScrollOffset = 0
		return nil

	case PreviewScrollDownAction:
		state.scrollPreview(1)
		return nil

	case PreviewScrollUpAction:
		state.scrollPreview(-1)
		return nil

	case PreviewPageDownAction:
		state.scrollPreview(state.listHeight())
		return nil

	case PreviewPageUpAction:
		state.scrollPreview(-state.listHeight())
		return nil

	// ===== PREFERENCES =====

	case ToggleHiddenFilesAction:
		show := !state.ShowHiddenFiles
		state.ShowHiddenFiles = show
		if !show && fsutil.IsHidden(state.SelectedName) {
			state.SelectedName = ""
		}
		state.clampScroll()
		return r.prefs.SetShowHiddenFiles(show)

	case SetHomeDirectoryAction:
		dir := state.WorkingDirectory
		if a.Path != "" {
			dir = absolutePath(a.Path)
		}
		if err := r.prefs.SetHomeDirectory(dir); err != nil {
			return err
		}
		state.HomeDirectory = dir
		return nil

	case AddApplicationAction:
		if err := r.prefs.AddApplication(a.Name, a.Command); err != nil {
			return err
		}
		r.mirrorPreferences(state, r.prefs.Snapshot())
		return nil

	case RemoveApplicationAction:
		if _, ok := r.prefs.Application(a.Name); !ok {
			return fmt.Errorf("%w: %s", ErrUnknownApplication, a.Name)
		}
		if err := r.prefs.RemoveApplication(a.Name); err != nil {
			return err
		}
		r.mirrorPreferences(state, r.prefs.Snapshot())
		return nil

	case PreferencesChangedAction:
		r.mirrorPreferences(state, a.Prefs)
		return nil

	// ===== PROMPT =====

	case PromptStartAction:
		state.Prompt = r.newPrompt(state, a.Kind)
		return nil

	case PromptCharAction:
		if state.Prompt != nil {
			state.Prompt.Text += string(a.Char)
		}
		return r.syncPathInput(state)

	case PromptBackspaceAction:
		if state.Prompt != nil && state.Prompt.Text != "" {
			runes := []rune(state.Prompt.Text)
			state.Prompt.Text = string(runes[:len(runes)-1])
		}
		return r.syncPathInput(state)

	case PromptCancelAction:
		if state.Prompt != nil && state.Prompt.Kind == PromptGoTo {
			state.Prompt = nil
			return r.reduce(state, SetPathInputAction{Text: state.WorkingDirectory})
		}
		state.Prompt = nil
		return nil

	case PromptSubmitAction:
		return r.submitPrompt(state)

	// ===== VIEW =====

	case HelpToggleAction:
		state.HelpVisible = !state.HelpVisible
		return nil

	case HelpHideAction:
		state.HelpVisible = false
		return nil

	case ResizeAction:
		state.ScreenWidth = a.Width
		state.ScreenHeight = a.Height
		state.ensureSelectionVisible()
		state.clampScroll()
		return nil
	}

	return nil
}

// changeDirectory moves the cursor to path and loads a fresh listing. A
// listing failure still moves the cursor; the directory shows as empty and
// the error is returned.
func (r *StateReducer) changeDirectory(state *AppState, path string) error {
	entries, err := fsutil.ReadDir(path)
	if err != nil {
		entries = []FileEntry{}
	}
	fsutil.SortEntries(entries)

	state.WorkingDirectory = path
	state.PathInput = path
	state.Files = entries
	state.SelectedName = ""
	state.ScrollOffset = 0
	state.Preview = nil
	state.PreviewScrollOffset = 0
	return err
}

// relist reloads the listing in place, keeping the selection if it still exists.
func (r *StateReducer) relist(state *AppState) error {
	entries, err := fsutil.ReadDir(state.WorkingDirectory)
	if err != nil {
		entries = []FileEntry{}
	}
	fsutil.SortEntries(entries)
	state.Files = entries
	if !state.hasFile(state.SelectedName) {
		state.SelectedName = ""
	}
	state.ensureSelectionVisible()
	state.clampScroll()
	return err
}

func (r *StateReducer) navigateInto(state *AppState, name string) error {
	if name == "" {
		return nil
	}
	target := fsutil.JoinPath(state.WorkingDirectory, name)
	if fsutil.IsDirectory(target) {
		return r.changeDirectory(state, target)
	}
	state.Preview = r.buildPreview(name, target)
	state.PreviewScrollOffset = 0
	return nil
}

func (r *StateReducer) goToPath(state *AppState, path string) error {
	path = strings.TrimSpace(path)
	if path == "" {
		state.PathInput = state.WorkingDirectory
		return nil
	}
	path = expandHome(path, r.prefs.HomeDirectory())
	if !filepath.IsAbs(path) {
		path = filepath.Join(state.WorkingDirectory, path)
	}
	path = filepath.Clean(path)

	if !fsutil.IsDirectory(path) {
		state.PathInput = path
		return fmt.Errorf("go to %s: %w", path, ErrNotDirectory)
	}
	return r.changeDirectory(state, path)
}

// absolutePath resolves a leading ~ against the user's home directory and
// makes path absolute against the process working directory.
func absolutePath(path string) string {
	if path == "~" || strings.HasPrefix(path, "~/") || strings.HasPrefix(path, `~\`) {
		if userHome, err := os.UserHomeDir(); err == nil {
			path = expandHome(path, userHome)
		}
	}
	if abs, err := filepath.Abs(path); err == nil {
		return abs
	}
	return path
}

func expandHome(path, home string) string {
	if path == "~" {
		return home
	}
	if strings.HasPrefix(path, "~/") || strings.HasPrefix(path, `~\`) {
		return filepath.Join(home, path[2:])
	}
	return path
}

func (r *StateReducer) moveSelection(state *AppState, delta int) {
	visible := state.VisibleFiles()
	if len(visible) == 0 {
		return
	}
	idx := state.SelectedIndex()
	switch {
	case idx < 0 && delta > 0:
		idx = 0
	case idx < 0:
		idx = len(visible) - 1
	default:
		idx += delta
	}
	if idx < 0 {
		idx = 0
	}
	if idx >= len(visible) {
		idx = len(visible) - 1
	}
	state.SelectedName = visible[idx].Name
	state.ensureSelectionVisible()
}

func (r *StateReducer) openInApplication(state *AppState, application, name string) error {
	if r.launcher == nil {
		return ErrNoLauncher
	}
	if err := validateEntryName(name); err != nil {
		return err
	}
	command, ok := r.prefs.Application(application)
	if !ok {
		return fmt.Errorf("%w: %s", ErrUnknownApplication, application)
	}
	target := fsutil.JoinPath(state.WorkingDirectory, name)
	if err := r.launcher.LaunchCommand(command, target); err != nil {
		return fmt.Errorf("open %s in %s: %w", name, application, err)
	}
	return nil
}

func (r *StateReducer) mirrorPreferences(state *AppState, p prefs.Preferences) {
	state.ShowHiddenFiles = p.ShowHiddenFiles
	state.HomeDirectory = p.HomeDir
	state.Applications = p.ApplicationNames()
	if !state.ShowHiddenFiles && fsutil.IsHidden(state.SelectedName) {
		state.SelectedName = ""
	}
	state.clampScroll()
}

// validateEntryName accepts a single path component.
func validateEntryName(name string) error {
	if name == "" || name == "." || name == ".." || strings.ContainsRune(name, os.PathSeparator) || strings.ContainsRune(name, '/') {
		return fmt.Errorf("%w: %q", ErrInvalidName, name)
	}
	return nil
}
