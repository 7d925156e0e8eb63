package app

import (
	"errors"
	"os"
	"os/exec"
	"path/filepath"
	"strconv"
	"testing"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/kk-code-lab/kexplorer/internal/config"
	"github.com/kk-code-lab/kexplorer/internal/prefs"
	statepkg "github.com/kk-code-lab/kexplorer/internal/state"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHelperProcess(t *testing.T) {
	if os.Getenv("GO_WANT_HELPER_PROCESS") != "1" {
		return
	}
	code, err := strconv.Atoi(os.Getenv("HELPER_PROCESS_EXIT"))
	if err != nil {
		code = 1
	}
	os.Exit(code)
}

func withFakeCommandBuilder(t *testing.T, exitCode int, recorded *[]string) {
	t.Helper()
	orig := commandBuilder
	commandBuilder = func(name string, args ...string) *exec.Cmd {
		if recorded != nil {
			*recorded = append([]string{name}, args...)
		}
		cmdArgs := append([]string{"-test.run=TestHelperProcess", "--", name}, args...)
		cmd := exec.Command(os.Args[0], cmdArgs...)
		cmd.Env = append(os.Environ(),
			"GO_WANT_HELPER_PROCESS=1",
			"HELPER_PROCESS_EXIT="+strconv.Itoa(exitCode),
		)
		return cmd
	}
	t.Cleanup(func() {
		commandBuilder = orig
	})
}

type testApp struct {
	*Application
	screen tcell.SimulationScreen
	store  *prefs.Store
	dir    string
}

func newTestApplication(t *testing.T, watchDir bool) *testApp {
	t.Helper()
	t.Setenv("VISUAL", "")
	t.Setenv("EDITOR", "")

	dir := t.TempDir()
	for _, name := range []string{"alpha.txt", "beta.txt"} {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(name), 0o644))
	}
	require.NoError(t, os.Mkdir(filepath.Join(dir, "sub"), 0o755))

	store, err := prefs.Open(filepath.Join(t.TempDir(), prefs.FileName),
		prefs.WithDefaults(prefs.Preferences{HomeDir: dir, Applications: map[string]string{}}))
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })

	screen := tcell.NewSimulationScreen("UTF-8")
	require.NoError(t, screen.Init())
	screen.SetSize(80, 20)

	cfg := config.Default()
	cfg.Watch = watchDir
	cfg.WatchDebounce = 20 * time.Millisecond

	app, err := newApplication(screen, Options{Config: cfg, Store: store, StartDir: dir})
	require.NoError(t, err)
	t.Cleanup(func() { _ = app.Close() })

	return &testApp{Application: app, screen: screen, store: store, dir: dir}
}

func waitForAction[T statepkg.Action](t *testing.T, ch chan statepkg.Action) T {
	t.Helper()
	deadline := time.After(3 * time.Second)
	for {
		select {
		case action := <-ch:
			if typed, ok := action.(T); ok {
				return typed
			}
		case <-deadline:
			var zero T
			t.Fatalf("timed out waiting for %T", zero)
			return zero
		}
	}
}

func TestNewApplicationLoadsStartDirectory(t *testing.T) {
	app := newTestApplication(t, false)

	assert.Equal(t, app.dir, app.WorkingDirectory())
	names := make([]string, 0, len(app.state.Files))
	for _, f := range app.state.Files {
		names = append(names, f.Name)
	}
	assert.Equal(t, []string{"sub", "alpha.txt", "beta.txt"}, names)
	assert.Equal(t, 80, app.state.ScreenWidth)
	assert.Equal(t, 20, app.state.ScreenHeight)
}

func TestNewApplicationRequiresStore(t *testing.T) {
	screen := tcell.NewSimulationScreen("UTF-8")
	require.NoError(t, screen.Init())
	defer screen.Fini()

	_, err := newApplication(screen, Options{StartDir: t.TempDir()})
	assert.Error(t, err)
}

func TestMouseClickSelectsThenActivates(t *testing.T) {
	app := newTestApplication(t, false)

	// row 1 on screen is the first entry, "sub"
	click := tcell.NewEventMouse(3, 1, tcell.Button1, tcell.ModNone)
	require.True(t, app.handleMouse(click))
	app.processActions()
	assert.Equal(t, "sub", app.state.SelectedName)

	require.True(t, app.handleMouse(click))
	app.processActions()
	assert.Equal(t, filepath.Join(app.dir, "sub"), app.state.WorkingDirectory)
}

func TestMouseClickWithFullActionQueue(t *testing.T) {
	app := newTestApplication(t, false)
	for len(app.actionCh) < cap(app.actionCh) {
		app.actionCh <- statepkg.ResizeAction{Width: 80, Height: 20}
	}

	done := make(chan bool)
	go func() {
		done <- app.handleMouse(tcell.NewEventMouse(3, 1, tcell.Button1, tcell.ModNone))
	}()
	select {
	case handled := <-done:
		assert.True(t, handled)
	case <-time.After(2 * time.Second):
		t.Fatalf("mouse click blocked on a full action queue")
	}
	assert.Equal(t, "sub", app.state.SelectedName)
}

func TestMouseClickOutsideListingIsIgnored(t *testing.T) {
	app := newTestApplication(t, false)

	assert.False(t, app.handleMouse(tcell.NewEventMouse(3, 10, tcell.Button1, tcell.ModNone)))
	assert.False(t, app.handleMouse(tcell.NewEventMouse(3, 1, tcell.Button3, tcell.ModNone)))
	assert.Empty(t, app.state.SelectedName)
}

func TestMouseClickOnHeaderOpensGoTo(t *testing.T) {
	app := newTestApplication(t, false)

	require.True(t, app.handleMouse(tcell.NewEventMouse(5, 0, tcell.Button1, tcell.ModNone)))
	app.processActions()
	require.NotNil(t, app.state.Prompt)
	assert.Equal(t, statepkg.PromptGoTo, app.state.Prompt.Kind)
}

func TestPreferenceChangesReachState(t *testing.T) {
	app := newTestApplication(t, false)

	require.NoError(t, app.store.AddApplication("pager", "less"))
	action := waitForAction[statepkg.PreferencesChangedAction](t, app.actionCh)
	app.handleAction(action)

	assert.Equal(t, []string{"pager"}, app.state.Applications)
}

func TestQuitActionStopsLoop(t *testing.T) {
	app := newTestApplication(t, false)

	assert.False(t, app.handleAction(statepkg.QuitAction{}))
	assert.True(t, app.shouldQuit)
}

func TestRunQuitsOnKey(t *testing.T) {
	app := newTestApplication(t, false)

	done := make(chan struct{})
	go func() {
		app.Run()
		close(done)
	}()
	app.screen.InjectKey(tcell.KeyRune, 'q', tcell.ModNone)

	select {
	case <-done:
	case <-time.After(3 * time.Second):
		t.Fatalf("Run did not return after q")
	}
}

func TestWatcherFollowsWorkingDirectory(t *testing.T) {
	app := newTestApplication(t, true)
	require.NotNil(t, app.watcher)
	assert.Equal(t, app.dir, app.watcher.Current())

	app.handleAction(statepkg.NavigateIntoAction{Name: "sub"})
	assert.Equal(t, filepath.Join(app.dir, "sub"), app.watcher.Current())

	require.NoError(t, os.WriteFile(filepath.Join(app.dir, "sub", "new.txt"), []byte("x"), 0o644))
	action := waitForAction[statepkg.ExternalChangeAction](t, app.actionCh)
	app.handleAction(action)

	require.Len(t, app.state.Files, 1)
	assert.Equal(t, "new.txt", app.state.Files[0].Name)
}

func TestHandleClipboard(t *testing.T) {
	app := newTestApplication(t, false)
	app.state.SelectedName = "alpha.txt"
	app.clipboardAvail = true
	app.clipboardCmd = []string{"fake-clip", "--flag"}

	var recorded []string
	withFakeCommandBuilder(t, 0, &recorded)
	app.handleClipboard()
	assert.NoError(t, app.state.LastError)
	assert.Equal(t, []string{"fake-clip", "--flag"}, recorded)

	withFakeCommandBuilder(t, 7, nil)
	app.handleClipboard()
	assert.Error(t, app.state.LastError)

	app.clipboardAvail = false
	app.handleClipboard()
	assert.True(t, errors.Is(app.state.LastError, errNoClipboard))
}

func TestNormalizeClipboardPath(t *testing.T) {
	assert.Equal(t, `C:\Users\me\project\file.txt`, normalizeClipboardPath(`C:\Users\me/project/file.txt`, "windows"))
	assert.Equal(t, "/tmp/project/file.txt", normalizeClipboardPath("/tmp/project/dir/../file.txt", "linux"))
}
