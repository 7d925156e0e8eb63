package app

import (
	"fmt"
	"os"

	"github.com/gdamore/tcell/v2"
	"github.com/kk-code-lab/kexplorer/internal/config"
	"github.com/kk-code-lab/kexplorer/internal/launch"
	"github.com/kk-code-lab/kexplorer/internal/logging"
	"github.com/kk-code-lab/kexplorer/internal/prefs"
	statepkg "github.com/kk-code-lab/kexplorer/internal/state"
	inputui "github.com/kk-code-lab/kexplorer/internal/ui/input"
	renderui "github.com/kk-code-lab/kexplorer/internal/ui/render"
	"github.com/kk-code-lab/kexplorer/internal/watch"
	"go.uber.org/zap"
)

// Application represents the running app.
type Application struct {
	screen     tcell.Screen
	state      *statepkg.AppState
	reducer    *statepkg.StateReducer
	renderer   *renderui.Renderer
	input      *inputui.InputHandler
	actionCh   chan statepkg.Action
	shouldQuit bool

	store       *prefs.Store
	unsubscribe func()
	watcher     *watch.Watcher
	logger      *zap.Logger

	clipboardCmd   []string
	clipboardAvail bool
}

// Options carries what the application needs beyond the screen.
type Options struct {
	Config   *config.Config
	Store    *prefs.Store
	Logger   *zap.Logger
	StartDir string // empty means the process working directory
}

// NewApplication opens the terminal and builds the application on it.
func NewApplication(opts Options) (*Application, error) {
	screen, err := tcell.NewScreen()
	if err != nil {
		return nil, err
	}
	if err := screen.Init(); err != nil {
		return nil, err
	}
	screen.EnableMouse()

	app, err := newApplication(screen, opts)
	if err != nil {
		screen.Fini()
		return nil, err
	}
	return app, nil
}

// newApplication wires state, reducer, input and background services onto an
// initialized screen.
func newApplication(screen tcell.Screen, opts Options) (*Application, error) {
	if opts.Store == nil {
		return nil, fmt.Errorf("preferences store is required")
	}
	cfg := opts.Config
	if cfg == nil {
		cfg = config.Default()
	}
	logger := logging.OrNop(opts.Logger)

	startDir := opts.StartDir
	if startDir == "" {
		cwd, err := os.Getwd()
		if err != nil {
			return nil, err
		}
		startDir = cwd
	}

	seedDefaultApplications(opts.Store, logger)

	actionCh := make(chan statepkg.Action, 10)
	dispatch := func(action statepkg.Action) {
		select {
		case actionCh <- action:
		default:
			go func() { actionCh <- action }()
		}
	}

	reducer := statepkg.NewStateReducer(opts.Store,
		statepkg.WithLauncher(launch.NewLauncher(logger.Named("launch"))),
		statepkg.WithLogger(logger.Named("state")),
		statepkg.WithPreviewLimits(cfg.PreviewSampleBytes, cfg.PreviewMaxBytes),
	)

	state, err := reducer.NewInitialState(startDir)
	if err != nil {
		// an unreadable start directory still opens, with the error shown
		state.LastError = err
	}
	state.ScreenWidth, state.ScreenHeight = screen.Size()
	state.SetDispatch(dispatch)

	inputHandler := inputui.NewInputHandler(actionCh)
	inputHandler.SetState(state)

	clipboardCmd, clipboardAvail := detectClipboard()

	app := &Application{
		screen:         screen,
		state:          state,
		reducer:        reducer,
		renderer:       renderui.NewRenderer(screen),
		input:          inputHandler,
		actionCh:       actionCh,
		store:          opts.Store,
		logger:         logger,
		clipboardCmd:   clipboardCmd,
		clipboardAvail: clipboardAvail,
	}

	app.unsubscribe = opts.Store.Subscribe(func(p prefs.Preferences) {
		state.Dispatch(statepkg.PreferencesChangedAction{Prefs: p})
	})

	if cfg.Watch {
		w, err := watch.New(func(dir string) {
			state.Dispatch(statepkg.ExternalChangeAction{Path: dir})
		}, cfg.WatchDebounce, logger.Named("watch"))
		if err != nil {
			logger.Warn("directory watching disabled", zap.Error(err))
		} else {
			app.watcher = w
			app.syncWatcher()
		}
	}

	logger.Info("application started", zap.String("dir", state.WorkingDirectory))
	return app, nil
}

// Close stops background services and releases the terminal.
func (app *Application) Close() error {
	if app.unsubscribe != nil {
		app.unsubscribe()
	}
	var err error
	if app.watcher != nil {
		err = app.watcher.Close()
	}
	app.screen.Fini()
	app.logger.Info("application stopped", zap.String("dir", app.state.WorkingDirectory))
	return err
}

// WorkingDirectory is the directory shown when the application stopped.
func (app *Application) WorkingDirectory() string {
	return app.state.WorkingDirectory
}

// syncWatcher points the watcher at the working directory after navigation.
func (app *Application) syncWatcher() {
	if app.watcher == nil || app.watcher.Current() == app.state.WorkingDirectory {
		return
	}
	if err := app.watcher.Watch(app.state.WorkingDirectory); err != nil {
		app.logger.Debug("cannot watch directory",
			zap.String("dir", app.state.WorkingDirectory), zap.Error(err))
	}
}
