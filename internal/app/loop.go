package app

import (
	"os"
	"os/signal"

	"github.com/gdamore/tcell/v2"
	statepkg "github.com/kk-code-lab/kexplorer/internal/state"
	"go.uber.org/zap"
)

// Run draws the UI and processes events and actions until the user quits.
// All state changes happen on this goroutine.
func (app *Application) Run() {
	app.renderer.Render(app.state)
	renderPending := false

	eventChan := make(chan tcell.Event)
	quit := make(chan struct{})
	defer close(quit)
	go func() {
		for {
			ev := app.screen.PollEvent()
			if ev == nil {
				return
			}
			select {
			case eventChan <- ev:
			case <-quit:
				return
			}
		}
	}()

	var sigContCh chan os.Signal
	if sigs := contSignals(); len(sigs) > 0 {
		sigContCh = make(chan os.Signal, 1)
		signal.Notify(sigContCh, sigs...)
		defer signal.Stop(sigContCh)
	}

	for !app.shouldQuit {
		if renderPending {
			app.renderer.Render(app.state)
			renderPending = false
		}

		select {
		case ev := <-eventChan:
			if app.handleEvent(ev) {
				renderPending = true
			}
		case action := <-app.actionCh:
			if app.handleAction(action) {
				renderPending = true
			}
		case <-sigContCh:
			if app.resumeAfterStop() {
				renderPending = true
			}
		}

		if app.processActions() {
			renderPending = true
		}
	}
}

func (app *Application) handleEvent(ev tcell.Event) bool {
	switch ev := ev.(type) {
	case *tcell.EventKey, *tcell.EventResize:
		if !app.input.ProcessEvent(ev) {
			app.shouldQuit = true
		}
		return true
	case *tcell.EventMouse:
		return app.handleMouse(ev)
	case *tcell.EventInterrupt:
		return true
	default:
		return false
	}
}

// handleMouse maps a primary click on a listing row to selection. Clicking
// the selected row again activates it, as the keyboard select does; a click
// on the header opens the go-to prompt. It runs on the loop goroutine, the
// only reader of actionCh, so actions are applied here rather than queued.
func (app *Application) handleMouse(ev *tcell.EventMouse) bool {
	if ev.Buttons()&tcell.Button1 == 0 {
		return false
	}
	if app.state.Preview != nil || app.state.Prompt != nil || app.state.HelpVisible {
		return false
	}

	_, y := ev.Position()
	if y == 0 {
		return app.handleAction(statepkg.PromptStartAction{Kind: statepkg.PromptGoTo})
	}
	entry, ok := app.state.EntryAtRow(y - 1)
	if !ok {
		return false
	}
	return app.handleAction(statepkg.SelectAction{Name: entry.Name})
}

func (app *Application) processActions() bool {
	changed := false
	for {
		select {
		case action := <-app.actionCh:
			if app.handleAction(action) {
				changed = true
			}
		default:
			return changed
		}
	}
}

func (app *Application) handleAction(action statepkg.Action) bool {
	if action == nil {
		return false
	}

	switch action.(type) {
	case statepkg.QuitAction:
		app.shouldQuit = true
		return false
	case statepkg.SuspendAction:
		app.suspendToShell()
		app.resumeAfterStop()
		return true
	case statepkg.YankPathAction:
		app.handleClipboard()
		return true
	}

	if _, err := app.reducer.Reduce(app.state, action); err != nil {
		app.logger.Debug("action failed", zap.Error(err))
	}
	app.syncWatcher()
	return true
}
