//go:build !windows

package app

import (
	"os"
	"syscall"

	"github.com/gdamore/tcell/v2"
)

// suspendToShell restores the terminal and stops this process only, so the
// launching shell keeps job control.
func (app *Application) suspendToShell() {
	_ = app.screen.Suspend()
	app.logger.Debug("suspending to shell")
	_ = syscall.Kill(syscall.Getpid(), syscall.SIGTSTP)
}

func (app *Application) resumeAfterStop() bool {
	if err := app.screen.Resume(); err != nil {
		return false
	}
	app.screen.EnableMouse()
	app.screen.Sync()
	_ = app.screen.PostEvent(tcell.NewEventInterrupt("resume"))
	if w, h := app.screen.Size(); w > 0 && h > 0 {
		app.state.ScreenWidth = w
		app.state.ScreenHeight = h
	}
	return true
}

// contSignals are the signals that mean the process was resumed after a stop.
func contSignals() []os.Signal {
	return []os.Signal{syscall.SIGCONT}
}
