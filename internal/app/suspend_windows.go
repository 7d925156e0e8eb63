//go:build windows

package app

import "os"

// Windows has no SIGTSTP; suspending does nothing.
func (app *Application) suspendToShell() {}

func (app *Application) resumeAfterStop() bool {
	return false
}

func contSignals() []os.Signal {
	return nil
}
