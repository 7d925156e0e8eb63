package app

import (
	"errors"
	"fmt"
	"os/exec"
	"path"
	"path/filepath"
	"runtime"
	"strings"

	fsutil "github.com/kk-code-lab/kexplorer/internal/fs"
	"go.uber.org/zap"
)

var commandBuilder = exec.Command

var errNoClipboard = errors.New("no clipboard command available")

// handleClipboard copies the selected entry's full path. Failures go to the
// status line.
func (app *Application) handleClipboard() {
	entry := app.state.SelectedEntry()
	if entry == nil {
		return
	}
	if !app.clipboardAvail || len(app.clipboardCmd) == 0 {
		app.state.LastError = errNoClipboard
		return
	}

	full := normalizeClipboardPath(fsutil.JoinPath(app.state.WorkingDirectory, entry.Name), runtime.GOOS)
	cmd := commandBuilder(app.clipboardCmd[0], app.clipboardCmd[1:]...)
	cmd.Stdin = strings.NewReader(full)
	if err := cmd.Run(); err != nil {
		app.state.LastError = fmt.Errorf("copy path: %w", err)
		return
	}
	app.state.LastError = nil
	app.logger.Debug("copied path", zap.String("path", full))
}

func normalizeClipboardPath(inputPath string, goos string) string {
	if strings.EqualFold(goos, "windows") {
		cleaned := filepath.Clean(inputPath)
		return strings.ReplaceAll(cleaned, "/", `\`)
	}
	return path.Clean(filepath.ToSlash(inputPath))
}
