package app

import (
	"os"
	"os/exec"
	"runtime"
	"strings"

	"github.com/kk-code-lab/kexplorer/internal/launch"
	"github.com/kk-code-lab/kexplorer/internal/prefs"
	"go.uber.org/zap"
)

// defaultEditorApplication is the application name seeded from the environment.
const defaultEditorApplication = "editor"

func detectClipboard() ([]string, bool) {
	return detectClipboardInternal(runtime.GOOS, exec.LookPath)
}

func detectClipboardInternal(goos string, lookPath func(string) (string, error)) ([]string, bool) {
	if strings.EqualFold(goos, "windows") {
		for _, candidate := range []string{"clip.exe", "clip"} {
			if path, err := lookPath(candidate); err == nil && path != "" {
				return []string{path}, true
			}
		}
		for _, ps := range []string{"powershell", "powershell.exe", "pwsh"} {
			if path, err := lookPath(ps); err == nil && path != "" {
				return []string{path, "-NoLogo", "-NoProfile", "-Command", "Set-Clipboard"}, true
			}
		}
	}

	for _, cmd := range []string{"pbcopy", "wl-copy", "xclip", "xsel"} {
		if resolved, err := lookPath(cmd); err == nil && resolved != "" {
			switch cmd {
			case "xclip":
				return []string{resolved, "-selection", "clipboard"}, true
			case "xsel":
				return []string{resolved, "--clipboard", "--input"}, true
			}
			return []string{resolved}, true
		}
	}
	return nil, false
}

// seedDefaultApplications registers $VISUAL or $EDITOR as the "editor"
// application on first run. Once a preferences file exists an empty
// application list is the user's choice and stays empty.
func seedDefaultApplications(store *prefs.Store, logger *zap.Logger) {
	if !store.FirstRun() || len(store.Applications()) > 0 {
		return
	}
	command, ok := detectEditorCommand(os.Getenv, exec.LookPath)
	if !ok {
		return
	}
	if err := store.AddApplication(defaultEditorApplication, command); err != nil {
		logger.Warn("could not seed editor application", zap.Error(err))
		return
	}
	logger.Info("seeded editor application", zap.String("command", command))
}

// detectEditorCommand returns the first of $VISUAL and $EDITOR whose
// executable resolves.
func detectEditorCommand(getenv func(string) string, lookPath func(string) (string, error)) (string, bool) {
	for _, name := range []string{"VISUAL", "EDITOR"} {
		command := strings.TrimSpace(getenv(name))
		args := launch.ParseCommand(command)
		if len(args) == 0 {
			continue
		}
		if _, err := lookPath(args[0]); err == nil {
			return command, true
		}
	}
	return "", false
}
