package render

import (
	"fmt"
	"strings"

	"github.com/gdamore/tcell/v2"
	statepkg "github.com/kk-code-lab/kexplorer/internal/state"
	textutil "github.com/kk-code-lab/kexplorer/internal/textutil"
)

type helpOverlayEntry struct {
	keys string
	desc string
}

type helpOverlaySection struct {
	title   string
	entries []helpOverlayEntry
}

func buildHelpOverlayLines(state *statepkg.AppState) []string {
	hiddenDesc := "Show hidden files"
	if state != nil && state.ShowHiddenFiles {
		hiddenDesc = "Hide hidden files"
	}

	sections := []helpOverlaySection{
		{
			title: "Navigation",
			entries: []helpOverlayEntry{
				{keys: "↑/↓ j/k", desc: "Move selection"},
				{keys: "PgUp/PgDn", desc: "Move by a page"},
				{keys: "↵ → l", desc: "Enter directory / preview file"},
				{keys: "← h Backspace", desc: "Parent directory"},
				{keys: "~", desc: "Home directory"},
				{keys: "g", desc: "Go to path"},
				{keys: "r F5", desc: "Refresh"},
			},
		},
		{
			title: "Files",
			entries: []helpOverlayEntry{
				{keys: "p Space", desc: "Preview selection"},
				{keys: "n", desc: "New file"},
				{keys: "N", desc: "New directory"},
				{keys: "d Delete", desc: "Delete selection"},
				{keys: "o", desc: "Open selection with an application"},
				{keys: "y", desc: "Copy path to clipboard"},
			},
		},
		{
			title: "Preferences",
			entries: []helpOverlayEntry{
				{keys: ".", desc: hiddenDesc},
				{keys: "H", desc: "Use current directory as home"},
				{keys: "a", desc: "Add application (name=command)"},
				{keys: "A", desc: "Remove application"},
			},
		},
		{
			title: "Exit",
			entries: []helpOverlayEntry{
				{keys: "q", desc: "Quit"},
				{keys: "Ctrl+C", desc: "Quit immediately"},
				{keys: "Ctrl+Z", desc: "Suspend to shell"},
				{keys: "?", desc: "Close this help"},
			},
		},
	}

	lines := make([]string, 0, 32)
	for i, section := range sections {
		if i > 0 {
			lines = append(lines, "")
		}
		lines = append(lines, section.title)
		for _, entry := range section.entries {
			lines = append(lines, fmt.Sprintf("  %-14s %s", entry.keys, entry.desc))
		}
	}
	if state != nil && len(state.Applications) > 0 {
		lines = append(lines, "", "Applications", "  "+strings.Join(state.Applications, ", "))
	}
	return lines
}

func (r *Renderer) drawHelpOverlay(state *statepkg.AppState, w, h int) {
	baseStyle := tcell.StyleDefault.Background(r.theme.Background).Foreground(r.theme.Foreground)
	headerStyle := tcell.StyleDefault.Background(r.theme.HeaderBg).Foreground(r.theme.HeaderFg).Bold(true)

	title := " Help "
	titleStart := 0
	if titleWidth := textutil.DisplayWidth(title); w > titleWidth {
		titleStart = (w - titleWidth) / 2
	}
	r.drawTextLine(titleStart, 0, w-titleStart, title, headerStyle)

	row := 2
	for _, line := range buildHelpOverlayLines(state) {
		if row >= h-1 {
			break
		}
		text := textutil.Fit(textutil.SanitizeTerminalText(line), w-4)
		r.drawTextLine(2, row, w-4, text, baseStyle)
		row++
	}

	if h > 0 {
		r.drawTextLine(0, h-1, w, textutil.Fit("? toggle · Esc/q close", w), headerStyle)
	}
}
