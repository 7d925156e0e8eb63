package render

import (
	"fmt"
	"strings"

	statepkg "github.com/kk-code-lab/kexplorer/internal/state"
)

// buildFooterHelpText returns the contextual footer hint string with leading/trailing padding.
func buildFooterHelpText(state *statepkg.AppState) string {
	parts := buildFooterHelpSegments(state)
	if len(parts) == 0 {
		return ""
	}
	return " " + strings.Join(parts, "  ") + " "
}

// buildFooterHelpSegments assembles context-aware help hints for the footer.
func buildFooterHelpSegments(state *statepkg.AppState) []string {
	if state == nil {
		return nil
	}

	switch {
	case state.Prompt != nil:
		return []string{"↵: confirm", "Esc: cancel"}
	case state.Preview != nil:
		return []string{"Esc/q: close", "↑↓/Pg: scroll"}
	}

	hiddenStatus := "show"
	if state.ShowHiddenFiles {
		hiddenStatus = "hide"
	}
	return []string{
		"↑/↓/↵/←: navigate",
		"~: home",
		"r: refresh",
		"p: preview",
		"n/N: new file/dir",
		"d: delete",
		"o: open with",
		fmt.Sprintf(".: %s hidden", hiddenStatus),
		"?: help",
		"q: quit",
	}
}
