package state

import (
	"fmt"
	"strings"
)

// Label is the text shown before the prompt input.
func (k PromptKind) Label() string {
	switch k {
	case PromptNewFile:
		return "New file: "
	case PromptNewDirectory:
		return "New directory: "
	case PromptGoTo:
		return "Go to: "
	case PromptOpenWith:
		return "Open with: "
	case PromptAddApplication:
		return "Add application (name=command): "
	case PromptRemoveApplication:
		return "Remove application: "
	case PromptConfirmDelete:
		return "Delete (y/N)? "
	default:
		return ""
	}
}

func (r *StateReducer) newPrompt(state *AppState, kind PromptKind) *PromptState {
	p := &PromptState{Kind: kind}
	switch kind {
	case PromptGoTo:
		p.Text = state.WorkingDirectory
	case PromptOpenWith, PromptConfirmDelete:
		if state.SelectedName == "" {
			return nil
		}
		p.Target = state.SelectedName
		if kind == PromptOpenWith && len(state.Applications) > 0 {
			p.Text = state.Applications[0]
		}
	case PromptNone:
		return nil
	}
	return p
}

// syncPathInput mirrors the go-to prompt text into the header path.
func (r *StateReducer) syncPathInput(state *AppState) error {
	if state.Prompt == nil || state.Prompt.Kind != PromptGoTo {
		return nil
	}
	return r.reduce(state, SetPathInputAction{Text: state.Prompt.Text})
}

// submitPrompt closes the prompt and turns its text into the matching action.
func (r *StateReducer) submitPrompt(state *AppState) error {
	p := state.Prompt
	state.Prompt = nil
	if p == nil {
		return nil
	}
	text := strings.TrimSpace(p.Text)

	switch p.Kind {
	case PromptNewFile:
		return r.reduce(state, CreateEntryAction{Name: text})
	case PromptNewDirectory:
		return r.reduce(state, CreateEntryAction{Name: text, Directory: true})
	case PromptGoTo:
		return r.reduce(state, GoToPathAction{Path: text})
	case PromptOpenWith:
		return r.reduce(state, OpenInApplicationAction{Application: text, Name: p.Target})
	case PromptAddApplication:
		name, command, ok := strings.Cut(text, "=")
		if !ok {
			return fmt.Errorf("expected name=command, got %q", text)
		}
		return r.reduce(state, AddApplicationAction{Name: name, Command: command})
	case PromptRemoveApplication:
		return r.reduce(state, RemoveApplicationAction{Name: text})
	case PromptConfirmDelete:
		if strings.EqualFold(text, "y") || strings.EqualFold(text, "yes") {
			return r.reduce(state, DeleteEntryAction{Name: p.Target})
		}
	}
	return nil
}
