package input

import (
	"github.com/gdamore/tcell/v2"
	statepkg "github.com/kk-code-lab/kexplorer/internal/state"
)

// InputHandler converts tcell events to Actions
type InputHandler struct {
	actionChan chan statepkg.Action
	state      *statepkg.AppState // Reference to current state for mode checking
}

// NewInputHandler creates a new input handler
func NewInputHandler(actionChan chan statepkg.Action) *InputHandler {
	return &InputHandler{
		actionChan: actionChan,
	}
}

// SetState sets the state reference for mode checking
func (ih *InputHandler) SetState(state *statepkg.AppState) {
	ih.state = state
}

// ProcessEvent converts a tcell event into an Action. It returns false once
// the user asked to quit.
func (ih *InputHandler) ProcessEvent(ev tcell.Event) bool {
	switch ev := ev.(type) {
	case *tcell.EventKey:
		return ih.processKeyEvent(ev)
	case *tcell.EventResize:
		w, h := ev.Size()
		ih.emit(statepkg.ResizeAction{Width: w, Height: h})
		return true
	default:
		return true
	}
}

// emit queues action without blocking the loop goroutine, which is also the
// channel's reader.
func (ih *InputHandler) emit(action statepkg.Action) {
	select {
	case ih.actionChan <- action:
	default:
		go func() { ih.actionChan <- action }()
	}
}

func (ih *InputHandler) processKeyEvent(ev *tcell.EventKey) bool {
	switch ev.Key() {
	case tcell.KeyCtrlC:
		ih.emit(statepkg.QuitAction{})
		return false
	case tcell.KeyCtrlZ:
		ih.emit(statepkg.SuspendAction{})
		return true
	}

	switch {
	case ih.state != nil && ih.state.HelpVisible:
		return ih.helpKey(ev)
	case ih.state != nil && ih.state.Prompt != nil:
		return ih.promptKey(ev)
	case ih.state != nil && ih.state.Preview != nil:
		return ih.previewKey(ev)
	default:
		return ih.listKey(ev)
	}
}

func (ih *InputHandler) helpKey(ev *tcell.EventKey) bool {
	switch {
	case ev.Key() == tcell.KeyEscape:
		ih.emit(statepkg.HelpHideAction{})
	case ev.Key() == tcell.KeyRune && (ev.Rune() == '?' || ev.Rune() == 'q'):
		ih.emit(statepkg.HelpHideAction{})
	}
	return true
}

// promptKey routes every printable rune into the prompt, so letters that are
// shortcuts elsewhere can be typed.
func (ih *InputHandler) promptKey(ev *tcell.EventKey) bool {
	switch ev.Key() {
	case tcell.KeyEscape:
		ih.emit(statepkg.PromptCancelAction{})
	case tcell.KeyEnter:
		ih.emit(statepkg.PromptSubmitAction{})
	case tcell.KeyBackspace, tcell.KeyBackspace2:
		ih.emit(statepkg.PromptBackspaceAction{})
	case tcell.KeyRune:
		ih.emit(statepkg.PromptCharAction{Char: ev.Rune()})
	}
	return true
}

func (ih *InputHandler) previewKey(ev *tcell.EventKey) bool {
	switch ev.Key() {
	case tcell.KeyEscape, tcell.KeyLeft:
		ih.emit(statepkg.PreviewDismissAction{})
	case tcell.KeyUp:
		ih.emit(statepkg.PreviewScrollUpAction{})
	case tcell.KeyDown:
		ih.emit(statepkg.PreviewScrollDownAction{})
	case tcell.KeyPgUp:
		ih.emit(statepkg.PreviewPageUpAction{})
	case tcell.KeyPgDn:
		ih.emit(statepkg.PreviewPageDownAction{})
	case tcell.KeyRune:
		switch ev.Rune() {
		case 'q', 'h', 'p':
			ih.emit(statepkg.PreviewDismissAction{})
		case 'k':
			ih.emit(statepkg.PreviewScrollUpAction{})
		case 'j':
			ih.emit(statepkg.PreviewScrollDownAction{})
		case ' ':
			ih.emit(statepkg.PreviewPageDownAction{})
		}
	}
	return true
}

func (ih *InputHandler) listKey(ev *tcell.EventKey) bool {
	switch ev.Key() {
	case tcell.KeyUp:
		ih.emit(statepkg.NavigateUpAction{})
	case tcell.KeyDown:
		ih.emit(statepkg.NavigateDownAction{})
	case tcell.KeyPgUp:
		ih.emit(statepkg.NavigatePageUpAction{})
	case tcell.KeyPgDn:
		ih.emit(statepkg.NavigatePageDownAction{})
	case tcell.KeyEnter, tcell.KeyRight:
		ih.activateSelection()
	case tcell.KeyLeft, tcell.KeyBackspace, tcell.KeyBackspace2:
		ih.emit(statepkg.GoToParentAction{})
	case tcell.KeyDelete:
		ih.emit(statepkg.PromptStartAction{Kind: statepkg.PromptConfirmDelete})
	case tcell.KeyF5:
		ih.emit(statepkg.RefreshAction{})
	case tcell.KeyEscape:
		if ih.state != nil && ih.state.LastError == nil && ih.state.SelectedName != "" {
			ih.emit(statepkg.SelectAction{})
		}
	case tcell.KeyRune:
		return ih.listRune(ev.Rune())
	}
	return true
}

func (ih *InputHandler) listRune(r rune) bool {
	switch r {
	case 'q':
		ih.emit(statepkg.QuitAction{})
		return false
	case 'k':
		ih.emit(statepkg.NavigateUpAction{})
	case 'j':
		ih.emit(statepkg.NavigateDownAction{})
	case 'l':
		ih.activateSelection()
	case 'h':
		ih.emit(statepkg.GoToParentAction{})
	case '~':
		ih.emit(statepkg.GoHomeAction{})
	case 'r':
		ih.emit(statepkg.RefreshAction{})
	case '.':
		ih.emit(statepkg.ToggleHiddenFilesAction{})
	case 'p', ' ':
		if name := ih.selectedName(); name != "" {
			ih.emit(statepkg.PreviewAction{Name: name})
		}
	case 'n':
		ih.emit(statepkg.PromptStartAction{Kind: statepkg.PromptNewFile})
	case 'N':
		ih.emit(statepkg.PromptStartAction{Kind: statepkg.PromptNewDirectory})
	case 'd':
		ih.emit(statepkg.PromptStartAction{Kind: statepkg.PromptConfirmDelete})
	case 'o':
		ih.emit(statepkg.PromptStartAction{Kind: statepkg.PromptOpenWith})
	case 'g':
		ih.emit(statepkg.PromptStartAction{Kind: statepkg.PromptGoTo})
	case 'H':
		ih.emit(statepkg.SetHomeDirectoryAction{})
	case 'a':
		ih.emit(statepkg.PromptStartAction{Kind: statepkg.PromptAddApplication})
	case 'A':
		ih.emit(statepkg.PromptStartAction{Kind: statepkg.PromptRemoveApplication})
	case 'y':
		if ih.selectedName() != "" {
			ih.emit(statepkg.YankPathAction{})
		}
	case '?':
		ih.emit(statepkg.HelpToggleAction{})
	}
	return true
}

func (ih *InputHandler) activateSelection() {
	if name := ih.selectedName(); name != "" {
		ih.emit(statepkg.NavigateIntoAction{Name: name})
	}
}

func (ih *InputHandler) selectedName() string {
	if ih.state == nil {
		return ""
	}
	return ih.state.SelectedName
}
