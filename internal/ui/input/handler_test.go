package input

import (
	"testing"
	"time"

	"github.com/gdamore/tcell/v2"
	statepkg "github.com/kk-code-lab/kexplorer/internal/state"
)

func process(t *testing.T, state *statepkg.AppState, ev tcell.Event) (statepkg.Action, bool) {
	t.Helper()
	actionChan := make(chan statepkg.Action, 1)
	handler := NewInputHandler(actionChan)
	handler.SetState(state)

	keepRunning := handler.ProcessEvent(ev)

	select {
	case action := <-actionChan:
		return action, keepRunning
	default:
		return nil, keepRunning
	}
}

func runeKey(r rune) *tcell.EventKey {
	return tcell.NewEventKey(tcell.KeyRune, r, tcell.ModNone)
}

func key(k tcell.Key) *tcell.EventKey {
	return tcell.NewEventKey(k, 0, tcell.ModNone)
}

func TestListKeys(t *testing.T) {
	state := &statepkg.AppState{SelectedName: "notes.txt"}

	tests := []struct {
		name string
		ev   *tcell.EventKey
		want statepkg.Action
	}{
		{"down", key(tcell.KeyDown), statepkg.NavigateDownAction{}},
		{"j", runeKey('j'), statepkg.NavigateDownAction{}},
		{"up", key(tcell.KeyUp), statepkg.NavigateUpAction{}},
		{"page down", key(tcell.KeyPgDn), statepkg.NavigatePageDownAction{}},
		{"enter", key(tcell.KeyEnter), statepkg.NavigateIntoAction{Name: "notes.txt"}},
		{"right", key(tcell.KeyRight), statepkg.NavigateIntoAction{Name: "notes.txt"}},
		{"left", key(tcell.KeyLeft), statepkg.GoToParentAction{}},
		{"backspace", key(tcell.KeyBackspace2), statepkg.GoToParentAction{}},
		{"home", runeKey('~'), statepkg.GoHomeAction{}},
		{"refresh", runeKey('r'), statepkg.RefreshAction{}},
		{"f5", key(tcell.KeyF5), statepkg.RefreshAction{}},
		{"hidden", runeKey('.'), statepkg.ToggleHiddenFilesAction{}},
		{"preview", runeKey('p'), statepkg.PreviewAction{Name: "notes.txt"}},
		{"new file", runeKey('n'), statepkg.PromptStartAction{Kind: statepkg.PromptNewFile}},
		{"new dir", runeKey('N'), statepkg.PromptStartAction{Kind: statepkg.PromptNewDirectory}},
		{"delete", runeKey('d'), statepkg.PromptStartAction{Kind: statepkg.PromptConfirmDelete}},
		{"delete key", key(tcell.KeyDelete), statepkg.PromptStartAction{Kind: statepkg.PromptConfirmDelete}},
		{"open with", runeKey('o'), statepkg.PromptStartAction{Kind: statepkg.PromptOpenWith}},
		{"go to", runeKey('g'), statepkg.PromptStartAction{Kind: statepkg.PromptGoTo}},
		{"set home", runeKey('H'), statepkg.SetHomeDirectoryAction{}},
		{"add app", runeKey('a'), statepkg.PromptStartAction{Kind: statepkg.PromptAddApplication}},
		{"remove app", runeKey('A'), statepkg.PromptStartAction{Kind: statepkg.PromptRemoveApplication}},
		{"help", runeKey('?'), statepkg.HelpToggleAction{}},
		{"yank", runeKey('y'), statepkg.YankPathAction{}},
		{"suspend", key(tcell.KeyCtrlZ), statepkg.SuspendAction{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, keepRunning := process(t, state, tt.ev)
			if !keepRunning {
				t.Fatalf("handler should keep running")
			}
			if got != tt.want {
				t.Fatalf("got %#v, want %#v", got, tt.want)
			}
		})
	}
}

func TestEnterWithoutSelectionEmitsNothing(t *testing.T) {
	got, _ := process(t, &statepkg.AppState{}, key(tcell.KeyEnter))
	if got != nil {
		t.Fatalf("expected no action, got %#v", got)
	}
}

func TestQuitKeys(t *testing.T) {
	for _, ev := range []*tcell.EventKey{runeKey('q'), key(tcell.KeyCtrlC)} {
		got, keepRunning := process(t, &statepkg.AppState{}, ev)
		if keepRunning {
			t.Fatalf("quit key should stop the loop")
		}
		if _, ok := got.(statepkg.QuitAction); !ok {
			t.Fatalf("expected QuitAction, got %#v", got)
		}
	}
}

func TestPromptModeCapturesShortcutLetters(t *testing.T) {
	state := &statepkg.AppState{Prompt: &statepkg.PromptState{Kind: statepkg.PromptNewFile}}

	got, keepRunning := process(t, state, runeKey('q'))
	if !keepRunning {
		t.Fatalf("q in a prompt must not quit")
	}
	if got != (statepkg.PromptCharAction{Char: 'q'}) {
		t.Fatalf("expected prompt char, got %#v", got)
	}

	if got, _ := process(t, state, key(tcell.KeyEnter)); got != (statepkg.PromptSubmitAction{}) {
		t.Fatalf("expected submit, got %#v", got)
	}
	if got, _ := process(t, state, key(tcell.KeyEscape)); got != (statepkg.PromptCancelAction{}) {
		t.Fatalf("expected cancel, got %#v", got)
	}
	if got, _ := process(t, state, key(tcell.KeyBackspace2)); got != (statepkg.PromptBackspaceAction{}) {
		t.Fatalf("expected backspace, got %#v", got)
	}
}

func TestPreviewModeKeys(t *testing.T) {
	state := &statepkg.AppState{Preview: &statepkg.PreviewData{Name: "a"}}

	tests := []struct {
		ev   *tcell.EventKey
		want statepkg.Action
	}{
		{key(tcell.KeyEscape), statepkg.PreviewDismissAction{}},
		{runeKey('q'), statepkg.PreviewDismissAction{}},
		{key(tcell.KeyDown), statepkg.PreviewScrollDownAction{}},
		{key(tcell.KeyUp), statepkg.PreviewScrollUpAction{}},
		{key(tcell.KeyPgDn), statepkg.PreviewPageDownAction{}},
		{key(tcell.KeyPgUp), statepkg.PreviewPageUpAction{}},
	}
	for _, tt := range tests {
		got, keepRunning := process(t, state, tt.ev)
		if !keepRunning {
			t.Fatalf("preview keys must not quit")
		}
		if got != tt.want {
			t.Fatalf("got %#v, want %#v", got, tt.want)
		}
	}
}

func TestHelpModeHidesOnEscape(t *testing.T) {
	state := &statepkg.AppState{HelpVisible: true}
	if got, _ := process(t, state, key(tcell.KeyEscape)); got != (statepkg.HelpHideAction{}) {
		t.Fatalf("expected HelpHideAction, got %#v", got)
	}
	if got, _ := process(t, state, runeKey('n')); got != nil {
		t.Fatalf("other keys are ignored while help is visible, got %#v", got)
	}
}

func TestResizeEvent(t *testing.T) {
	got, _ := process(t, nil, tcell.NewEventResize(100, 30))
	if got != (statepkg.ResizeAction{Width: 100, Height: 30}) {
		t.Fatalf("unexpected action %#v", got)
	}
}

func TestEmitDoesNotBlockOnFullChannel(t *testing.T) {
	actionChan := make(chan statepkg.Action, 1)
	actionChan <- statepkg.RefreshAction{}
	handler := NewInputHandler(actionChan)

	done := make(chan struct{})
	go func() {
		handler.ProcessEvent(tcell.NewEventResize(90, 20))
		close(done)
	}()
	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatalf("ProcessEvent blocked on a full channel")
	}

	if got := <-actionChan; got != (statepkg.RefreshAction{}) {
		t.Fatalf("first action = %#v", got)
	}
	select {
	case got := <-actionChan:
		if got != (statepkg.ResizeAction{Width: 90, Height: 20}) {
			t.Fatalf("queued action = %#v", got)
		}
	case <-time.After(2 * time.Second):
		t.Fatalf("queued action never delivered")
	}
}
