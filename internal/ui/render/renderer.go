package render

import (
	"unicode/utf8"

	"github.com/gdamore/tcell/v2"
	statepkg "github.com/kk-code-lab/kexplorer/internal/state"
	textutil "github.com/kk-code-lab/kexplorer/internal/textutil"
)

// minDetailsWidth is the narrowest screen that still shows size and date columns.
const minDetailsWidth = 50

// Renderer handles all UI rendering
type Renderer struct {
	screen tcell.Screen
	theme  ColorTheme
}

// NewRenderer creates a new renderer
func NewRenderer(screen tcell.Screen) *Renderer {
	return &Renderer{
		screen: screen,
		theme:  GetColorTheme(),
	}
}

// Render draws the entire UI based on state. Row 0 is the header, the last
// row is the status line and everything between belongs to the listing or
// the preview.
func (r *Renderer) Render(state *statepkg.AppState) {
	r.screen.Clear()
	w, h := r.screen.Size()
	if w <= 0 || h <= 0 {
		return
	}

	if state.HelpVisible {
		r.drawHelpOverlay(state, w, h)
		r.screen.Show()
		return
	}

	r.drawHeader(state, w)
	if state.Preview != nil {
		r.drawPreview(state, w, h)
	} else {
		r.drawListing(state, w, h)
	}
	r.drawStatusLine(state, w, h)
	r.screen.Show()
}

// drawHeader shows the working directory, or the previewed file.
func (r *Renderer) drawHeader(state *statepkg.AppState, w int) {
	style := tcell.StyleDefault.Background(r.theme.HeaderBg).Foreground(r.theme.HeaderFg)
	r.fillRow(0, w, 0, style)

	x := r.drawTextLine(0, 0, w, "kexplorer ", style)
	var text string
	if state.Preview != nil {
		text = formatPreviewHeader(state.Preview)
	} else {
		text = state.PathInput
		if text == "" {
			text = state.WorkingDirectory
		}
	}
	text = textutil.Fit(textutil.SanitizeTerminalText(text), w-x)
	r.drawTextLine(x, 0, w-x, text, style.Bold(true))
}

func (r *Renderer) drawListing(state *statepkg.AppState, w, h int) {
	visible := state.VisibleFiles()
	rows := h - 2
	showDetails := w >= minDetailsWidth

	if len(visible) == 0 && rows > 0 {
		empty := tcell.StyleDefault.Foreground(r.theme.DetailFg)
		r.drawTextLine(1, 1, w-1, "(empty)", empty)
		return
	}

	for row := 0; row < rows; row++ {
		idx := state.ScrollOffset + row
		if idx >= len(visible) {
			break
		}
		y := row + 1
		entry := visible[idx]
		selected := entry.Name == state.SelectedName

		style := r.entryStyle(entry)
		detailStyle := tcell.StyleDefault.Foreground(r.theme.DetailFg)
		if selected {
			style = tcell.StyleDefault.Background(r.theme.SelectionBg).Foreground(r.theme.SelectionFg)
			detailStyle = style
			r.fillRow(0, w, y, style)
		}

		nameEnd := w
		if showDetails {
			nameEnd = r.drawRightAligned(w-1, y, formatEntryDetails(entry), detailStyle) - 1
		}

		name := textutil.SanitizeTerminalText(entry.DisplayName())
		if entry.IsDir {
			name += "/"
		} else if entry.IsSymlink {
			name += "@"
		}
		name = textutil.Fit(name, nameEnd-1)
		r.drawTextLine(1, y, nameEnd-1, name, style)
	}
}

func (r *Renderer) entryStyle(entry statepkg.FileEntry) tcell.Style {
	style := tcell.StyleDefault.Background(r.theme.Background)
	switch {
	case entry.IsHidden():
		return style.Foreground(r.theme.HiddenFg)
	case entry.IsDir:
		return style.Foreground(r.theme.DirectoryFg).Bold(true)
	case entry.IsSymlink:
		return style.Foreground(r.theme.SymlinkFg)
	default:
		return style.Foreground(r.theme.FileFg)
	}
}

func (r *Renderer) drawPreview(state *statepkg.AppState, w, h int) {
	p := state.Preview
	style := tcell.StyleDefault.Foreground(r.theme.Foreground)
	if !p.Text {
		style = tcell.StyleDefault.Foreground(r.theme.NoticeFg)
	}

	rows := h - 2
	for row := 0; row < rows; row++ {
		idx := state.PreviewScrollOffset + row
		if idx >= len(p.Lines) {
			break
		}
		r.drawTextLine(0, row+1, w, p.Lines[idx], style)
	}
}

// drawStatusLine shows the open prompt, the last error or the key hints.
func (r *Renderer) drawStatusLine(state *statepkg.AppState, w, h int) {
	y := h - 1
	if y <= 0 {
		return
	}
	base := tcell.StyleDefault.Background(r.theme.HeaderBg).Foreground(r.theme.HeaderFg)
	r.fillRow(0, w, y, base)

	switch {
	case state.Prompt != nil:
		promptStyle := base.Foreground(r.theme.PromptFg)
		x := r.drawTextLine(0, y, w, state.Prompt.Kind.Label(), promptStyle.Bold(true))
		text := textutil.SanitizeTerminalText(state.Prompt.Text)
		// keep the end of long input in view
		for textutil.DisplayWidth(text) > w-x-1 && text != "" {
			_, size := utf8.DecodeRuneInString(text)
			text = text[size:]
		}
		x = r.drawTextLine(x, y, w-x, text, promptStyle)
		if x < w {
			r.screen.ShowCursor(x, y)
		}
		return
	case state.LastError != nil:
		msg := textutil.SanitizeTerminalText(state.LastError.Error())
		r.drawTextLine(0, y, w, textutil.Fit(msg, w), base.Foreground(r.theme.ErrorFg))
	default:
		help := textutil.Fit(buildFooterHelpText(state), w)
		r.drawTextLine(0, y, w, help, base.Foreground(r.theme.DetailFg))
	}
	r.screen.HideCursor()
}
