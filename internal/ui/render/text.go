package render

import (
	"github.com/gdamore/tcell/v2"
	textutil "github.com/kk-code-lab/kexplorer/internal/textutil"
	"github.com/mattn/go-runewidth"
)

// drawTextLine draws text from startX, never past maxWidth columns, and
// returns the column after the last drawn cell. Zero-width runes are attached
// to the preceding cell as combining characters.
func (r *Renderer) drawTextLine(startX, y, maxWidth int, text string, style tcell.Style) int {
	x := startX
	runes := []rune(text)
	for i := 0; i < len(runes); {
		mainc := runes[i]
		i++
		var combc []rune
		for i < len(runes) && runewidth.RuneWidth(runes[i]) == 0 {
			combc = append(combc, runes[i])
			i++
		}

		w := runewidth.RuneWidth(mainc)
		if w < 1 {
			w = 1
		}
		if x-startX+w > maxWidth {
			break
		}
		r.screen.SetContent(x, y, mainc, combc, style)
		x += w
	}
	return x
}

// fillRow paints blanks from startX to endX (exclusive).
func (r *Renderer) fillRow(startX, endX, y int, style tcell.Style) {
	for x := startX; x < endX; x++ {
		r.screen.SetContent(x, y, ' ', nil, style)
	}
}

// drawRightAligned draws text flush against endX and returns its start column.
func (r *Renderer) drawRightAligned(endX, y int, text string, style tcell.Style) int {
	width := textutil.DisplayWidth(text)
	start := endX - width
	if start < 0 {
		text = textutil.Fit(text, endX)
		start = 0
	}
	r.drawTextLine(start, y, endX-start, text, style)
	return start
}
