package textutil

import (
	"strings"

	"github.com/mattn/go-runewidth"
)

const DefaultTabWidth = 4

// ExpandTabs replaces tabs with spaces up to the next tab stop, counting wide
// runes as two columns.
func ExpandTabs(text string, tabWidth int) string {
	if tabWidth <= 0 || !strings.ContainsRune(text, '\t') {
		return text
	}

	var b strings.Builder
	column := 0
	for _, r := range text {
		if r == '\t' {
			spaces := tabWidth - column%tabWidth
			b.WriteString(strings.Repeat(" ", spaces))
			column += spaces
			continue
		}
		b.WriteRune(r)
		column += runeColumns(r)
	}
	return b.String()
}

// SplitLines breaks content into display lines with tabs expanded. CRLF and
// lone CR count as line ends; a trailing line break adds no empty line.
func SplitLines(content string, tabWidth int) []string {
	content = strings.ReplaceAll(content, "\r\n", "\n")
	content = strings.ReplaceAll(content, "\r", "\n")
	content = strings.TrimSuffix(content, "\n")
	if content == "" {
		return []string{}
	}
	lines := strings.Split(content, "\n")
	for i, line := range lines {
		lines[i] = SanitizeTerminalText(ExpandTabs(line, tabWidth))
	}
	return lines
}

// DisplayWidth reports how many columns text occupies.
func DisplayWidth(text string) int {
	width := 0
	for _, r := range text {
		width += runeColumns(r)
	}
	return width
}

// Fit clips text to width columns, ending with an ellipsis when something was cut.
func Fit(text string, width int) string {
	if width <= 0 {
		return ""
	}
	if DisplayWidth(text) <= width {
		return text
	}
	return runewidth.Truncate(text, width, "…")
}

func runeColumns(r rune) int {
	if w := runewidth.RuneWidth(r); w > 0 {
		return w
	}
	return 1
}
