package render

import (
	"errors"
	"slices"
	"strings"
	"testing"
	"time"

	"github.com/gdamore/tcell/v2"
	statepkg "github.com/kk-code-lab/kexplorer/internal/state"
)

func newSimScreen(t *testing.T, w, h int) tcell.SimulationScreen {
	t.Helper()
	screen := tcell.NewSimulationScreen("UTF-8")
	if err := screen.Init(); err != nil {
		t.Fatalf("init simulation screen: %v", err)
	}
	screen.SetSize(w, h)
	t.Cleanup(screen.Fini)
	return screen
}

func rowText(screen tcell.SimulationScreen, y int) string {
	w, _ := screen.Size()
	var b strings.Builder
	for x := 0; x < w; x++ {
		mainc, combc, _, width := screen.GetContent(x, y)
		if width == 0 {
			continue // trailing half of a wide rune
		}
		if mainc == 0 {
			mainc = ' '
		}
		b.WriteRune(mainc)
		b.WriteString(string(combc))
	}
	return strings.TrimRight(b.String(), " ")
}

func sampleState() *statepkg.AppState {
	mod := time.Date(2024, 5, 1, 12, 0, 0, 0, time.Local)
	return &statepkg.AppState{
		WorkingDirectory: "/tmp/work",
		PathInput:        "/tmp/work",
		Files: []statepkg.FileEntry{
			{Name: "docs", IsDir: true, Modified: mod},
			{Name: ".env", Size: 10, Modified: mod},
			{Name: "main.go", Size: 2048, Modified: mod},
		},
		ScreenWidth:  80,
		ScreenHeight: 10,
	}
}

func TestRenderListingHidesDotFiles(t *testing.T) {
	screen := newSimScreen(t, 80, 10)
	r := NewRenderer(screen)
	state := sampleState()

	r.Render(state)

	if got := rowText(screen, 0); !strings.Contains(got, "/tmp/work") {
		t.Fatalf("header should show working directory, got %q", got)
	}
	if got := rowText(screen, 1); !strings.Contains(got, "docs/") || !strings.Contains(got, "<dir>") {
		t.Fatalf("first row should be the directory, got %q", got)
	}
	if got := rowText(screen, 2); !strings.Contains(got, "main.go") || !strings.Contains(got, "2K") {
		t.Fatalf("second row should be main.go, got %q", got)
	}
	for y := 1; y < 9; y++ {
		if strings.Contains(rowText(screen, y), ".env") {
			t.Fatalf("hidden file rendered on row %d", y)
		}
	}

	state.ShowHiddenFiles = true
	r.Render(state)
	if got := rowText(screen, 2); !strings.Contains(got, ".env") {
		t.Fatalf("hidden file should show when enabled, got %q", got)
	}
}

func TestRenderSelectionUsesSelectionStyle(t *testing.T) {
	screen := newSimScreen(t, 80, 10)
	r := NewRenderer(screen)
	state := sampleState()
	state.SelectedName = "main.go"

	r.Render(state)

	_, _, style, _ := screen.GetContent(1, 2)
	_, bg, _ := style.Decompose()
	if bg != r.theme.SelectionBg {
		t.Fatalf("selected row background = %v, want %v", bg, r.theme.SelectionBg)
	}
}

func TestRenderStatusLineShowsError(t *testing.T) {
	screen := newSimScreen(t, 80, 10)
	r := NewRenderer(screen)
	state := sampleState()
	state.LastError = errors.New("delete /tmp/work/x: permission denied")

	r.Render(state)

	if got := rowText(screen, 9); !strings.Contains(got, "permission denied") {
		t.Fatalf("status line should show error, got %q", got)
	}
}

func TestRenderPromptOnStatusLine(t *testing.T) {
	screen := newSimScreen(t, 80, 10)
	r := NewRenderer(screen)
	state := sampleState()
	state.Prompt = &statepkg.PromptState{Kind: statepkg.PromptNewFile, Text: "todo.txt"}

	r.Render(state)

	if got := rowText(screen, 9); got != "New file: todo.txt" {
		t.Fatalf("unexpected prompt row %q", got)
	}
}

func TestRenderPreviewReplacesListing(t *testing.T) {
	screen := newSimScreen(t, 80, 6)
	r := NewRenderer(screen)
	state := sampleState()
	state.ScreenHeight = 6
	state.Preview = &statepkg.PreviewData{
		Name:    "main.go",
		Size:    2048,
		Text:    true,
		Charset: "utf-8",
		Lines:   []string{"package main", "", "func main() {}", "// one", "// two", "// three"},
	}
	state.PreviewScrollOffset = 2

	r.Render(state)

	if got := rowText(screen, 0); !strings.Contains(got, "main.go · 2K · utf-8") {
		t.Fatalf("unexpected preview header %q", got)
	}
	if got := rowText(screen, 1); got != "func main() {}" {
		t.Fatalf("preview should start at scroll offset, got %q", got)
	}
}

func TestRenderHelpOverlay(t *testing.T) {
	screen := newSimScreen(t, 80, 40)
	r := NewRenderer(screen)
	state := sampleState()
	state.HelpVisible = true

	r.Render(state)

	found := false
	for y := 0; y < 40; y++ {
		if strings.Contains(rowText(screen, y), "Add application") {
			found = true
		}
	}
	if !found {
		t.Fatalf("help overlay should list preference keys")
	}
}

func TestNarrowScreenDropsDetails(t *testing.T) {
	screen := newSimScreen(t, 20, 6)
	r := NewRenderer(screen)
	state := sampleState()

	r.Render(state)

	if got := rowText(screen, 1); strings.Contains(got, "<dir>") {
		t.Fatalf("narrow screen should omit details, got %q", got)
	}
}

func TestBuildFooterHelpSegments(t *testing.T) {
	state := &statepkg.AppState{}
	if got := buildFooterHelpSegments(state); !slices.Contains(got, ".: show hidden") {
		t.Fatalf("expected show-hidden hint, got %v", got)
	}
	state.ShowHiddenFiles = true
	if got := buildFooterHelpSegments(state); !slices.Contains(got, ".: hide hidden") {
		t.Fatalf("expected hide-hidden hint, got %v", got)
	}
	state.Prompt = &statepkg.PromptState{Kind: statepkg.PromptGoTo}
	if got := buildFooterHelpSegments(state); !slices.Equal(got, []string{"↵: confirm", "Esc: cancel"}) {
		t.Fatalf("unexpected prompt hints %v", got)
	}
}

func TestFormatSize(t *testing.T) {
	tests := map[int64]string{
		0:             "0B",
		1023:          "1023B",
		1024:          "1K",
		1536:          "1.5K",
		5 * (1 << 20): "5M",
		3 << 30:       "3G",
	}
	for in, want := range tests {
		if got := formatSize(in); got != want {
			t.Fatalf("formatSize(%d) = %q, want %q", in, got, want)
		}
	}
}
