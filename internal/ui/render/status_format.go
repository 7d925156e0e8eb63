package render

import (
	"fmt"
	"strings"
	"time"

	statepkg "github.com/kk-code-lab/kexplorer/internal/state"
)

const modifiedLayout = "2006-01-02 15:04"

// formatSize renders a byte count with a binary unit suffix.
func formatSize(n int64) string {
	switch {
	case n >= 1<<30:
		return trimTrailingZero(fmt.Sprintf("%.1f", float64(n)/(1<<30))) + "G"
	case n >= 1<<20:
		return trimTrailingZero(fmt.Sprintf("%.1f", float64(n)/(1<<20))) + "M"
	case n >= 1<<10:
		return trimTrailingZero(fmt.Sprintf("%.1f", float64(n)/(1<<10))) + "K"
	default:
		return fmt.Sprintf("%dB", n)
	}
}

func trimTrailingZero(s string) string {
	if strings.Contains(s, ".") {
		s = strings.TrimSuffix(strings.TrimSuffix(s, "0"), ".")
	}
	return s
}

func formatModified(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Local().Format(modifiedLayout)
}

// formatEntryDetails is the right-hand column of a listing row.
func formatEntryDetails(entry statepkg.FileEntry) string {
	size := formatSize(entry.Size)
	if entry.IsDir {
		size = "<dir>"
	}
	return fmt.Sprintf("%7s  %s", size, formatModified(entry.Modified))
}

// formatPreviewHeader summarizes the previewed file for the header row.
func formatPreviewHeader(p *statepkg.PreviewData) string {
	parts := []string{p.Name, formatSize(p.Size)}
	if p.MimeType != "" {
		parts = append(parts, p.MimeType)
	}
	if p.Charset != "" {
		parts = append(parts, p.Charset)
	}
	if p.Truncated {
		parts = append(parts, "truncated")
	}
	return strings.Join(parts, " · ")
}
