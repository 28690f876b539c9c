package diff

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"

	"linepatch/internal/lines"
)

// Options controls Render.
type Options struct {
	Path    string // shown in the ---/+++ header when set
	Context int    // unchanged lines around each change
	Width   int    // truncate lines to this many cells; 0 disables
	Color   bool
}

var (
	headerStyle = lipgloss.NewStyle().Bold(true)
	hunkStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#00FFFF"))
	addStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("#00FF00"))
	deleteStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#FF0000"))
)

// Render formats before→after as a unified diff.
func Render(before, after string, opts Options) string {
	hunks := Hunks(Compute(before, after), opts.Context)
	if len(hunks) == 0 {
		return ""
	}

	paint := func(style lipgloss.Style, s string) string {
		if !opts.Color {
			return s
		}
		return style.Render(s)
	}

	var b strings.Builder
	if opts.Path != "" {
		b.WriteString(paint(headerStyle, "--- a/"+opts.Path) + "\n")
		b.WriteString(paint(headerStyle, "+++ b/"+opts.Path) + "\n")
	}
	for _, h := range hunks {
		b.WriteString(paint(hunkStyle, fmt.Sprintf("@@ -%d,%d +%d,%d @@", h.OldStart, h.OldCount, h.NewStart, h.NewCount)) + "\n")
		for _, l := range h.Lines {
			text := lines.Trim(l.Text)
			if opts.Width > 0 {
				text = runewidth.Truncate(text, opts.Width-1, "…")
			}
			switch l.Op {
			case Insert:
				b.WriteString(paint(addStyle, "+"+text))
			case Delete:
				b.WriteString(paint(deleteStyle, "-"+text))
			default:
				b.WriteString(" " + text)
			}
			b.WriteString("\n")
		}
	}
	return b.String()
}

// Summary is a one-line "+a -r" description of a diff.
func Summary(before, after string) string {
	added, removed := Counts(Compute(before, after))
	return fmt.Sprintf("+%d -%d", added, removed)
}
