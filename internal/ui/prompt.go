package ui

import (
	"os"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"
	"golang.org/x/term"
)

// glyphStyle renders the bare "$ " / "> " prompt glyph (spec.md §6). Kept
// to a single styled segment, unlike the teacher's multi-segment Powerline
// prompt, since there is no username/workspace/vault context to show here.
var glyphStyle = lipgloss.NewStyle().Bold(true)

// RenderPrompt styles glyph (one of PrimaryPrompt/ContinuationPrompt) for
// display, truncating to the terminal width in the unlikely case the glyph
// exceeds it, using github.com/mattn/go-runewidth — the same width-measuring
// library the teacher uses for its file-listing table.
func RenderPrompt(glyph string) string {
	rendered := glyphStyle.Foreground(currentTheme.Mauve).Render(glyph)
	if width, _, err := term.GetSize(int(os.Stdout.Fd())); err == nil && width > 0 {
		if runewidth.StringWidth(glyph) > width {
			return runewidth.Truncate(glyph, width, "")
		}
	}
	return rendered
}
