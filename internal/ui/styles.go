package ui

import "github.com/charmbracelet/lipgloss"

// Catppuccin Mocha (dark theme)
var mocha = struct {
	Mauve, Red, Text, Subtext1, Overlay1, Surface1, Base lipgloss.Color
}{
	Mauve: "#cba6f7", Red: "#f38ba8",
	Text: "#cdd6f4", Subtext1: "#bac2de", Overlay1: "#7f849c", Surface1: "#45475a",
	Base: "#1e1e2e",
}

// Catppuccin Latte (light theme)
var latte = struct {
	Mauve, Red, Text, Subtext1, Overlay1, Surface1, Base lipgloss.Color
}{
	Mauve: "#8839ef", Red: "#d20f39",
	Text: "#4c4f69", Subtext1: "#5c5f77", Overlay1: "#8c8fa1", Surface1: "#bcc0cc",
	Base: "#eff1f5",
}

// ThemePalette holds the current color scheme. Trimmed from the teacher's
// file-listing palette (DirStyle/ImageStyle/VideoStyle/... — no file
// listing exists here); the prompt renders with Mauve and the REPL's error
// line with Red.
type ThemePalette struct {
	Mauve, Red, Text, Subtext, Overlay, Surface, Base lipgloss.Color
}

var currentTheme ThemePalette

func init() {
	if DetectTheme() == ThemeDark {
		SetDarkTheme()
	} else {
		SetLightTheme()
	}
}

// SetDarkTheme switches to Catppuccin Mocha.
func SetDarkTheme() {
	currentTheme = ThemePalette{
		Mauve: mocha.Mauve, Red: mocha.Red, Text: mocha.Text,
		Subtext: mocha.Subtext1, Overlay: mocha.Overlay1, Surface: mocha.Surface1, Base: mocha.Base,
	}
	refreshStyles()
}

// SetLightTheme switches to Catppuccin Latte.
func SetLightTheme() {
	currentTheme = ThemePalette{
		Mauve: latte.Mauve, Red: latte.Red, Text: latte.Text,
		Subtext: latte.Subtext1, Overlay: latte.Overlay1, Surface: latte.Surface1, Base: latte.Base,
	}
	refreshStyles()
}

// ErrorStyle renders the REPL's own "lineshell: <err>" diagnostic line. It
// is never applied to a builtin's OutputRecord text — those are routed
// verbatim per spec.md §4.I, including to redirection targets, so they must
// never carry an escape sequence.
var ErrorStyle lipgloss.Style

func refreshStyles() {
	ErrorStyle = lipgloss.NewStyle().Foreground(currentTheme.Red).Bold(true)
}
