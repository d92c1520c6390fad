package ui

import (
	"github.com/charmbracelet/lipgloss"
)

// Theme names the colors the paste views draw with.
type Theme struct {
	Accent  string // view headings
	Success string // confirmation toasts
	Failure string // error toasts
	Empty   string // "No Data Found" line
	Muted   string // editor field labels
}

var defaultTheme = Theme{
	Accent:  "#7D56F4",
	Success: "#04B575",
	Failure: "#FF0000",
	Empty:   "#FFA500",
	Muted:   "#626262",
}

var styles = newPalette(defaultTheme)

// palette holds one style per element of the listing and editor views.
type palette struct {
	heading  lipgloss.Style
	label    lipgloss.Style
	empty    lipgloss.Style
	toastOK  lipgloss.Style
	toastErr lipgloss.Style
}

func newPalette(t Theme) palette {
	return palette{
		heading:  fg(t.Accent).Bold(true).MarginBottom(1),
		label:    fg(t.Muted).Bold(true),
		empty:    fg(t.Empty).Italic(true),
		toastOK:  fg(t.Success).Bold(true),
		toastErr: fg(t.Failure).Bold(true),
	}
}

func fg(color string) lipgloss.Style {
	return lipgloss.NewStyle().Foreground(lipgloss.Color(color))
}
