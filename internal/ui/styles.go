package ui

import (
	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/lipgloss"
)

// Theme colors used throughout the UI
const (
	ColorAccent    = "86"  // Cyan/green - titles, highlights
	ColorHighlight = "205" // Magenta - focused panel, selected items
	ColorDanger    = "196" // Red - errors
	ColorMuted     = "241" // Gray - hints, unfocused borders
	ColorText      = "252" // Light gray - normal text
)

// Styles contains shared style definitions used across views.
var Styles = struct {
	Title   lipgloss.Style // Bold accent color - view titles
	Panel   lipgloss.Style // Unfocused dashboard panel
	Focused lipgloss.Style // Focused dashboard panel
	Overlay lipgloss.Style // Activity overlay box

	Selected lipgloss.Style
	Muted    lipgloss.Style
	Normal   lipgloss.Style
	Hint     lipgloss.Style
	Status   lipgloss.Style
	Error    lipgloss.Style
	Empty    lipgloss.Style // Empty/absent list text (muted, italic)
}{
	Title: lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color(ColorAccent)),
	Panel: lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color(ColorMuted)).
		Padding(0, 1),
	Focused: lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color(ColorHighlight)).
		Padding(0, 1),
	Overlay: lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color(ColorHighlight)).
		Padding(0, 1),
	Selected: lipgloss.NewStyle().
		Foreground(lipgloss.Color(ColorHighlight)).
		Bold(true),
	Muted: lipgloss.NewStyle().
		Foreground(lipgloss.Color(ColorMuted)),
	Normal: lipgloss.NewStyle().
		Foreground(lipgloss.Color(ColorText)),
	Hint: lipgloss.NewStyle().
		Foreground(lipgloss.Color(ColorMuted)),
	Status: lipgloss.NewStyle().
		Foreground(lipgloss.Color(ColorAccent)),
	Error: lipgloss.NewStyle().
		Foreground(lipgloss.Color(ColorDanger)),
	Empty: lipgloss.NewStyle().
		Foreground(lipgloss.Color(ColorMuted)).
		Italic(true),
}

// NewCompactListDelegate returns a list delegate with one line per item plus description.
func NewCompactListDelegate() list.DefaultDelegate {
	d := list.NewDefaultDelegate()
	d.SetSpacing(0)
	d.Styles.SelectedTitle = Styles.Selected
	d.Styles.SelectedDesc = Styles.Muted
	d.Styles.NormalTitle = Styles.Normal
	d.Styles.NormalDesc = Styles.Muted
	return d
}
