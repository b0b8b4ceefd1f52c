// Package textutil measures and fits text to terminal columns.
package textutil

import (
	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"
)

// Ellipsis marks truncated text.
const Ellipsis = "…"

// VisualWidth returns the number of terminal columns s occupies.
func VisualWidth(s string) int {
	return runewidth.StringWidth(s)
}

// StyledWidth is VisualWidth for strings that may contain ANSI escapes.
func StyledWidth(s string) int {
	return lipgloss.Width(s)
}

// Truncate cuts s to at most width columns, ending in Ellipsis when cut.
func Truncate(s string, width int) string {
	if width <= 0 {
		return ""
	}
	if VisualWidth(s) <= width {
		return s
	}
	if width <= VisualWidth(Ellipsis) {
		return Ellipsis
	}
	return runewidth.Truncate(s, width, Ellipsis)
}

// PadRightVisual pads s with spaces to width columns, truncating if wider.
func PadRightVisual(s string, width int) string {
	if VisualWidth(s) >= width {
		return Truncate(s, width)
	}
	return runewidth.FillRight(s, width)
}

// Columns lays out left and right on one line of width columns. Right is kept
// whole; left is truncated to make room.
func Columns(left, right string, width int) string {
	lw := width - VisualWidth(right) - 1
	if lw < 1 {
		return Truncate(left+" "+right, width)
	}
	return PadRightVisual(left, lw) + " " + right
}
