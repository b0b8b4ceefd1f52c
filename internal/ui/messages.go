package ui

import (
	"invdash/internal/dashboard"
	"invdash/internal/data"

	"github.com/charmbracelet/bubbles/list"
)

// DashboardLoadedMsg is sent when a dashboard load finishes. The lists
// themselves are read from the controller.
type DashboardLoadedMsg struct {
	LoadID string
}

// ListLoadedMsg carries one page of a list view.
type ListLoadedMsg struct {
	Target dashboard.ListTarget
	Page   int
	Sort   data.SortSpec
	Items  []list.Item
	Err    error
}

// RefreshMsg reloads the view on top of the stack (SPC r).
type RefreshMsg struct{}

// NavigateMsg selects a dashboard item by name, as enter on a panel does (SPC g c|o|p).
type NavigateMsg struct {
	Item string
}

// PopViewMsg returns to the previous view.
type PopViewMsg struct{}

// ShowActivityMsg opens the activity log overlay (SPC l).
type ShowActivityMsg struct{}

// DismissModalMsg closes the top overlay.
type DismissModalMsg struct{}
