package ui

import tea "github.com/charmbracelet/bubbletea"

// Overlay is a popup view drawn over the current screen.
type Overlay struct {
	View    View
	Dismiss string // key that closes it, e.g. "esc"
}

// IsDismissKey returns true if key closes this overlay.
func (o *Overlay) IsDismissKey(key string) bool {
	return key == o.Dismiss
}

// OverlayStack holds open overlays; the topmost receives input first.
type OverlayStack struct {
	Stack []Overlay
}

func (s *OverlayStack) Push(o Overlay) {
	s.Stack = append(s.Stack, o)
}

func (s *OverlayStack) Pop() (Overlay, bool) {
	if len(s.Stack) == 0 {
		return Overlay{}, false
	}
	top := s.Stack[len(s.Stack)-1]
	s.Stack = s.Stack[:len(s.Stack)-1]
	return top, true
}

func (s *OverlayStack) Peek() (Overlay, bool) {
	if len(s.Stack) == 0 {
		return Overlay{}, false
	}
	return s.Stack[len(s.Stack)-1], true
}

func (s *OverlayStack) Len() int {
	return len(s.Stack)
}

// UpdateTop passes msg to the top overlay and stores the updated view.
// The caller must run the returned cmd.
func (s *OverlayStack) UpdateTop(msg tea.Msg) (tea.Cmd, bool) {
	if len(s.Stack) == 0 {
		return nil, false
	}
	top := &s.Stack[len(s.Stack)-1]
	next, cmd := top.View.Update(msg)
	top.View = next
	return cmd, true
}
