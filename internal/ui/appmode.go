package ui

// AppMode is the kind of screen on top of the view stack.
type AppMode int

const (
	ModeDashboard AppMode = iota
	ModeList
)

func (m AppMode) String() string {
	switch m {
	case ModeDashboard:
		return "Dashboard"
	case ModeList:
		return "List"
	default:
		return "Unknown"
	}
}
