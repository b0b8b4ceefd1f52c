package ui

import (
	"fmt"
	"sort"
	"strings"

	"invdash/internal/progress"

	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
)

// maxActivity bounds the session activity log.
const maxActivity = 200

// ActivityLog collects progress events for the session, oldest first.
type ActivityLog struct {
	events []progress.Event
}

// Add appends ev, dropping the oldest event beyond maxActivity.
func (l *ActivityLog) Add(ev progress.Event) {
	l.events = append(l.events, ev)
	if over := len(l.events) - maxActivity; over > 0 {
		l.events = append(l.events[:0:0], l.events[over:]...)
	}
}

// Events returns the collected events.
func (l *ActivityLog) Events() []progress.Event {
	return l.events
}

// ActivityView lists status and error events in a scrollable box.
// Shown as an overlay; esc dismisses.
type ActivityView struct {
	log      *ActivityLog
	viewport viewport.Model
}

// Ensure ActivityView implements View.
var _ View = (*ActivityView)(nil)

const (
	defaultActivityWidth  = 70
	defaultActivityHeight = 16
)

// NewActivityView shows log. Events added to log later appear on the next refresh.
func NewActivityView(log *ActivityLog) *ActivityView {
	vp := viewport.New(defaultActivityWidth, defaultActivityHeight)
	vp.Style = Styles.Overlay
	a := &ActivityView{log: log, viewport: vp}
	a.refreshContent()
	return a
}

// Init implements View.
func (a *ActivityView) Init() tea.Cmd {
	return nil
}

// Update implements View.
func (a *ActivityView) Update(msg tea.Msg) (View, tea.Cmd) {
	switch msg := msg.(type) {
	case progress.Event:
		a.refreshContent()
		return a, nil
	case tea.KeyMsg:
		if msg.String() == "esc" {
			return a, func() tea.Msg { return DismissModalMsg{} }
		}
	case tea.WindowSizeMsg:
		a.viewport.Width = max(msg.Width-4, 40)
		a.viewport.Height = max(msg.Height/2+4, 10)
		a.refreshContent()
		return a, nil
	}

	var cmd tea.Cmd
	a.viewport, cmd = a.viewport.Update(msg)
	return a, cmd
}

// View implements View.
func (a *ActivityView) View() string {
	header := Styles.Title.Render("Activity") + Styles.Hint.Render("  esc: close")
	return header + "\n" + a.viewport.View()
}

func (a *ActivityView) refreshContent() {
	var lines []string
	if a.log != nil {
		for _, ev := range a.log.Events() {
			line := fmt.Sprintf("[%s] %s %s", ev.Timestamp.Format("15:04:05"), statusIcon(ev.Status), ev.Message)
			if ev.Status == progress.StatusError {
				line = Styles.Error.Render(line)
			}
			lines = append(lines, line)
			keys := make([]string, 0, len(ev.Metadata))
			for k := range ev.Metadata {
				keys = append(keys, k)
			}
			sort.Strings(keys)
			for _, k := range keys {
				lines = append(lines, Styles.Muted.Render(fmt.Sprintf("      %s: %s", k, ev.Metadata[k])))
			}
		}
	}
	content := strings.Join(lines, "\n")
	if content == "" {
		content = Styles.Empty.Render("No activity yet")
	}
	a.viewport.SetContent(content)
	a.viewport.GotoBottom()
}

func statusIcon(s progress.Status) string {
	switch s {
	case progress.StatusRunning:
		return "●"
	case progress.StatusDone:
		return "✓"
	case progress.StatusError:
		return "✗"
	default:
		return "•"
	}
}
