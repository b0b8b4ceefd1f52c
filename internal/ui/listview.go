package ui

import (
	"fmt"
	"strings"

	"invdash/internal/dashboard"
	"invdash/internal/data"

	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
)

// ListView shows one page of a full entity list in the order chosen on navigation.
type ListView struct {
	Target   dashboard.ListTarget
	Sort     data.SortSpec
	Page     int
	PageSize int

	source  *ListSource
	list    list.Model
	spinner spinner.Model
	loading bool
	err     error
	width   int
	height  int
}

// Ensure ListView implements View.
var _ View = (*ListView)(nil)

// NewListView creates a list view for target. pageSize <= 0 falls back to 50.
func NewListView(target dashboard.ListTarget, args dashboard.ListArgs, source *ListSource, pageSize int) *ListView {
	if pageSize <= 0 {
		pageSize = 50
	}
	l := list.New(nil, NewCompactListDelegate(), 0, 0)
	l.Title = target.String()
	l.SetShowStatusBar(false)
	l.SetFilteringEnabled(false)
	l.SetShowHelp(false)
	l.DisableQuitKeybindings()
	l.Styles.Title = Styles.Title

	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = Styles.Status

	return &ListView{
		Target:   target,
		Sort:     args.Sort,
		PageSize: pageSize,
		source:   source,
		list:     l,
		spinner:  s,
		loading:  true,
	}
}

// Init implements View.
func (v *ListView) Init() tea.Cmd {
	return tea.Batch(v.spinner.Tick, v.fetch(v.Page))
}

// Reload fetches the current page again.
func (v *ListView) Reload() tea.Cmd {
	v.loading = true
	return tea.Batch(v.spinner.Tick, v.fetch(v.Page))
}

func (v *ListView) request(page int) data.Request {
	return data.Request{Skip: page * v.PageSize, Take: v.PageSize, Sort: v.Sort}
}

func (v *ListView) fetch(page int) tea.Cmd {
	if v.source == nil {
		return nil
	}
	return loadListCmd(v.source, v.Target, page, v.request(page))
}

// Items returns the rows currently shown.
func (v *ListView) Items() []list.Item {
	return v.list.Items()
}

// Err returns the last fetch error, if any.
func (v *ListView) Err() error { return v.err }

// Loading reports whether a fetch is in flight.
func (v *ListView) Loading() bool { return v.loading }

// Update implements View.
func (v *ListView) Update(msg tea.Msg) (View, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		v.width, v.height = msg.Width, msg.Height
		v.list.SetSize(msg.Width, max(msg.Height-3, 1))
		return v, nil
	case ListLoadedMsg:
		// Ignore pages from a previous sort or another view.
		if msg.Target != v.Target || msg.Sort != v.Sort || msg.Page != v.Page {
			return v, nil
		}
		v.loading = false
		v.err = msg.Err
		if msg.Err != nil {
			return v, v.list.SetItems(nil)
		}
		return v, v.list.SetItems(msg.Items)
	case spinner.TickMsg:
		if !v.loading {
			return v, nil
		}
		var cmd tea.Cmd
		v.spinner, cmd = v.spinner.Update(msg)
		return v, cmd
	case tea.KeyMsg:
		switch msg.String() {
		case "esc":
			return v, func() tea.Msg { return PopViewMsg{} }
		case "s":
			v.Sort = v.Sort.Reverse()
			v.Page = 0
			return v, v.Reload()
		case "]":
			// A short page is the last one.
			if v.loading || len(v.list.Items()) < v.PageSize {
				return v, nil
			}
			v.Page++
			return v, v.Reload()
		case "[":
			if v.loading || v.Page == 0 {
				return v, nil
			}
			v.Page--
			return v, v.Reload()
		}
	}

	var cmd tea.Cmd
	v.list, cmd = v.list.Update(msg)
	return v, cmd
}

// View implements View.
func (v *ListView) View() string {
	if v.list.Width() == 0 {
		v.list.SetSize(80, 20)
	}
	var b strings.Builder
	b.WriteString(v.list.View())
	b.WriteString("\n")

	switch {
	case v.loading:
		b.WriteString(v.spinner.View() + " " + Styles.Status.Render("Loading "+strings.ToLower(v.Target.String())+"..."))
	case v.err != nil:
		b.WriteString(Styles.Error.Render("Error: " + v.err.Error()))
	case len(v.list.Items()) == 0:
		b.WriteString(Styles.Empty.Render("No rows"))
	default:
		b.WriteString(Styles.Muted.Render(fmt.Sprintf("page %d · sorted by %s", v.Page+1, v.Sort)))
	}
	b.WriteString("\n")
	b.WriteString(Styles.Hint.Render("s: reverse sort  [/]: page  esc: back  SPC: commands"))
	return b.String()
}
