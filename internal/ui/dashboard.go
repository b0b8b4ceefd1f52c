package ui

import (
	"fmt"
	"strings"

	"invdash/internal/dashboard"
	"invdash/internal/models"
	"invdash/internal/progress"
	"invdash/internal/ui/textutil"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// Dashboard panel IDs, in focus order.
const (
	PanelRecentCustomers = "recent-customers"
	PanelTopCustomers    = "top-customers"
	PanelRecentOrders    = "recent-orders"
	PanelTopProducts     = "top-products"
)

var panelTitles = map[string]string{
	PanelRecentCustomers: "Recent customers",
	PanelTopCustomers:    "Top customers",
	PanelRecentOrders:    "Recent orders",
	PanelTopProducts:     "Top products",
}

// panelItems maps each panel to the item name passed to SelectItem.
var panelItems = map[string]string{
	PanelRecentCustomers: dashboard.ItemCustomers,
	PanelTopCustomers:    dashboard.ItemCustomers,
	PanelRecentOrders:    dashboard.ItemOrders,
	PanelTopProducts:     dashboard.ItemProducts,
}

// Snapshotter exposes the controller's lists to the view.
type Snapshotter interface {
	Snapshot() dashboard.Snapshot
}

// DashboardView renders the four preview lists as a 2x2 grid of panels.
type DashboardView struct {
	Focus *FocusRing

	source     Snapshotter
	dateFormat string
	spinner    spinner.Model
	loading    bool
	status     progress.Event
	width      int
}

// Ensure DashboardView implements View.
var _ View = (*DashboardView)(nil)

// NewDashboardView creates a dashboard reading from source.
func NewDashboardView(source Snapshotter, dateFormat string) *DashboardView {
	if dateFormat == "" {
		dateFormat = defaultDateFormat
	}
	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = Styles.Status
	return &DashboardView{
		Focus:      NewFocusRing(PanelRecentCustomers, PanelTopCustomers, PanelRecentOrders, PanelTopProducts),
		source:     source,
		dateFormat: dateFormat,
		spinner:    s,
	}
}

// Init implements View.
func (d *DashboardView) Init() tea.Cmd {
	return d.spinner.Tick
}

// SetLoading sets the loading state and returns a command to start the spinner.
func (d *DashboardView) SetLoading(loading bool) tea.Cmd {
	d.loading = loading
	if loading {
		return d.spinner.Tick
	}
	return nil
}

// Loading reports whether a load is in flight.
func (d *DashboardView) Loading() bool { return d.loading }

// SetStatus shows ev on the status line.
func (d *DashboardView) SetStatus(ev progress.Event) {
	d.status = ev
}

// FocusedItem returns the SelectItem name for the focused panel.
func (d *DashboardView) FocusedItem() string {
	return panelItems[d.Focus.Current()]
}

// Update implements View.
func (d *DashboardView) Update(msg tea.Msg) (View, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		d.width = msg.Width
		return d, nil
	case spinner.TickMsg:
		if !d.loading {
			return d, nil
		}
		var cmd tea.Cmd
		d.spinner, cmd = d.spinner.Update(msg)
		return d, cmd
	case tea.KeyMsg:
		switch msg.String() {
		case "tab", "l", "right":
			d.Focus.Next()
		case "shift+tab", "h", "left":
			d.Focus.Prev()
		}
	}
	return d, nil
}

// View implements View.
func (d *DashboardView) View() string {
	width := d.width
	if width == 0 {
		width = 100
	}
	// Each panel gets half the width minus its border.
	inner := max(width/2-4, 20)

	var snap dashboard.Snapshot
	if d.source != nil {
		snap = d.source.Snapshot()
	}

	top := lipgloss.JoinHorizontal(lipgloss.Top,
		d.renderPanel(PanelRecentCustomers, inner, d.customerLines(snap.Customers, inner, false)),
		d.renderPanel(PanelTopCustomers, inner, d.customerLines(snap.TopCustomers, inner, true)),
	)
	bottom := lipgloss.JoinHorizontal(lipgloss.Top,
		d.renderPanel(PanelRecentOrders, inner, d.orderLines(snap.Orders, inner)),
		d.renderPanel(PanelTopProducts, inner, productLines(snap.Products, inner)),
	)

	var b strings.Builder
	b.WriteString(Styles.Title.Render("Inventory dashboard"))
	b.WriteString("\n")
	b.WriteString(lipgloss.JoinVertical(lipgloss.Left, top, bottom))
	b.WriteString("\n")
	b.WriteString(d.statusLine())
	b.WriteString("\n")
	b.WriteString(Styles.Hint.Render("tab: next panel  enter: open list  SPC: commands  q: quit"))
	return b.String()
}

func (d *DashboardView) statusLine() string {
	switch {
	case d.loading:
		msg := d.status.Message
		if msg == "" || d.status.Status != progress.StatusRunning {
			msg = dashboard.StatusLoading
		}
		return d.spinner.View() + " " + Styles.Status.Render(msg)
	case d.status.Status == progress.StatusError:
		return Styles.Error.Render(d.status.Message)
	case d.status.Message != "":
		return Styles.Status.Render(d.status.Message)
	}
	return ""
}

func (d *DashboardView) renderPanel(id string, inner int, lines []string) string {
	style := Styles.Panel
	title := Styles.Muted.Render(panelTitles[id])
	if d.Focus.Current() == id {
		style = Styles.Focused
		title = Styles.Selected.Render(panelTitles[id])
	}
	body := append([]string{title}, lines...)
	// Fixed height keeps the grid aligned while lists fill in.
	for len(body) < dashboard.PreviewSize+1 {
		body = append(body, "")
	}
	return style.Width(inner + 2).Render(strings.Join(body, "\n"))
}

func (d *DashboardView) customerLines(cs []models.Customer, inner int, top bool) []string {
	if cs == nil {
		return []string{Styles.Empty.Render("not loaded")}
	}
	if len(cs) == 0 {
		return []string{Styles.Empty.Render("none")}
	}
	lines := make([]string, len(cs))
	for i, c := range cs {
		var detail string
		if top {
			detail = fmt.Sprintf("%d children", c.ChildrenAtHome)
		} else {
			detail = c.CreatedOn.Format(d.dateFormat)
		}
		lines[i] = textutil.Columns(c.FullName(), detail, inner)
	}
	return lines
}

func (d *DashboardView) orderLines(orders []models.Order, inner int) []string {
	if orders == nil {
		return []string{Styles.Empty.Render("not loaded")}
	}
	if len(orders) == 0 {
		return []string{Styles.Empty.Render("none")}
	}
	lines := make([]string, len(orders))
	for i, o := range orders {
		left := fmt.Sprintf("#%d %s", o.ID, o.CustomerName)
		right := o.OrderDate.Format(d.dateFormat) + " " + models.FormatCents(o.TotalCents)
		lines[i] = textutil.Columns(left, right, inner)
	}
	return lines
}

func productLines(ps []models.Product, inner int) []string {
	if ps == nil {
		return []string{Styles.Empty.Render("not loaded")}
	}
	if len(ps) == 0 {
		return []string{Styles.Empty.Render("none")}
	}
	lines := make([]string, len(ps))
	for i, p := range ps {
		lines[i] = textutil.Columns(p.Name, fmt.Sprintf("%d units", p.StockUnits), inner)
	}
	return lines
}
