package ui

import (
	"invdash/internal/dashboard"
	"invdash/internal/progress"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// CustomerBackend serves both the dashboard preview and the customers list view.
type CustomerBackend interface {
	dashboard.CustomerService
	CustomerLister
}

// OrderBackend serves both the dashboard preview and the orders list view.
type OrderBackend interface {
	dashboard.OrderService
	OrderLister
}

// ProductBackend serves both the dashboard preview and the products list view.
type ProductBackend interface {
	dashboard.ProductService
	ProductLister
}

// Options configure NewAppModel. Only the three backends are required.
type Options struct {
	Customers CustomerBackend
	Orders    OrderBackend
	Products  ProductBackend

	// Status and ErrorLog receive the controller's reports. Events is the
	// channel they feed, drained into the status line and activity log.
	Status   dashboard.StatusReporter
	ErrorLog dashboard.ErrorLogger
	Events   <-chan progress.Event

	Logger     *zap.Logger
	PageSize   int
	DateFormat string
}

// AppModel is the root model. The dashboard sits at the bottom of Stack;
// list views opened from it are pushed on top.
type AppModel struct {
	Stack      ViewStack
	Overlays   OverlayStack
	Dashboard  *DashboardView
	Controller *dashboard.Controller
	Source     *ListSource
	KeyHandler *KeyHandler
	Activity   *ActivityLog
	Events     <-chan progress.Event
	Logger     *zap.Logger
	PageSize   int

	width  int
	height int

	// loadID is the in-flight dashboard load, empty when idle. Only one load
	// runs at a time; a refresh requested meanwhile is queued.
	loadID       string
	reloadQueued bool
}

// NewAppModel wires a controller whose navigator pushes list views onto the app's stack.
func NewAppModel(opts Options) *AppModel {
	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	a := &AppModel{
		Source: &ListSource{
			Customers:  opts.Customers,
			Orders:     opts.Orders,
			Products:   opts.Products,
			DateFormat: opts.DateFormat,
		},
		KeyHandler: NewKeyHandler(newKeybindRegistry()),
		Activity:   &ActivityLog{},
		Events:     opts.Events,
		Logger:     logger,
		PageSize:   opts.PageSize,
	}
	a.Controller = dashboard.New(dashboard.Deps{
		Customers: opts.Customers,
		Orders:    opts.Orders,
		Products:  opts.Products,
		Navigator: stackNavigator{app: a},
		Status:    opts.Status,
		Log:       opts.ErrorLog,
	})
	a.Dashboard = NewDashboardView(a.Controller, opts.DateFormat)
	a.Stack.Push(a.Dashboard)
	return a
}

func newKeybindRegistry() *KeybindRegistry {
	reg := NewKeybindRegistry()
	reg.Bind("q", tea.Quit, "Quit")
	reg.Bind("ctrl+c", tea.Quit, "Quit")
	reg.Bind("SPC q", tea.Quit, "Quit")
	reg.Bind("SPC r", func() tea.Msg { return RefreshMsg{} }, "Refresh")
	reg.Bind("SPC l", func() tea.Msg { return ShowActivityMsg{} }, "Activity log")
	dash := []AppMode{ModeDashboard}
	reg.BindForMode("SPC g c", navigateTo(dashboard.ItemCustomers), "Customers", dash)
	reg.BindForMode("SPC g o", navigateTo(dashboard.ItemOrders), "Orders", dash)
	reg.BindForMode("SPC g p", navigateTo(dashboard.ItemProducts), "Products", dash)
	return reg
}

func navigateTo(item string) tea.Cmd {
	return func() tea.Msg { return NavigateMsg{Item: item} }
}

// Mode reports which kind of view is on top.
func (a *AppModel) Mode() AppMode {
	if a.Stack.Len() > 1 {
		return ModeList
	}
	return ModeDashboard
}

// startDashboardLoad shows the spinner and runs a controller load. While a
// load is in flight the request is queued and runs once that load finishes.
func (a *AppModel) startDashboardLoad() tea.Cmd {
	if a.loadID != "" {
		a.reloadQueued = true
		if a.Dashboard.Loading() {
			return nil
		}
		return a.Dashboard.SetLoading(true)
	}
	a.loadID = uuid.NewString()
	return tea.Batch(a.Dashboard.SetLoading(true), loadDashboardCmd(a.Controller, a.Logger, a.loadID))
}

// finishDashboardLoad handles the end of a load, starting a queued one if the
// dashboard is still showing.
func (a *AppModel) finishDashboardLoad(msg DashboardLoadedMsg) tea.Cmd {
	// A load that finishes after a list view was opened must not repopulate the dashboard.
	if a.Mode() != ModeDashboard {
		a.Controller.Unload()
	}
	if msg.LoadID != a.loadID {
		return nil
	}
	a.loadID = ""
	if a.reloadQueued && a.Mode() == ModeDashboard {
		a.reloadQueued = false
		a.loadID = uuid.NewString()
		return loadDashboardCmd(a.Controller, a.Logger, a.loadID)
	}
	a.reloadQueued = false
	a.Dashboard.SetLoading(false)
	return nil
}

// navigate selects item on the controller. When a list view was pushed the
// dashboard's lists are dropped until it is shown again.
func (a *AppModel) navigate(item string) tea.Cmd {
	if a.Mode() != ModeDashboard || !a.Controller.SelectItem(item) {
		return nil
	}
	a.Controller.Unload()
	a.Dashboard.SetLoading(false)

	top := a.Stack.Peek()
	if a.width > 0 {
		top, _ = top.Update(tea.WindowSizeMsg{Width: a.width, Height: a.height})
		a.Stack.ReplaceTop(top)
	}
	a.Logger.Debug("navigate", zap.String("item", item))
	return top.Init()
}

// popView returns to the previous view, reloading the dashboard when it is back on top.
func (a *AppModel) popView() tea.Cmd {
	if a.Stack.Len() <= 1 {
		return nil
	}
	a.Stack.Pop()
	if a.Mode() == ModeDashboard {
		return a.startDashboardLoad()
	}
	return nil
}

// Ensure AppModel can be used as tea.Model via adapter.
var _ tea.Model = (*appModelAdapter)(nil)

// appModelAdapter wraps AppModel to implement tea.Model.
type appModelAdapter struct {
	*AppModel
}

// AsTeaModel returns a tea.Model adapter for use with tea.NewProgram.
func (a *AppModel) AsTeaModel() tea.Model {
	return &appModelAdapter{AppModel: a}
}

// Init implements tea.Model. Showing the dashboard loads it.
func (a *appModelAdapter) Init() tea.Cmd {
	return tea.Batch(a.Dashboard.Init(), a.startDashboardLoad(), waitForEvent(a.Events))
}

// Update implements tea.Model.
func (a *appModelAdapter) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		return a, a.handleResize(msg)
	case progress.Event:
		return a, a.handleProgressEvent(msg)
	case DashboardLoadedMsg:
		return a, a.finishDashboardLoad(msg)
	case RefreshMsg:
		if a.Mode() == ModeDashboard {
			return a, a.startDashboardLoad()
		}
		if lv, ok := a.Stack.Peek().(*ListView); ok {
			return a, lv.Reload()
		}
		return a, nil
	case NavigateMsg:
		return a, a.navigate(msg.Item)
	case PopViewMsg:
		return a, a.popView()
	case ShowActivityMsg:
		if top, ok := a.Overlays.Peek(); ok {
			if _, open := top.View.(*ActivityView); open {
				return a, nil
			}
		}
		v := NewActivityView(a.Activity)
		if a.width > 0 {
			v.Update(tea.WindowSizeMsg{Width: a.width, Height: a.height})
		}
		a.Overlays.Push(Overlay{View: v, Dismiss: "esc"})
		return a, v.Init()
	case DismissModalMsg:
		a.Overlays.Pop()
		return a, nil
	case tea.KeyMsg:
		return a, a.handleKey(msg)
	}

	top := a.Stack.Peek()
	if top == nil {
		return a, nil
	}
	next, cmd := top.Update(msg)
	a.Stack.ReplaceTop(next)
	return a, cmd
}

func (a *appModelAdapter) handleResize(msg tea.WindowSizeMsg) tea.Cmd {
	a.width, a.height = msg.Width, msg.Height
	var cmds []tea.Cmd
	for i, v := range a.Stack.Stack {
		next, cmd := v.Update(msg)
		a.Stack.Stack[i] = next
		cmds = append(cmds, cmd)
	}
	if cmd, ok := a.Overlays.UpdateTop(msg); ok {
		cmds = append(cmds, cmd)
	}
	return tea.Batch(cmds...)
}

// handleProgressEvent records ev and waits for the next one.
func (a *appModelAdapter) handleProgressEvent(ev progress.Event) tea.Cmd {
	a.Activity.Add(ev)
	a.Dashboard.SetStatus(ev)
	cmds := []tea.Cmd{waitForEvent(a.Events)}
	if top, ok := a.Overlays.Peek(); ok {
		if _, isActivity := top.View.(*ActivityView); isActivity {
			cmd, _ := a.Overlays.UpdateTop(ev)
			cmds = append(cmds, cmd)
		}
	}
	return tea.Batch(cmds...)
}

func (a *appModelAdapter) handleKey(msg tea.KeyMsg) tea.Cmd {
	// Overlays take input first; only ctrl+c gets past them.
	if top, ok := a.Overlays.Peek(); ok {
		switch {
		case msg.String() == "ctrl+c":
			return tea.Quit
		case top.IsDismissKey(msg.String()):
			a.Overlays.Pop()
			return nil
		}
		cmd, _ := a.Overlays.UpdateTop(msg)
		return cmd
	}

	if a.KeyHandler != nil {
		if consumed, cmd := a.KeyHandler.Handle(msg, a.Mode()); consumed {
			return cmd
		}
	}

	if a.Mode() == ModeDashboard && msg.String() == "enter" {
		return a.navigate(a.Dashboard.FocusedItem())
	}

	top := a.Stack.Peek()
	if top == nil {
		return nil
	}
	next, cmd := top.Update(msg)
	a.Stack.ReplaceTop(next)
	return cmd
}

// View implements tea.Model.
func (a *appModelAdapter) View() string {
	top := a.Stack.Peek()
	if top == nil {
		return ""
	}
	base := top.View()
	if o, ok := a.Overlays.Peek(); ok {
		if a.width > 0 && a.height > 0 {
			base = lipgloss.Place(a.width, a.height, lipgloss.Center, lipgloss.Center, o.View.View())
		} else {
			base = o.View.View()
		}
	}
	if a.KeyHandler != nil && a.KeyHandler.LeaderWaiting {
		base += "\n" + RenderKeybindHelp(a.KeyHandler, a.Mode())
	}
	return base
}
