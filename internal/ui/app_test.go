package ui

import (
	"context"
	"errors"
	"testing"

	"invdash/internal/dashboard"
	"invdash/internal/data"
	"invdash/internal/progress"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type testApp struct {
	*AppModel
	model   tea.Model
	backend *fakeBackend
	events  chan progress.Event
}

func newTestApp(t *testing.T) *testApp {
	t.Helper()
	b := newFakeBackend()
	events := make(chan progress.Event, 16)
	emitter := &progress.ChanEmitter{Ch: events}
	a := NewAppModel(Options{
		Customers: customerBackend{b},
		Orders:    orderBackend{b},
		Products:  productBackend{b},
		Status:    emitter,
		ErrorLog:  emitter,
		Events:    events,
		PageSize:  20,
	})
	return &testApp{AppModel: a, model: a.AsTeaModel(), backend: b, events: events}
}

// load runs the in-flight dashboard load, starting one if none is running,
// and delivers the result.
func (ta *testApp) load(t *testing.T) {
	t.Helper()
	if ta.loadID == "" {
		ta.startDashboardLoad()
	}
	msg := loadDashboardCmd(ta.Controller, ta.Logger, ta.loadID)()
	require.IsType(t, DashboardLoadedMsg{}, msg)
	ta.model.Update(msg)
}

func (ta *testApp) topList(t *testing.T) *ListView {
	t.Helper()
	lv, ok := ta.Stack.Peek().(*ListView)
	require.True(t, ok, "expected list view on top, got %T", ta.Stack.Peek())
	return lv
}

func TestAppModel_StartsOnDashboard(t *testing.T) {
	ta := newTestApp(t)
	assert.Equal(t, 1, ta.Stack.Len())
	assert.Equal(t, ModeDashboard, ta.Mode())
	assert.Equal(t, dashboard.StateUnloaded, ta.Controller.State())
	assert.NotNil(t, ta.model.Init())
}

func TestAppModel_LoadPopulatesDashboard(t *testing.T) {
	ta := newTestApp(t)
	ta.Dashboard.SetLoading(true)
	ta.load(t)

	assert.False(t, ta.Dashboard.Loading())
	snap := ta.Controller.Snapshot()
	assert.Equal(t, dashboard.StateLoaded, snap.State)
	assert.Len(t, snap.Customers, 2)
	assert.Contains(t, ta.model.View(), "Grace Hopper")
}

func TestAppModel_EnterOpensFocusedList(t *testing.T) {
	tests := []struct {
		name   string
		tabs   int
		target dashboard.ListTarget
		sort   data.SortSpec
	}{
		{"recent customers", 0, dashboard.TargetCustomers, dashboard.CustomersListSort},
		{"top customers", 1, dashboard.TargetCustomers, dashboard.CustomersListSort},
		{"orders", 2, dashboard.TargetOrders, dashboard.OrdersListSort},
		{"products", 3, dashboard.TargetProducts, dashboard.ProductsListSort},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ta := newTestApp(t)
			ta.load(t)
			for range tt.tabs {
				keys(ta.model, "tab")
			}

			cmd := keys(ta.model, "enter")
			assert.NotNil(t, cmd, "list view starts fetching")

			assert.Equal(t, ModeList, ta.Mode())
			lv := ta.topList(t)
			assert.Equal(t, tt.target, lv.Target)
			assert.Equal(t, tt.sort, lv.Sort)
			assert.Equal(t, 20, lv.PageSize)

			snap := ta.Controller.Snapshot()
			assert.Nil(t, snap.Customers, "leaving the dashboard unloads it")
			assert.Nil(t, snap.TopCustomers)
			assert.Nil(t, snap.Orders)
			assert.Nil(t, snap.Products)
		})
	}
}

func TestAppModel_LeaderNavigation(t *testing.T) {
	ta := newTestApp(t)

	cmd := keys(ta.model, "SPC", "g", "p")
	require.NotNil(t, cmd)
	msg := cmd()
	assert.Equal(t, NavigateMsg{Item: dashboard.ItemProducts}, msg)

	ta.model.Update(msg)
	assert.Equal(t, dashboard.TargetProducts, ta.topList(t).Target)

	// Go-to bindings only apply on the dashboard.
	keys(ta.model, "SPC", "g", "c")
	assert.Equal(t, 2, ta.Stack.Len())
	assert.Equal(t, dashboard.TargetProducts, ta.topList(t).Target)
}

func TestAppModel_NavigateUnknownItem(t *testing.T) {
	ta := newTestApp(t)
	ta.load(t)

	_, cmd := ta.model.Update(NavigateMsg{Item: "Invoices"})
	assert.Nil(t, cmd)
	assert.Equal(t, 1, ta.Stack.Len())
	assert.NotNil(t, ta.Controller.Customers(), "unknown items leave the dashboard loaded")
}

func TestAppModel_EscReturnsAndReloads(t *testing.T) {
	ta := newTestApp(t)
	ta.load(t)
	keys(ta.model, "enter")
	require.Equal(t, ModeList, ta.Mode())

	cmd := keys(ta.model, "esc")
	require.NotNil(t, cmd)
	_, cmd = ta.model.Update(cmd())
	assert.NotNil(t, cmd)

	assert.Equal(t, ModeDashboard, ta.Mode())
	assert.True(t, ta.Dashboard.Loading())

	ta.load(t)
	assert.NotNil(t, ta.Controller.Customers())
}

func TestAppModel_LateLoadAfterNavigationIsDropped(t *testing.T) {
	ta := newTestApp(t)
	keys(ta.model, "enter")
	require.Equal(t, ModeList, ta.Mode())

	// A load started before navigation finishes afterwards.
	ta.Controller.Load(context.Background())
	ta.model.Update(DashboardLoadedMsg{LoadID: "late"})

	assert.Nil(t, ta.Controller.Customers())
	assert.Equal(t, dashboard.StateUnloaded, ta.Controller.State())
}

func TestAppModel_RefreshDuringLoadIsQueued(t *testing.T) {
	ta := newTestApp(t)
	ta.model.Init()
	first := ta.loadID
	require.NotEmpty(t, first)

	_, cmd := ta.model.Update(RefreshMsg{})
	assert.Nil(t, cmd, "no second load while one is running")
	_, cmd = ta.model.Update(RefreshMsg{})
	assert.Nil(t, cmd)
	assert.Equal(t, first, ta.loadID)

	ta.Controller.Load(context.Background())
	_, cmd = ta.model.Update(DashboardLoadedMsg{LoadID: first})
	require.NotNil(t, cmd, "queued refresh starts after the first load")
	assert.True(t, ta.Dashboard.Loading(), "spinner stays while the queued load runs")
	second := ta.loadID
	require.NotEmpty(t, second)
	assert.NotEqual(t, first, second)

	msg := cmd()
	require.Equal(t, DashboardLoadedMsg{LoadID: second}, msg)
	_, cmd = ta.model.Update(msg)
	assert.Nil(t, cmd)
	assert.False(t, ta.Dashboard.Loading())
	assert.Empty(t, ta.loadID)
}

func TestAppModel_StaleLoadDoesNotClearSpinner(t *testing.T) {
	ta := newTestApp(t)
	ta.model.Init()
	require.True(t, ta.Dashboard.Loading())

	ta.model.Update(DashboardLoadedMsg{LoadID: "other"})
	assert.True(t, ta.Dashboard.Loading())
	assert.NotEmpty(t, ta.loadID)
}

func TestAppModel_RefreshList(t *testing.T) {
	ta := newTestApp(t)
	keys(ta.model, "enter")
	lv := ta.topList(t)
	fetchNow(t, lv)
	require.False(t, lv.Loading())

	cmd := keys(ta.model, "SPC", "r")
	require.NotNil(t, cmd)
	_, cmd = ta.model.Update(cmd())
	assert.NotNil(t, cmd)
	assert.True(t, lv.Loading())
}

func TestAppModel_ProgressEvents(t *testing.T) {
	ta := newTestApp(t)
	ta.backend.err = errors.New("disk I/O error")
	ta.load(t)

	// Start, one error per fetch, end.
	var got []progress.Event
	for len(ta.events) > 0 {
		ev := <-ta.events
		got = append(got, ev)
		_, cmd := ta.model.Update(ev)
		assert.NotNil(t, cmd, "the app keeps listening")
	}
	require.Len(t, got, 6)
	assert.Equal(t, dashboard.StatusLoading, got[0].Message)
	assert.Equal(t, dashboard.StatusLoaded, got[5].Message)
	for _, ev := range got[1:5] {
		assert.Equal(t, progress.StatusError, ev.Status)
		assert.Equal(t, dashboard.Category, ev.Metadata["category"])
	}

	assert.Len(t, ta.Activity.Events(), 6)
	assert.Contains(t, ta.model.View(), dashboard.StatusLoaded)
}

func TestAppModel_ActivityOverlay(t *testing.T) {
	ta := newTestApp(t)

	cmd := keys(ta.model, "SPC", "l")
	require.NotNil(t, cmd)
	ta.model.Update(cmd())
	require.Equal(t, 1, ta.Overlays.Len())
	assert.Contains(t, ta.model.View(), "Activity")

	// A second request does not stack another copy.
	ta.model.Update(ShowActivityMsg{})
	assert.Equal(t, 1, ta.Overlays.Len())

	// Overlay swallows keys that would otherwise quit.
	cmd = keys(ta.model, "q")
	assert.Nil(t, cmd)

	keys(ta.model, "esc")
	assert.Equal(t, 0, ta.Overlays.Len())
}

func TestAppModel_Quit(t *testing.T) {
	for _, k := range []string{"q", "ctrl+c"} {
		ta := newTestApp(t)
		cmd := keys(ta.model, k)
		require.NotNil(t, cmd, k)
		assert.IsType(t, tea.QuitMsg{}, cmd(), k)
	}

	ta := newTestApp(t)
	cmd := keys(ta.model, "SPC", "q")
	require.NotNil(t, cmd)
	assert.IsType(t, tea.QuitMsg{}, cmd())
}

func TestAppModel_LeaderHelpShown(t *testing.T) {
	ta := newTestApp(t)
	keys(ta.model, "SPC")
	assert.Contains(t, ta.model.View(), "Go to")
}
