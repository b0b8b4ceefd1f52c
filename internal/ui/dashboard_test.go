package ui

import (
	"context"
	"errors"
	"strings"
	"testing"

	"invdash/internal/dashboard"
	"invdash/internal/models"
	"invdash/internal/progress"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
)

type fixedSnapshot dashboard.Snapshot

func (f fixedSnapshot) Snapshot() dashboard.Snapshot { return dashboard.Snapshot(f) }

func TestDashboardView_AbsentLists(t *testing.T) {
	d := NewDashboardView(fixedSnapshot{}, "")
	out := d.View()

	assert.Equal(t, 4, strings.Count(out, "not loaded"), out)
	for _, title := range []string{"Recent customers", "Top customers", "Recent orders", "Top products"} {
		assert.Contains(t, out, title)
	}
}

func TestDashboardView_EmptyVersusLoaded(t *testing.T) {
	d := NewDashboardView(fixedSnapshot{
		State:        dashboard.StateLoaded,
		Customers:    []models.Customer{{FirstName: "Ada", LastName: "Lovelace", CreatedOn: day0}},
		TopCustomers: []models.Customer{{FirstName: "Grace", LastName: "Hopper", ChildrenAtHome: 3}},
		Orders:       []models.Order{},
		Products:     []models.Product{{Name: "Widget", StockUnits: 40}},
	}, "02/01/2006")
	d.Update(tea.WindowSizeMsg{Width: 120, Height: 40})
	out := d.View()

	assert.Contains(t, out, "Ada Lovelace")
	assert.Contains(t, out, "01/03/2026")
	assert.Contains(t, out, "Grace Hopper")
	assert.Contains(t, out, "3 children")
	assert.Contains(t, out, "Widget")
	assert.Contains(t, out, "40 units")
	assert.Equal(t, 1, strings.Count(out, "none"), "orders list is present but empty")
	assert.NotContains(t, out, "not loaded")
}

func TestDashboardView_ReadsController(t *testing.T) {
	b := newFakeBackend()
	ctrl := dashboard.New(dashboard.Deps{Customers: b, Orders: b, Products: b})
	d := NewDashboardView(ctrl, "")

	assert.Contains(t, d.View(), "not loaded")
	ctrl.Load(context.Background())
	out := d.View()
	assert.Contains(t, out, "Grace Hopper")
	assert.Contains(t, out, "#10 Ada Lovelace")
	assert.NotContains(t, out, "not loaded")
}

func TestDashboardView_FocusCycle(t *testing.T) {
	d := NewDashboardView(fixedSnapshot{}, "")
	assert.Equal(t, PanelRecentCustomers, d.Focus.Current())
	assert.Equal(t, dashboard.ItemCustomers, d.FocusedItem())

	d.Update(keyMsg("tab"))
	assert.Equal(t, PanelTopCustomers, d.Focus.Current())
	assert.Equal(t, dashboard.ItemCustomers, d.FocusedItem(), "both customer panels open the customers list")

	d.Update(keyMsg("tab"))
	assert.Equal(t, dashboard.ItemOrders, d.FocusedItem())

	d.Update(keyMsg("tab"))
	assert.Equal(t, dashboard.ItemProducts, d.FocusedItem())

	d.Update(keyMsg("tab"))
	assert.Equal(t, PanelRecentCustomers, d.Focus.Current(), "wraps")

	d.Update(keyMsg("shift+tab"))
	assert.Equal(t, PanelTopProducts, d.Focus.Current())
}

func TestDashboardView_StatusLine(t *testing.T) {
	d := NewDashboardView(fixedSnapshot{}, "")

	d.SetLoading(true)
	assert.Contains(t, d.View(), dashboard.StatusLoading)

	d.SetLoading(false)
	d.SetStatus(progress.Event{Message: dashboard.StatusLoaded, Status: progress.StatusDone})
	assert.Contains(t, d.View(), dashboard.StatusLoaded)

	ch := make(chan progress.Event, 1)
	(&progress.ChanEmitter{Ch: ch}).LogError(dashboard.Category, dashboard.OpLoadOrders, errors.New("db locked"))
	d.SetStatus(<-ch)
	assert.Contains(t, d.View(), "Load Orders: db locked")
}
