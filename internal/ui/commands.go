package ui

import (
	"context"
	"time"

	"invdash/internal/dashboard"
	"invdash/internal/data"
	"invdash/internal/progress"

	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"
)

// loadDashboardCmd runs a full controller load off the UI goroutine.
func loadDashboardCmd(ctrl *dashboard.Controller, logger *zap.Logger, id string) tea.Cmd {
	return func() tea.Msg {
		log := logger.With(zap.String("load_id", id))
		start := time.Now()
		log.Info("dashboard load started")

		ctrl.Load(context.Background())

		snap := ctrl.Snapshot()
		log.Info("dashboard load finished",
			zap.Duration("elapsed", time.Since(start)),
			zap.Int("customers", len(snap.Customers)),
			zap.Int("top_customers", len(snap.TopCustomers)),
			zap.Int("orders", len(snap.Orders)),
			zap.Int("products", len(snap.Products)),
		)
		return DashboardLoadedMsg{LoadID: id}
	}
}

// loadListCmd fetches one page for a list view.
func loadListCmd(src *ListSource, target dashboard.ListTarget, page int, req data.Request) tea.Cmd {
	return func() tea.Msg {
		items, err := src.Fetch(context.Background(), target, req)
		return ListLoadedMsg{Target: target, Page: page, Sort: req.Sort, Items: items, Err: err}
	}
}

// waitForEvent blocks until the next progress event. The app re-arms it after each event.
func waitForEvent(ch <-chan progress.Event) tea.Cmd {
	if ch == nil {
		return nil
	}
	return func() tea.Msg {
		ev, ok := <-ch
		if !ok {
			return nil
		}
		return ev
	}
}
