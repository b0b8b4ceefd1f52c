package ui

import (
	"context"
	"sync"
	"time"

	"invdash/internal/data"
	"invdash/internal/models"

	tea "github.com/charmbracelet/bubbletea"
)

func keyMsg(s string) tea.KeyMsg {
	switch s {
	case "space", " ":
		return tea.KeyMsg{Type: tea.KeySpace}
	case "esc":
		return tea.KeyMsg{Type: tea.KeyEsc}
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	case "tab":
		return tea.KeyMsg{Type: tea.KeyTab}
	case "shift+tab":
		return tea.KeyMsg{Type: tea.KeyShiftTab}
	case "ctrl+c":
		return tea.KeyMsg{Type: tea.KeyCtrlC}
	default:
		return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
	}
}

// keys feeds a space-separated key sequence ("SPC g c") and returns the last command.
func keys(m tea.Model, seq ...string) tea.Cmd {
	var cmd tea.Cmd
	for _, s := range seq {
		if s == "SPC" {
			s = " "
		}
		_, cmd = m.Update(keyMsg(s))
	}
	return cmd
}

var day0 = time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

// fakeBackend serves fixed rows for all three entities and records list requests.
type fakeBackend struct {
	mu        sync.Mutex
	customers []models.Customer
	orders    []models.Order
	products  []models.Product
	err       error
	requests  []data.Request
}

func newFakeBackend() *fakeBackend {
	return &fakeBackend{
		customers: []models.Customer{
			{ID: 1, FirstName: "Ada", LastName: "Lovelace", City: "London", ChildrenAtHome: 2, CreatedOn: day0},
			{ID: 2, FirstName: "Grace", LastName: "Hopper", City: "Arlington", ChildrenAtHome: 0, CreatedOn: day0.AddDate(0, 0, 1)},
		},
		orders: []models.Order{
			{ID: 10, CustomerID: 1, CustomerName: "Ada Lovelace", OrderDate: day0, Status: "shipped", TotalCents: 12950},
		},
		products: []models.Product{
			{ID: 100, Name: "Widget", Category: "Parts", ListPriceCents: 999, StockUnits: 40},
		},
	}
}

func (f *fakeBackend) record(req data.Request) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.requests = append(f.requests, req)
	return f.err
}

func (f *fakeBackend) lastRequest() data.Request {
	f.mu.Lock()
	defer f.mu.Unlock()
	if len(f.requests) == 0 {
		return data.Request{}
	}
	return f.requests[len(f.requests)-1]
}

func window[T any](rows []T, req data.Request) []T {
	if req.Skip >= len(rows) {
		return []T{}
	}
	end := min(req.Skip+req.Take, len(rows))
	return rows[req.Skip:end]
}

func (f *fakeBackend) GetCustomers(_ context.Context, skip, take int, sort data.SortSpec) ([]models.Customer, error) {
	return fakeList(f, f.customers, data.Request{Skip: skip, Take: take, Sort: sort})
}

func (f *fakeBackend) GetOrders(_ context.Context, skip, take int, sort data.SortSpec) ([]models.Order, error) {
	return fakeList(f, f.orders, data.Request{Skip: skip, Take: take, Sort: sort})
}

func (f *fakeBackend) GetProducts(_ context.Context, skip, take int, sort data.SortSpec) ([]models.Product, error) {
	return fakeList(f, f.products, data.Request{Skip: skip, Take: take, Sort: sort})
}

func fakeList[T any](f *fakeBackend, rows []T, req data.Request) ([]T, error) {
	if err := f.record(req); err != nil {
		return nil, err
	}
	return window(rows, req), nil
}

// The list views need List on each entity; one wrapper per entity keeps the method sets apart.

type customerBackend struct{ *fakeBackend }

func (b customerBackend) List(_ context.Context, req data.Request) ([]models.Customer, error) {
	return fakeList(b.fakeBackend, b.customers, req)
}

type orderBackend struct{ *fakeBackend }

func (b orderBackend) List(_ context.Context, req data.Request) ([]models.Order, error) {
	return fakeList(b.fakeBackend, b.orders, req)
}

type productBackend struct{ *fakeBackend }

func (b productBackend) List(_ context.Context, req data.Request) ([]models.Product, error) {
	return fakeList(b.fakeBackend, b.products, req)
}
