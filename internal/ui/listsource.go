package ui

import (
	"context"
	"fmt"

	"invdash/internal/dashboard"
	"invdash/internal/data"
	"invdash/internal/models"

	"github.com/charmbracelet/bubbles/list"
)

// CustomerLister pages through customers.
type CustomerLister interface {
	List(ctx context.Context, req data.Request) ([]models.Customer, error)
}

// OrderLister pages through orders.
type OrderLister interface {
	List(ctx context.Context, req data.Request) ([]models.Order, error)
}

// ProductLister pages through products.
type ProductLister interface {
	List(ctx context.Context, req data.Request) ([]models.Product, error)
}

// ListSource backs the list views. Nil listers yield an error on fetch.
type ListSource struct {
	Customers  CustomerLister
	Orders     OrderLister
	Products   ProductLister
	DateFormat string
}

// Fetch loads one page for target and converts the rows to list items.
func (s *ListSource) Fetch(ctx context.Context, target dashboard.ListTarget, req data.Request) ([]list.Item, error) {
	layout := s.DateFormat
	if layout == "" {
		layout = defaultDateFormat
	}
	switch target {
	case dashboard.TargetCustomers:
		if s.Customers == nil {
			break
		}
		rows, err := s.Customers.List(ctx, req)
		if err != nil {
			return nil, err
		}
		items := make([]list.Item, len(rows))
		for i, c := range rows {
			items[i] = customerItem{Customer: c, layout: layout}
		}
		return items, nil
	case dashboard.TargetOrders:
		if s.Orders == nil {
			break
		}
		rows, err := s.Orders.List(ctx, req)
		if err != nil {
			return nil, err
		}
		items := make([]list.Item, len(rows))
		for i, o := range rows {
			items[i] = orderItem{Order: o, layout: layout}
		}
		return items, nil
	case dashboard.TargetProducts:
		if s.Products == nil {
			break
		}
		rows, err := s.Products.List(ctx, req)
		if err != nil {
			return nil, err
		}
		items := make([]list.Item, len(rows))
		for i, p := range rows {
			items[i] = productItem{Product: p}
		}
		return items, nil
	}
	return nil, fmt.Errorf("no source for %s", target)
}

const defaultDateFormat = "2006-01-02"

type customerItem struct {
	models.Customer
	layout string
}

func (c customerItem) FilterValue() string { return c.FullName() }
func (c customerItem) Title() string       { return c.FullName() }
func (c customerItem) Description() string {
	return fmt.Sprintf("%s · %s · created %s", c.Email, c.City, c.CreatedOn.Format(c.layout))
}

type orderItem struct {
	models.Order
	layout string
}

func (o orderItem) FilterValue() string { return o.CustomerName }
func (o orderItem) Title() string {
	return fmt.Sprintf("#%d  %s  %s", o.ID, o.CustomerName, models.FormatCents(o.TotalCents))
}
func (o orderItem) Description() string {
	return fmt.Sprintf("%s · %s · %s", o.OrderDate.Format(o.layout), o.Status, o.ShipCity)
}

type productItem struct {
	models.Product
}

func (p productItem) FilterValue() string { return p.Name }
func (p productItem) Title() string       { return p.Name }
func (p productItem) Description() string {
	return fmt.Sprintf("%s · %s · %d in stock", p.Category, models.FormatCents(p.ListPriceCents), p.StockUnits)
}
