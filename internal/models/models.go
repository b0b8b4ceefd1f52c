// Package models holds the lightweight records shown on the dashboard and list views.
package models

import (
	"fmt"
	"time"
)

// Customer is a customer summary.
type Customer struct {
	ID             int64     `json:"id"`
	FirstName      string    `json:"first_name"`
	LastName       string    `json:"last_name"`
	Email          string    `json:"email"`
	City           string    `json:"city"`
	ChildrenAtHome int       `json:"children_at_home"`
	CreatedOn      time.Time `json:"created_on"`
	LastModifiedOn time.Time `json:"last_modified_on"`
}

// FullName returns "First Last", trimming a missing part.
func (c Customer) FullName() string {
	switch {
	case c.FirstName == "":
		return c.LastName
	case c.LastName == "":
		return c.FirstName
	}
	return c.FirstName + " " + c.LastName
}

// Order is an order summary. CustomerName is denormalized from the customers table.
type Order struct {
	ID           int64     `json:"id"`
	CustomerID   int64     `json:"customer_id"`
	CustomerName string    `json:"customer_name"`
	OrderDate    time.Time `json:"order_date"`
	ShipCity     string    `json:"ship_city"`
	Status       string    `json:"status"`
	TotalCents   int64     `json:"total_cents"`
}

// Product is a product summary.
type Product struct {
	ID             int64     `json:"id"`
	Name           string    `json:"name"`
	Category       string    `json:"category"`
	ListPriceCents int64     `json:"list_price_cents"`
	StockUnits     int       `json:"stock_units"`
	CreatedOn      time.Time `json:"created_on"`
}

// FormatCents renders an amount in cents as "123.45".
func FormatCents(cents int64) string {
	sign := ""
	if cents < 0 {
		sign = "-"
		cents = -cents
	}
	return fmt.Sprintf("%s%d.%02d", sign, cents/100, cents%100)
}
