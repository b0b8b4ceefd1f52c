package service

import (
	"database/sql"

	"go.opentelemetry.io/otel/trace"

	"invdash/internal/store"
)

// Set bundles the three services over one database.
type Set struct {
	Customers *CustomerService
	Orders    *OrderService
	Products  *ProductService
}

// NewSet builds services backed by the SQLite repositories on db.
func NewSet(db *sql.DB, tracer trace.Tracer) Set {
	return Set{
		Customers: NewCustomerService(store.NewCustomerRepo(db), tracer),
		Orders:    NewOrderService(store.NewOrderRepo(db), tracer),
		Products:  NewProductService(store.NewProductRepo(db), tracer),
	}
}
