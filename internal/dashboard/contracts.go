package dashboard

import (
	"context"

	"invdash/internal/data"
	"invdash/internal/models"
)

// CustomerService reads customers.
type CustomerService interface {
	GetCustomers(ctx context.Context, skip, take int, sort data.SortSpec) ([]models.Customer, error)
}

// OrderService reads orders.
type OrderService interface {
	GetOrders(ctx context.Context, skip, take int, sort data.SortSpec) ([]models.Order, error)
}

// ProductService reads products.
type ProductService interface {
	GetProducts(ctx context.Context, skip, take int, sort data.SortSpec) ([]models.Product, error)
}

// ListTarget identifies the list view a selection navigates to.
type ListTarget int

const (
	TargetCustomers ListTarget = iota
	TargetOrders
	TargetProducts
)

func (t ListTarget) String() string {
	switch t {
	case TargetCustomers:
		return "Customers"
	case TargetOrders:
		return "Orders"
	case TargetProducts:
		return "Products"
	default:
		return "Unknown"
	}
}

// ListArgs is carried to the list view on navigation.
type ListArgs struct {
	Sort data.SortSpec
}

// Navigator opens list views.
type Navigator interface {
	Navigate(target ListTarget, args ListArgs)
}

// StatusReporter shows transient status messages.
type StatusReporter interface {
	StartStatus(msg string)
	EndStatus(msg string)
}

// ErrorLogger records swallowed errors under a category and operation label.
type ErrorLogger interface {
	LogError(category, operation string, err error)
}

type nopStatus struct{}

func (nopStatus) StartStatus(string) {}
func (nopStatus) EndStatus(string)   {}

type nopLogger struct{}

func (nopLogger) LogError(string, string, error) {}

// ErrorLoggers fans one error out to every non-nil logger.
type ErrorLoggers []ErrorLogger

func (ls ErrorLoggers) LogError(category, operation string, err error) {
	for _, l := range ls {
		if l != nil {
			l.LogError(category, operation, err)
		}
	}
}
