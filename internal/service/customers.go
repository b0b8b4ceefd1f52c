package service

import (
	"context"
	"fmt"

	"go.opentelemetry.io/otel/trace"

	"invdash/internal/data"
	"invdash/internal/models"
)

// CustomerStore is the persistence CustomerService reads from.
type CustomerStore interface {
	List(ctx context.Context, req data.Request) ([]models.Customer, error)
	Count(ctx context.Context) (int, error)
}

// CustomerService reads customers.
type CustomerService struct {
	repo   CustomerStore
	tracer trace.Tracer
}

// NewCustomerService wraps repo. A nil tracer uses the global provider.
func NewCustomerService(repo CustomerStore, tracer trace.Tracer) *CustomerService {
	return &CustomerService{repo: repo, tracer: tracerOrGlobal(tracer)}
}

// GetCustomers returns take customers after skip, in sort order.
func (s *CustomerService) GetCustomers(ctx context.Context, skip, take int, sort data.SortSpec) ([]models.Customer, error) {
	return s.List(ctx, data.Request{Skip: skip, Take: take, Sort: sort})
}

// List runs a full request, including the optional text query.
func (s *CustomerService) List(ctx context.Context, req data.Request) ([]models.Customer, error) {
	rows, err := list[models.Customer](ctx, s.tracer, "customers.list", s.repo, req)
	if err != nil {
		return nil, fmt.Errorf("list customers: %w", err)
	}
	return rows, nil
}

// Count returns the number of customers.
func (s *CustomerService) Count(ctx context.Context) (int, error) {
	return s.repo.Count(ctx)
}
