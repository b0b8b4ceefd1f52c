package service

import (
	"context"
	"fmt"

	"go.opentelemetry.io/otel/trace"

	"invdash/internal/data"
	"invdash/internal/models"
)

// OrderStore is the persistence OrderService reads from.
type OrderStore interface {
	List(ctx context.Context, req data.Request) ([]models.Order, error)
	Count(ctx context.Context) (int, error)
}

// OrderService reads orders.
type OrderService struct {
	repo   OrderStore
	tracer trace.Tracer
}

func NewOrderService(repo OrderStore, tracer trace.Tracer) *OrderService {
	return &OrderService{repo: repo, tracer: tracerOrGlobal(tracer)}
}

func (s *OrderService) GetOrders(ctx context.Context, skip, take int, sort data.SortSpec) ([]models.Order, error) {
	return s.List(ctx, data.Request{Skip: skip, Take: take, Sort: sort})
}

func (s *OrderService) List(ctx context.Context, req data.Request) ([]models.Order, error) {
	rows, err := list[models.Order](ctx, s.tracer, "orders.list", s.repo, req)
	if err != nil {
		return nil, fmt.Errorf("list orders: %w", err)
	}
	return rows, nil
}

func (s *OrderService) Count(ctx context.Context) (int, error) {
	return s.repo.Count(ctx)
}
