package service

import (
	"context"
	"fmt"

	"go.opentelemetry.io/otel/trace"

	"invdash/internal/data"
	"invdash/internal/models"
)

// ProductStore is the persistence ProductService reads from.
type ProductStore interface {
	List(ctx context.Context, req data.Request) ([]models.Product, error)
	Count(ctx context.Context) (int, error)
}

// ProductService reads products.
type ProductService struct {
	repo   ProductStore
	tracer trace.Tracer
}

func NewProductService(repo ProductStore, tracer trace.Tracer) *ProductService {
	return &ProductService{repo: repo, tracer: tracerOrGlobal(tracer)}
}

func (s *ProductService) GetProducts(ctx context.Context, skip, take int, sort data.SortSpec) ([]models.Product, error) {
	return s.List(ctx, data.Request{Skip: skip, Take: take, Sort: sort})
}

func (s *ProductService) List(ctx context.Context, req data.Request) ([]models.Product, error) {
	rows, err := list[models.Product](ctx, s.tracer, "products.list", s.repo, req)
	if err != nil {
		return nil, fmt.Errorf("list products: %w", err)
	}
	return rows, nil
}

func (s *ProductService) Count(ctx context.Context) (int, error) {
	return s.repo.Count(ctx)
}
