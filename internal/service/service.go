// Package service exposes read operations over the store with paging validation and tracing.
package service

import (
	"context"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"invdash/internal/data"
	"invdash/internal/telemetry"
)

// lister is the repository method every service wraps.
type lister[T any] interface {
	List(ctx context.Context, req data.Request) ([]T, error)
}

func tracerOrGlobal(t trace.Tracer) trace.Tracer {
	if t != nil {
		return t
	}
	return telemetry.Tracer(nil)
}

// list validates req, then runs repo.List inside a span named spanName.
func list[T any](ctx context.Context, tracer trace.Tracer, spanName string, repo lister[T], req data.Request) ([]T, error) {
	ctx, span := tracer.Start(ctx, spanName, trace.WithAttributes(
		attribute.Int("skip", req.Skip),
		attribute.Int("take", req.Take),
		attribute.String("sort.key", string(req.Sort.Key)),
		attribute.Bool("sort.desc", req.Sort.Descending),
	))
	defer span.End()

	if err := data.ValidatePaging(req.Skip, req.Take); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}
	rows, err := repo.List(ctx, req)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}
	span.SetAttributes(attribute.Int("rows", len(rows)))
	return rows, nil
}
