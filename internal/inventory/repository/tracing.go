package repository

import (
	"context"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/tair/stockledger/internal/inventory/domain"
	"github.com/tair/stockledger/pkg/metrics"
)

var tracer = otel.Tracer("inventory-repository")

// InventoryRepositoryWithTracing wraps any store with spans and timing metrics
type InventoryRepositoryWithTracing struct {
	next   domain.InventoryRepository
	driver string
}

// NewInventoryRepositoryWithTracing creates a new repository with tracing
func NewInventoryRepositoryWithTracing(next domain.InventoryRepository, driver string) *InventoryRepositoryWithTracing {
	return &InventoryRepositoryWithTracing{next: next, driver: driver}
}

// LoadAll with tracing
func (r *InventoryRepositoryWithTracing) LoadAll(ctx context.Context) (domain.Snapshot, error) {
	ctx, span := tracer.Start(ctx, "repository.LoadAll",
		trace.WithAttributes(attribute.String("store.driver", r.driver)),
	)
	defer span.End()

	start := time.Now()
	snap, err := r.next.LoadAll(ctx)
	metrics.ObserveStoreOperation(r.driver, "load", start, err)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return domain.Snapshot{}, err
	}

	span.SetAttributes(snapshotAttributes(snap)...)
	return snap, nil
}

// SaveAll with tracing
func (r *InventoryRepositoryWithTracing) SaveAll(ctx context.Context, snap domain.Snapshot) error {
	ctx, span := tracer.Start(ctx, "repository.SaveAll",
		trace.WithAttributes(append(snapshotAttributes(snap), attribute.String("store.driver", r.driver))...),
	)
	defer span.End()

	start := time.Now()
	err := r.next.SaveAll(ctx, snap)
	metrics.ObserveStoreOperation(r.driver, "save", start, err)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return err
	}
	return nil
}

func snapshotAttributes(s domain.Snapshot) []attribute.KeyValue {
	return []attribute.KeyValue{
		attribute.Int("snapshot.items", len(s.Inventory)),
		attribute.Int("snapshot.transactions", len(s.Transactions)),
		attribute.Int("snapshot.users", len(s.Users)),
	}
}
