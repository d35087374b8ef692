// Package cache holds read-through caches for hot catalog lookups.
package cache

import (
	"context"
	"time"

	"tokopos/internal/dto"
)

// ProductCache caches barcode lookups. Entries embed the stock count, so
// every stock write path invalidates the product's barcode key.
type ProductCache interface {
	Get(ctx context.Context, barcode string) (*dto.ProductResponse, bool, error)
	Set(ctx context.Context, barcode string, value *dto.ProductResponse, ttl time.Duration) error
	Invalidate(ctx context.Context, barcodes ...string) error
}

// NoopProductCache is used when Redis is not configured and in tests.
type NoopProductCache struct{}

func (NoopProductCache) Get(_ context.Context, _ string) (*dto.ProductResponse, bool, error) {
	return nil, false, nil
}

func (NoopProductCache) Set(_ context.Context, _ string, _ *dto.ProductResponse, _ time.Duration) error {
	return nil
}

func (NoopProductCache) Invalidate(_ context.Context, _ ...string) error { return nil }
