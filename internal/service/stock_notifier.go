package service

import (
	"context"

	"tokopos/internal/cache"
	"tokopos/internal/model"

	"github.com/rs/zerolog/log"
)

// StockAlerter enqueues a low-stock check for a product. Implemented by
// worker.Dispatcher.
type StockAlerter interface {
	EnqueueStockAlert(ctx context.Context, productID int64) error
}

// StockNotifier runs the post-commit side effects of a stock change:
// barcode cache invalidation and low-stock alert jobs. Both are best effort;
// the committed unit is never undone because of them.
type StockNotifier struct {
	cache   cache.ProductCache
	alerter StockAlerter
}

func NewStockNotifier(c cache.ProductCache, alerter StockAlerter) *StockNotifier {
	if c == nil {
		c = cache.NoopProductCache{}
	}
	return &StockNotifier{cache: c, alerter: alerter}
}

// StockChanged must be called after the transaction that changed the given
// products has committed. products carry their post-commit stock.
func (n *StockNotifier) StockChanged(ctx context.Context, products ...*model.Product) {
	if n == nil {
		return
	}
	var barcodes []string
	for _, p := range products {
		if p.Barcode != nil {
			barcodes = append(barcodes, *p.Barcode)
		}
	}
	if err := n.cache.Invalidate(ctx, barcodes...); err != nil {
		log.Warn().Err(err).Strs("barcodes", barcodes).Msg("product cache invalidation failed")
	}

	if n.alerter == nil {
		return
	}
	for _, p := range products {
		if !p.IsLowStock() {
			continue
		}
		if err := n.alerter.EnqueueStockAlert(ctx, p.ID); err != nil {
			log.Warn().Err(err).Int64("product_id", p.ID).Msg("failed to enqueue stock alert")
		}
	}
}

// Recheck asks the alert worker to re-evaluate a product whose low-stock
// status may have changed without a stock movement, or that left the band.
func (n *StockNotifier) Recheck(ctx context.Context, productID int64) {
	if n == nil || n.alerter == nil {
		return
	}
	if err := n.alerter.EnqueueStockAlert(ctx, productID); err != nil {
		log.Warn().Err(err).Int64("product_id", productID).Msg("failed to enqueue stock alert")
	}
}
