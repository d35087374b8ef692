package worker

// stock_alert_worker.go
// Maintains the alerts:low_stock hash: product id → JSON snapshot of a product
// sitting at or below its threshold. A product that recovered is removed.

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"time"

	"tokopos/internal/model"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"
)

const LowStockAlertsKey = "alerts:low_stock"

// LowStockAlert is the value stored per product in LowStockAlertsKey.
type LowStockAlert struct {
	ProductID         int64  `json:"product_id"`
	Name              string `json:"name"`
	StockQuantity     int    `json:"stock_quantity"`
	MinStockThreshold int    `json:"min_stock_threshold"`
	DetectedAt        string `json:"detected_at"`
}

// ProductFinder is the read side the worker needs; repository.ProductRepository satisfies it.
type ProductFinder interface {
	FindByID(ctx context.Context, id int64) (*model.Product, error)
}

type StockAlertWorker struct {
	products ProductFinder
	rdb      *redis.Client
}

func NewStockAlertWorker(products ProductFinder, rdb *redis.Client) *StockAlertWorker {
	return &StockAlertWorker{products: products, rdb: rdb}
}

// Handle re-reads the product so the alert reflects committed state, not
// the state at enqueue time.
func (w *StockAlertWorker) Handle(ctx context.Context, payload json.RawMessage) error {
	var p StockAlertPayload
	if err := json.Unmarshal(payload, &p); err != nil {
		return fmt.Errorf("stock_alert: decode payload: %w", err)
	}
	field := strconv.FormatInt(p.ProductID, 10)

	product, err := w.products.FindByID(ctx, p.ProductID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return w.rdb.HDel(ctx, LowStockAlertsKey, field).Err()
		}
		return fmt.Errorf("stock_alert: load product %d: %w", p.ProductID, err)
	}

	if !product.IsLowStock() {
		return w.rdb.HDel(ctx, LowStockAlertsKey, field).Err()
	}

	alert := LowStockAlert{
		ProductID:         product.ID,
		Name:              product.Name,
		StockQuantity:     product.StockQuantity,
		MinStockThreshold: product.MinStockThreshold,
		DetectedAt:        time.Now().UTC().Format(time.RFC3339),
	}
	data, err := json.Marshal(alert)
	if err != nil {
		return err
	}
	if err := w.rdb.HSet(ctx, LowStockAlertsKey, field, data).Err(); err != nil {
		return err
	}
	log.Info().
		Int64("product_id", product.ID).
		Int("stock", product.StockQuantity).
		Int("threshold", product.MinStockThreshold).
		Msg("stock_alert: product at or below threshold")
	return nil
}

// LowStockAlerts returns the current alert set.
func LowStockAlerts(ctx context.Context, rdb *redis.Client) ([]LowStockAlert, error) {
	values, err := rdb.HVals(ctx, LowStockAlertsKey).Result()
	if err != nil {
		return nil, err
	}
	alerts := make([]LowStockAlert, 0, len(values))
	for _, v := range values {
		var a LowStockAlert
		if err := json.Unmarshal([]byte(v), &a); err != nil {
			continue
		}
		alerts = append(alerts, a)
	}
	return alerts, nil
}
