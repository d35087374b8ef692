package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"tokopos/internal/dto"
	"tokopos/internal/model"
	"tokopos/internal/repository"

	"github.com/rs/zerolog/log"
	"gorm.io/gorm"
)

// InventoryService owns every write to a product's stock counter and the
// movement log that mirrors it.
type InventoryService interface {
	AdjustStock(ctx context.Context, req dto.AdjustStockRequest) (*dto.ProductResponse, error)
	ReceiveStock(ctx context.Context, req dto.ReceiveStockRequest) (*dto.ProductResponse, error)
	ListMovements(ctx context.Context, filter dto.MovementFilter) (*dto.StockMovementListResponse, error)
	Reconcile(ctx context.Context) (*dto.ReconcileResponse, error)
	// ApplyMovementTx is called within a sale or product transaction and requires a live *gorm.DB tx.
	// It moves the product's counter by m.Quantity and appends m.
	ApplyMovementTx(tx *gorm.DB, m *model.StockMovement) error
}

type inventoryService struct {
	products  repository.ProductRepository
	movements repository.StockMovementRepository
	notifier  *StockNotifier
}

func NewInventoryService(
	products repository.ProductRepository,
	movements repository.StockMovementRepository,
	notifier *StockNotifier,
) InventoryService {
	return &inventoryService{products: products, movements: movements, notifier: notifier}
}

// runTx executes fn inside a GORM transaction. Any error returned by fn rolls
// the whole unit back and is returned unchanged.
func runTx(ctx context.Context, db *gorm.DB, fn func(tx *gorm.DB) error) error {
	return db.WithContext(ctx).Transaction(fn)
}

func (s *inventoryService) ApplyMovementTx(tx *gorm.DB, m *model.StockMovement) error {
	if err := s.products.AddStockTx(tx, m.ProductID, m.Quantity); err != nil {
		return fmt.Errorf("update stock of product %d: %w", m.ProductID, err)
	}
	if err := s.movements.CreateTx(tx, m); err != nil {
		return fmt.Errorf("record stock movement for product %d: %w", m.ProductID, err)
	}
	return nil
}

// lockProductTx loads one product under a row lock or returns NotFoundError.
func (s *inventoryService) lockProductTx(tx *gorm.DB, id int64) (*model.Product, error) {
	locked, err := s.products.LockByIDsTx(tx, []int64{id})
	if err != nil {
		return nil, err
	}
	if len(locked) == 0 {
		return nil, productNotFound(id)
	}
	return &locked[0], nil
}

// ── AdjustStock ───────────────────────────────────────────────────────────────
// Sets stock to an absolute value and records the signed delta (new − old)
// as a single adjustment movement. A zero delta still produces a movement.

func (s *inventoryService) AdjustStock(ctx context.Context, req dto.AdjustStockRequest) (*dto.ProductResponse, error) {
	if req.NewQuantity == nil {
		return nil, &ValidationError{Field: "new_quantity", Reason: "is required"}
	}
	if *req.NewQuantity < 0 {
		return nil, &ValidationError{Field: "new_quantity", Reason: "must not be negative"}
	}

	var product *model.Product
	var delta int
	var wasLow bool
	err := runTx(ctx, s.products.DB(), func(tx *gorm.DB) error {
		p, err := s.lockProductTx(tx, req.ProductID)
		if err != nil {
			return err
		}
		wasLow = p.IsLowStock()
		delta = *req.NewQuantity - p.StockQuantity
		mov := &model.StockMovement{
			ProductID:     p.ID,
			Kind:          model.MovementAdjustment,
			Quantity:      delta,
			ReferenceKind: strPtr(model.ReferenceAdjustment),
			Notes:         req.Notes,
			StockBefore:   p.StockQuantity,
			StockAfter:    *req.NewQuantity,
		}
		if err := s.ApplyMovementTx(tx, mov); err != nil {
			return err
		}
		p.StockQuantity = *req.NewQuantity
		p.UpdatedAt = time.Now()
		product = p
		return nil
	})
	if err != nil {
		return nil, err
	}

	log.Info().
		Int64("product_id", product.ID).
		Int("delta", delta).
		Int("stock", product.StockQuantity).
		Msg("stock adjusted")
	s.notifier.StockChanged(ctx, product)
	if wasLow && !product.IsLowStock() {
		s.notifier.Recheck(ctx, product.ID)
	}
	return productToResponse(product), nil
}

// ── ReceiveStock ──────────────────────────────────────────────────────────────
// Books incoming goods: stock += quantity with an "in" movement referencing a purchase.

func (s *inventoryService) ReceiveStock(ctx context.Context, req dto.ReceiveStockRequest) (*dto.ProductResponse, error) {
	if req.Quantity <= 0 {
		return nil, &ValidationError{Field: "quantity", Reason: "must be positive"}
	}

	var product *model.Product
	var wasLow bool
	err := runTx(ctx, s.products.DB(), func(tx *gorm.DB) error {
		p, err := s.lockProductTx(tx, req.ProductID)
		if err != nil {
			return err
		}
		wasLow = p.IsLowStock()
		mov := &model.StockMovement{
			ProductID:     p.ID,
			Kind:          model.MovementIn,
			Quantity:      req.Quantity,
			ReferenceKind: strPtr(model.ReferencePurchase),
			Notes:         req.Notes,
			StockBefore:   p.StockQuantity,
			StockAfter:    p.StockQuantity + req.Quantity,
		}
		if err := s.ApplyMovementTx(tx, mov); err != nil {
			return err
		}
		p.StockQuantity = mov.StockAfter
		p.UpdatedAt = time.Now()
		product = p
		return nil
	})
	if err != nil {
		return nil, err
	}

	log.Info().Int64("product_id", product.ID).Int("quantity", req.Quantity).Msg("stock received")
	s.notifier.StockChanged(ctx, product)
	if wasLow && !product.IsLowStock() {
		s.notifier.Recheck(ctx, product.ID)
	}
	return productToResponse(product), nil
}

func (s *inventoryService) ListMovements(ctx context.Context, filter dto.MovementFilter) (*dto.StockMovementListResponse, error) {
	if filter.Page < 1 {
		filter.Page = 1
	}
	if filter.Limit < 1 || filter.Limit > 500 {
		filter.Limit = 100
	}
	movements, total, err := s.movements.List(ctx, filter)
	if err != nil {
		return nil, err
	}
	data := make([]dto.StockMovementResponse, 0, len(movements))
	for i := range movements {
		data = append(data, movementToResponse(&movements[i]))
	}
	return &dto.StockMovementListResponse{Data: data, Total: total, Page: filter.Page, Limit: filter.Limit}, nil
}

// ── Reconcile ─────────────────────────────────────────────────────────────────
// Checks the stock = Σ movements invariant for every product. The stored
// counter is never rewritten here; mismatches are reported for a human to act on.

func (s *inventoryService) Reconcile(ctx context.Context) (*dto.ReconcileResponse, error) {
	drift, err := s.movements.FindDrift(ctx)
	if err != nil {
		return nil, fmt.Errorf("reconcile stock: %w", err)
	}
	mismatches := make([]dto.StockMismatch, 0, len(drift))
	for _, d := range drift {
		mismatches = append(mismatches, dto.StockMismatch{
			ProductID:     d.ProductID,
			ProductName:   d.ProductName,
			StockQuantity: d.StockQuantity,
			MovementSum:   d.MovementSum,
			Drift:         d.StockQuantity - d.MovementSum,
		})
		log.Error().
			Int64("product_id", d.ProductID).
			Int("stock_quantity", d.StockQuantity).
			Int("movement_sum", d.MovementSum).
			Msg("stock counter disagrees with movement log")
	}
	return &dto.ReconcileResponse{
		Consistent: len(mismatches) == 0,
		Mismatches: mismatches,
		CheckedAt:  time.Now().Format(timeLayout),
	}, nil
}

// isNotFound reports whether err is GORM's "record not found".
func isNotFound(err error) bool {
	return errors.Is(err, gorm.ErrRecordNotFound)
}
