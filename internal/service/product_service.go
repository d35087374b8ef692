package service

import (
	"context"
	"fmt"
	"time"

	"tokopos/internal/cache"
	"tokopos/internal/dto"
	"tokopos/internal/model"
	"tokopos/internal/repository"

	"github.com/rs/zerolog/log"
	"gorm.io/gorm"
)

// ProductService defines the catalog contract. It never writes stock except
// for the opening quantity, which goes through the movement log.
type ProductService interface {
	Create(ctx context.Context, req dto.CreateProductRequest) (*dto.ProductResponse, error)
	GetByID(ctx context.Context, id int64) (*dto.ProductResponse, error)
	GetByBarcode(ctx context.Context, barcode string) (*dto.ProductResponse, error)
	List(ctx context.Context, filter dto.ProductFilter) (*dto.ProductListResponse, error)
	Update(ctx context.Context, id int64, req dto.UpdateProductRequest) (*dto.ProductResponse, error)
	ListLowStock(ctx context.Context) ([]dto.ProductResponse, error)
}

type productService struct {
	repo      repository.ProductRepository
	inventory InventoryService
	cache     cache.ProductCache
	cacheTTL  time.Duration
	notifier  *StockNotifier
}

func NewProductService(
	repo repository.ProductRepository,
	inventory InventoryService,
	c cache.ProductCache,
	cacheTTL time.Duration,
	notifier *StockNotifier,
) ProductService {
	if c == nil {
		c = cache.NoopProductCache{}
	}
	return &productService{repo: repo, inventory: inventory, cache: c, cacheTTL: cacheTTL, notifier: notifier}
}

func (s *productService) checkBarcode(ctx context.Context, barcode *string, excludeID int64) error {
	if barcode == nil || *barcode == "" {
		return nil
	}
	taken, err := s.repo.BarcodeTaken(ctx, *barcode, excludeID)
	if err != nil {
		return err
	}
	if taken {
		return &StateConflictError{Reason: fmt.Sprintf("barcode %q is already in use", *barcode)}
	}
	return nil
}

// Create inserts the product with zero stock and, when an opening quantity is
// given, books it as an "in" movement in the same transaction.
func (s *productService) Create(ctx context.Context, req dto.CreateProductRequest) (*dto.ProductResponse, error) {
	if req.Price.IsNegative() {
		return nil, &ValidationError{Field: "price", Reason: "must not be negative"}
	}
	if err := checkMoney("price", req.Price); err != nil {
		return nil, err
	}
	if req.StockQuantity < 0 {
		return nil, &ValidationError{Field: "stock_quantity", Reason: "must not be negative"}
	}
	if err := s.checkBarcode(ctx, req.Barcode, 0); err != nil {
		return nil, err
	}

	p := &model.Product{
		Name:              req.Name,
		Price:             req.Price,
		Unit:              req.Unit,
		Category:          req.Category,
		Barcode:           req.Barcode,
		MinStockThreshold: 5,
		IsActive:          true,
	}
	if req.MinStockThreshold != nil {
		p.MinStockThreshold = *req.MinStockThreshold
	}

	err := runTx(ctx, s.repo.DB(), func(tx *gorm.DB) error {
		if err := s.repo.CreateTx(tx, p); err != nil {
			return fmt.Errorf("insert product: %w", err)
		}
		if req.StockQuantity == 0 {
			return nil
		}
		mov := &model.StockMovement{
			ProductID:   p.ID,
			Kind:        model.MovementIn,
			Quantity:    req.StockQuantity,
			Notes:       strPtr("Opening stock"),
			StockBefore: 0,
			StockAfter:  req.StockQuantity,
		}
		if err := s.inventory.ApplyMovementTx(tx, mov); err != nil {
			return err
		}
		p.StockQuantity = req.StockQuantity
		return nil
	})
	if err != nil {
		return nil, err
	}

	log.Info().Int64("product_id", p.ID).Str("name", p.Name).Int("stock", p.StockQuantity).Msg("product created")
	return productToResponse(p), nil
}

func (s *productService) find(ctx context.Context, id int64) (*model.Product, error) {
	p, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if isNotFound(err) {
			return nil, productNotFound(id)
		}
		return nil, err
	}
	return p, nil
}

func (s *productService) GetByID(ctx context.Context, id int64) (*dto.ProductResponse, error) {
	p, err := s.find(ctx, id)
	if err != nil {
		return nil, err
	}
	return productToResponse(p), nil
}

// GetByBarcode is the scanner lookup. Cache errors degrade to a DB read.
func (s *productService) GetByBarcode(ctx context.Context, barcode string) (*dto.ProductResponse, error) {
	if cached, ok, err := s.cache.Get(ctx, barcode); err != nil {
		log.Warn().Err(err).Str("barcode", barcode).Msg("product cache read failed")
	} else if ok {
		return cached, nil
	}

	p, err := s.repo.FindByBarcode(ctx, barcode)
	if err != nil {
		if isNotFound(err) {
			return nil, &NotFoundError{Resource: ResourceProduct, Key: barcode}
		}
		return nil, err
	}
	resp := productToResponse(p)
	if err := s.cache.Set(ctx, barcode, resp, s.cacheTTL); err != nil {
		log.Warn().Err(err).Str("barcode", barcode).Msg("product cache write failed")
	}
	return resp, nil
}

func (s *productService) List(ctx context.Context, filter dto.ProductFilter) (*dto.ProductListResponse, error) {
	if filter.Page < 1 {
		filter.Page = 1
	}
	if filter.Limit < 1 || filter.Limit > 500 {
		filter.Limit = 50
	}
	products, total, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, err
	}
	data := make([]dto.ProductResponse, 0, len(products))
	for i := range products {
		data = append(data, *productToResponse(&products[i]))
	}
	return &dto.ProductListResponse{Data: data, Total: total, Page: filter.Page, Limit: filter.Limit}, nil
}

// Update applies catalog fields only. Both the old and the new barcode are
// evicted from the cache.
func (s *productService) Update(ctx context.Context, id int64, req dto.UpdateProductRequest) (*dto.ProductResponse, error) {
	p, err := s.find(ctx, id)
	if err != nil {
		return nil, err
	}
	if req.Price != nil {
		if req.Price.IsNegative() {
			return nil, &ValidationError{Field: "price", Reason: "must not be negative"}
		}
		if err := checkMoney("price", *req.Price); err != nil {
			return nil, err
		}
	}
	if err := s.checkBarcode(ctx, req.Barcode, id); err != nil {
		return nil, err
	}

	wasLow := p.IsLowStock()
	var stale []string
	if p.Barcode != nil {
		stale = append(stale, *p.Barcode)
	}

	if req.Name != nil {
		p.Name = *req.Name
	}
	if req.Price != nil {
		p.Price = *req.Price
	}
	if req.Unit != nil {
		p.Unit = *req.Unit
	}
	if req.Category != nil {
		p.Category = req.Category
	}
	if req.Barcode != nil {
		if *req.Barcode == "" {
			p.Barcode = nil
		} else {
			p.Barcode = req.Barcode
			stale = append(stale, *req.Barcode)
		}
	}
	if req.MinStockThreshold != nil {
		p.MinStockThreshold = *req.MinStockThreshold
	}
	if req.IsActive != nil {
		p.IsActive = *req.IsActive
	}
	p.UpdatedAt = time.Now()

	if err := s.repo.UpdateCatalog(ctx, p); err != nil {
		return nil, fmt.Errorf("update product %d: %w", id, err)
	}
	if err := s.cache.Invalidate(ctx, stale...); err != nil {
		log.Warn().Err(err).Int64("product_id", id).Msg("product cache invalidation failed")
	}
	// Threshold and active flag decide low-stock status as much as stock does.
	if wasLow != p.IsLowStock() {
		s.notifier.Recheck(ctx, p.ID)
	}
	return productToResponse(p), nil
}

// ListLowStock returns active products at or below their threshold.
func (s *productService) ListLowStock(ctx context.Context) ([]dto.ProductResponse, error) {
	products, err := s.repo.ListLowStock(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]dto.ProductResponse, 0, len(products))
	for i := range products {
		out = append(out, *productToResponse(&products[i]))
	}
	return out, nil
}
