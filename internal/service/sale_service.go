package service

import (
	"context"
	"fmt"

	"tokopos/internal/dto"
	"tokopos/internal/infra"
	"tokopos/internal/model"
	"tokopos/internal/repository"

	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type SaleService interface {
	CreateSale(ctx context.Context, req dto.CreateSaleRequest) (*dto.SaleResponse, error)
	GetSale(ctx context.Context, id int64) (*dto.SaleResponse, error)
	ListSales(ctx context.Context, filter dto.SaleFilter) (*dto.SaleListResponse, error)
	// RenderReceipt returns the PDF receipt of a stored sale.
	RenderReceipt(ctx context.Context, id int64) ([]byte, error)
}

// SaleServiceConfig carries the sale policies read from config.
type SaleServiceConfig struct {
	// AllowNegativeStock lets a sale drive stock below zero (backorder).
	AllowNegativeStock bool
	StoreName          string
}

type saleService struct {
	repo         repository.SaleRepository
	productRepo  repository.ProductRepository
	customerRepo repository.CustomerRepository
	inventory    InventoryService
	notifier     *StockNotifier
	cfg          SaleServiceConfig
}

func NewSaleService(
	repo repository.SaleRepository,
	productRepo repository.ProductRepository,
	customerRepo repository.CustomerRepository,
	inventory InventoryService,
	notifier *StockNotifier,
	cfg SaleServiceConfig,
) SaleService {
	return &saleService{
		repo:         repo,
		productRepo:  productRepo,
		customerRepo: customerRepo,
		inventory:    inventory,
		notifier:     notifier,
		cfg:          cfg,
	}
}

func validateSale(req dto.CreateSaleRequest) error {
	if len(req.Items) == 0 {
		return ErrEmptyCart
	}
	for i, item := range req.Items {
		if item.Quantity <= 0 {
			return &ValidationError{Field: fmt.Sprintf("items[%d].quantity", i), Reason: "must be positive"}
		}
		if !item.UnitPrice.IsPositive() {
			return &ValidationError{Field: fmt.Sprintf("items[%d].unit_price", i), Reason: "must be positive"}
		}
		if err := checkMoney(fmt.Sprintf("items[%d].unit_price", i), item.UnitPrice); err != nil {
			return err
		}
	}
	if req.DiscountAmount.IsNegative() {
		return &ValidationError{Field: "discount_amount", Reason: "must not be negative"}
	}
	if err := checkMoney("discount_amount", req.DiscountAmount); err != nil {
		return err
	}
	// Line totals and the sale total must fit the columns too.
	return checkMoney("items", req.Total())
}

// ── CreateSale ────────────────────────────────────────────────────────────────
// One all-or-nothing unit:
//   1. Validate the request (no persistence on failure)
//   2. BEGIN TX: check customer, lock product rows, insert sale + items,
//      decrement stock and append one "out" movement per line
//   3. COMMIT
//   4. (best effort) invalidate cached products, enqueue low-stock alerts
// final = total − discount is stored as computed; a negative final is not
// rejected here.

func (s *saleService) CreateSale(ctx context.Context, req dto.CreateSaleRequest) (*dto.SaleResponse, error) {
	if err := validateSale(req); err != nil {
		return nil, err
	}

	total := req.Total()
	sale := &model.Sale{
		CustomerID:     req.CustomerID,
		TotalAmount:    total,
		DiscountAmount: req.DiscountAmount,
		FinalAmount:    total.Sub(req.DiscountAmount),
		PaymentMethod:  req.PaymentMethod,
		Notes:          req.Notes,
	}
	for _, line := range req.Items {
		sale.Items = append(sale.Items, model.SaleItem{
			ProductID:  line.ProductID,
			Quantity:   line.Quantity,
			UnitPrice:  line.UnitPrice,
			TotalPrice: line.UnitPrice.Mul(decimal.NewFromInt(int64(line.Quantity))),
		})
	}

	var touched []*model.Product
	products := make(map[int64]*model.Product, len(req.Items))
	err := runTx(ctx, s.repo.DB(), func(tx *gorm.DB) error {
		if req.CustomerID != nil {
			ok, err := s.customerRepo.ExistsTx(tx, *req.CustomerID)
			if err != nil {
				return fmt.Errorf("check customer: %w", err)
			}
			if !ok {
				return customerNotFound(*req.CustomerID)
			}
		}

		ids := make([]int64, 0, len(req.Items))
		for _, line := range req.Items {
			ids = append(ids, line.ProductID)
		}
		locked, err := s.productRepo.LockByIDsTx(tx, ids)
		if err != nil {
			return fmt.Errorf("lock products: %w", err)
		}
		for i := range locked {
			products[locked[i].ID] = &locked[i]
		}
		// Report the first missing id in request order.
		for _, line := range req.Items {
			if _, ok := products[line.ProductID]; !ok {
				return productNotFound(line.ProductID)
			}
		}

		if err := s.repo.CreateTx(tx, sale); err != nil {
			return fmt.Errorf("insert sale: %w", err)
		}

		note := fmt.Sprintf("Sale #%d", sale.ID)
		for _, line := range req.Items {
			p := products[line.ProductID]
			after := p.StockQuantity - line.Quantity
			if after < 0 && !s.cfg.AllowNegativeStock {
				return fmt.Errorf("product %d has %d, requested %d: %w",
					p.ID, p.StockQuantity, line.Quantity, ErrInsufficientStock)
			}
			mov := &model.StockMovement{
				ProductID:     p.ID,
				Kind:          model.MovementOut,
				Quantity:      -line.Quantity,
				ReferenceKind: strPtr(model.ReferenceSale),
				ReferenceID:   &sale.ID,
				Notes:         strPtr(note),
				StockBefore:   p.StockQuantity,
				StockAfter:    after,
			}
			if err := s.inventory.ApplyMovementTx(tx, mov); err != nil {
				return err
			}
			p.StockQuantity = after
		}

		for i := range locked {
			touched = append(touched, &locked[i])
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	for i := range sale.Items {
		sale.Items[i].Product = products[sale.Items[i].ProductID]
	}

	log.Info().
		Int64("sale_id", sale.ID).
		Int("items", len(sale.Items)).
		Str("final_amount", sale.FinalAmount.StringFixed(2)).
		Str("payment_method", sale.PaymentMethod).
		Msg("sale created")

	s.notifier.StockChanged(ctx, touched...)
	return saleToResponse(sale), nil
}

func (s *saleService) findSale(ctx context.Context, id int64) (*model.Sale, error) {
	sale, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if isNotFound(err) {
			return nil, &NotFoundError{Resource: ResourceSale, ID: id}
		}
		return nil, err
	}
	return sale, nil
}

func (s *saleService) GetSale(ctx context.Context, id int64) (*dto.SaleResponse, error) {
	sale, err := s.findSale(ctx, id)
	if err != nil {
		return nil, err
	}
	return saleToResponse(sale), nil
}

func (s *saleService) ListSales(ctx context.Context, filter dto.SaleFilter) (*dto.SaleListResponse, error) {
	if filter.Page < 1 {
		filter.Page = 1
	}
	if filter.Limit < 1 || filter.Limit > 200 {
		filter.Limit = 50
	}
	if err := checkDate("date", filter.Date); err != nil {
		return nil, err
	}
	sales, total, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, err
	}
	data := make([]dto.SaleResponse, 0, len(sales))
	for i := range sales {
		data = append(data, *saleToResponse(&sales[i]))
	}
	return &dto.SaleListResponse{Data: data, Total: total, Page: filter.Page, Limit: filter.Limit}, nil
}

func (s *saleService) RenderReceipt(ctx context.Context, id int64) ([]byte, error) {
	sale, err := s.findSale(ctx, id)
	if err != nil {
		return nil, err
	}
	return infra.RenderSaleReceipt(sale, s.cfg.StoreName)
}
