package dto

import "github.com/shopspring/decimal"

// ─── Filter / List ──────────────────────────────────────────────────────────

// SaleFilter is bound from the query string of GET /v1/sales.
type SaleFilter struct {
	Date          string `form:"date"` // YYYY-MM-DD; empty = all dates
	PaymentMethod string `form:"payment_method"`
	CustomerID    *int64 `form:"customer_id"`
	Page          int    `form:"page,default=1"`
	Limit         int    `form:"limit,default=50"`
}

type SaleListResponse struct {
	Data  []SaleResponse `json:"data"`
	Total int64          `json:"total"`
	Page  int            `json:"page"`
	Limit int            `json:"limit"`
}

// ─── Request DTOs ────────────────────────────────────────────────────────────

type SaleItemRequest struct {
	ProductID int64           `json:"product_id" validate:"required,gt=0"`
	Quantity  int             `json:"quantity"   validate:"required,gt=0"`
	UnitPrice decimal.Decimal `json:"unit_price" validate:"gt=0"`
}

type CreateSaleRequest struct {
	CustomerID     *int64            `json:"customer_id"     validate:"omitempty,gt=0"`
	Items          []SaleItemRequest `json:"items"           validate:"required,min=1,dive"`
	DiscountAmount decimal.Decimal   `json:"discount_amount" validate:"gte=0"`
	PaymentMethod  string            `json:"payment_method"  validate:"required,oneof=cash qris transfer"`
	Notes          *string           `json:"notes"`
}

// Total returns Σ quantity × unit price over the requested lines.
func (r CreateSaleRequest) Total() decimal.Decimal {
	total := decimal.Zero
	for _, item := range r.Items {
		total = total.Add(item.UnitPrice.Mul(decimal.NewFromInt(int64(item.Quantity))))
	}
	return total
}

// ─── Response DTOs ───────────────────────────────────────────────────────────

type SaleItemResponse struct {
	ID          int64           `json:"id"`
	ProductID   int64           `json:"product_id"`
	ProductName string          `json:"product_name,omitempty"`
	Quantity    int             `json:"quantity"`
	UnitPrice   decimal.Decimal `json:"unit_price"`
	TotalPrice  decimal.Decimal `json:"total_price"`
}

type SaleResponse struct {
	ID             int64              `json:"id"`
	CustomerID     *int64             `json:"customer_id"`
	TotalAmount    decimal.Decimal    `json:"total_amount"`
	DiscountAmount decimal.Decimal    `json:"discount_amount"`
	FinalAmount    decimal.Decimal    `json:"final_amount"`
	PaymentMethod  string             `json:"payment_method"`
	Notes          *string            `json:"notes"`
	Items          []SaleItemResponse `json:"items"`
	CreatedAt      string             `json:"created_at"`
}
