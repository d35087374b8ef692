package dto

import "github.com/shopspring/decimal"

// ProductFilter is bound from the query string of GET /v1/products.
type ProductFilter struct {
	Name     string `form:"name"`
	Category string `form:"category"`
	Active   string `form:"active"` // "true" (default) | "false" | "all"
	Page     int    `form:"page,default=1"`
	Limit    int    `form:"limit,default=50"`
}

type CreateProductRequest struct {
	Name              string          `json:"name"                validate:"required,min=1"`
	Price             decimal.Decimal `json:"price"               validate:"gte=0"`
	Unit              string          `json:"unit"                validate:"required"`
	Category          *string         `json:"category"`
	Barcode           *string         `json:"barcode"             validate:"omitempty,min=1"`
	StockQuantity     int             `json:"stock_quantity"      validate:"gte=0"`
	MinStockThreshold *int            `json:"min_stock_threshold" validate:"omitempty,gte=0"`
}

// UpdateProductRequest carries catalog fields only. Stock is changed through
// adjustments and receipts so that every change lands in the movement log.
type UpdateProductRequest struct {
	Name              *string          `json:"name"                validate:"omitempty,min=1"`
	Price             *decimal.Decimal `json:"price"`
	Unit              *string          `json:"unit"                validate:"omitempty,min=1"`
	Category          *string          `json:"category"`
	Barcode           *string          `json:"barcode"`
	MinStockThreshold *int             `json:"min_stock_threshold" validate:"omitempty,gte=0"`
	IsActive          *bool            `json:"is_active"`
}

type ProductResponse struct {
	ID                int64           `json:"id"`
	Name              string          `json:"name"`
	Price             decimal.Decimal `json:"price"`
	Unit              string          `json:"unit"`
	Category          *string         `json:"category"`
	Barcode           *string         `json:"barcode"`
	StockQuantity     int             `json:"stock_quantity"`
	MinStockThreshold int             `json:"min_stock_threshold"`
	IsActive          bool            `json:"is_active"`
	LowStock          bool            `json:"low_stock"`
	CreatedAt         string          `json:"created_at"`
	UpdatedAt         string          `json:"updated_at"`
}

type ProductListResponse struct {
	Data  []ProductResponse `json:"data"`
	Total int64             `json:"total"`
	Page  int               `json:"page"`
	Limit int               `json:"limit"`
}
