package dto

// AdjustStockRequest sets a product's stock to an absolute value.
type AdjustStockRequest struct {
	ProductID   int64   `json:"product_id"   validate:"required,gt=0"`
	NewQuantity *int    `json:"new_quantity" validate:"required,gte=0"`
	Notes       *string `json:"notes"`
}

// ReceiveStockRequest books incoming goods (a purchase) against a product.
type ReceiveStockRequest struct {
	ProductID int64   `json:"product_id" validate:"required,gt=0"`
	Quantity  int     `json:"quantity"   validate:"required,gt=0"`
	Notes     *string `json:"notes"`
}

// MovementFilter is bound from the query string of GET /v1/inventory/movements.
type MovementFilter struct {
	ProductID *int64 `form:"product_id"`
	Kind      string `form:"kind"`
	Page      int    `form:"page,default=1"`
	Limit     int    `form:"limit,default=100"`
}

type StockMovementResponse struct {
	ID            int64   `json:"id"`
	ProductID     int64   `json:"product_id"`
	ProductName   string  `json:"product_name,omitempty"`
	Kind          string  `json:"kind"`
	Quantity      int     `json:"quantity"`
	ReferenceKind *string `json:"reference_kind"`
	ReferenceID   *int64  `json:"reference_id"`
	Notes         *string `json:"notes"`
	StockBefore   int     `json:"stock_before"`
	StockAfter    int     `json:"stock_after"`
	CreatedAt     string  `json:"created_at"`
}

type StockMovementListResponse struct {
	Data  []StockMovementResponse `json:"data"`
	Total int64                   `json:"total"`
	Page  int                     `json:"page"`
	Limit int                     `json:"limit"`
}

// StockMismatch is one product whose stored counter disagrees with the
// net sum of its movements.
type StockMismatch struct {
	ProductID     int64  `json:"product_id"`
	ProductName   string `json:"product_name"`
	StockQuantity int    `json:"stock_quantity"`
	MovementSum   int    `json:"movement_sum"`
	Drift         int    `json:"drift"`
}

type ReconcileResponse struct {
	Consistent bool            `json:"consistent"`
	Mismatches []StockMismatch `json:"mismatches"`
	CheckedAt  string          `json:"checked_at"`
}
