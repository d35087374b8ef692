package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// Payment methods accepted at the till.
const (
	PaymentCash     = "cash"
	PaymentQRIS     = "qris"
	PaymentTransfer = "transfer"
)

// Sale is the immutable header of a completed sale.
// CustomerID nil means a walk-in sale. FinalAmount = TotalAmount - DiscountAmount
// as computed at creation; totals are stored, never recomputed from items.
type Sale struct {
	ID             int64           `gorm:"primaryKey"`
	CustomerID     *int64          `gorm:"index"`
	TotalAmount    decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	DiscountAmount decimal.Decimal `gorm:"type:decimal(12,2);not null;default:0"`
	FinalAmount    decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	PaymentMethod  string          `gorm:"type:varchar(20);not null;index"`
	Notes          *string
	CreatedAt      time.Time `gorm:"index"`
	UpdatedAt      time.Time

	Customer *Customer `gorm:"foreignKey:CustomerID"`
	Items    []SaleItem `gorm:"foreignKey:SaleID"`
}

// SaleItem is one line of a sale. UnitPrice is a snapshot taken at sale time
// and is independent of later changes to Product.Price.
type SaleItem struct {
	ID         int64           `gorm:"primaryKey"`
	SaleID     int64           `gorm:"not null;index"`
	ProductID  int64           `gorm:"not null;index"`
	Quantity   int             `gorm:"not null"`
	UnitPrice  decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	TotalPrice decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	CreatedAt  time.Time

	Product *Product `gorm:"foreignKey:ProductID"`
}
