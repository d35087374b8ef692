package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// Product is the authoritative inventory record for one sellable item.
// StockQuantity is a denormalized counter: it must always equal the sum of
// the product's StockMovement quantities and is only written by the sale,
// adjustment and receipt paths, each of which appends a movement in the same
// transaction.
type Product struct {
	ID                int64           `gorm:"primaryKey"`
	Name              string          `gorm:"index;not null"`
	Price             decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	Unit              string          `gorm:"not null"`
	Category          *string         `gorm:"index"`
	Barcode           *string         `gorm:"uniqueIndex"`
	StockQuantity     int             `gorm:"not null;default:0"`
	MinStockThreshold int             `gorm:"not null"`
	IsActive          bool            `gorm:"not null"`
	CreatedAt         time.Time
	UpdatedAt         time.Time
}

// IsLowStock reports whether an active product sits at or below its threshold.
func (p *Product) IsLowStock() bool {
	return p.IsActive && p.StockQuantity <= p.MinStockThreshold
}
