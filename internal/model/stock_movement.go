package model

import "time"

// Movement kinds.
const (
	MovementIn         = "in"
	MovementOut        = "out"
	MovementAdjustment = "adjustment"
)

// Reference kinds linking a movement to the operation that caused it.
const (
	ReferenceSale       = "sale"
	ReferencePurchase   = "purchase"
	ReferenceAdjustment = "adjustment"
)

// StockMovement records every change of a product's stock.
// Rows are immutable: they are created by the sale, adjustment and receipt
// paths and never updated or deleted.
type StockMovement struct {
	ID            int64   `gorm:"primaryKey"`
	ProductID     int64   `gorm:"not null;index"`
	Kind          string  `gorm:"type:varchar(20);not null;index"` // in | out | adjustment
	Quantity      int     `gorm:"not null"`                        // positive = stock increased, negative = decreased
	ReferenceKind *string `gorm:"type:varchar(20)"`                // sale | purchase | adjustment
	ReferenceID   *int64  `gorm:"index"`
	Notes         *string
	StockBefore   int `gorm:"not null"`
	StockAfter    int `gorm:"not null"`
	CreatedAt     time.Time

	Product *Product `gorm:"foreignKey:ProductID"`
}
