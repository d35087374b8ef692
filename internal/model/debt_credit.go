package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// Ledger record types. The tag is opaque to settlement: both types are
// paid down with the same arithmetic.
const (
	DebtCreditDebt   = "debt"
	DebtCreditCredit = "credit"
)

// DebtCredit tracks an amount owed between the store and a customer.
// Invariants: 0 <= RemainingAmount <= Amount and IsPaid <=> RemainingAmount == 0.
// Only the payment path mutates RemainingAmount / IsPaid.
type DebtCredit struct {
	ID              int64           `gorm:"primaryKey"`
	CustomerID      int64           `gorm:"not null;index"`
	Type            string          `gorm:"type:varchar(10);not null;index"`
	Amount          decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	RemainingAmount decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	Description     *string
	DueDate         *time.Time `gorm:"index"`
	IsPaid          bool       `gorm:"not null;default:false;index"`
	CreatedAt       time.Time
	UpdatedAt       time.Time

	Customer *Customer `gorm:"foreignKey:CustomerID"`
}

// IsOverdue reports whether the record has a due date strictly before now
// and is not yet fully paid.
func (d *DebtCredit) IsOverdue(now time.Time) bool {
	return d.DueDate != nil && !d.IsPaid && d.DueDate.Before(now)
}
