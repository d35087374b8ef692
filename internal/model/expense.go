package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// Expense types.
const (
	ExpenseCapital     = "capital"
	ExpenseElectricity = "electricity"
	ExpenseRent        = "rent"
	ExpenseSalary      = "salary"
	ExpenseOther       = "other"
)

type Expense struct {
	ID          int64           `gorm:"primaryKey"`
	Type        string          `gorm:"type:varchar(20);not null;index"`
	Amount      decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	Description *string
	ExpenseDate time.Time `gorm:"not null;index"`
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

