package dto

import "github.com/shopspring/decimal"

type CreateDebtCreditRequest struct {
	CustomerID  int64           `json:"customer_id" validate:"required,gt=0"`
	Type        string          `json:"type"        validate:"required,oneof=debt credit"`
	Amount      decimal.Decimal `json:"amount"      validate:"gt=0"`
	Description *string         `json:"description"`
	DueDate     *Date           `json:"due_date"`
}

type PayDebtCreditRequest struct {
	PaymentAmount decimal.Decimal `json:"payment_amount" validate:"gt=0"`
	Notes         *string         `json:"notes"`
}

// DebtCreditFilter is bound from the query string of GET /v1/debt-credits.
type DebtCreditFilter struct {
	CustomerID *int64 `form:"customer_id"`
	Type       string `form:"type"   validate:"omitempty,oneof=debt credit"`
	Status     string `form:"status" validate:"omitempty,oneof=all unpaid paid overdue"`
}

type DebtCreditResponse struct {
	ID              int64           `json:"id"`
	CustomerID      int64           `json:"customer_id"`
	CustomerName    string          `json:"customer_name,omitempty"`
	Type            string          `json:"type"`
	Amount          decimal.Decimal `json:"amount"`
	RemainingAmount decimal.Decimal `json:"remaining_amount"`
	Description     *string         `json:"description"`
	DueDate         *string         `json:"due_date"`
	IsPaid          bool            `json:"is_paid"`
	IsOverdue       bool            `json:"is_overdue"`
	CreatedAt       string          `json:"created_at"`
	UpdatedAt       string          `json:"updated_at"`
}
