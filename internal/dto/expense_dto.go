package dto

import "github.com/shopspring/decimal"

type CreateExpenseRequest struct {
	Type        string          `json:"type"         validate:"required,oneof=capital electricity rent salary other"`
	Amount      decimal.Decimal `json:"amount"       validate:"gt=0"`
	Description *string         `json:"description"`
	ExpenseDate *Date           `json:"expense_date"`
}

// ExpenseFilter is bound from the query string of GET /v1/expenses.
type ExpenseFilter struct {
	From string `form:"from"` // YYYY-MM-DD, inclusive
	To   string `form:"to"`   // YYYY-MM-DD, inclusive
	Type string `form:"type"`
}

type ExpenseResponse struct {
	ID          int64           `json:"id"`
	Type        string          `json:"type"`
	Amount      decimal.Decimal `json:"amount"`
	Description *string         `json:"description"`
	ExpenseDate string          `json:"expense_date"`
	CreatedAt   string          `json:"created_at"`
}
