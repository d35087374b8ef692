package service

import "github.com/shopspring/decimal"

// Money columns are decimal(12,2).
const moneyScale = 2

var moneyLimit = decimal.New(1, 12-moneyScale)

// checkMoney rejects amounts the money columns would round or overflow.
func checkMoney(field string, d decimal.Decimal) error {
	if !d.Equal(d.Round(moneyScale)) {
		return &ValidationError{Field: field, Reason: "must have at most 2 decimal places"}
	}
	if d.Abs().GreaterThanOrEqual(moneyLimit) {
		return &ValidationError{Field: field, Reason: "is too large"}
	}
	return nil
}
