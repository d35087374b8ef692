package model

// All returns every table model, parents before children, for migrations.
func All() []interface{} {
	return []interface{}{
		&Product{},
		&Customer{},
		&Sale{},
		&SaleItem{},
		&StockMovement{},
		&DebtCredit{},
		&Expense{},
	}
}
