package repository

import (
	"context"
	"time"

	"tokopos/internal/dto"
	"tokopos/internal/model"

	"gorm.io/gorm"
)

type ExpenseRepository interface {
	Create(ctx context.Context, e *model.Expense) error
	List(ctx context.Context, filter dto.ExpenseFilter) ([]model.Expense, error)
}

type expenseRepo struct{ db *gorm.DB }

func NewExpenseRepository(db *gorm.DB) ExpenseRepository { return &expenseRepo{db: db} }

func (r *expenseRepo) Create(ctx context.Context, e *model.Expense) error {
	return r.db.WithContext(ctx).Create(e).Error
}

func (r *expenseRepo) List(ctx context.Context, filter dto.ExpenseFilter) ([]model.Expense, error) {
	q := r.db.WithContext(ctx).Model(&model.Expense{})
	if filter.From != "" {
		from, err := time.ParseInLocation("2006-01-02", filter.From, time.Local)
		if err != nil {
			return nil, err
		}
		q = q.Where("expense_date >= ?", from)
	}
	if filter.To != "" {
		to, err := time.ParseInLocation("2006-01-02", filter.To, time.Local)
		if err != nil {
			return nil, err
		}
		q = q.Where("expense_date < ?", to.AddDate(0, 0, 1))
	}
	if filter.Type != "" {
		q = q.Where("type = ?", filter.Type)
	}
	var expenses []model.Expense
	err := q.Order("expense_date DESC, id DESC").Find(&expenses).Error
	return expenses, err
}
