package repository

import (
	"context"
	"time"

	"tokopos/internal/dto"
	"tokopos/internal/model"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type DebtCreditRepository interface {
	Create(ctx context.Context, d *model.DebtCredit) error
	FindByID(ctx context.Context, id int64) (*model.DebtCredit, error)
	List(ctx context.Context, filter dto.DebtCreditFilter, now time.Time) ([]model.DebtCredit, error)
	// ApplyPayment is a compare-and-swap: it writes the new balance only if the
	// stored remaining_amount still equals expected and the record is unpaid.
	// It returns false when another writer got there first.
	ApplyPayment(ctx context.Context, id int64, expected, remaining decimal.Decimal, now time.Time) (bool, error)
}

type debtCreditRepo struct{ db *gorm.DB }

func NewDebtCreditRepository(db *gorm.DB) DebtCreditRepository { return &debtCreditRepo{db: db} }

func (r *debtCreditRepo) Create(ctx context.Context, d *model.DebtCredit) error {
	return r.db.WithContext(ctx).Create(d).Error
}

func (r *debtCreditRepo) FindByID(ctx context.Context, id int64) (*model.DebtCredit, error) {
	var d model.DebtCredit
	if err := r.db.WithContext(ctx).Preload("Customer").First(&d, id).Error; err != nil {
		return nil, err
	}
	return &d, nil
}

func (r *debtCreditRepo) List(ctx context.Context, filter dto.DebtCreditFilter, now time.Time) ([]model.DebtCredit, error) {
	q := r.db.WithContext(ctx).Model(&model.DebtCredit{}).Preload("Customer")
	if filter.CustomerID != nil {
		q = q.Where("customer_id = ?", *filter.CustomerID)
	}
	if filter.Type != "" {
		q = q.Where("type = ?", filter.Type)
	}
	switch filter.Status {
	case "unpaid":
		q = q.Where("is_paid = ?", false)
	case "paid":
		q = q.Where("is_paid = ?", true)
	case "overdue":
		q = q.Where("is_paid = ? AND due_date IS NOT NULL AND due_date < ?", false, now)
	}

	// Unpaid first, then earliest due date (undated last), then newest.
	var records []model.DebtCredit
	err := q.Order("is_paid ASC").
		Order("CASE WHEN due_date IS NULL THEN 1 ELSE 0 END ASC").
		Order("due_date ASC").
		Order("created_at DESC").
		Find(&records).Error
	return records, err
}

func (r *debtCreditRepo) ApplyPayment(ctx context.Context, id int64, expected, remaining decimal.Decimal, now time.Time) (bool, error) {
	res := r.db.WithContext(ctx).Model(&model.DebtCredit{}).
		Where("id = ? AND remaining_amount = ? AND is_paid = ?", id, expected, false).
		Updates(map[string]interface{}{
			"remaining_amount": remaining,
			"is_paid":          remaining.IsZero(),
			"updated_at":       now,
		})
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected == 1, nil
}
