package repository

import (
	"context"

	"tokopos/internal/model"

	"gorm.io/gorm"
)

type CustomerRepository interface {
	Create(ctx context.Context, c *model.Customer) error
	FindByID(ctx context.Context, id int64) (*model.Customer, error)
	List(ctx context.Context, name string) ([]model.Customer, error)
	// ExistsTx checks for the customer inside an open transaction.
	ExistsTx(tx *gorm.DB, id int64) (bool, error)
}

type customerRepo struct{ db *gorm.DB }

func NewCustomerRepository(db *gorm.DB) CustomerRepository { return &customerRepo{db: db} }

func (r *customerRepo) Create(ctx context.Context, c *model.Customer) error {
	return r.db.WithContext(ctx).Create(c).Error
}

func (r *customerRepo) FindByID(ctx context.Context, id int64) (*model.Customer, error) {
	var c model.Customer
	if err := r.db.WithContext(ctx).First(&c, id).Error; err != nil {
		return nil, err
	}
	return &c, nil
}

func (r *customerRepo) List(ctx context.Context, name string) ([]model.Customer, error) {
	q := r.db.WithContext(ctx).Model(&model.Customer{})
	if name != "" {
		q = q.Where("LOWER(name) LIKE LOWER(?)", "%"+name+"%")
	}
	var customers []model.Customer
	err := q.Order("name ASC").Find(&customers).Error
	return customers, err
}

func (r *customerRepo) ExistsTx(tx *gorm.DB, id int64) (bool, error) {
	var count int64
	err := tx.Model(&model.Customer{}).Where("id = ?", id).Count(&count).Error
	return count > 0, err
}
