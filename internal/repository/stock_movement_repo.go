package repository

import (
	"context"

	"tokopos/internal/dto"
	"tokopos/internal/model"

	"gorm.io/gorm"
)

// StockDrift is a product whose stored stock counter disagrees with the net
// sum of its movement quantities.
type StockDrift struct {
	ProductID     int64
	ProductName   string
	StockQuantity int
	MovementSum   int
}

// StockMovementRepository is append-only: there is no update or delete.
type StockMovementRepository interface {
	CreateTx(tx *gorm.DB, m *model.StockMovement) error
	List(ctx context.Context, filter dto.MovementFilter) ([]model.StockMovement, int64, error)
	// FindDrift compares every product's stock_quantity with SUM(movements.quantity).
	FindDrift(ctx context.Context) ([]StockDrift, error)
}

type stockMovementRepo struct{ db *gorm.DB }

func NewStockMovementRepository(db *gorm.DB) StockMovementRepository {
	return &stockMovementRepo{db: db}
}

func (r *stockMovementRepo) CreateTx(tx *gorm.DB, m *model.StockMovement) error {
	return tx.Create(m).Error
}

func (r *stockMovementRepo) List(ctx context.Context, filter dto.MovementFilter) ([]model.StockMovement, int64, error) {
	q := r.db.WithContext(ctx).Model(&model.StockMovement{})
	if filter.ProductID != nil {
		q = q.Where("product_id = ?", *filter.ProductID)
	}
	if filter.Kind != "" {
		q = q.Where("kind = ?", filter.Kind)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	_, limit, offset := paginate(filter.Page, filter.Limit, 100, 500)
	var movements []model.StockMovement
	err := q.Preload("Product").
		Order("created_at DESC, id DESC").
		Offset(offset).Limit(limit).
		Find(&movements).Error
	return movements, total, err
}

func (r *stockMovementRepo) FindDrift(ctx context.Context) ([]StockDrift, error) {
	var drift []StockDrift
	err := r.db.WithContext(ctx).
		Table("products AS p").
		Select("p.id AS product_id, p.name AS product_name, p.stock_quantity AS stock_quantity, COALESCE(SUM(m.quantity), 0) AS movement_sum").
		Joins("LEFT JOIN stock_movements AS m ON m.product_id = p.id").
		Group("p.id, p.name, p.stock_quantity").
		Having("p.stock_quantity <> COALESCE(SUM(m.quantity), 0)").
		Order("p.id ASC").
		Scan(&drift).Error
	return drift, err
}
