package infra

import (
	"fmt"

	"tokopos/internal/model"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// NewDatabase establishes a GORM connection backed by pgx, runs AutoMigrate to
// create / update all tables, then applies the idempotent SQL patches that GORM
// cannot express (CHECK constraints).
func NewDatabase(dsn string) (*gorm.DB, error) {
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return nil, err
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}
	sqlDB.SetMaxOpenConns(25)
	sqlDB.SetMaxIdleConns(5)

	if err := Migrate(db); err != nil {
		return nil, err
	}
	return db, nil
}

// Migrate creates or updates every table. Tests call it directly on an
// in-process database.
func Migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(model.All()...); err != nil {
		return fmt.Errorf("AutoMigrate: %w", err)
	}
	if db.Dialector.Name() != "postgres" {
		return nil
	}
	if err := applySchemaPatches(db); err != nil {
		return fmt.Errorf("schema patches: %w", err)
	}
	return nil
}

// applySchemaPatches adds the CHECK constraints backing the ledger and
// movement invariants. Each block is guarded by an existence check so
// re-running on an already-patched schema is a no-op.
func applySchemaPatches(db *gorm.DB) error {
	patches := []struct{ name, table, check string }{
		{"chk_products_price", "products", "price >= 0"},
		{"chk_stock_movements_kind", "stock_movements", "kind IN ('in', 'out', 'adjustment')"},
		{"chk_stock_movements_reference_kind", "stock_movements",
			"reference_kind IS NULL OR reference_kind IN ('sale', 'purchase', 'adjustment')"},
		{"chk_sales_payment_method", "sales", "payment_method IN ('cash', 'qris', 'transfer')"},
		{"chk_sale_items_quantity", "sale_items", "quantity > 0 AND unit_price > 0"},
		{"chk_debt_credits_type", "debt_credits", "type IN ('debt', 'credit')"},
		{"chk_debt_credits_remaining", "debt_credits",
			"remaining_amount >= 0 AND remaining_amount <= amount AND is_paid = (remaining_amount = 0)"},
		{"chk_expenses_amount", "expenses", "amount > 0"},
	}

	for _, p := range patches {
		sql := fmt.Sprintf(`
DO $$ BEGIN
  IF NOT EXISTS (SELECT 1 FROM pg_constraint WHERE conname = '%s') THEN
    ALTER TABLE %s ADD CONSTRAINT %s CHECK (%s);
  END IF;
END $$`, p.name, p.table, p.name, p.check)
		if err := db.Exec(sql).Error; err != nil {
			return fmt.Errorf("patch %q: %w", p.name, err)
		}
	}
	return nil
}
