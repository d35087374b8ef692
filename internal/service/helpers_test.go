package service

import (
	"context"
	"sync"
	"testing"
	"time"

	"tokopos/internal/cache"
	"tokopos/internal/dto"
	"tokopos/internal/model"
	"tokopos/internal/repository"
	"tokopos/internal/testutil"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

// ── Fakes ─────────────────────────────────────────────────────────────────────

// recordingAlerter captures the product ids that were enqueued.
type recordingAlerter struct {
	mu  sync.Mutex
	ids []int64
}

func (a *recordingAlerter) EnqueueStockAlert(_ context.Context, productID int64) error {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.ids = append(a.ids, productID)
	return nil
}

// memCache is an in-memory ProductCache.
type memCache struct {
	entries     map[string]*dto.ProductResponse
	invalidated []string
}

func newMemCache() *memCache { return &memCache{entries: map[string]*dto.ProductResponse{}} }

func (c *memCache) Get(_ context.Context, barcode string) (*dto.ProductResponse, bool, error) {
	v, ok := c.entries[barcode]
	return v, ok, nil
}

func (c *memCache) Set(_ context.Context, barcode string, v *dto.ProductResponse, _ time.Duration) error {
	c.entries[barcode] = v
	return nil
}

func (c *memCache) Invalidate(_ context.Context, barcodes ...string) error {
	for _, b := range barcodes {
		delete(c.entries, b)
		c.invalidated = append(c.invalidated, b)
	}
	return nil
}

var _ cache.ProductCache = (*memCache)(nil)

// ── Fixture ───────────────────────────────────────────────────────────────────

type fixture struct {
	db        *gorm.DB
	alerter   *recordingAlerter
	cache     *memCache
	products  repository.ProductRepository
	movements repository.StockMovementRepository
	customers repository.CustomerRepository
	ledger    repository.DebtCreditRepository

	inventory InventoryService
	sales     SaleService
	catalog   ProductService
}

func newFixture(t *testing.T, cfg SaleServiceConfig) *fixture {
	t.Helper()
	db := testutil.NewDB(t)
	f := &fixture{
		db:        db,
		alerter:   &recordingAlerter{},
		cache:     newMemCache(),
		products:  repository.NewProductRepository(db),
		movements: repository.NewStockMovementRepository(db),
		customers: repository.NewCustomerRepository(db),
		ledger:    repository.NewDebtCreditRepository(db),
	}
	notifier := NewStockNotifier(f.cache, f.alerter)
	f.inventory = NewInventoryService(f.products, f.movements, notifier)
	f.sales = NewSaleService(repository.NewSaleRepository(db), f.products, f.customers, f.inventory, notifier, cfg)
	f.catalog = NewProductService(f.products, f.inventory, f.cache, time.Hour, notifier)
	return f
}

// seedProduct creates a product through the catalog so its opening stock is
// in the movement log.
func (f *fixture) seedProduct(t *testing.T, name string, stock, threshold int) *dto.ProductResponse {
	t.Helper()
	p, err := f.catalog.Create(context.Background(), dto.CreateProductRequest{
		Name:              name,
		Price:             decimal.NewFromInt(10),
		Unit:              "pcs",
		StockQuantity:     stock,
		MinStockThreshold: &threshold,
	})
	require.NoError(t, err)
	return p
}

func (f *fixture) seedCustomer(t *testing.T, name string) *model.Customer {
	t.Helper()
	c := &model.Customer{Name: name}
	require.NoError(t, f.customers.Create(context.Background(), c))
	return c
}

func (f *fixture) stockOf(t *testing.T, id int64) int {
	t.Helper()
	p, err := f.products.FindByID(context.Background(), id)
	require.NoError(t, err)
	return p.StockQuantity
}

func (f *fixture) count(t *testing.T, m interface{}) int64 {
	t.Helper()
	var n int64
	require.NoError(t, f.db.Model(m).Count(&n).Error)
	return n
}

func line(productID int64, qty int, price int64) dto.SaleItemRequest {
	return dto.SaleItemRequest{ProductID: productID, Quantity: qty, UnitPrice: decimal.NewFromInt(price)}
}

func intPtr(v int) *int { return &v }
