package router

import (
	"time"

	"tokopos/internal/cache"
	"tokopos/internal/config"
	"tokopos/internal/handler"
	"tokopos/internal/middleware"
	"tokopos/internal/repository"
	"tokopos/internal/service"
	"tokopos/internal/worker"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

// Services is the service layer shared by the HTTP router and the
// background workers.
type Services struct {
	Products  service.ProductService
	Customers service.CustomerService
	Sales     service.SaleService
	Inventory service.InventoryService
	Ledger    service.LedgerService
	Expenses  service.ExpenseService
}

// NewServices wires Service ← Repository ← DB/Redis. A nil rdb disables the
// barcode cache and low-stock alert jobs.
func NewServices(cfg *config.Config, db *gorm.DB, rdb *redis.Client) *Services {
	// ── Repositories ─────────────────────────────────────────────────────────
	productRepo := repository.NewProductRepository(db)
	movementRepo := repository.NewStockMovementRepository(db)
	saleRepo := repository.NewSaleRepository(db)
	customerRepo := repository.NewCustomerRepository(db)
	debtCreditRepo := repository.NewDebtCreditRepository(db)
	expenseRepo := repository.NewExpenseRepository(db)

	// ── Infrastructure ───────────────────────────────────────────────────────
	var productCache cache.ProductCache = cache.NoopProductCache{}
	var alerter service.StockAlerter
	if rdb != nil {
		productCache = cache.NewRedisProductCache(rdb)
		// Worker dispatcher, injected into services that enqueue async jobs
		alerter = worker.NewDispatcher(rdb)
	}
	notifier := service.NewStockNotifier(productCache, alerter)

	// ── Services ─────────────────────────────────────────────────────────────
	inventorySvc := service.NewInventoryService(productRepo, movementRepo, notifier)
	return &Services{
		Products:  service.NewProductService(productRepo, inventorySvc, productCache, cfg.ProductCacheTTL, notifier),
		Customers: service.NewCustomerService(customerRepo),
		Sales: service.NewSaleService(saleRepo, productRepo, customerRepo, inventorySvc, notifier, service.SaleServiceConfig{
			AllowNegativeStock: cfg.AllowNegativeStock,
			StoreName:          cfg.StoreName,
		}),
		Inventory: inventorySvc,
		Ledger:    service.NewLedgerService(debtCreditRepo, customerRepo, cfg.PaymentMaxRetries),
		Expenses:  service.NewExpenseService(expenseRepo),
	}
}

// New returns a configured Gin engine.
// Dependency graph: Handler ← Service ← Repository ← DB/Redis
func New(cfg *config.Config, db *gorm.DB, rdb *redis.Client, svcs *Services) *gin.Engine {
	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()

	limiter := middleware.NewIPRateLimiter(cfg.RateLimitRPS, cfg.RateLimitBurst)
	limiter.StartPurge(5*time.Minute, nil)

	// Global middleware chain (order matters)
	r.Use(middleware.RequestID())
	r.Use(middleware.Logger())
	r.Use(middleware.Recovery())
	r.Use(middleware.CORS())
	r.Use(limiter.Middleware())

	// ── Handlers ─────────────────────────────────────────────────────────────
	productsH := handler.NewProductsHandler(svcs.Products)
	customersH := handler.NewCustomersHandler(svcs.Customers)
	salesH := handler.NewSalesHandler(svcs.Sales)
	inventoryH := handler.NewInventoryHandler(svcs.Inventory)
	debtCreditsH := handler.NewDebtCreditsHandler(svcs.Ledger)
	expensesH := handler.NewExpensesHandler(svcs.Expenses)

	// ── Routes ───────────────────────────────────────────────────────────────
	r.GET("/health", handler.Health(db, rdb))

	v1 := r.Group("/v1")
	{
		products := v1.Group("/products")
		{
			products.POST("", productsH.Create)
			products.GET("", productsH.List)
			products.GET("/low-stock", productsH.LowStock)
			products.GET("/barcode/:barcode", productsH.GetByBarcode)
			products.GET("/:id", productsH.Get)
			products.PUT("/:id", productsH.Update)
		}

		customers := v1.Group("/customers")
		{
			customers.POST("", customersH.Create)
			customers.GET("", customersH.List)
			customers.GET("/:id", customersH.Get)
		}

		sales := v1.Group("/sales")
		{
			sales.POST("", salesH.Create)
			sales.GET("", salesH.List)
			sales.GET("/:id", salesH.Get)
			sales.GET("/:id/receipt", salesH.Receipt)
		}

		inv := v1.Group("/inventory")
		{
			inv.POST("/adjustments", inventoryH.Adjust)
			inv.POST("/receipts", inventoryH.Receive)
			inv.GET("/movements", inventoryH.Movements)
			inv.GET("/reconcile", inventoryH.Reconcile)
			if rdb != nil {
				inv.GET("/alerts", handler.LowStockAlerts(rdb))
			}
		}

		ledger := v1.Group("/debt-credits")
		{
			ledger.POST("", debtCreditsH.Create)
			ledger.GET("", debtCreditsH.List)
			ledger.GET("/:id", debtCreditsH.Get)
			ledger.POST("/:id/payments", debtCreditsH.Pay)
		}

		expenses := v1.Group("/expenses")
		{
			expenses.POST("", expensesH.Create)
			expenses.GET("", expensesH.List)
		}
	}

	return r
}
