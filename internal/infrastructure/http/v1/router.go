// Package v1 provides HTTP API version 1.
package v1

import (
	"github.com/gin-gonic/gin"

	"github.com/mhammadjaber00/almasasuite/internal/core/appctx"
	"github.com/mhammadjaber00/almasasuite/internal/domain/auth"
	"github.com/mhammadjaber00/almasasuite/internal/domain/catalogs/product"
	"github.com/mhammadjaber00/almasasuite/internal/domain/catalogs/vendor"
	"github.com/mhammadjaber00/almasasuite/internal/domain/documents/goldintake"
	"github.com/mhammadjaber00/almasasuite/internal/domain/documents/sale"
	"github.com/mhammadjaber00/almasasuite/internal/domain/documents/vendorpayment"
	"github.com/mhammadjaber00/almasasuite/internal/domain/reports"
	"github.com/mhammadjaber00/almasasuite/internal/infrastructure/http/v1/handlers"
	"github.com/mhammadjaber00/almasasuite/internal/infrastructure/http/v1/middleware"
	"github.com/mhammadjaber00/almasasuite/internal/infrastructure/storage/postgres"
	"github.com/mhammadjaber00/almasasuite/pkg/logger"
)

// RouterConfig holds the dependencies the router wires into handlers.
type RouterConfig struct {
	// Pool is the database connection pool (for health checks).
	Pool *postgres.Pool

	// Logger for request logging.
	Logger *logger.Logger

	// GinMode is one of gin.DebugMode, gin.ReleaseMode, gin.TestMode.
	GinMode string

	// JWTService validates and issues access tokens.
	JWTService *auth.JWTService

	// Domain services.
	AuthService    *auth.Service
	VendorService  *vendor.Service
	ProductService *product.Service
	IntakeService  *goldintake.Service
	PaymentService *vendorpayment.Service
	SaleService    *sale.Service
	ReportService  *reports.Service
}

// NewRouter creates and configures the Gin router.
func NewRouter(cfg RouterConfig) *gin.Engine {
	if cfg.GinMode != "" {
		gin.SetMode(cfg.GinMode)
	} else {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()

	// Global middleware (order matters!)
	router.Use(middleware.Recovery())
	router.Use(middleware.Trace())
	router.Use(middleware.Logger(cfg.Logger))
	router.Use(middleware.ErrorHandler())

	// Health endpoints (no auth required)
	healthHandler := handlers.NewHealthHandler(cfg.Pool)
	health := router.Group("/health")
	{
		health.GET("/live", healthHandler.Live)
		health.GET("/ready", healthHandler.Ready)
		health.GET("/info", healthHandler.Info)
	}

	authHandler := handlers.NewAuthHandler(cfg.AuthService)
	intakeHandler := handlers.NewGoldIntakeHandler(cfg.IntakeService, cfg.PaymentService, cfg.VendorService, cfg.ReportService)
	productHandler := handlers.NewProductHandler(cfg.ProductService)
	saleHandler := handlers.NewSaleHandler(cfg.SaleService, cfg.ReportService)

	// API v1
	apiV1 := router.Group("/api/v1")
	{
		apiV1.POST("/auth/login", authHandler.Login)

		protected := apiV1.Group("")
		protected.Use(middleware.Auth(cfg.JWTService))

		registerGoldIntakeRoutes(protected, intakeHandler)
		registerProductRoutes(protected, productHandler)
		registerSaleRoutes(protected, saleHandler)
		registerUserRoutes(protected, authHandler)
	}

	return router
}

// registerGoldIntakeRoutes wires the vendor ledger endpoints. Every
// route in this group is manager-only: intakes create liability and
// payments move money.
func registerGoldIntakeRoutes(rg *gin.RouterGroup, h *handlers.GoldIntakeHandler) {
	group := rg.Group("/gold-intake")
	group.Use(middleware.RequireRole(appctx.RoleManager))
	{
		group.GET("/vendors", h.ListVendors)
		group.GET("/vendors/:id", h.GetVendor)
		group.POST("/intakes", h.RecordIntake)
		group.GET("/intakes", h.ListIntakes)
		group.POST("/payments", h.RecordPayment)
		group.GET("/payments", h.ListPayments)
		group.GET("/liability-report", h.LiabilityReport)
		group.POST("/reduce-liability", h.ReduceLiability)
	}
}

func registerProductRoutes(rg *gin.RouterGroup, h *handlers.ProductHandler) {
	group := rg.Group("/products")
	{
		group.GET("", h.List)
		group.GET("/:id", h.Get)
		group.GET("/:id/stock", h.StockHistory)

		managerOnly := group.Group("")
		managerOnly.Use(middleware.RequireRole(appctx.RoleManager))
		{
			managerOnly.POST("", h.Create)
			managerOnly.PUT("/:id", h.Update)
			managerOnly.DELETE("/:id", h.Delete)
			managerOnly.POST("/:id/stock", h.AdjustStock)
		}
	}
}

func registerSaleRoutes(rg *gin.RouterGroup, h *handlers.SaleHandler) {
	group := rg.Group("/sales")
	{
		// Cashiers run the register: checkout and lookup stay open to
		// every authenticated user.
		group.POST("", h.Create)
		group.GET("", h.List)
		group.GET("/summary", h.Summary)
		group.GET("/:id", h.Get)

		managerOnly := group.Group("")
		managerOnly.Use(middleware.RequireRole(appctx.RoleManager))
		{
			managerOnly.DELETE("/:id", h.Delete)
		}
	}
}

func registerUserRoutes(rg *gin.RouterGroup, h *handlers.AuthHandler) {
	group := rg.Group("/users")
	{
		group.POST("/me/pin", h.ChangePin)

		managerOnly := group.Group("")
		managerOnly.Use(middleware.RequireRole(appctx.RoleManager))
		{
			managerOnly.POST("", h.CreateUser)
			managerOnly.GET("", h.ListUsers)
			managerOnly.DELETE("/:id", h.DeactivateUser)
		}
	}
}
