// Package main is the entry point for the Almasa Suite API server.
package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/mhammadjaber00/almasasuite/internal/config"
	"github.com/mhammadjaber00/almasasuite/internal/domain/audit"
	"github.com/mhammadjaber00/almasasuite/internal/domain/auth"
	"github.com/mhammadjaber00/almasasuite/internal/domain/catalogs/product"
	"github.com/mhammadjaber00/almasasuite/internal/domain/catalogs/vendor"
	"github.com/mhammadjaber00/almasasuite/internal/domain/documents/goldintake"
	"github.com/mhammadjaber00/almasasuite/internal/domain/documents/sale"
	"github.com/mhammadjaber00/almasasuite/internal/domain/documents/vendorpayment"
	"github.com/mhammadjaber00/almasasuite/internal/domain/reports"
	v1 "github.com/mhammadjaber00/almasasuite/internal/infrastructure/http/v1"
	"github.com/mhammadjaber00/almasasuite/internal/infrastructure/storage/postgres"
	"github.com/mhammadjaber00/almasasuite/internal/infrastructure/storage/postgres/auth_repo"
	"github.com/mhammadjaber00/almasasuite/internal/infrastructure/storage/postgres/catalog_repo"
	"github.com/mhammadjaber00/almasasuite/internal/infrastructure/storage/postgres/document_repo"
	"github.com/mhammadjaber00/almasasuite/internal/infrastructure/storage/postgres/register_repo"
	"github.com/mhammadjaber00/almasasuite/internal/infrastructure/storage/postgres/report_repo"
	"github.com/mhammadjaber00/almasasuite/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Printf("failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	log, err := logger.New(logger.Config{
		Level:       cfg.Log.Level,
		Development: cfg.Log.Development,
	})
	if err != nil {
		fmt.Printf("failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	ctx := context.Background()
	log.Info("starting almasasuite server")

	// --- Database ---
	pool, err := postgres.NewPool(ctx, postgres.PoolConfigFrom(cfg.Database))
	if err != nil {
		log.Fatalw("failed to connect to database", "error", err)
	}
	defer pool.Close()
	log.Info("database connection established")

	txManager := postgres.NewTxManager(pool).
		WithStatementTimeout(cfg.Database.StatementTimeout)

	// --- Audit trail ---
	var auditor audit.Recorder = audit.Noop{}
	if cfg.Audit.Enabled {
		auditService, err := postgres.NewAuditService(txManager)
		if err != nil {
			log.Fatalw("failed to initialize audit service", "error", err)
		}
		auditor = auditService.WithCompressThreshold(cfg.Audit.CompressThreshold)
	}

	// --- Repositories ---
	vendorRepo := catalog_repo.NewVendorRepo(txManager)
	productRepo := catalog_repo.NewProductRepo(txManager)
	intakeRepo := document_repo.NewGoldIntakeRepo(txManager)
	paymentRepo := document_repo.NewVendorPaymentRepo(txManager)
	saleRepo := document_repo.NewSaleRepo(txManager)
	stockRepo := register_repo.NewStockMutationRepo(txManager)
	reportRepo := report_repo.NewReportRepo(txManager)
	userRepo := auth_repo.NewUserRepo(txManager)

	// --- Services ---
	jwtService := auth.NewJWTService(auth.JWTConfig{
		Secret:         cfg.Auth.JWTSecret,
		Issuer:         cfg.Auth.Issuer,
		AccessTokenTTL: cfg.Auth.TokenTTL,
	})
	authService := auth.NewService(userRepo, jwtService, txManager)

	vendorService := vendor.NewService(vendorRepo, txManager)
	productService := product.NewService(productRepo, stockRepo, txManager)
	intakeService := goldintake.NewService(intakeRepo, vendorRepo, productRepo, stockRepo, txManager, auditor)
	paymentService := vendorpayment.NewService(paymentRepo, vendorRepo, txManager, auditor)
	saleService := sale.NewService(saleRepo, productRepo, stockRepo, vendorService, txManager, auditor)
	reportService := reports.NewService(reportRepo, txManager)

	// --- Router ---
	router := v1.NewRouter(v1.RouterConfig{
		Pool:           pool,
		Logger:         log,
		GinMode:        cfg.Server.GinMode,
		JWTService:     jwtService,
		AuthService:    authService,
		VendorService:  vendorService,
		ProductService: productService,
		IntakeService:  intakeService,
		PaymentService: paymentService,
		SaleService:    saleService,
		ReportService:  reportService,
	})

	// --- HTTP Server ---
	server := &http.Server{
		Addr:         cfg.Server.Addr(),
		Handler:      router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	go func() {
		log.Infow("server starting", "addr", cfg.Server.Addr())
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalw("server failed", "error", err)
		}
	}()

	// --- Graceful shutdown ---
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Fatalw("server forced to shutdown", "error", err)
	}

	log.Info("server stopped")
}
