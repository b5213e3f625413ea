package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"

	"github.com/MohamedNAGYYS/erp-system/internal/application/catalog"
	"github.com/MohamedNAGYYS/erp-system/internal/application/party"
	"github.com/MohamedNAGYYS/erp-system/internal/application/purchasing"
	"github.com/MohamedNAGYYS/erp-system/internal/application/sales"
	infrapdf "github.com/MohamedNAGYYS/erp-system/internal/infrastructure/pdf"
	"github.com/MohamedNAGYYS/erp-system/internal/infrastructure/postgres"
	httpRouter "github.com/MohamedNAGYYS/erp-system/internal/interfaces/http"
	"github.com/MohamedNAGYYS/erp-system/pkg/config"
	"github.com/MohamedNAGYYS/erp-system/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("load configuration: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: "info",
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Msg("starting application")

	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("PostgreSQL connection")
	}
	defer pool.Close()

	productRepo := postgres.NewProductRepository(pool)
	categoryRepo := postgres.NewCategoryRepository(pool)
	customerRepo := postgres.NewCustomerRepository(pool)
	supplierRepo := postgres.NewSupplierRepository(pool)
	movementRepo := postgres.NewStockMovementRepository(pool)
	salesOrderRepo := postgres.NewSalesOrderRepository(pool)
	purchaseOrderRepo := postgres.NewPurchaseOrderRepository(pool)
	txRunner := postgres.NewTxRunner(pool)

	catalogUC := catalog.NewUseCase(productRepo, categoryRepo, movementRepo, txRunner, log)
	partyUC := party.NewUseCase(customerRepo, supplierRepo)
	salesUC := sales.NewUseCase(salesOrderRepo, customerRepo, txRunner, log)

	pdfGenerator := infrapdf.NewPurchaseOrderGenerator(cfg.App.Name)
	purchasingUC := purchasing.NewUseCase(
		purchaseOrderRepo, supplierRepo, productRepo, txRunner, pdfGenerator, log,
	)

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 10,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())

	// Swagger UI: http://localhost:<port>/docs
	app.Use(swagger.New(swagger.Config{
		BasePath: "/",
		FilePath: "./docs/swagger.json",
		Path:     "docs",
		Title:    "ERP System API",
	}))

	httpRouter.Router(app, httpRouter.RouterDeps{
		CatalogUC:    catalogUC,
		PartyUC:      partyUC,
		SalesUC:      salesUC,
		PurchasingUC: purchasingUC,
		JWTSecret:    cfg.JWT.Secret,
	})

	go func() {
		if err := app.Listen(cfg.HTTP.Addr()); err != nil {
			log.Error().Err(err).Msg("HTTP server stopped")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("shutdown signal received, closing server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("server shutdown")
	}

	log.Info().Msg("application stopped")
}
