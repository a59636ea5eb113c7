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

	"github.com/jhoicas/netbill-api/internal/application/analytics"
	"github.com/jhoicas/netbill-api/internal/application/auth"
	"github.com/jhoicas/netbill-api/internal/application/billing"
	"github.com/jhoicas/netbill-api/internal/infrastructure/mikrotik"
	infrapdf "github.com/jhoicas/netbill-api/internal/infrastructure/pdf"
	"github.com/jhoicas/netbill-api/internal/infrastructure/postgres"
	httpRouter "github.com/jhoicas/netbill-api/internal/interfaces/http"
	"github.com/jhoicas/netbill-api/pkg/config"
	"github.com/jhoicas/netbill-api/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: "info",
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Msg("iniciando aplicación")

	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a PostgreSQL")
	}
	defer pool.Close()

	// Repositorios sobre el pool
	userRepo := postgres.NewUserRepository(pool)
	packageRepo := postgres.NewPackageRepository(pool)
	customerRepo := postgres.NewCustomerRepository(pool)
	paymentRepo := postgres.NewPaymentRepository(pool)
	dashboardRepo := postgres.NewDashboardRepository(pool)
	txRunner := postgres.NewTxRunner(pool)

	// Adaptador del router MikroTik (toggle de conectividad + importación)
	routerClient := mikrotik.NewClient(cfg.Router, log)

	// Casos de uso
	authUC := auth.NewAuthUseCase(userRepo, auth.JWTConfig{
		Secret: cfg.JWT.Secret,
		Issuer: cfg.JWT.Issuer,
	})
	userUC := auth.NewUserUseCase(userRepo)
	packageUC := billing.NewPackageUseCase(packageRepo)
	customerUC := billing.NewCustomerUseCase(customerRepo, packageRepo)
	paymentUC := billing.NewPaymentUseCase(paymentRepo, customerRepo, routerClient, log)
	applyPaymentUC := billing.NewApplyPaymentUseCase(txRunner, customerRepo, routerClient, log)
	generateBillsUC := billing.NewGenerateBillsUseCase(customerRepo, paymentRepo, log)
	toggleUC := billing.NewStatusToggleUseCase(customerRepo, routerClient, log)
	importUC := billing.NewImportSubscribersUseCase(routerClient, customerRepo, packageRepo, log)
	receiptGen := infrapdf.NewMarotoReceiptGenerator(cfg.App.Name)
	receiptUC := billing.NewReceiptUseCase(paymentRepo, customerRepo, userRepo, receiptGen)
	dashboardUC := analytics.NewDashboardUseCase(dashboardRepo)

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 10,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())

	// Swagger UI en local: http://localhost:<port>/docs
	app.Use(swagger.New(swagger.Config{
		BasePath: "/",
		FilePath: "./docs/swagger.json",
		Path:     "docs",
		Title:    "NetBill API",
	}))

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		AuthUC:       authUC,
		UserUC:       userUC,
		PackageUC:    packageUC,
		CustomerUC:   customerUC,
		PaymentUC:    paymentUC,
		ApplyPayment: applyPaymentUC,
		GenerateUC:   generateBillsUC,
		ToggleUC:     toggleUC,
		ImportUC:     importUC,
		ReceiptUC:    receiptUC,
		DashboardUC:  dashboardUC,
		JWTSecret:    cfg.JWT.Secret,
	})

	go func() {
		if err := app.Listen(cfg.HTTP.Addr()); err != nil {
			log.Error().Err(err).Msg("servidor HTTP finalizado")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("señal de apagado recibida, cerrando servidor...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("apagado del servidor")
	}

	log.Info().Msg("aplicación detenida")
}
