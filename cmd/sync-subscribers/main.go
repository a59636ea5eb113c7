// Comando de consola para sincronizar los suscriptores del router MikroTik
// hacia la base de datos. Pensado para la carga inicial o correcciones:
//
//	sync-subscribers                      importa secrets PPP nuevos
//	sync-subscribers -fix-bill-amounts    además realinea bill_amount con el precio actual del plan
package main

import (
	"context"
	"flag"
	"time"

	"github.com/jhoicas/netbill-api/internal/application/billing"
	"github.com/jhoicas/netbill-api/internal/infrastructure/mikrotik"
	"github.com/jhoicas/netbill-api/internal/infrastructure/postgres"
	"github.com/jhoicas/netbill-api/pkg/config"
	"github.com/jhoicas/netbill-api/pkg/logger"
)

func main() {
	fixBillAmounts := flag.Bool("fix-bill-amounts", false,
		"realinear bill_amount de todos los pagos con el precio actual del plan")
	timeout := flag.Duration("timeout", 5*time.Minute, "tiempo máximo de la corrida")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}
	log := logger.New(logger.Config{Env: cfg.App.Env, Level: "info"})

	ctx, cancel := context.WithTimeout(context.Background(), *timeout)
	defer cancel()

	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a PostgreSQL")
	}
	defer pool.Close()

	customerRepo := postgres.NewCustomerRepository(pool)
	packageRepo := postgres.NewPackageRepository(pool)
	paymentRepo := postgres.NewPaymentRepository(pool)
	routerClient := mikrotik.NewClient(cfg.Router, log)

	importUC := billing.NewImportSubscribersUseCase(routerClient, customerRepo, packageRepo, log)
	result, err := importUC.Import(ctx)
	if err != nil {
		log.Fatal().Err(err).Msg("importación de suscriptores")
	}
	log.Info().
		Int("fetched", result.Fetched).
		Int("created", result.Created).
		Int("skipped", result.Skipped).
		Int("packages_created", result.Packages).
		Msg("importación completada")

	if *fixBillAmounts {
		paymentUC := billing.NewPaymentUseCase(paymentRepo, customerRepo, routerClient, log)
		updated, err := paymentUC.RealignBillAmounts(ctx)
		if err != nil {
			log.Fatal().Err(err).Msg("realinear bill_amount")
		}
		log.Info().Int64("updated_payments", updated).Msg("bill_amount realineado")
	}
}
