package billing

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/jhoicas/netbill-api/internal/domain"
	"github.com/jhoicas/netbill-api/internal/domain/entity"
	"github.com/jhoicas/netbill-api/internal/domain/repository"
	"github.com/jhoicas/netbill-api/pkg/logger"
)

// GenerateBillsUseCase corrida de facturación del período: crea pagos
// placeholder (amount=0, paid=false) para cada cliente elegible que todavía
// no tiene pago en el mes. Idempotente: correrla dos veces seguidas no crea
// filas nuevas la segunda vez.
type GenerateBillsUseCase struct {
	customerRepo repository.CustomerRepository
	paymentRepo  repository.PaymentRepository
	log          *logger.Logger
}

// NewGenerateBillsUseCase construye el caso de uso.
func NewGenerateBillsUseCase(
	customerRepo repository.CustomerRepository,
	paymentRepo repository.PaymentRepository,
	log *logger.Logger,
) *GenerateBillsUseCase {
	return &GenerateBillsUseCase{customerRepo: customerRepo, paymentRepo: paymentRepo, log: log}
}

// Generate factura el período indicado; con period vacío usa el mes en curso.
// Elegibles: is_active Y no is_free Y plan con precio > 0. El insert del lote
// es una sola operación atómica: no queda período facturado a medias.
// Devuelve la cantidad de placeholders creados.
func (uc *GenerateBillsUseCase) Generate(ctx context.Context, period string) (int, error) {
	if period == "" {
		period = entity.CurrentBillingMonth(time.Now())
	}
	if !entity.IsBillingMonth(period) {
		return 0, domain.ErrInvalidInput
	}

	customers, err := uc.customerRepo.ListBillable(ctx)
	if err != nil {
		return 0, fmt.Errorf("listar clientes facturables: %w", err)
	}

	billed, err := uc.paymentRepo.CustomerIDsWithMonth(ctx, period)
	if err != nil {
		return 0, fmt.Errorf("pagos existentes del período: %w", err)
	}

	now := time.Now()
	var placeholders []*entity.Payment
	for _, c := range customers {
		if billed[c.ID] {
			continue
		}
		billAmount := decimal.Zero
		if c.Package != nil {
			billAmount = c.Package.Price
		}
		placeholders = append(placeholders, &entity.Payment{
			ID:            uuid.New().String(),
			CustomerID:    c.ID,
			BillAmount:    billAmount,
			Amount:        decimal.Zero,
			BillingMonth:  period,
			PaymentMethod: entity.MethodOther,
			Paid:          false,
			Note:          "Factura generada automáticamente para " + period,
			Status:        entity.StatusActive,
			CreatedAt:     now,
			UpdatedAt:     now,
		})
	}

	if len(placeholders) > 0 {
		if err := uc.paymentRepo.BulkCreate(ctx, placeholders); err != nil {
			return 0, fmt.Errorf("insertar facturas del período: %w", err)
		}
	}

	uc.log.Info().
		Str("billing_month", period).
		Int("eligible", len(customers)).
		Int("created", len(placeholders)).
		Msg("corrida de facturación completada")

	return len(placeholders), nil
}
