package billing

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/jhoicas/netbill-api/internal/application/dto"
	"github.com/jhoicas/netbill-api/internal/domain"
	"github.com/jhoicas/netbill-api/internal/domain/entity"
	"github.com/jhoicas/netbill-api/internal/domain/repository"
	"github.com/jhoicas/netbill-api/pkg/logger"
)

// ApplyPaymentInput entrada validada para registrar un cobro.
type ApplyPaymentInput struct {
	CustomerID    string
	BillingMonth  string
	Amount        decimal.Decimal
	PaymentMethod string
	PaymentDate   *time.Time
	PaidOverride  bool // fuerza paid=true aunque amount < bill_amount
	Note          string
	EntryBy       *entity.User // colector que registra el cobro
}

// ApplyPaymentResult pago persistido + resultado del efecto de reconexión.
type ApplyPaymentResult struct {
	Payment             *entity.Payment
	ActivationTriggered bool
	ConnectivityOK      bool
	ConnectivityMessage string
}

// ApplyPaymentUseCase aplica un cobro contra la factura mensual de un cliente.
//
// Reglas:
//   - Un solo pago por (cliente, mes). Dos filas es una falla de integridad
//     que se reporta, nunca se adivina cuál actualizar.
//   - bill_amount se toma fresco del precio actual del plan, no del placeholder:
//     un upgrade a mitad de ciclo se refleja en el próximo cobro.
//   - paid es derivado: override explícito o amount >= bill_amount.
//   - Un pago ya liquidado es inmutable por esta vía (ErrAlreadyPaid).
//   - Si quedó liquidado y el cliente estaba inactivo, se activa y se intenta
//     reconectar en el router. La falla del router no revierte el pago: la
//     contabilidad manda, el efecto de red queda como warning.
type ApplyPaymentUseCase struct {
	txRunner     BillingTxRunner
	customerRepo repository.CustomerRepository
	toggler      ConnectivityToggler
	log          *logger.Logger
}

// NewApplyPaymentUseCase construye el caso de uso.
func NewApplyPaymentUseCase(
	txRunner BillingTxRunner,
	customerRepo repository.CustomerRepository,
	toggler ConnectivityToggler,
	log *logger.Logger,
) *ApplyPaymentUseCase {
	return &ApplyPaymentUseCase{
		txRunner:     txRunner,
		customerRepo: customerRepo,
		toggler:      toggler,
		log:          log,
	}
}

// Apply registra el cobro. Ver las reglas en el doc del tipo.
func (uc *ApplyPaymentUseCase) Apply(ctx context.Context, in ApplyPaymentInput) (*ApplyPaymentResult, error) {
	if in.CustomerID == "" || !entity.IsBillingMonth(in.BillingMonth) {
		return nil, domain.ErrInvalidInput
	}
	if !entity.IsPaymentMethod(in.PaymentMethod) {
		return nil, domain.ErrInvalidInput
	}
	if in.Amount.IsNegative() {
		return nil, domain.ErrInvalidInput
	}

	customer, err := uc.customerRepo.GetByID(ctx, in.CustomerID)
	if err != nil {
		return nil, fmt.Errorf("obtener cliente: %w", err)
	}
	if customer == nil {
		return nil, domain.ErrNotFound
	}
	if customer.IsFree {
		return nil, domain.ErrFreeCustomer
	}

	// Snapshot fresco del precio del plan (no el bill_amount viejo del placeholder).
	billAmount := decimal.Zero
	if customer.Package != nil {
		billAmount = customer.Package.Price
	}

	isFullyPaid := in.PaidOverride || in.Amount.GreaterThanOrEqual(billAmount)

	paymentDate := time.Now()
	if in.PaymentDate != nil {
		paymentDate = *in.PaymentDate
	}

	note := in.Note
	collectorID := ""
	if in.EntryBy != nil {
		collectorID = in.EntryBy.ID
	}

	var result ApplyPaymentResult
	err = uc.txRunner.RunBilling(ctx, func(
		paymentRepo repository.PaymentRepository,
		customerRepo repository.CustomerRepository,
	) error {
		payment, err := paymentRepo.GetByCustomerAndMonth(ctx, customer.ID, in.BillingMonth)
		if err != nil {
			// Incluye domain.ErrIntegrityConflict cuando hay filas duplicadas.
			return err
		}
		if payment != nil && payment.Paid {
			return domain.ErrAlreadyPaid
		}

		now := time.Now()
		if payment != nil {
			// Cobro contra la factura pendiente: se actualiza in place.
			if note == "" && in.EntryBy != nil {
				note = "Pago actualizado por " + in.EntryBy.FullName()
			}
			payment.BillAmount = billAmount
			payment.Amount = in.Amount
			payment.Paid = isFullyPaid
			payment.PaymentMethod = in.PaymentMethod
			payment.TransactionID = uuid.New().String()
			payment.PaymentDate = &paymentDate
			payment.EntryByID = collectorID
			payment.UpdatedByID = collectorID
			payment.Note = note
			payment.UpdatedAt = now
			if err := paymentRepo.Update(ctx, payment); err != nil {
				return fmt.Errorf("actualizar pago: %w", err)
			}
		} else {
			if note == "" && in.EntryBy != nil {
				note = "Pago recibido por " + in.EntryBy.FullName()
			}
			payment = &entity.Payment{
				ID:            uuid.New().String(),
				CustomerID:    customer.ID,
				BillAmount:    billAmount,
				Amount:        in.Amount,
				BillingMonth:  in.BillingMonth,
				PaymentMethod: in.PaymentMethod,
				Paid:          isFullyPaid,
				TransactionID: uuid.New().String(),
				PaymentDate:   &paymentDate,
				Note:          note,
				Status:        entity.StatusActive,
				EntryByID:     collectorID,
				UpdatedByID:   collectorID,
				CreatedAt:     now,
				UpdatedAt:     now,
			}
			if err := paymentRepo.Create(ctx, payment); err != nil {
				return fmt.Errorf("crear pago: %w", err)
			}
		}

		// Flip de activación en la misma transacción que el pago.
		if isFullyPaid && !customer.IsActive {
			if err := customerRepo.SetActive(ctx, customer.ID, true); err != nil {
				return fmt.Errorf("activar cliente: %w", err)
			}
			result.ActivationTriggered = true
		}

		result.Payment = payment
		return nil
	})
	if err != nil {
		return nil, err
	}

	// Efecto de red fuera de la tx: best effort, una sola tentativa.
	if result.ActivationTriggered {
		ok, msg := uc.toggler.SetSubscriberEnabled(ctx, customer.Username, true)
		result.ConnectivityOK = ok
		result.ConnectivityMessage = msg
		if !ok {
			uc.log.Warn().
				Str("customer_id", customer.ID).
				Str("username", customer.Username).
				Str("reason", msg).
				Msg("pago liquidado pero el router no reconectó al suscriptor")
		}
	} else {
		result.ConnectivityOK = true
	}

	return &result, nil
}

// ToPaymentResponse convierte el pago a su DTO (con cliente si está cargado).
func ToPaymentResponse(p *entity.Payment) dto.PaymentResponse {
	out := dto.PaymentResponse{
		ID:            p.ID,
		CustomerID:    p.CustomerID,
		BillAmount:    p.BillAmount,
		Amount:        p.Amount,
		BillingMonth:  p.BillingMonth,
		PaymentMethod: p.PaymentMethod,
		Paid:          p.Paid,
		TransactionID: p.TransactionID,
		PaymentDate:   p.PaymentDate,
		Note:          p.Note,
		CreatedAt:     p.CreatedAt,
		UpdatedAt:     p.UpdatedAt,
	}
	if p.Customer != nil {
		c := ToCustomerResponse(p.Customer)
		out.Customer = &c
	}
	if p.EntryBy != nil {
		out.CollectedBy = p.EntryBy.FullName()
	}
	return out
}
