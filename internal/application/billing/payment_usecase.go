package billing

import (
	"context"
	"time"

	"github.com/jhoicas/netbill-api/internal/application/dto"
	"github.com/jhoicas/netbill-api/internal/domain"
	"github.com/jhoicas/netbill-api/internal/domain/repository"
	"github.com/jhoicas/netbill-api/pkg/logger"
)

// PaymentUseCase consultas y edición administrativa de pagos.
// El registro de cobros nuevos pasa por ApplyPaymentUseCase, no por acá.
type PaymentUseCase struct {
	repo         repository.PaymentRepository
	customerRepo repository.CustomerRepository
	toggler      ConnectivityToggler
	log          *logger.Logger
}

// NewPaymentUseCase construye el caso de uso.
func NewPaymentUseCase(
	repo repository.PaymentRepository,
	customerRepo repository.CustomerRepository,
	toggler ConnectivityToggler,
	log *logger.Logger,
) *PaymentUseCase {
	return &PaymentUseCase{repo: repo, customerRepo: customerRepo, toggler: toggler, log: log}
}

// GetByID devuelve un pago con cliente y colector.
func (uc *PaymentUseCase) GetByID(ctx context.Context, id string) (*dto.PaymentResponse, error) {
	payment, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if payment == nil {
		return nil, domain.ErrNotFound
	}
	out := ToPaymentResponse(payment)
	return &out, nil
}

// List lista pagos con los filtros del panel (paid, mes, cliente, colector).
func (uc *PaymentUseCase) List(ctx context.Context, filter repository.ListPaymentFilter, limit, offset int) ([]dto.PaymentResponse, error) {
	if limit <= 0 {
		limit = 20
	}
	if offset < 0 {
		offset = 0
	}
	list, err := uc.repo.List(ctx, filter, limit, offset)
	if err != nil {
		return nil, err
	}
	out := make([]dto.PaymentResponse, 0, len(list))
	for _, p := range list {
		out = append(out, ToPaymentResponse(p))
	}
	return out, nil
}

// ListByCustomer historial de pagos de un cliente.
func (uc *PaymentUseCase) ListByCustomer(ctx context.Context, customerID string, limit, offset int) ([]dto.PaymentResponse, error) {
	if limit <= 0 {
		limit = 20
	}
	if offset < 0 {
		offset = 0
	}
	customer, err := uc.customerRepo.GetByID(ctx, customerID)
	if err != nil {
		return nil, err
	}
	if customer == nil {
		return nil, domain.ErrNotFound
	}
	list, err := uc.repo.ListByCustomer(ctx, customerID, limit, offset)
	if err != nil {
		return nil, err
	}
	out := make([]dto.PaymentResponse, 0, len(list))
	for _, p := range list {
		out = append(out, ToPaymentResponse(p))
	}
	return out, nil
}

// Update edición administrativa. paid se rederiva siempre contra el
// bill_amount guardado; un pago liquidado nunca se "despaga" ni se le baja
// el monto: candado monotónico (ErrAlreadyPaid).
func (uc *PaymentUseCase) Update(ctx context.Context, id string, in dto.UpdatePaymentRequest, actorID string) (*dto.PaymentResponse, error) {
	payment, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if payment == nil {
		return nil, domain.ErrNotFound
	}

	if payment.Paid {
		// Una vez liquidado, cualquier edición que toque monto o bandera se rechaza.
		if in.Amount != nil || in.Paid != nil {
			return nil, domain.ErrAlreadyPaid
		}
	}

	if in.Amount != nil {
		if in.Amount.IsNegative() {
			return nil, domain.ErrInvalidInput
		}
		payment.Amount = *in.Amount
	}
	if in.PaymentMethod != nil {
		payment.PaymentMethod = *in.PaymentMethod
	}
	if in.PaymentDate != nil {
		payment.PaymentDate = in.PaymentDate
	}
	if in.Note != nil {
		payment.Note = *in.Note
	}

	// Derivación: override explícito o monto que cubre la factura.
	override := in.Paid != nil && *in.Paid
	payment.Paid = override || payment.Amount.GreaterThanOrEqual(payment.BillAmount)
	payment.UpdatedByID = actorID
	payment.UpdatedAt = time.Now()

	if err := uc.repo.Update(ctx, payment); err != nil {
		return nil, err
	}

	// El flip de activación por edición sigue la misma regla que el cobro:
	// is_active se persiste y la reconexión en el router es best-effort.
	if payment.Paid {
		uc.activateAfterSettlement(ctx, payment.CustomerID)
	}

	out := ToPaymentResponse(payment)
	return &out, nil
}

// activateAfterSettlement activa al cliente si estaba inactivo y pide la
// reconexión al router. La falla del router no revierte la edición: queda como
// warning, igual que en el cobro.
func (uc *PaymentUseCase) activateAfterSettlement(ctx context.Context, customerID string) {
	customer, err := uc.customerRepo.GetByID(ctx, customerID)
	if err != nil {
		uc.log.Error().Err(err).Str("customer_id", customerID).
			Msg("edición liquidó el pago pero no se pudo cargar el cliente")
		return
	}
	if customer == nil || customer.IsActive {
		return
	}
	if err := uc.customerRepo.SetActive(ctx, customer.ID, true); err != nil {
		uc.log.Error().Err(err).Str("customer_id", customer.ID).
			Msg("edición liquidó el pago pero no se pudo activar al cliente")
		return
	}
	if ok, msg := uc.toggler.SetSubscriberEnabled(ctx, customer.Username, true); !ok {
		uc.log.Warn().
			Str("customer_id", customer.ID).
			Str("username", customer.Username).
			Str("reason", msg).
			Msg("edición liquidó el pago pero el router no reconectó al suscriptor")
	}
}

// Delete borrado administrativo (solo ADMIN/MANAGER a nivel de ruta).
func (uc *PaymentUseCase) Delete(ctx context.Context, id string) error {
	payment, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if payment == nil {
		return domain.ErrNotFound
	}
	return uc.repo.Delete(ctx, id)
}

// RealignBillAmounts reescribe el bill_amount de todos los pagos con el precio
// actual del plan de cada cliente (comando de mantenimiento).
func (uc *PaymentUseCase) RealignBillAmounts(ctx context.Context) (int64, error) {
	return uc.repo.RealignBillAmounts(ctx)
}
