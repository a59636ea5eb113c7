package billing

import (
	"context"
	"fmt"

	"github.com/jhoicas/netbill-api/internal/domain"
	"github.com/jhoicas/netbill-api/internal/domain/entity"
	"github.com/jhoicas/netbill-api/internal/domain/repository"
)

// ReceiptUseCase genera el comprobante PDF de un pago liquidado.
type ReceiptUseCase struct {
	paymentRepo  repository.PaymentRepository
	customerRepo repository.CustomerRepository
	userRepo     repository.UserRepository
	generator    ReceiptPDFGenerator
}

// NewReceiptUseCase construye el caso de uso.
func NewReceiptUseCase(
	paymentRepo repository.PaymentRepository,
	customerRepo repository.CustomerRepository,
	userRepo repository.UserRepository,
	generator ReceiptPDFGenerator,
) *ReceiptUseCase {
	return &ReceiptUseCase{
		paymentRepo:  paymentRepo,
		customerRepo: customerRepo,
		userRepo:     userRepo,
		generator:    generator,
	}
}

// DownloadReceipt carga pago, cliente y colector y genera el PDF.
//
// Retorna:
//   - (pdfBytes, filename, nil) si todo sale bien.
//   - domain.ErrNotFound        si el pago no existe.
//   - domain.ErrInvalidInput    si el pago aún no está liquidado.
func (uc *ReceiptUseCase) DownloadReceipt(ctx context.Context, paymentID string) (pdfBytes []byte, filename string, err error) {
	payment, err := uc.paymentRepo.GetByID(ctx, paymentID)
	if err != nil {
		return nil, "", fmt.Errorf("obtener pago: %w", err)
	}
	if payment == nil {
		return nil, "", domain.ErrNotFound
	}
	if !payment.Paid {
		return nil, "", fmt.Errorf("%w: el pago todavía no está liquidado", domain.ErrInvalidInput)
	}

	customer, err := uc.customerRepo.GetByID(ctx, payment.CustomerID)
	if err != nil {
		return nil, "", fmt.Errorf("obtener cliente: %w", err)
	}
	if customer == nil {
		return nil, "", domain.ErrNotFound
	}

	var collector *entity.User
	if payment.EntryByID != "" {
		collector, _ = uc.userRepo.GetByID(ctx, payment.EntryByID)
	}

	pdfBytes, err = uc.generator.GenerateReceipt(ctx, payment, customer, collector)
	if err != nil {
		return nil, "", fmt.Errorf("generar PDF del comprobante: %w", err)
	}
	filename = fmt.Sprintf("recibo_%s_%s.pdf", customer.Phone, payment.BillingMonth)
	return pdfBytes, filename, nil
}
